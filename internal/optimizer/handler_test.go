package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/cvs"
	"jobassist-backend/internal/shared/server/middleware"
)

type fakeCVText struct {
	text string
	err  error
}

func (f fakeCVText) Text(ctx context.Context, userID string) (string, error) {
	return f.text, f.err
}

func newOptimizeRouter(llm *fakeLLM, cvText cvs.TextSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, "user-1", "user@example.com", "")
		c.Next()
	})
	NewHandler(NewService(llm), cvText).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func formRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize-cv", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestOptimizeHandlerReturnsRecommendations(t *testing.T) {
	llm := &fakeLLM{response: `[{"section":"Experience","location":"Acme","currentText":"Built services.","suggestedText":"Built Go services.","keywords":["Go"],"reason":"Matches stack."}]`}
	router := newOptimizeRouter(llm, fakeCVText{text: "Built services."})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, formRequest(t, map[string]string{"jobDescription": testJD}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Recommendations []Recommendation `json:"recommendations"`
		Success         bool             `json:"success"`
		Degraded        bool             `json:"degraded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Degraded || len(body.Recommendations) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestOptimizeHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		llm    *fakeLLM
		cvText fakeCVText
		fields map[string]string
		status int
		errMsg string
	}{
		{
			name:   "missing job description",
			llm:    &fakeLLM{},
			cvText: fakeCVText{text: "cv"},
			fields: map[string]string{},
			status: http.StatusBadRequest,
			errMsg: "Job description is required",
		},
		{
			name:   "no stored cv",
			llm:    &fakeLLM{},
			cvText: fakeCVText{err: cvs.ErrNotFound},
			fields: map[string]string{"jobDescription": testJD},
			status: http.StatusBadRequest,
			errMsg: "Please upload a CV first",
		},
		{
			name:   "model failure",
			llm:    &fakeLLM{err: errors.New("upstream down")},
			cvText: fakeCVText{text: "cv"},
			fields: map[string]string{"jobDescription": testJD},
			status: http.StatusInternalServerError,
			errMsg: "Failed to optimize CV",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOptimizeRouter(tt.llm, tt.cvText)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, formRequest(t, tt.fields))
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["error"] != tt.errMsg {
				t.Fatalf("unexpected error body %v", body)
			}
		})
	}
}
