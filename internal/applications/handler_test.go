package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/shared/server/middleware"
)

func newApplicationsRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-Test-User")
		if userID == "" {
			userID = "user-1"
		}
		middleware.SetIdentity(c, userID, userID+"@example.com", "")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(router *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type applicationBody struct {
	Success     bool        `json:"success"`
	Application Application `json:"application"`
}

func TestCreateHandler(t *testing.T) {
	svc := newTestService(&fakeLLM{response: `{"companyName":"Acme Corp","jobTitle":"Backend Engineer"}`}, nil)
	router := newApplicationsRouter(svc)

	rec := doJSON(router, http.MethodPost, "/api/v1/applications/create", "", map[string]string{"jobDescription": "Backend role"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var body applicationBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Application.Status != StatusApplied || *body.Application.CompanyName != "Acme Corp" {
		t.Fatalf("unexpected body %+v", body)
	}

	rec = doJSON(router, http.MethodPost, "/api/v1/applications/create", "", map[string]string{"jobDescription": " "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank jd, got %d", rec.Code)
	}
}

func TestCreateHandlerModelFailure(t *testing.T) {
	svc := newTestService(&fakeLLM{err: context.DeadlineExceeded}, nil)
	router := newApplicationsRouter(svc)

	rec := doJSON(router, http.MethodPost, "/api/v1/applications/create", "", map[string]string{"jobDescription": "Backend role"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestUpdateStatusHandlerOwnership(t *testing.T) {
	svc := newTestService(&fakeLLM{response: `{"companyName":"Acme","jobTitle":"SRE"}`}, nil)
	router := newApplicationsRouter(svc)
	app, err := svc.Create(context.Background(), "user-1", "jd")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := doJSON(router, http.MethodPatch, "/api/v1/applications/update-status", "user-2",
		map[string]string{"applicationId": app.ID, "status": "Rejected"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign application, got %d", rec.Code)
	}
	apps, _ := svc.List(context.Background(), "user-1")
	if apps[0].Status != StatusApplied {
		t.Fatalf("foreign update must not change record, got %q", apps[0].Status)
	}

	rec = doJSON(router, http.MethodPatch, "/api/v1/applications/update-status", "user-1",
		map[string]string{"applicationId": app.ID, "status": "Maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodPatch, "/api/v1/applications/update-status", "user-1",
		map[string]string{"applicationId": "not-a-uuid", "status": "Ghosted"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status on malformed id, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodPatch, "/api/v1/applications/update-status", "user-1",
		map[string]string{"applicationId": app.ID, "status": "Viewed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var body applicationBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Application.Status != StatusViewed {
		t.Fatalf("unexpected status %q", body.Application.Status)
	}
}

func TestUpdateHandler(t *testing.T) {
	svc := newTestService(&fakeLLM{response: `{"companyName":"Acme","jobTitle":"SRE"}`}, nil)
	router := newApplicationsRouter(svc)
	app, err := svc.Create(context.Background(), "user-1", "jd")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := doJSON(router, http.MethodPatch, "/api/v1/applications/update", "user-1",
		map[string]string{"applicationId": app.ID})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for no fields, got %d", rec.Code)
	}
	var errBody struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &errBody)
	if errBody.Error != "No fields to update" {
		t.Fatalf("unexpected error %q", errBody.Error)
	}

	rec = doJSON(router, http.MethodPatch, "/api/v1/applications/update", "user-1",
		map[string]string{"applicationId": app.ID, "jobTitle": "Staff SRE"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestListAndDashboardHandlers(t *testing.T) {
	svc := newTestService(&fakeLLM{response: `{"companyName":"Acme","jobTitle":"SRE"}`}, nil)
	router := newApplicationsRouter(svc)
	if _, err := svc.Create(context.Background(), "user-1", "jd"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := doJSON(router, http.MethodGet, "/api/v1/applications", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list struct {
		Applications []Application `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(list.Applications))
	}

	rec = doJSON(router, http.MethodGet, "/api/v1/applications/dashboard", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var d Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.TotalApplications != 1 || len(d.ByStatus) != len(Statuses) {
		t.Fatalf("unexpected dashboard %+v", d)
	}
}
