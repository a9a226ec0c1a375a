package cvs

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/shared/server/middleware"
)

func newCVRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, userID, "", "")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartBody(t *testing.T, field, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestCVUploadGetDownload(t *testing.T) {
	svc, _ := newTestService(t)
	router := newCVRouter(svc, "user-1")

	// Nothing stored yet.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/cv/get", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"cvFile":null}` {
		t.Fatalf("expected null cvFile, got %d %s", rec.Code, rec.Body.String())
	}

	pdfBytes := []byte("%PDF-1.4 handler test")
	body, contentType := multipartBody(t, "cv", "resume.pdf", pdfBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/cv/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 upload, got %d %s", rec.Code, rec.Body.String())
	}
	var uploaded struct {
		Success  bool   `json:"success"`
		FileName string `json:"fileName"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	if !uploaded.Success || uploaded.FileName != "resume.pdf" {
		t.Fatalf("unexpected upload response %+v", uploaded)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/cv/get", nil))
	var got struct {
		CVFile struct {
			FileName string `json:"fileName"`
			URL      string `json:"url"`
		} `json:"cvFile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.CVFile.FileName != "resume.pdf" || got.CVFile.URL != DownloadPath {
		t.Fatalf("unexpected cvFile %+v", got.CVFile)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/cv/download", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 download, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="cv.pdf"` {
		t.Fatalf("unexpected disposition %s", cd)
	}
	if !bytes.Equal(rec.Body.Bytes(), pdfBytes) {
		t.Fatalf("download body mismatch")
	}
}

func TestCVDownloadMissing(t *testing.T) {
	svc, _ := newTestService(t)
	router := newCVRouter(svc, "user-2")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/cv/download", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "No CV found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCVUploadRejectsNonPDF(t *testing.T) {
	svc, _ := newTestService(t)
	router := newCVRouter(svc, "user-1")

	body, contentType := multipartBody(t, "cv", "resume.docx", []byte("PK\x03\x04"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/cv/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
