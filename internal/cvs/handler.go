package cvs

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/extract"
	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
)

// multipart framing on top of the file itself
const maxRequestBytes = MaxUploadBytes + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user/cv/upload", h.upload)
	rg.GET("/user/cv/get", h.get)
	rg.GET("/user/cv/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "CV file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	cv, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "CV file is required", nil)
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, extract.ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", "CV must be a PDF file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to upload CV", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success":  true,
		"fileName": cv.FileName,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	cv, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.OK(c, gin.H{"cvFile": nil})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch CV", nil)
		return
	}

	url, err := h.Svc.URL(c.Request.Context(), cv)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to create CV link", nil)
		return
	}
	respond.OK(c, gin.H{
		"cvFile": gin.H{
			"fileName": cv.FileName,
			"url":      url,
		},
	})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	_, data, err := h.Svc.Download(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "No CV found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to download CV", nil)
		return
	}
	respond.Attachment(c, extract.MimePDF, "cv.pdf", data)
}
