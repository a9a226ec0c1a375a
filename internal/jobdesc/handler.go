package jobdesc

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the extraction route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract-job-description", h.extract)
}

type extractRequest struct {
	URL string `json:"url"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "URL is required", nil)
		return
	}

	text, err := h.Svc.Extract(c.Request.Context(), req.URL)
	if err != nil {
		var fetchErr *FetchError
		switch {
		case errors.Is(err, ErrInvalidURL):
			respond.Error(c, http.StatusBadRequest, "invalid_url", "Only HTTP and HTTPS URLs are supported", nil)
		case errors.Is(err, ErrNotExtractable):
			respond.Error(c, http.StatusBadRequest, "not_extractable", "Could not extract a valid job description from this page. Please try pasting the text directly, or check if the URL is correct.", nil)
		case errors.As(err, &fetchErr):
			respond.Error(c, http.StatusBadGateway, "upstream_error", fetchErr.Error(), gin.H{"upstreamStatus": fetchErr.Status})
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "Failed to extract job description. Please try pasting the text directly.", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"jobDescription": text,
		"success":        true,
	})
}
