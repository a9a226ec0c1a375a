package optimizer

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/cvs"
	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the optimizer service.
type Handler struct {
	Svc *Service
	CVs cvs.TextSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, cvText cvs.TextSource) *Handler {
	return &Handler{Svc: svc, CVs: cvText}
}

// RegisterRoutes attaches the optimize route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize-cv", h.optimize)
}

func (h *Handler) optimize(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Job description is required", nil)
		return
	}

	cvText, err := cvs.RequestText(c, h.CVs, userID)
	if err != nil {
		cvs.RespondTextError(c, err)
		return
	}

	result, err := h.Svc.Optimize(c.Request.Context(), cvText, jobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCV):
			respond.Error(c, http.StatusBadRequest, "cv_required", "Please upload a CV first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "llm_error", "Failed to optimize CV", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"recommendations": result.Recommendations,
		"degraded":        result.Degraded,
		"success":         true,
	})
}
