package coverletter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/cvs"
	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the cover letter service.
type Handler struct {
	Svc *Service
	CVs cvs.TextSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, cvText cvs.TextSource) *Handler {
	return &Handler{Svc: svc, CVs: cvText}
}

// RegisterRoutes attaches the cover letter route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-cover-letter", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
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

	letter, err := h.Svc.Generate(c.Request.Context(), cvText, jobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCV):
			respond.Error(c, http.StatusBadRequest, "cv_required", "Please upload a CV first", nil)
		case errors.Is(err, ErrEmptyLetter):
			respond.Error(c, http.StatusInternalServerError, "llm_error", "The generated cover letter was empty", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "llm_error", "Failed to generate cover letter", nil)
		}
		return
	}

	respond.Attachment(c, "application/pdf", "cover-letter.pdf", letter.PDF)
}
