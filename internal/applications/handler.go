package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the applications service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/create", h.create)
	rg.PATCH("/applications/update-status", h.updateStatus)
	rg.PATCH("/applications/update", h.update)
	rg.GET("/applications", h.list)
	rg.GET("/applications/dashboard", h.dashboard)
}

type createRequest struct {
	JobDescription string `json:"jobDescription"`
}

type updateStatusRequest struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
}

type updateRequest struct {
	ApplicationID string  `json:"applicationId"`
	CompanyName   *string `json:"companyName"`
	JobTitle      *string `json:"jobTitle"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.Create(c.Request.Context(), userID, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Job description is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to create application", nil)
		}
		return
	}

	c.Set(middleware.ApplicationIDKey, app.ID)
	respond.OK(c, gin.H{"success": true, "application": app})
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ApplicationID == "" || req.Status == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Application ID and status are required", nil)
		return
	}
	c.Set(middleware.ApplicationIDKey, req.ApplicationID)

	app, err := h.Svc.UpdateStatus(c.Request.Context(), userID, req.ApplicationID, req.Status)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true, "application": app})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ApplicationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Application ID is required", nil)
		return
	}
	c.Set(middleware.ApplicationIDKey, req.ApplicationID)

	upd := FieldUpdate{CompanyName: req.CompanyName, JobTitle: req.JobTitle}
	app, err := h.Svc.Update(c.Request.Context(), userID, req.ApplicationID, upd)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true, "application": app})
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "invalid_status", "Invalid status", gin.H{"allowed": Statuses})
	case errors.Is(err, ErrNoFields):
		respond.Error(c, http.StatusBadRequest, "validation_error", "No fields to update", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to update application", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	apps, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to list applications", nil)
		return
	}
	respond.OK(c, gin.H{"applications": apps})
}

func (h *Handler) dashboard(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	d, err := h.Svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load dashboard", nil)
		return
	}
	respond.OK(c, d)
}
