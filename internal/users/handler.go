package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
	"jobassist-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/info", h.info)
	rg.GET("/onboarding/status", h.onboardingStatus)
	rg.POST("/onboarding/complete", h.completeOnboarding)
}

func identity(c *gin.Context) Identity {
	return Identity{
		UserID: middleware.UserIDFromContext(c),
		Email:  middleware.UserEmailFromContext(c),
		Name:   middleware.UserNameFromContext(c),
	}
}

func (h *Handler) info(c *gin.Context) {
	user, err := h.Svc.Info(c.Request.Context(), identity(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load user", nil)
		return
	}
	respond.OK(c, gin.H{"user": gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	}})
}

func (h *Handler) onboardingStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	done, err := h.Svc.OnboardingStatus(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load onboarding status", nil)
		return
	}
	respond.OK(c, gin.H{"hasCompletedOnboarding": done, "userId": userID})
}

func (h *Handler) completeOnboarding(c *gin.Context) {
	id := identity(c)
	if err := h.Svc.CompleteOnboarding(c.Request.Context(), id); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to complete onboarding", nil)
		return
	}
	telemetry.Info("users.onboarding_completed", map[string]any{"user_id": id.UserID})
	respond.OK(c, gin.H{"success": true})
}
