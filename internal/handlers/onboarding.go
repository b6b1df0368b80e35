package handlers

import (
	"github.com/credboost/backend/internal/middleware"
	"github.com/credboost/backend/internal/services"
	"github.com/credboost/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OnboardingHandler struct {
	onboardingService *services.OnboardingService
}

func NewOnboardingHandler(db *gorm.DB) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: services.NewOnboardingService(db),
	}
}

// Complete fills in the user profile and optional first space
// POST /api/onboarding
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req services.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.onboardingService.Complete(middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// Subscription reports the user's plan and space usage
// GET /api/subscription
func (h *OnboardingHandler) Subscription(c *gin.Context) {
	info, err := h.onboardingService.Subscription(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, info)
}
