package handlers

import (
	"github.com/credboost/backend/internal/middleware"
	"github.com/credboost/backend/internal/services"
	"github.com/credboost/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmissionHandler serves the public, unauthenticated form surface.
type SubmissionHandler struct {
	formService       *services.FormService
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(db *gorm.DB) *SubmissionHandler {
	return &SubmissionHandler{
		formService:       services.NewFormService(db),
		submissionService: services.NewSubmissionService(db),
	}
}

// GetForm returns the public view of a form
// GET /public/forms/:spaceId/:formId
func (h *SubmissionHandler) GetForm(c *gin.Context) {
	spaceID, ok := pathID(c, "spaceId")
	if !ok {
		return
	}
	formID, ok := pathID(c, "formId")
	if !ok {
		return
	}

	view, err := h.formService.GetPublic(spaceID, formID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// GetFormByLink resolves a shareable link
// GET /public/links/:link
func (h *SubmissionHandler) GetFormByLink(c *gin.Context) {
	link := c.Param("link")
	if link == "" {
		response.BadRequest(c, "invalid link")
		return
	}

	view, err := h.formService.GetPublicByLink(link)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// Submit accepts a response to a form
// POST /public/forms/:spaceId/:formId/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	spaceID, ok := pathID(c, "spaceId")
	if !ok {
		return
	}
	formID, ok := pathID(c, "formId")
	if !ok {
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// 0 when anonymous; forms that require sign-in reject it downstream
	userID := middleware.GetUserID(c)

	result, err := h.submissionService.Submit(spaceID, formID, userID, req.Values)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, result)
}
