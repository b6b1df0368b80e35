package handlers

import (
	"github.com/credboost/backend/internal/middleware"
	"github.com/credboost/backend/internal/services"
	"github.com/credboost/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(db *gorm.DB) *FormHandler {
	return &FormHandler{
		formService: services.NewFormService(db),
	}
}

// ListBySpace returns the forms in a space
// GET /api/spaces/:id/forms
func (h *FormHandler) ListBySpace(c *gin.Context) {
	spaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	forms, err := h.formService.ListBySpace(middleware.GetUserID(c), spaceID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, forms)
}

// Create adds a form with its questions
// POST /api/spaces/:id/forms
func (h *FormHandler) Create(c *gin.Context) {
	spaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	form, err := h.formService.Create(middleware.GetUserID(c), spaceID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, form)
}

// Get returns a form with questions, owner scoped
// GET /api/forms/:id
func (h *FormHandler) Get(c *gin.Context) {
	formID, ok := pathID(c, "id")
	if !ok {
		return
	}

	form, err := h.formService.GetForOwner(middleware.GetUserID(c), formID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, form)
}

// Delete removes a form
// DELETE /api/forms/:id
func (h *FormHandler) Delete(c *gin.Context) {
	formID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.formService.Delete(middleware.GetUserID(c), formID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "form deleted"})
}

// ListReviews returns a form's reviews, paginated
// GET /api/forms/:id/reviews
func (h *FormHandler) ListReviews(c *gin.Context) {
	formID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.formService.ListReviews(middleware.GetUserID(c), formID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, resp)
}
