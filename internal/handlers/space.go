package handlers

import (
	"github.com/credboost/backend/internal/middleware"
	"github.com/credboost/backend/internal/services"
	"github.com/credboost/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SpaceHandler struct {
	spaceService *services.SpaceService
}

func NewSpaceHandler(db *gorm.DB) *SpaceHandler {
	return &SpaceHandler{
		spaceService: services.NewSpaceService(db),
	}
}

// List returns the user's spaces with rollups
// GET /api/spaces
func (h *SpaceHandler) List(c *gin.Context) {
	views, err := h.spaceService.List(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, views)
}

// Create adds a space
// POST /api/spaces
func (h *SpaceHandler) Create(c *gin.Context) {
	var req services.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	space, err := h.spaceService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, space)
}

// Get returns one space with rollups
// GET /api/spaces/:id
func (h *SpaceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.spaceService.Get(middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// Update applies partial changes to a space
// PUT /api/spaces/:id
func (h *SpaceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	space, err := h.spaceService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, space)
}

// Delete removes a space and everything under it
// DELETE /api/spaces/:id
func (h *SpaceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.spaceService.Delete(middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "space deleted"})
}
