package handlers

import (
	"errors"
	"strconv"

	"github.com/credboost/backend/internal/services"
	"github.com/credboost/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// fail translates a service error into the unified envelope. Field
// validation errors become 422 with per-field messages; structured
// errors keep their status; everything else is a 500.
func fail(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		response.ValidationFailed(c, ve.Fields)
		return
	}
	response.Error(c, err)
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
