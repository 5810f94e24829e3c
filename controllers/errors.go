package controllers

import (
	"errors"

	"qrmenu/pkg/resp"
	"qrmenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fail maps service errors onto the uniform {ok:false, error} shape.
// Internal causes stay in the log, not in the response body.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmptyReason),
		errors.Is(err, services.ErrInvalidPrepTime),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidStatus):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
