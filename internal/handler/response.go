package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/validation"
)

// fail hands err to the terminal error middleware, which renders it
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, validation.FormatBindingError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		fail(c, validation.FormatBindingError(err))
		return false
	}
	return true
}

// idParam parses a positive numeric path parameter
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, apperror.Validation("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
