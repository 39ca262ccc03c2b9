package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/shared/errors"
)

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, name, entity string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + entity + " ID")
	}
	return uint(n), nil
}
