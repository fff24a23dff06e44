package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
)

// parseIDParam reads a positive integer path parameter, answering 400 when it is not one.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter, falling back when it is absent or malformed.
func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}
