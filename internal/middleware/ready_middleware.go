package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/errors"
)

// RequireReady answers 503 until ready reports true.
func RequireReady(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ready() {
			errors.RespondWithMessage(c, http.StatusServiceUnavailable, "service starting")
			c.Abort()
			return
		}
		c.Next()
	}
}
