package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// StatusOf maps a failure to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as {"message": ...} with the status of its kind.
// Unexpected errors expose their text, matching the rest of the API.
func Respond(c *gin.Context, err error) {
	message := err.Error()
	var appErr *Error
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(StatusOf(err), ErrorResponse{Message: message})
}

func RespondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Message: message})
}

func Unauthorized(c *gin.Context) {
	RespondWithMessage(c, http.StatusUnauthorized, "unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	RespondWithMessage(c, http.StatusBadRequest, message)
}
