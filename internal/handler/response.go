package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err with the HTTP status its code maps to. Every failure
// surfaces as an actionable message, never a raw fault.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.ErrValidation, apperrors.ErrBadRequest:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.ErrConflict:
		status = http.StatusConflict
		message = err.Error()
	case apperrors.ErrUnauthorized:
		status = http.StatusUnauthorized
		message = "unauthorized"
	case apperrors.ErrForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case apperrors.ErrUnavailable:
		status = http.StatusServiceUnavailable
		message = "store unavailable, please retry"
	case apperrors.ErrPartialFailure:
		// Surfaced distinctly so operators can reconcile the half-applied
		// reschedule instead of treating it as a generic failure.
		status = http.StatusInternalServerError
		message = err.Error()
	}

	c.JSON(status, NewErrorResponse(message))
}
