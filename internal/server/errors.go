package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/myfinances/internal/logger"
	"github.com/cleared-dev/myfinances/internal/model"
)

// apiError is the JSON error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errInvalidInput = errors.New("invalid input")

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrUnknownCategory):
		return http.StatusNotFound, "UNKNOWN_CATEGORY"
	case errors.Is(err, model.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, model.ErrInvalidLimit):
		return http.StatusBadRequest, "INVALID_LIMIT"
	case errors.Is(err, model.ErrInvalidKind):
		return http.StatusBadRequest, "INVALID_KIND"
	case errors.Is(err, model.ErrInvalidCategory):
		return http.StatusBadRequest, "INVALID_CATEGORY"
	case errors.Is(err, model.ErrInvalidTransaction), errors.Is(err, errInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondWithError writes a consistent JSON error response. Unexpected
// errors are logged and replaced by a generic message.
func respondWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(requestIDKey),
		)
		msg = "An unexpected error occurred"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: msg}})
}
