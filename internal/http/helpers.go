package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/elibrary/internal/apperr"
)

const (
	msgValidation     = "Validation error"
	msgInternal       = "Internal server error"
	msgNotFound       = "Not found"
	msgMethodNotAllow = "Method not allowed"
)

// --- Response Types ---

// Envelope is the success response wrapper. Message is null when unset.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Message *string `json:"message"`
}

// ErrorResponse is the failure response wrapper.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Success Response Helpers ---

func respondOK(c *gin.Context, data any, message string) {
	respondData(c, http.StatusOK, data, message)
}

func respondCreated(c *gin.Context, data any, message string) {
	respondData(c, http.StatusCreated, data, message)
}

func respondData(c *gin.Context, status int, data any, message string) {
	env := Envelope{Success: true, Data: data}
	if message != "" {
		env.Message = &message
	}
	c.JSON(status, env)
}

// --- Error Response Helpers ---

// statusFor is the only place a failure kind becomes an HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps err to its status. Internal failures are logged in full
// and answered with a generic message.
func respondError(c *gin.Context, err error, context string) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		requestLogger(c).Error("internal error", zap.String("context", context), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: msgInternal})
		return
	}

	message := apperr.MessageOf(err)
	if kind == apperr.KindUnauthenticated {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// respondValidationError answers any bind or validation failure with the
// fixed 422 message. Field detail only goes to the debug log.
func respondValidationError(c *gin.Context, err error) {
	requestLogger(c).Debug("request validation failed", zap.Error(err))
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msgValidation})
}

// --- Parameter Parsing ---

// parseIDParam extracts a positive ID from URL parameters or responds 422.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondValidationError(c, err)
		return 0, false
	}
	return uint(id), true
}
