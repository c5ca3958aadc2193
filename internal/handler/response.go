package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"plagrelay/internal/domain"
	"plagrelay/internal/middleware"
)

const wrongIDHint = "Access denied. Make sure you are using the correct TEXT ID from the original " +
	"submission response, not the report ID."

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{Success: false, Error: msg, Code: code})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Upstream status codes and messages are passed through to the caller.
func MapDomainError(err error) (status int, code, msg string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message
	}
	if upErr, ok := domain.AsUpstreamError(err); ok {
		switch {
		case upErr.StatusCode == http.StatusForbidden:
			return http.StatusForbidden, "UPSTREAM_FORBIDDEN", wrongIDHint
		case upErr.StatusCode < 400 || upErr.StatusCode > 599:
			return http.StatusBadGateway, "UPSTREAM_ERROR", upErr.Message
		default:
			return upErr.StatusCode, "UPSTREAM_ERROR", upErr.Message
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "TIMEOUT", "request timed out"
	}
	var unErr *domain.UnreachableError
	if errors.As(err, &unErr) {
		return http.StatusBadGateway, "UPSTREAM_UNREACHABLE", unErr.Reason()
	}

	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "CONFIGURATION_ERROR", domain.ErrConfiguration.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size exceeds 10MB limit"
	case errors.Is(err, domain.ErrUpstreamUnreachable):
		return http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "detection provider could not be reached"
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusConflict, "NOT_READY", "check is still processing; try again later"
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusUnprocessableEntity, "CHECK_FAILED", "the provider could not complete this check"
	case errors.Is(err, domain.ErrUnrecognizedStatus):
		return http.StatusBadGateway, "UNRECOGNIZED_STATUS", "the provider returned a status without a recognizable state"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.FullPath()).
			Msg("handler: request failed")
	}
	RespondError(c, status, code, msg)
}
