package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into the response envelope. It is
// the only place error payloads are shaped; internal error detail is logged
// here and never reaches the client.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classifyError(err)

	// Messages attached via CustomError are written for clients and safe
	// to pass through.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error")
	}

	c.JSON(status, dto.NewErrorResponse(code, message))
}

func classifyError(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.ErrorCodeNotFound, "User not found"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	case errors.Is(err, apperrors.ErrEmailDomainDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Email domain not allowed"
	case errors.Is(err, apperrors.ErrLeaveAlreadyDecided):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Leave request already decided"
	case errors.Is(err, apperrors.ErrCheckInCodeExpired):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Check-in code expired"
	case errors.Is(err, apperrors.ErrCheckInCodeMalformed):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Malformed check-in code"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Session expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Invalid session"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"
	case errors.Is(err, apperrors.ErrUserAlreadyJoined):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Account already registered"
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Resource already exists"
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Validation failed"
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"
	default:
		return http.StatusInternalServerError, dto.ErrorCodeServerError, "Internal server error"
	}
}
