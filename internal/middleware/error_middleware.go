package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Status codes are
// fixed per error class: not-found 404, conflicts 409, denied 403,
// authentication 401, bad input 400, everything else 500.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrImageNotFound),
		errors.Is(err, apperrors.ErrInternshipNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrUsernameExists),
		errors.Is(err, apperrors.ErrStudentAlreadyExists),
		errors.Is(err, apperrors.ErrConversationExists):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrWrongPassword),
		errors.Is(err, apperrors.ErrSamePassword),
		errors.Is(err, apperrors.ErrSelfConversation),
		errors.Is(err, apperrors.ErrMessageTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch statusFor(err) {
	case http.StatusNotFound:
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
	case http.StatusConflict:
		return dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())
	case http.StatusForbidden:
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())
	case http.StatusUnauthorized:
		code := dto.ErrorCodeUnauthorized
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			code = dto.ErrorCodeInvalidCredentials
		case errors.Is(err, apperrors.ErrTokenExpired):
			code = dto.ErrorCodeExpiredToken
		case errors.Is(err, apperrors.ErrTokenInvalid):
			code = dto.ErrorCodeInvalidToken
		}
		return dto.NewErrorDetail(code, err.Error())
	case http.StatusBadRequest:
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError responds with 400 and a field-level detail for
// binding failures
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
