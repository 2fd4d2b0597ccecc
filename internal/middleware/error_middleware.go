package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/pkg/apperrors"
	"github.com/yigit/courseplanner/internal/pkg/logger"
	"github.com/yigit/courseplanner/internal/pkg/validation"
)

// HandleAPIError writes the error envelope for err. Details attached to a
// CustomError, such as an add decision, are passed through to the client.
func HandleAPIError(c *gin.Context, err error) {
	code, message := classify(err)
	status := code.Status()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.Fail(code, message, apperrors.DetailsOf(err)))
}

func classify(err error) (dto.ErrorCode, string) {
	msg := err.Error()
	switch {
	case errors.Is(err, apperrors.ErrCourseNotAddable):
		return dto.ErrorCodeCourseNotAddable, msg
	case errors.Is(err, apperrors.ErrRemovalNeedsConfirmation):
		return dto.ErrorCodeRemovalNeedsApproval, msg
	case errors.Is(err, apperrors.ErrCourseAlreadyPlanned):
		return dto.ErrorCodeCourseAlreadyPlanned, msg
	case apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrPlanEntryNotFound, apperrors.ErrResourceNotFound):
		return dto.ErrorCodeResourceNotFound, msg
	case apperrors.Is(err, apperrors.ErrInvalidPlanStatus, apperrors.ErrValidationFailed):
		return dto.ErrorCodeValidationFailed, msg
	case errors.Is(err, apperrors.ErrBadRequest):
		return dto.ErrorCodeResourceInvalid, msg
	case errors.Is(err, apperrors.ErrConflict):
		return dto.ErrorCodeResourceAlreadyExists, msg
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.ErrorCodeForbidden, "Permission denied"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.ErrorCodeExpiredToken, "Token expired"
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return dto.ErrorCodeInvalidToken, "Invalid token"
	default:
		return dto.ErrorCodeInternalServer, "Internal server error"
	}
}

// HandleValidationError writes a 400 listing each failed field.
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.Fail(dto.ErrorCodeValidationFailed, "Invalid request format", validation.Messages(err)))
}
