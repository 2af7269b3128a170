package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/logger"
)

// HandleAPIError maps service errors to a status code and error envelope
func HandleAPIError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if custom != nil && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}
	errors.As(err, &custom)

	switch {
	case errors.As(err, &verr):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails(dto.ValidationErrorsFromFields(verr.Fields).Errors)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConfirmationRequired, message("Confirmation required")).
				WithSeverity(dto.ErrorSeverityWarning)))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request"))))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message("Invalid credentials"))))
	case errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Session expired")))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	case errors.Is(err, apperrors.ErrDeviceAccess):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDeviceAccess, message("Unable to access camera"))))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err.Error()))))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, message(err.Error()))))
	case errors.Is(err, apperrors.ErrCorruptDocument):
		detail := dto.NewErrorDetail(dto.ErrorCodeCorruptDocument, message("Stored document is corrupt"))
		if custom != nil && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		logger.Error().Err(err).Msg("Corrupt document")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
