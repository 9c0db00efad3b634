package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every
// controller funnels service errors through here, so the mapping between
// error and status code lives in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Not found
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found", err)
	case errors.Is(err, apperrors.ErrSectionNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Section not found", err)
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found", err)
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found", err)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	// Already exists
	case errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrSectionAlreadyExists),
		errors.Is(err, apperrors.ErrStudentAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error(), err)

	// Deletion guards
	case errors.Is(err, apperrors.ErrCourseHasSections),
		errors.Is(err, apperrors.ErrSectionHasEnrollments),
		errors.Is(err, apperrors.ErrStudentHasEnrollments):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceInUse, err.Error(), err)

	// Enrollment pipeline rejections
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, err.Error(), err)
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyApproved, err.Error(), err)
	case errors.Is(err, apperrors.ErrPrerequisitesNotMet):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodePrerequisitesNotMet, err.Error(), err)
	case errors.Is(err, apperrors.ErrSectionFull):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeSectionFull, err.Error(), err)
	case errors.Is(err, apperrors.ErrScheduleConflict):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeScheduleConflict, err.Error(), err)

	// Validation
	case errors.Is(err, apperrors.ErrInvalidScheduleFormat):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidSchedule, err.Error(), err)
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error(), err)

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", nil)
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	errorDetail := dto.NewErrorDetail(code, message)
	if details := apperrors.Details(err); details != nil {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}
