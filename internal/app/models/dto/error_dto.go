package dto

import "time"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_002"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInUse         ErrorCode = "RES_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidSchedule  ErrorCode = "VAL_002"

	// Enrollment errors
	ErrorCodeAlreadyEnrolled     ErrorCode = "ENR_001"
	ErrorCodeAlreadyApproved     ErrorCode = "ENR_002"
	ErrorCodePrerequisitesNotMet ErrorCode = "ENR_003"
	ErrorCodeSectionFull         ErrorCode = "ENR_004"
	ErrorCodeScheduleConflict    ErrorCode = "ENR_005"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"ENR_004"`
	Message string      `json:"message" example:"section has no remaining seats"`
	Field   string      `json:"field,omitempty" example:"capacity"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2026-08-28T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
