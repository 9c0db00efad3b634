package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code already exists")
	ErrCourseHasSections   = errors.New("course has sections and cannot be deleted")
)

// Section errors
var (
	ErrSectionNotFound       = errors.New("section not found")
	ErrSectionAlreadyExists  = errors.New("section with this code already exists")
	ErrSectionHasEnrollments = errors.New("section has enrollments and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentAlreadyExists  = errors.New("student with this id already exists")
	ErrStudentHasEnrollments = errors.New("student has enrollments and cannot be deleted")
)

// Enrollment errors. The enrollment pipeline reports exactly one of these,
// following the fixed check order in services.EnrollmentService.Enroll.
var (
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrAlreadyEnrolled     = errors.New("student is already enrolled in this section")
	ErrAlreadyApproved     = errors.New("student has already been approved in this course")
	ErrPrerequisitesNotMet = errors.New("student does not meet the course prerequisites")
	ErrSectionFull         = errors.New("section has no remaining seats")
	ErrScheduleConflict    = errors.New("schedule conflicts with an existing enrollment")
)

// Schedule errors
var (
	ErrInvalidScheduleFormat = errors.New("invalid schedule format, expected day-start-end")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewSectionFullError reports a full section together with its seat limit,
// so callers can render a precise message without re-reading the section.
func NewSectionFullError(capacity int) error {
	return NewCustomError(ErrSectionFull, "section has no remaining seats").
		WithDetails(map[string]interface{}{"capacity": capacity})
}

// NewScheduleConflictError reports which existing schedule descriptor the
// candidate section collides with.
func NewScheduleConflictError(schedule string) error {
	return NewCustomError(ErrScheduleConflict, "schedule conflicts with an existing enrollment").
		WithDetails(map[string]interface{}{"conflictingSchedule": schedule})
}

// Details extracts the detail map from err when it carries one.
func Details(err error) map[string]interface{} {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return nil
}
