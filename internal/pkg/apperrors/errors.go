package apperrors

import (
	"errors"
	"fmt"
)

// General kinds
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrPermissionDenied = errors.New("permission denied")
)

// Token kinds
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Planner kinds
var (
	ErrCourseNotFound           = errors.New("course not found in catalog")
	ErrCourseNotAddable         = errors.New("course cannot be added to the plan")
	ErrCourseAlreadyPlanned     = errors.New("course is already on the plan")
	ErrPlanEntryNotFound        = errors.New("plan entry not found")
	ErrRemovalNeedsConfirmation = errors.New("removal affects dependent courses and must be confirmed")
	ErrInvalidPlanStatus        = errors.New("invalid plan status")
)

// CustomError pairs one of the kinds above with a client-facing message and
// optional structured details.
type CustomError struct {
	Err     error
	Message string
	Details interface{}
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error { return e.Err }

// NewCustomError wraps kind with message.
func NewCustomError(kind error, message string) *CustomError {
	return &CustomError{Err: kind, Message: message}
}

// Newf wraps kind with a formatted message.
func Newf(kind error, format string, args ...interface{}) *CustomError {
	return &CustomError{Err: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured context such as an add decision.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	e.Details = details
	return e
}

// Is reports whether err matches any of kinds.
func Is(err error, kinds ...error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// DetailsOf returns the details of the first CustomError in err's chain.
func DetailsOf(err error) interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
