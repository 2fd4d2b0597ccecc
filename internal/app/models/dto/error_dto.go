package dto

import (
	"net/http"
	"time"
)

// ErrorCode is the machine-readable reason carried by every error envelope.
type ErrorCode string

const (
	ErrorCodeInvalidToken ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized ErrorCode = "AUTH_008"
	ErrorCodeForbidden    ErrorCode = "AUTH_009"

	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInvalid       ErrorCode = "RES_003"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Planner rule outcomes. Details hold the decision or removal preview.
	ErrorCodeCourseNotAddable     ErrorCode = "PLAN_001"
	ErrorCodeRemovalNeedsApproval ErrorCode = "PLAN_002"
	ErrorCodeCourseAlreadyPlanned ErrorCode = "PLAN_003"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

var codeStatus = map[ErrorCode]int{
	ErrorCodeInvalidToken:          http.StatusUnauthorized,
	ErrorCodeExpiredToken:          http.StatusUnauthorized,
	ErrorCodeUnauthorized:          http.StatusUnauthorized,
	ErrorCodeForbidden:             http.StatusForbidden,
	ErrorCodeResourceNotFound:      http.StatusNotFound,
	ErrorCodeResourceAlreadyExists: http.StatusConflict,
	ErrorCodeResourceInvalid:       http.StatusBadRequest,
	ErrorCodeValidationFailed:      http.StatusBadRequest,
	ErrorCodeCourseNotAddable:      http.StatusUnprocessableEntity,
	ErrorCodeRemovalNeedsApproval:  http.StatusConflict,
	ErrorCodeCourseAlreadyPlanned:  http.StatusConflict,
}

// Status is the HTTP status a code is served with. Unknown codes are 500.
func (c ErrorCode) Status() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrorDetail is the error half of the envelope.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"PLAN_001"`
	Message string      `json:"message" example:"CS301 cannot be added"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// Fail builds an error envelope. details may be nil.
func Fail(code ErrorCode, message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Error:     &ErrorDetail{Code: code, Message: message, Details: details},
		Timestamp: time.Now().UTC(),
	}
}
