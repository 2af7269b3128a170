package dto

import "sort"

// ErrorCode is the stable machine-readable part of an error response
type ErrorCode string

const (
	// Console session
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"

	// Documents
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_004"

	// Input
	ErrorCodeValidationFailed     ErrorCode = "VAL_001"
	ErrorCodeBadRequest           ErrorCode = "VAL_002"
	ErrorCodeConfirmationRequired ErrorCode = "VAL_003"

	// Camera
	ErrorCodeDeviceAccess ErrorCode = "DEV_001"

	// Server
	ErrorCodeInternalServer  ErrorCode = "SRV_001"
	ErrorCodeDatabaseError   ErrorCode = "SRV_002"
	ErrorCodeCorruptDocument ErrorCode = "SRV_004"
)

// ErrorSeverity tells the client how loudly to show the message
type ErrorSeverity string

const (
	ErrorSeverityWarning ErrorSeverity = "WARNING"
	ErrorSeverityError   ErrorSeverity = "ERROR"
)

// ErrorDetail is the error half of APIResponse
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"AUTH_001"`
	Message  string        `json:"message" example:"Invalid credentials. Please use the designated administrator login."`
	Field    string        `json:"field,omitempty" example:"fullName"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// NewErrorDetail creates an ERROR severity detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// ValidationErrors lists one detail per failed field
type ValidationErrors struct {
	Errors []ErrorDetail `json:"errors"`
}

// ValidationErrorsFromFields builds the list from a field→message map,
// ordered by field name so responses are stable
func ValidationErrorsFromFields(fields map[string]string) *ValidationErrors {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	v := &ValidationErrors{Errors: make([]ErrorDetail, 0, len(names))}
	for _, name := range names {
		v.Errors = append(v.Errors, ErrorDetail{
			Code:     ErrorCodeValidationFailed,
			Message:  fields[name],
			Field:    name,
			Severity: ErrorSeverityError,
		})
	}
	return v
}
