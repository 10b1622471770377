// Package errors provides custom error types for the Medcast API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// FieldError carries a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level details,
// and optional internal error.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	StatusCode int          `json:"-"`
	Fields     []FieldError `json:"fields,omitempty"`
	Internal   error        `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level validation details.
func WithFields(sentinel *AppError, fields []FieldError) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     fields,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrUnavailable    = &AppError{Code: "UNAVAILABLE", Message: "Backing store is unavailable", StatusCode: http.StatusServiceUnavailable}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrValidation       = &AppError{Code: "VALIDATION_ERROR", Message: "Category validation failed", StatusCode: http.StatusBadRequest}
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateName    = &AppError{Code: "DUPLICATE_NAME", Message: "A sibling category with this name already exists", StatusCode: http.StatusConflict}
	ErrInvalidParent    = &AppError{Code: "INVALID_PARENT", Message: "Parent category must exist and be a primary category", StatusCode: http.StatusBadRequest}
	ErrCategoryNotEmpty = &AppError{Code: "CATEGORY_NOT_EMPTY", Message: "Category has child categories or associated audio", StatusCode: http.StatusConflict}
)

// Audio errors.
var (
	ErrAudioNotFound = &AppError{Code: "AUDIO_NOT_FOUND", Message: "Audio not found", StatusCode: http.StatusNotFound}
)
