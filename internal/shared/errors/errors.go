package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies failures the console can surface to an administrator.
type ErrorType string

const (
	// Raised before any network call.
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	// Transport failures and undecodable responses.
	ErrorTypeNetwork ErrorType = "NETWORK_ERROR"
	// Business errors reported by the backend; the message is shown verbatim.
	ErrorTypeServer ErrorType = "SERVER_ERROR"
	// The backend rejected the bearer token.
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT_ERROR"
	ErrorTypeConfirmation   ErrorType = "CONFIRMATION_REQUIRED"
	ErrorTypeConfiguration  ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

// Common application errors
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidSessionCookie = errors.New("invalid session cookie")
	ErrNotConfirmed         = errors.New("action requires confirmation")
	ErrBusy                 = errors.New("another request is already in progress")
	ErrUnsupported          = errors.New("operation not supported for this resource")
	ErrItemNotFound         = errors.New("item not found")
	ErrMissingConfiguration = errors.New("missing required configuration")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewNetworkError creates a transport error. The console answers 502 for these.
func NewNetworkError(message string) *AppError {
	return NewAppError(ErrorTypeNetwork, message, http.StatusBadGateway)
}

// NewServerError carries a message reported by the backend.
func NewServerError(message string, backendStatus int) *AppError {
	return NewAppError(ErrorTypeServer, message, http.StatusUnprocessableEntity).
		WithDetail("backend_status", backendStatus)
}

// NewAuthenticationError creates an authentication error
func NewAuthenticationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthentication, message, http.StatusUnauthorized)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewConfirmationError is returned when a destructive action arrives unconfirmed.
func NewConfirmationError(message string) *AppError {
	return NewAppError(ErrorTypeConfirmation, message, http.StatusPreconditionRequired).WithCause(ErrNotConfirmed)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *AppError {
	return NewAppError(ErrorTypeConfiguration, message, http.StatusInternalServerError).WithCause(ErrMissingConfiguration)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// ValidationError represents validation errors for multiple fields
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return ve.Errors[0].Message
}

// NewValidationErrors creates a new validation errors instance
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}

// Add adds a validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) *ValidationErrors {
	ve.Errors = append(ve.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
	return ve
}

// HasErrors returns true if there are validation errors
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts validation errors to an AppError whose message is the first
// failure, which is what the console shows as its notification.
func (ve *ValidationErrors) ToAppError() *AppError {
	if !ve.HasErrors() {
		return nil
	}

	appErr := NewValidationError(ve.Errors[0].Message)
	appErr.Details["validation_errors"] = ve.Errors
	return appErr
}

// WrapError wraps an error with context
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

func typeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	t, ok := typeOf(err)
	return ok && t == ErrorTypeValidation
}

// IsNetwork checks if an error is a transport error
func IsNetwork(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeNetwork
}

// IsServer checks if an error was reported by the backend
func IsServer(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeServer
}

// IsAuthentication checks if an error is an authentication error
func IsAuthentication(err error) bool {
	if t, ok := typeOf(err); ok && t == ErrorTypeAuthentication {
		return true
	}
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrInvalidSessionCookie)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	if t, ok := typeOf(err); ok && t == ErrorTypeNotFound {
		return true
	}
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrSessionNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	if t, ok := typeOf(err); ok && t == ErrorTypeConflict {
		return true
	}
	return errors.Is(err, ErrBusy)
}

// HTTPStatus returns the status code the console should answer with for err.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// UserMessage is the single notification shown for a failed action: validation and
// backend messages verbatim, everything else the page's fallback text.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationErrors
	if errors.As(err, &ve) && ve.HasErrors() {
		return ve.Errors[0].Message
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeConfirmation, ErrorTypeConflict:
			return appErr.Message
		case ErrorTypeServer:
			if appErr.Message != "" {
				return appErr.Message
			}
		case ErrorTypeAuthentication:
			return "Session expired. Please login again."
		}
	}
	if errors.Is(err, ErrBusy) || errors.Is(err, ErrNotConfirmed) {
		return err.Error()
	}
	return fallback
}
