// Package domain defines core types, interfaces, and errors for the
// heart-risk prediction service.
package domain

import "fmt"

// AuthReason identifies why a request failed authentication. The transport
// layer reports a generic 401 either way; the reason is kept for logs and
// tests.
type AuthReason string

const (
	ReasonMissingCredential  AuthReason = "missing_credential"
	ReasonMalformed          AuthReason = "malformed"
	ReasonExpired            AuthReason = "expired"
	ReasonPrincipalNotFound  AuthReason = "principal_not_found"
	ReasonInvalidCredentials AuthReason = "invalid_credentials"
)

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UnauthorizedError indicates a request that failed authentication.
type UnauthorizedError struct {
	Reason  AuthReason
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// UnavailableError indicates a required dependency (e.g., a prediction
// model) could not serve the request.
type UnavailableError struct {
	Source  SourceKind // empty when the failure is not tied to one modality
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthorized creates an UnauthorizedError with the given reason.
func ErrUnauthorized(reason AuthReason, format string, args ...interface{}) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ErrSourceUnavailable creates an UnavailableError for a prediction source.
func ErrSourceUnavailable(kind SourceKind, format string, args ...interface{}) *UnavailableError {
	return &UnavailableError{Source: kind, Message: fmt.Sprintf(format, args...)}
}
