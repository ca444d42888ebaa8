// Package domain defines core types, interfaces, and errors for the research tracker.
package domain

import "fmt"

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

// AuthReason classifies why a credential was rejected.
type AuthReason string

const (
	AuthInvalidCredentials AuthReason = "INVALID_CREDENTIALS"
	AuthBadSignature       AuthReason = "BAD_SIGNATURE"
	AuthMalformed          AuthReason = "MALFORMED"
	AuthExpired            AuthReason = "EXPIRED"
)

// AuthError indicates a failed registration, login, or token verification.
// The Reason is kept for logging; callers surface a uniform 401.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// DenyReason classifies an authorization denial.
type DenyReason string

const (
	DenyInsufficientRole DenyReason = "INSUFFICIENT_ROLE"
	DenyNotProjectMember DenyReason = "NOT_PROJECT_MEMBER"
	DenyNotOwner         DenyReason = "NOT_OWNER"
)

// AccessDeniedError indicates insufficient permissions. The Reason is kept
// for logging; the HTTP layer collapses it to a uniform "forbidden".
type AccessDeniedError struct {
	Reason  DenyReason
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

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

// ErrAuth creates an AuthError with the given reason and formatted message.
func ErrAuth(reason AuthReason, format string, args ...interface{}) *AuthError {
	return &AuthError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with the given reason and
// formatted message.
func ErrAccessDenied(reason DenyReason, format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
