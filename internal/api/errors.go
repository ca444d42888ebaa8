package api

import (
	"errors"
	"net/http"

	"research-tracker/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var authErr *domain.AuthError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message surfaced to the caller. Deny reasons are
// collapsed to a bare "forbidden" so responses don't enumerate project
// membership; everything else keeps its domain message.
func publicMessage(err error, status int) string {
	switch status {
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
