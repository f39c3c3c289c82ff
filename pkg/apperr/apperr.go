package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the web layer can pick a response without
// inspecting messages.
type Kind int

const (
	// Validation covers client-side fixable input (bad username, malformed body).
	Validation Kind = iota
	// Auth covers requests that require a logged-in user.
	Auth
	// NotFound covers lookups of ids that do not exist.
	NotFound
	// Upstream covers non-success or non-JSON responses from the GitHub API.
	Upstream
	// Persistence covers failed database writes.
	Persistence
)

// Error is the single error type crossing layer boundaries. Handlers
// classify it with errors.As and map Kind to an HTTP status.
type Error struct {
	Kind    Kind
	Message string
	// StatusCode is the upstream provider's status for Upstream errors, 0 otherwise.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the status the web layer should answer with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Status returns the HTTP status for any error; non-classified errors
// map to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message for any error. Unclassified
// errors get a generic message so internals never leak to clients.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
