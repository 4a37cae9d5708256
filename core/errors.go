package core

import (
	"fmt"
	"net/http"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ConnectivityError reports a transport-level failure: the request never made
// it to the backend. Retryable by user action.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf(
		"cannot reach the MatEdu backend at %s: check that the backend is running and that the base URL is correct",
		e.URL,
	)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// AuthenticationError reports an HTTP 401: the credential is invalid or has
// expired. The gateway clears the token store before returning one of these,
// so the next action prompts a fresh login instead of retrying a dead token.
type AuthenticationError struct {
	Detail string
}

func (e *AuthenticationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "authentication required"
}

// InvalidCredentialsError is the login-specific 401. Deliberately terse: it
// must not reveal whether the email exists.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

// APIError reports any other non-2xx response, carrying the server-provided
// detail when there was one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ProtocolError reports a 2xx response that does not honor the server
// contract (missing field, undecodable body).
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	return "unexpected server response: " + e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }
