package core

import (
	"context"
	"net/http"
	"net/url"
)

// RequestOptions carries the optional parts of a backend call.
type RequestOptions struct {
	// Body is JSON-encoded as the request body when non-nil.
	Body interface{}
	// Query is appended to the endpoint path.
	Query url.Values
	// Header holds extra request headers. The gateway's own Authorization
	// and Content-Type values always win over caller-supplied ones.
	Header http.Header
	// SkipAuth leaves the Authorization header off even when a token is
	// stored (login, registration).
	SkipAuth bool
}

// Gateway performs a call against the backend with consistent error
// semantics: *ConnectivityError on transport failure, *AuthenticationError on
// 401 (after clearing the token store), *APIError on any other non-2xx and
// *ProtocolError on a 2xx body that cannot be decoded into out.
type Gateway interface {
	Request(ctx context.Context, method, path string, opt RequestOptions, out interface{}) error
}
