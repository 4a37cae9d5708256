package core

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "api error with server detail",
			err:  &APIError{StatusCode: http.StatusNotFound, Detail: "Curso no encontrado"},
			want: "Curso no encontrado",
		},
		{
			name: "api error without detail",
			err:  &APIError{StatusCode: http.StatusInternalServerError},
			want: "Error 500: Internal Server Error",
		},
		{
			name: "authentication error default",
			err:  &AuthenticationError{},
			want: "authentication required",
		},
		{
			name: "authentication error with detail",
			err:  &AuthenticationError{Detail: "Token expirado"},
			want: "Token expirado",
		},
		{
			name: "invalid credentials is terse",
			err:  &InvalidCredentialsError{},
			want: "invalid email or password",
		},
		{
			name: "protocol error",
			err:  &ProtocolError{Reason: "login response is missing access_token"},
			want: "unexpected server response: login response is missing access_token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestConnectivityError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8000: connection refused")
	err := &ConnectivityError{URL: "http://127.0.0.1:8000/api/v1/cursos", Err: cause}

	assert.Contains(t, err.Error(), "http://127.0.0.1:8000/api/v1/cursos")
	assert.Contains(t, err.Error(), "check that the backend is running")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(errors.New("invalid input"), FieldError{Field: "email", Error: "this field is required"})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	assert.Equal(t, "invalid input", vErr.Error())
	assert.Len(t, vErr.Fields, 1)

	assert.Empty(t, (&ValidationError{}).Error())
}
