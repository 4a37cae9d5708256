package gatewaysvc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/matedu/matedu-go/core"
	inmemstore "github.com/matedu/matedu-go/storage/token/inmem"
)

func setup(t *testing.T, handler http.HandlerFunc) (core.Gateway, *inmemstore.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := inmemstore.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	conf := &core.Config{TestMode: true}
	conf.API.BaseURL = srv.URL
	conf.API.RequestTimeout = 5 * time.Second
	return NewRESTGateway(conf, store, nil), store
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	gw, store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	t.Run("bearer token and json content type", func(t *testing.T) {
		_ = store.Set("abc.def.ghi")

		err := gw.Request(context.Background(), http.MethodGet, "/cursos", core.RequestOptions{}, nil)
		if err != nil {
			t.Fatalf("Request() failed: %v", err)
		}
		assert.Equal(t, "Bearer abc.def.ghi", got.Get("Authorization"))
		assert.Equal(t, "application/json", got.Get("Content-Type"))
		assert.NotEmpty(t, got.Get("X-Request-ID"))
	})

	t.Run("no authorization header after clear", func(t *testing.T) {
		_ = store.Set("abc.def.ghi")
		_ = store.Clear()

		err := gw.Request(context.Background(), http.MethodGet, "/cursos", core.RequestOptions{}, nil)
		if err != nil {
			t.Fatalf("Request() failed: %v", err)
		}
		assert.Empty(t, got.Get("Authorization"))
	})

	t.Run("caller cannot override authorization", func(t *testing.T) {
		_ = store.Set("abc.def.ghi")

		hdr := http.Header{}
		hdr.Set("Authorization", "Bearer forged")
		hdr.Set("Accept-Language", "es")
		err := gw.Request(context.Background(), http.MethodGet, "/cursos", core.RequestOptions{Header: hdr}, nil)
		if err != nil {
			t.Fatalf("Request() failed: %v", err)
		}
		assert.Equal(t, "Bearer abc.def.ghi", got.Get("Authorization"), "the store's token always wins")
		assert.Equal(t, "es", got.Get("Accept-Language"), "other caller headers pass through")
	})

	t.Run("skip auth leaves the token at home", func(t *testing.T) {
		_ = store.Set("abc.def.ghi")

		err := gw.Request(context.Background(), http.MethodPost, "/auth/login", core.RequestOptions{SkipAuth: true}, nil)
		if err != nil {
			t.Fatalf("Request() failed: %v", err)
		}
		assert.Empty(t, got.Get("Authorization"))
	})
}

func TestRequestQueryAndBody(t *testing.T) {
	var (
		gotQuery url.Values
		gotBody  []byte
	)
	gw, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"echo": true}`))
	})

	qs := url.Values{}
	qs.Set("skip", "0")
	qs.Set("limit", "10")
	body := map[string]string{"respuesta_usuario": "42"}

	var out struct {
		Echo bool `json:"echo"`
	}
	err := gw.Request(context.Background(), http.MethodPost, "/x", core.RequestOptions{Query: qs, Body: body}, &out)
	if err != nil {
		t.Fatalf("Request() failed: %v", err)
	}
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "0", gotQuery.Get("skip"))
	assert.JSONEq(t, `{"respuesta_usuario": "42"}`, string(gotBody))
	assert.True(t, out.Echo)
}

func TestRequestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "404 with server detail",
			status: http.StatusNotFound,
			body:   `{"detail": "Curso no encontrado"}`,
			check: func(t *testing.T, err error) {
				var apiErr *core.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *core.APIError", err)
				}
				assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
				assert.Equal(t, "Curso no encontrado", apiErr.Error())
			},
		},
		{
			name:   "message field fallback",
			status: http.StatusConflict,
			body:   `{"message": "ya inscrito"}`,
			check: func(t *testing.T, err error) {
				var apiErr *core.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *core.APIError", err)
				}
				assert.Equal(t, "ya inscrito", apiErr.Detail)
			},
		},
		{
			name:   "malformed error body never masks the failure",
			status: http.StatusInternalServerError,
			body:   `<html>Internal Server Error</html>`,
			check: func(t *testing.T, err error) {
				var apiErr *core.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *core.APIError", err)
				}
				assert.Equal(t, "Error 500: Internal Server Error", apiErr.Error())
			},
		},
		{
			name:   "non-string detail falls back to the generic message",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail": [{"loc": ["body", "email"], "msg": "field required"}]}`,
			check: func(t *testing.T, err error) {
				var apiErr *core.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *core.APIError", err)
				}
				assert.Equal(t, "Error 422: Unprocessable Entity", apiErr.Error())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := gw.Request(context.Background(), http.MethodGet, "/x", core.RequestOptions{}, nil)
			tt.check(t, err)
		})
	}
}

func TestRequest401ClearsToken(t *testing.T) {
	gw, store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Token expirado"}`))
	})
	_ = store.Set("dead-token")

	err := gw.Request(context.Background(), http.MethodGet, "/usuarios/me", core.RequestOptions{}, nil)

	var authErr *core.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Request() error = %v, want *core.AuthenticationError", err)
	}
	assert.Equal(t, "Token expirado", authErr.Error())

	tok, _ := store.Get()
	assert.Empty(t, tok, "a rejected token must never be reused")
}

func TestRequestConnectivityFailure(t *testing.T) {
	store, err := inmemstore.Open()
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	conf := &core.Config{TestMode: true}
	conf.API.BaseURL = "http://127.0.0.1:1" // nothing listens here
	conf.API.RequestTimeout = time.Second
	gw := NewRESTGateway(conf, store, nil)

	err = gw.Request(context.Background(), http.MethodGet, "/cursos", core.RequestOptions{}, nil)

	var connErr *core.ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("Request() error = %v, want *core.ConnectivityError", err)
	}
	assert.Contains(t, connErr.Error(), "check that the backend is running")
	assert.NotNil(t, errors.Unwrap(connErr))
}

func TestRequestUndecodableSuccessBody(t *testing.T) {
	gw, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json at all`))
	})

	var out map[string]interface{}
	err := gw.Request(context.Background(), http.MethodGet, "/x", core.RequestOptions{}, &out)

	var protoErr *core.ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("Request() error = %v, want *core.ProtocolError", err)
	}
}
