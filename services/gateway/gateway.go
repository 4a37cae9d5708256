package gatewaysvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

// restGateway performs JSON calls against the backend. The bearer token is
// resolved from the token store before every call, never from a cached field:
// a store cleared or rewritten elsewhere is always honored on the next
// request.
type restGateway struct {
	baseURL string
	store   core.TokenStore
	client  *http.Client
	log     core.Logger
}

var _ core.Gateway = (*restGateway)(nil)

func NewRESTGateway(conf *core.Config, store core.TokenStore, logger core.Logger) core.Gateway {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &restGateway{
		baseURL: conf.API.BaseURL,
		store:   store,
		client:  &http.Client{Timeout: conf.API.RequestTimeout},
		log:     logger,
	}
}

func (gw *restGateway) Request(ctx context.Context, method, path string, opt core.RequestOptions, out interface{}) error {
	url := gw.baseURL + path
	if len(opt.Query) > 0 {
		url += "?" + opt.Query.Encode()
	}

	var body io.Reader
	if opt.Body != nil {
		data, err := json.Marshal(opt.Body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	for key, values := range opt.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	// the gateway owns these two; caller-supplied values must not leak through
	req.Header.Set("Content-Type", "application/json")
	req.Header.Del("Authorization")
	if !opt.SkipAuth {
		tok, err := gw.store.Get()
		if err != nil {
			return errors.Wrap(err, "resolving session token")
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	gw.log.Debug("api: request", map[string]interface{}{
		"method": method, "url": url, "request_id": reqID,
	})

	resp, err := gw.client.Do(req)
	if err != nil {
		gw.log.Warn("api: transport failure", map[string]interface{}{
			"url": url, "request_id": reqID, "error": err.Error(),
		})
		return &core.ConnectivityError{URL: url, Err: err}
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// the token was rejected; never reuse it
		if cerr := gw.store.Clear(); cerr != nil {
			gw.log.Warn("api: clearing rejected token", cerr)
		}
		return &core.AuthenticationError{Detail: errorDetail(resp.Body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &core.APIError{StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &core.ProtocolError{Reason: "undecodable response body", Err: err}
	}
	return nil
}

// errorDetail extracts the server-provided error detail from an error
// response. A body that is not valid JSON (or carries no detail) falls back
// to "" so a parse failure never masks the HTTP failure itself.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<20)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}
