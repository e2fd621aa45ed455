// Package client is a Go client for the hostel service. It centralizes the
// base URL, bearer-token injection and global auth-failure handling so
// individual callers do not reimplement them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// APIError is a non-2xx response decoded from the server's envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// IsAuthFailure reports whether err is a 401/403 response.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// API wraps an http.Client with the service's conventions. The token is
// owned here and updated only through SetToken/ClearToken.
type API struct {
	baseURL string
	httpc   *http.Client

	mu            sync.RWMutex
	token         string
	onAuthFailure func()
}

// New creates an adapter for the given origin. The origin may or may not
// already carry the /api prefix; either way the resulting base URL has
// exactly one.
func New(origin string) *API {
	return &API{
		baseURL: normalizeBase(origin),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// normalizeBase collapses any trailing slash or /api suffix so the prefix
// is never duplicated.
func normalizeBase(origin string) string {
	origin = strings.TrimRight(origin, "/")
	origin = strings.TrimSuffix(origin, "/api")
	return origin + "/api"
}

// BaseURL returns the normalized base URL including the /api prefix.
func (a *API) BaseURL() string { return a.baseURL }

// SetToken installs the bearer token attached to subsequent requests.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// ClearToken removes the bearer token. Requests then carry no
// Authorization header.
func (a *API) ClearToken() {
	a.SetToken("")
}

// Token returns the currently installed token, empty when logged out.
func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// OnAuthFailure registers the hook invoked whenever any response comes
// back 401 or 403. The session store uses it to expire itself.
func (a *API) OnAuthFailure(fn func()) {
	a.mu.Lock()
	a.onAuthFailure = fn
	a.mu.Unlock()
}

// Get issues a GET and decodes the response body into out when non-nil.
func (a *API) Get(ctx context.Context, path string, out any) error {
	return a.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (a *API) Post(ctx context.Context, path string, body, out any) error {
	return a.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (a *API) Put(ctx context.Context, path string, body, out any) error {
	return a.do(ctx, http.MethodPut, path, body, out)
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	// Tolerate callers passing paths that already include the prefix;
	// the base URL carries the only /api.
	path = "/" + strings.TrimPrefix(strings.TrimPrefix(path, "/"), "api/")

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		a.mu.RLock()
		hook := a.onAuthFailure
		a.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}

	var env struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || (env.Success != nil && !*env.Success) {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
