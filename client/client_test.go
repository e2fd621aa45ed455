package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeBase(t *testing.T) {
	cases := []struct {
		origin string
		want   string
	}{
		{"http://localhost:5000", "http://localhost:5000/api"},
		{"http://localhost:5000/", "http://localhost:5000/api"},
		{"http://localhost:5000/api", "http://localhost:5000/api"},
		{"http://localhost:5000/api/", "http://localhost:5000/api"},
	}
	for _, tc := range cases {
		if got := New(tc.origin).BaseURL(); got != tc.want {
			t.Errorf("New(%q).BaseURL() = %q, want %q", tc.origin, got, tc.want)
		}
	}
}

func TestRequestPathNeverDoublesPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	api := New(srv.URL + "/api")
	for _, path := range []string{"/rooms", "rooms", "/api/rooms", "api/rooms"} {
		if err := api.Get(context.Background(), path, nil); err != nil {
			t.Fatalf("get %q: %v", path, err)
		}
		if gotPath != "/api/rooms" {
			t.Fatalf("path %q reached server as %q", path, gotPath)
		}
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var headers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Values("Authorization")
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	api := New(srv.URL)

	if err := api.Get(context.Background(), "/rooms", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(headers) != 0 {
		t.Fatalf("no token set, yet Authorization was sent: %v", headers)
	}

	api.SetToken("tok-1")
	if err := api.Get(context.Background(), "/rooms", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(headers) != 1 || headers[0] != "Bearer tok-1" {
		t.Fatalf("expected exactly one bearer header, got %v", headers)
	}

	api.ClearToken()
	if err := api.Get(context.Background(), "/rooms", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(headers) != 0 {
		t.Fatalf("cleared token still sent: %v", headers)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"success":false,"message":"email already registered"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Post(context.Background(), "/auth/register", map[string]string{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "email already registered" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestSuccessFalseIsAnError(t *testing.T) {
	// Some failures come back 200 with success:false in the envelope.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"nope"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Get(context.Background(), "/rooms", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "nope" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestAuthFailureHook(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"success":false,"message":"unauthorized"}`)
	}))
	defer srv.Close()

	api := New(srv.URL)
	fired := 0
	api.OnAuthFailure(func() { fired++ })

	err := api.Get(context.Background(), "/rooms", nil)
	if !IsAuthFailure(err) {
		t.Fatalf("expected auth failure, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times on 401", fired)
	}

	status = http.StatusForbidden
	_ = api.Get(context.Background(), "/rooms", nil)
	if fired != 2 {
		t.Fatalf("hook fired %d times after 403", fired)
	}
}

func TestNonAuthErrorDoesNotFireHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success":false,"message":"boom"}`)
	}))
	defer srv.Close()

	api := New(srv.URL)
	fired := 0
	api.OnAuthFailure(func() { fired++ })

	err := api.Get(context.Background(), "/rooms", nil)
	if err == nil || IsAuthFailure(err) {
		t.Fatalf("expected a non-auth error, got %v", err)
	}
	if fired != 0 {
		t.Fatal("hook must not fire on a 500")
	}
}
