package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(func(ctx context.Context) (string, error) {
		return "secret-token-123", nil
	})

	if err := client.Get(context.Background(), "/coupons", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token-123" {
		t.Errorf("expected exact bearer header, got %q", gotAuth)
	}
}

func TestTokenSourceReadPerRequest(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var current atomic.Value
	current.Store("first")

	client := NewClient(server.URL)
	client.SetTokenSource(func(ctx context.Context) (string, error) {
		return current.Load().(string), nil
	})

	ctx := context.Background()
	if err := client.Get(ctx, "/a", nil); err != nil {
		t.Fatal(err)
	}
	current.Store("second")
	if err := client.Get(ctx, "/b", nil); err != nil {
		t.Fatal(err)
	}

	if headers[0] != "Bearer first" || headers[1] != "Bearer second" {
		t.Errorf("expected token re-read per request, got %v", headers)
	}
}

func TestEmptyTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(func(ctx context.Context) (string, error) { return "", nil })

	if err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestDefaultHeadersAndOverrides(t *testing.T) {
	var contentType, custom, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		custom = r.Header.Get("X-Custom")
		requestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetDefaultHeader("X-Custom", "default")

	err := client.Do(context.Background(), http.MethodGet, "/", nil, nil, WithHeader("X-Custom", "override"))
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", contentType)
	}
	if custom != "override" {
		t.Errorf("expected per-request header to win, got %q", custom)
	}
	if requestID == "" {
		t.Error("expected X-Request-ID to be set")
	}
}

func TestUnsetDefaultHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetDefaultHeader("Authorization", "Bearer stale")
	client.UnsetDefaultHeader("Authorization")

	if err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("expected cleared header, got %q", gotAuth)
	}
}

func TestUnauthorizedHandlerInvoked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var called atomic.Bool
	client := NewClient(server.URL)
	client.SetUnauthorizedHandler(func(ctx context.Context) { called.Store(true) })

	err := client.Get(context.Background(), "/", nil)
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if !called.Load() {
		t.Error("expected unauthorized handler to run before the error propagates")
	}
}

func TestUnauthorizedHandlerNotInvokedOnOtherStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	var called atomic.Bool
	client := NewClient(server.URL)
	client.SetUnauthorizedHandler(func(ctx context.Context) { called.Store(true) })

	if err := client.Get(context.Background(), "/", nil); err == nil {
		t.Fatal("expected an error")
	}
	if called.Load() {
		t.Error("handler must only run on 401")
	}
}

func TestTimeoutClassifiedAsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	err := client.Get(context.Background(), "/slow", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if apiErr.Category != CategoryNetwork {
		t.Errorf("expected NETWORK, got %s", apiErr.Category)
	}
}

func TestConnectionFailureClassifiedAsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL)
	err := client.Get(context.Background(), "/", nil)
	if !IsNetwork(err) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestErrorBodyMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already in use"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Post(context.Background(), "/users/register", map[string]string{}, nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if apiErr.Category != CategoryValidation {
		t.Errorf("expected VALIDATION, got %s", apiErr.Category)
	}
	if apiErr.Message != "email already in use" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestResponseDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page query param, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{"name": "Central Park", "visits": 7})
	}))
	defer server.Close()

	var out struct {
		Name   string `json:"name"`
		Visits int    `json:"visits"`
	}

	client := NewClient(server.URL)
	q := url.Values{}
	q.Set("page", "2")
	if err := client.Get(context.Background(), "/places/p1", &out, WithQuery(q)); err != nil {
		t.Fatal(err)
	}
	if out.Name != "Central Park" || out.Visits != 7 {
		t.Errorf("unexpected decode result: %+v", out)
	}
}

func TestEmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var out map[string]any
	client := NewClient(server.URL)
	if err := client.Delete(context.Background(), "/coupons/c1"); err != nil {
		t.Fatal(err)
	}
	if err := client.Get(context.Background(), "/coupons/c1", &out); err != nil {
		t.Fatalf("empty body into out must not fail: %v", err)
	}
}

func TestRequestBodyEncoded(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Post(context.Background(), "/missions", map[string]string{"title": "Visit the old town"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if received["title"] != "Visit the old town" {
		t.Errorf("unexpected body received: %v", received)
	}
}
