package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/hello-playground/internal/greeting"
	"github.com/janisto/hello-playground/internal/http/health"
	"github.com/janisto/hello-playground/internal/platform/config"
)

func testServer() http.Handler {
	return newRouter(config.Config{Port: "0", Version: "test"}, greeting.NewState())
}

func do(t *testing.T, srv http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, target, reader)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	return resp
}

func TestPlainTextRoutes(t *testing.T) {
	srv := testServer()

	tests := []struct {
		target string
		want   string
	}{
		{"/", "Hello, World!"},
		{"/greet/Alice", "Hello, Alice!"},
		{"/greet?name=Bob", "Hello, Bob!"},
		{"/greet", "Hello, World!"},
	}
	for _, tt := range tests {
		resp := do(t, srv, http.MethodGet, tt.target, "", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", tt.target, resp.Code)
		}
		if body := resp.Body.String(); body != tt.want {
			t.Fatalf("GET %s: expected %q, got %q", tt.target, tt.want, body)
		}
	}
}

func TestHelloJSON(t *testing.T) {
	resp := do(t, testServer(), http.MethodGet, "/hello", "", nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got greeting.Greeting
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if got.Message != "Hello, World!" {
		t.Fatalf("unexpected message: %s", got.Message)
	}
}

func TestPostGreetDoesNotPersist(t *testing.T) {
	srv := testServer()

	resp := do(t, srv, http.MethodPost, "/api/greet", `{"name":"Carol"}`, map[string]string{
		"Content-Type": "application/json",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `{"message":"Hello, Carol!"}` {
		var got greeting.Greeting
		if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil || got.Message != "Hello, Carol!" {
			t.Fatalf("unexpected body: %s", body)
		}
	}

	list := do(t, srv, http.MethodGet, "/greetings", "", nil)
	var got []string
	if err := json.Unmarshal(list.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if want := []string{"Hello, World!", "Hello, Go!"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHealth(t *testing.T) {
	resp := do(t, testServer(), http.MethodGet, "/health", "", nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var h health.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if h.Status != "healthy" || h.Version != "test" {
		t.Fatalf("unexpected health response: %+v", h)
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	resp := do(t, testServer(), http.MethodGet, "/greetings", "", map[string]string{
		chimiddleware.RequestIDHeader: "main-headers",
		"Origin":                      "http://example.com",
	})

	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "main-headers" {
		t.Fatalf("expected request ID to be echoed, got %q", got)
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected security headers, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header, got %q", got)
	}
	if vary := strings.Join(resp.Header().Values("Vary"), ","); !strings.Contains(vary, "Accept") {
		t.Fatalf("expected Vary to include Accept, got %q", vary)
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	resp := do(t, testServer(), http.MethodGet, "/missing", "", nil)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json, got %q", ct)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if problem.Detail != "resource not found" {
		t.Fatalf("unexpected detail: %s", problem.Detail)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	resp := do(t, testServer(), http.MethodDelete, "/greetings", "", map[string]string{
		"Accept": "application/cbor",
	})

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
	var problem huma.ErrorModel
	if err := cbor.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal CBOR 405 response: %v", err)
	}
	if problem.Status != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", problem.Status)
	}
}

func TestRequestSizeLimit(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/greet", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	testServer().ServeHTTP(resp, req)

	if resp.Code < 400 || resp.Code >= 500 {
		t.Fatalf("expected a client error for oversized body, got %d", resp.Code)
	}
}

func TestOpenAPIAdvertisesCBOR(t *testing.T) {
	resp := do(t, testServer(), http.MethodGet, "/openapi.json", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var doc struct {
		Paths map[string]map[string]struct {
			RequestBody *struct {
				Content map[string]any `json:"content"`
			} `json:"requestBody"`
			Responses map[string]struct {
				Content map[string]any `json:"content"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal OpenAPI: %v", err)
	}

	post := doc.Paths["/api/greet"]["post"]
	if post.RequestBody == nil {
		t.Fatal("expected request body for POST /api/greet")
	}
	if _, ok := post.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor request content")
	}
	if _, ok := post.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor response content")
	}
	if _, ok := doc.Paths["/"]["get"].Responses["200"].Content["text/plain"]; !ok {
		t.Fatal("expected text/plain response for GET /")
	}
}

func TestAdvertiseCBORSkipsNilContent(t *testing.T) {
	op := &huma.Operation{
		Responses: map[string]*huma.Response{"204": {Description: "No Content"}},
	}
	advertiseCBOR(nil, op)

	if op.Responses["204"].Content != nil {
		t.Fatal("expected nil content to stay nil")
	}
}

func TestRunShutsDownWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, config.Config{Port: "0", Version: "test", ShutdownTimeout: time.Second})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	err := run(context.Background(), config.Config{Port: "-1", Version: "test", ShutdownTimeout: time.Second})
	if err == nil {
		t.Fatal("expected listen error for invalid port")
	}
}
