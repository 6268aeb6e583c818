package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSessionUsesProvidedHeader(t *testing.T) {
	var seen string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(sessionIDHeader, "shopper_42")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != "shopper_42" {
		t.Fatalf("expected session from header, got %q", seen)
	}
	if got := resp.Header().Get(sessionIDHeader); got != "shopper_42" {
		t.Fatalf("expected session echoed, got %q", got)
	}
}

func TestSessionGeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated uuid session, got %q", seen)
	}
	if resp.Header().Get(sessionIDHeader) != seen {
		t.Fatalf("expected generated session echoed")
	}
}

func TestSessionRejectsMalformedHeader(t *testing.T) {
	called := false
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, bad := range []string{"has space", "semi;colon", strings.Repeat("a", 65), "cart:other"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set(sessionIDHeader, bad)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400 got %d", bad, resp.Code)
		}
	}
	if called {
		t.Fatalf("handler should not run for malformed session ids")
	}
}

func TestSessionIDFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SessionIDFromContext(req.Context()); got != "" {
		t.Fatalf("expected empty session, got %q", got)
	}
}
