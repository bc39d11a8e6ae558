package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetSendsHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("host"); got != "example.com" {
			t.Fatalf("expected host query, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "ssll-test/2" {
			t.Fatalf("unexpected user agent %q", got)
		}
		if got := r.Header.Get("X-Trace"); got != "abc" {
			t.Fatalf("missing per-request header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClientWithOptions(Options{Timeout: 2 * time.Second, UserAgent: "ssll-test/2"})
	resp, err := client.Get(context.Background(), srv.URL+"/analyze?host=example.com", map[string]string{"X-Trace": "abc"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK || !resp.IsSuccess() {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", resp.Body())
	}
}

func TestRestyClientReturnsNon2xxWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(time.Second).Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.IsSuccess() || resp.StatusCode() != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode())
	}
}

func TestRestyClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	if _, err := NewRestyClient(time.Second).Get(context.Background(), addr, nil); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}
