package ssllabs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Adda-Baaj/ssll-wrapper/pkg/httpclient"
)

func TestHTTPProviderReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/analyze" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.RawQuery; got != "host=example.com&publish=off&clearCache=on&fromCache=off&all=on" {
			t.Fatalf("unexpected query %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"host":"example.com","status":"READY","endpoints":[{"ipAddress":"192.0.2.1","grade":"A"}]}`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL+"/api/v2", WithHTTPClient(httpclient.NewRestyClient(2*time.Second)))
	analyze := svc.Analyze(context.Background(), "example.com", DefaultAnalyzeOptions())
	if analyze.HasErrorOccurred {
		t.Fatalf("unexpected errors %+v", analyze.Errors)
	}
	if analyze.Status != StatusReady || len(analyze.Endpoints) != 1 || analyze.Endpoints[0].Grade != "A" {
		t.Fatalf("unexpected analyze %+v", analyze)
	}
}

func TestHTTPProviderNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Running at full capacity"}]}`))
	}))
	defer srv.Close()

	provider := NewHTTPProvider(httpclient.NewRestyClient(2 * time.Second))
	_, err := provider.MakeGetRequest(context.Background(), RequestModelFactory{}.Info(srv.URL+"/"))

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests || !strings.Contains(statusErr.Body, "full capacity") {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestStatusCodesConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/"
	srv.Close()

	svc := NewService(base, WithHTTPClient(httpclient.NewRestyClient(time.Second)))
	codes := svc.GetStatusCodes(context.Background())
	if !codes.HasErrorOccurred || len(codes.Errors) != 1 {
		t.Fatalf("expected single transport error, got %+v", codes.Result)
	}
	if !strings.Contains(codes.Errors[0].Message, "getStatusCodes") {
		t.Fatalf("error should name the failed request: %q", codes.Errors[0].Message)
	}
	if codes.StatusDetails != nil {
		t.Fatalf("no fields should be populated")
	}
}

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet(nil); got != "<empty>" {
		t.Fatalf("snippet = %q", got)
	}
	long := strings.Repeat("x", maxSnippetBytes+10)
	if got := responseSnippet([]byte(long)); len(got) != maxSnippetBytes+3 {
		t.Fatalf("snippet not truncated: %d", len(got))
	}
}
