package ssllabs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/ssll-wrapper/pkg/httpclient"
)

const (
	defaultTimeout  = 30 * time.Second
	maxSnippetBytes = 512
)

// RawResponse is the undecoded reply of a successful call.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// ApiProvider executes request descriptors against the remote API.
type ApiProvider interface {
	MakeGetRequest(ctx context.Context, req RequestModel) (*RawResponse, error)
}

// StatusError is returned for replies outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d body: %s", e.URL, e.StatusCode, e.Body)
}

// httpProvider is the ApiProvider backed by an httpclient.Client.
type httpProvider struct {
	client httpclient.Client
}

// NewHTTPProvider returns an ApiProvider using client, or a resty client when nil.
func NewHTTPProvider(client httpclient.Client) ApiProvider {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	return &httpProvider{client: client}
}

// MakeGetRequest issues exactly one GET with no retry.
func (p *httpProvider) MakeGetRequest(ctx context.Context, req RequestModel) (*RawResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := req.URL()
	resp, err := p.client.Get(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode(), Body: responseSnippet(body)}
	}
	return &RawResponse{StatusCode: resp.StatusCode(), Body: body}, nil
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
