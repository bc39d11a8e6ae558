package httpclient

import "context"

// Response is the minimal view of an HTTP response the API wrapper consumes.
type Response interface {
	Body() []byte
	StatusCode() int
	IsSuccess() bool
}

// Client abstracts HTTP GET calls so callers can inject fakes or other transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
