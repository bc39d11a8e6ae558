package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/ssll-wrapper/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

const webhookSnippetLimit = 512

// webhookPublisher sends each report as a JSON document to a configured URL.
type webhookPublisher struct {
	id     string
	target HTTPPublisherConfig
	client *resty.Client
	log    Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	target := *cfg.HTTP
	if target.Method == "" {
		target.Method = httpDefaultMethod
	}

	return &webhookPublisher{
		id:     cfg.ID,
		target: target,
		client: httpclient.NewRestyHTTPClient(time.Duration(target.TimeoutSeconds) * time.Second),
		log:    ensureLogger(log),
	}, nil
}

func (w *webhookPublisher) ID() string   { return w.id }
func (w *webhookPublisher) Type() string { return TypeHTTP }

// Publish delivers evt with the routing attributes mirrored as X-Report-*
// headers. Configured headers win over the generated ones.
func (w *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	req := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Report-Id", evt.ReportID).
		SetBody(evt)
	for k, v := range evt.attributes() {
		req.SetHeader("X-Report-"+strings.ToUpper(k[:1])+k[1:], v)
	}
	req.SetHeaders(w.target.Headers)

	resp, err := req.Execute(w.target.Method, w.target.URL)
	if err != nil {
		return fmt.Errorf("%s %s: %w", w.target.Method, w.target.URL, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%s %s returned status %d: %s", w.target.Method, w.target.URL, resp.StatusCode(), snippet(resp.Body()))
	}

	w.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": w.id,
		"report_id":    evt.ReportID,
		"status":       resp.StatusCode(),
	})
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > webhookSnippetLimit {
		s = s[:webhookSnippetLimit] + "..."
	}
	return s
}
