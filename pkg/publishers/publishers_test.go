package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryJSONWithCloudPublishers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{
  "publishers": [
    {"id": " sns1 ", "type": "SNS", "sns": {"topic_arn": "arn:aws:sns:eu-west-1:1:reports", "region": "eu-west-1"}},
    {"id": "gcp", "type": "pubsub", "pubsub": {"project_id": "p", "topic": "reports"}}
  ]
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("sns1")
	if !ok {
		t.Fatalf("expected trimmed id sns1 to be indexed")
	}
	if cfg.Type != TypeSNS {
		t.Fatalf("type not normalized: %q", cfg.Type)
	}
	if len(reg.Enabled()) != 2 {
		t.Fatalf("expected both publishers enabled by default")
	}
}

func TestValidatePublisherConfigCloudTypes(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "s", Type: TypeSNS},
		{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{TopicARN: "arn"}},
		{ID: "p", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}},
	}
	for _, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestValidatePublisherConfigRejectsUnknownType(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{ID: "k", Type: "kafka"})
	if err == nil {
		t.Fatalf("expected unsupported type error")
	}
}
