package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Operation != OperationInfo {
		t.Fatalf("default operation = %q", cfg.Operation)
	}
	if cfg.APIURL != "https://api.ssllabs.com/api/v2/" {
		t.Fatalf("default api_url = %q", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("default timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("default storage_type = %q", cfg.StorageType)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SSLL_HOST", "env.example.com")
	t.Setenv("SSLL_LOG_LEVEL", "debug")

	cfg, err := Load([]string{"--operation", "analyze", "--host", "flag.example.com", "--from_cache", "on"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "flag.example.com" {
		t.Fatalf("host = %q, want flag value", cfg.Host)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q, want env value", cfg.LogLevel)
	}
	if cfg.FromCache != "on" {
		t.Fatalf("from_cache = %q", cfg.FromCache)
	}
}

func TestLoadRequiresHostForAnalyze(t *testing.T) {
	if _, err := Load([]string{"--operation=analyze"}); err == nil {
		t.Fatalf("expected error for analyze without host")
	}
	if _, err := Load([]string{"--operation=endpoint", "--host=example.com"}); err == nil {
		t.Fatalf("expected error for endpoint without endpoint ip")
	}
	if _, err := Load([]string{"--operation=history"}); err == nil {
		t.Fatalf("expected error for history without host")
	}
	cfg, err := Load([]string{"--operation=history", "--host=example.com"})
	if err != nil {
		t.Fatalf("Load history: %v", err)
	}
	if cfg.Operation != OperationHistory {
		t.Fatalf("operation = %q", cfg.Operation)
	}
}

func TestLoadRejectsUnknownOperation(t *testing.T) {
	if _, err := Load([]string{"--operation=poll"}); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("SSLL_HTTP_TIMEOUT_SECONDS", "0")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
