package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.BatchSize != 5 {
		t.Errorf("expected default batch size 5, got %d", cfg.Limits.BatchSize)
	}
	if cfg.PerSymbolDelay() != 12*time.Second {
		t.Errorf("expected 12s per-symbol delay, got %s", cfg.PerSymbolDelay())
	}
	if cfg.InterBatchWait() != 60*time.Second {
		t.Errorf("expected 60s inter-batch wait, got %s", cfg.InterBatchWait())
	}
	if cfg.CacheTTL() != 15*time.Minute {
		t.Errorf("expected 15m cache TTL, got %s", cfg.CacheTTL())
	}
	if cfg.Limits.DailyFetchBudget != 25 {
		t.Errorf("expected daily budget 25, got %d", cfg.Limits.DailyFetchBudget)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
alpha_vantage:
  api_key: from-file
limits:
  cache_ttl_minutes: 30
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AlphaVantage.APIKey != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.AlphaVantage.APIKey)
	}
	if cfg.CacheTTL() != 30*time.Minute {
		t.Errorf("expected file TTL 30m, got %s", cfg.CacheTTL())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without an API key")
	}
}
