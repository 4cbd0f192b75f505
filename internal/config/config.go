package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	AlphaVantage struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"alpha_vantage"`
	Limits struct {
		BatchSize             int `yaml:"batch_size"`
		PerSymbolDelaySeconds int `yaml:"per_symbol_delay_seconds"`
		InterBatchWaitSeconds int `yaml:"inter_batch_wait_seconds"`
		DailyFetchBudget      int `yaml:"daily_fetch_budget"`
		CacheTTLMinutes       int `yaml:"cache_ttl_minutes"`
	} `yaml:"limits"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Quota struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"quota"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Watchlist struct {
		UserID string `yaml:"user_id"`
	} `yaml:"watchlist"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TRACKER_USER_ID"); v != "" {
		cfg.Watchlist.UserID = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("DAILY_FETCH_BUDGET"); v != "" {
		if budget, err := strconv.Atoi(v); err == nil {
			cfg.Limits.DailyFetchBudget = budget
		}
	}

	// Defaults
	if cfg.Limits.BatchSize == 0 {
		cfg.Limits.BatchSize = 5
	}
	if cfg.Limits.PerSymbolDelaySeconds == 0 {
		cfg.Limits.PerSymbolDelaySeconds = 12
	}
	if cfg.Limits.InterBatchWaitSeconds == 0 {
		cfg.Limits.InterBatchWaitSeconds = 60
	}
	if cfg.Limits.DailyFetchBudget == 0 {
		cfg.Limits.DailyFetchBudget = 25
	}
	if cfg.Limits.CacheTTLMinutes == 0 {
		cfg.Limits.CacheTTLMinutes = 15
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stock_tracker.db"
	}
	if cfg.Quota.StateFile == "" {
		cfg.Quota.StateFile = "data/quota_state.json"
	}
	if cfg.Schedule.RefreshCron == "" {
		// Every 15 minutes during US market hours (UTC), weekdays.
		cfg.Schedule.RefreshCron = "0 */15 14-21 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.AlphaVantage.APIKey == "" {
		return fmt.Errorf("alpha_vantage.api_key is required")
	}
	if c.Limits.BatchSize < 1 {
		return fmt.Errorf("limits.batch_size must be positive")
	}
	return nil
}

// CacheTTL returns the cache freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Limits.CacheTTLMinutes) * time.Minute
}

// PerSymbolDelay returns the intra-batch spacing as a duration.
func (c *Config) PerSymbolDelay() time.Duration {
	return time.Duration(c.Limits.PerSymbolDelaySeconds) * time.Second
}

// InterBatchWait returns the inter-batch wait as a duration.
func (c *Config) InterBatchWait() time.Duration {
	return time.Duration(c.Limits.InterBatchWaitSeconds) * time.Second
}
