package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
version = "1.2.0"

[log]
level = "debug"
format = "text"

[valuation]
workers = 8
timeout = "5s"

[market]
volatility = 0.25
risk_free_rate = 0.04
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	var cfg Config
	if _, err := Load(writeConfig(t, sample), &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Version != "1.2.0" || cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Valuation.Workers != 8 || cfg.Valuation.Timeout != 5*time.Second {
		t.Errorf("valuation = %+v", cfg.Valuation)
	}
	if cfg.Metrics.Namespace != "quantpricing" {
		t.Errorf("default namespace not applied: %q", cfg.Metrics.Namespace)
	}

	d := cfg.Market.Defaults()
	if d.Volatility != 0.25 || d.RiskFreeRate != 0.04 {
		t.Errorf("market defaults = %+v", d)
	}
	if lc := cfg.Log.Logging("pricing", "engine"); lc.Service != "pricing" || lc.Level != "debug" {
		t.Errorf("logging config = %+v", lc)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_VALUATION_WORKERS", "2")

	var cfg Config
	if _, err := Load(writeConfig(t, sample), &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Valuation.Workers != 2 {
		t.Errorf("workers = %d, want env override 2", cfg.Valuation.Workers)
	}
}

func TestLoadValidation(t *testing.T) {
	var cfg Config
	if _, err := Load(writeConfig(t, "[valuation]\nworkers = 0\n"), &cfg); err == nil {
		t.Error("expected validation error for zero workers")
	}
	if _, err := Load(writeConfig(t, "[log]\nlevel = \"verbose\"\n"), &cfg); err == nil {
		t.Error("expected validation error for unknown log level")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRegisterReloadHook(t *testing.T) {
	var got *Config
	RegisterReloadHook(nil)
	RegisterReloadHook(func(c *Config) { got = c })

	runReloadHooks(&Config{Version: "next"})
	if got == nil || got.Version != "next" {
		t.Errorf("hook not invoked: %+v", got)
	}
}
