package config

import (
	"testing"

	"github.com/anis00/mawaquit/internal/praytimes"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MAWAQUIT_METHOD", "MAWAQUIT_TIME_FORMAT", "MAWAQUIT_HIGH_LATS",
		"MAWAQUIT_ADDR", "MAWAQUIT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Method != praytimes.MethodMWL {
		t.Errorf("method = %q", cfg.Method)
	}
	if cfg.TimeFormat != praytimes.Format24h {
		t.Errorf("format = %q", cfg.TimeFormat)
	}
	if cfg.HighLats != "" {
		t.Errorf("high lats override = %q, want none", cfg.HighLats)
	}
	if cfg.Addr != ":8080" || cfg.LogLevel != "info" {
		t.Errorf("addr = %q, level = %q", cfg.Addr, cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAWAQUIT_METHOD", "Makkah")
	t.Setenv("MAWAQUIT_TIME_FORMAT", "12h")
	t.Setenv("MAWAQUIT_HIGH_LATS", "AngleBased")
	t.Setenv("MAWAQUIT_ADDR", "127.0.0.1:9000")
	t.Setenv("MAWAQUIT_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Method != praytimes.MethodMakkah {
		t.Errorf("method = %q", cfg.Method)
	}
	if cfg.TimeFormat != praytimes.Format12h {
		t.Errorf("format = %q", cfg.TimeFormat)
	}
	if cfg.HighLats != praytimes.HighLatAngleBased {
		t.Errorf("high lats = %q", cfg.HighLats)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.LogLevel != "debug" {
		t.Errorf("addr = %q, level = %q", cfg.Addr, cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown method", "MAWAQUIT_METHOD", "Atlantis"},
		{"unknown format", "MAWAQUIT_TIME_FORMAT", "military"},
		{"unknown high lats", "MAWAQUIT_HIGH_LATS", "Sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%q did not error", tt.key, tt.value)
			}
		})
	}
}
