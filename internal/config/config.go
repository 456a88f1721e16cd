// Package config holds environment-based settings shared by the CLI,
// the TUI and the API server. A local .env file is honored when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/anis00/mawaquit/internal/praytimes"
)

// Config holds the runtime defaults. Flags override these.
type Config struct {
	Method     praytimes.MethodID
	TimeFormat praytimes.TimeFormat
	HighLats   praytimes.HighLatMethod // empty keeps the method's own setting
	Addr       string                  // API listen address
	LogLevel   string                  // zerolog level name
}

// Load reads configuration from MAWAQUIT_* environment variables,
// loading a .env file first when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Method:     praytimes.MethodID(getenv("MAWAQUIT_METHOD", string(praytimes.MethodMWL))),
		TimeFormat: praytimes.TimeFormat(getenv("MAWAQUIT_TIME_FORMAT", string(praytimes.Format24h))),
		Addr:       getenv("MAWAQUIT_ADDR", ":8080"),
		LogLevel:   getenv("MAWAQUIT_LOG_LEVEL", "info"),
	}

	if _, ok := praytimes.LookupMethod(string(cfg.Method)); !ok {
		return Config{}, fmt.Errorf("MAWAQUIT_METHOD: unknown method %q", cfg.Method)
	}
	switch cfg.TimeFormat {
	case praytimes.Format24h, praytimes.Format12h, praytimes.FormatFloat:
	default:
		return Config{}, fmt.Errorf("MAWAQUIT_TIME_FORMAT: unknown format %q", cfg.TimeFormat)
	}
	if hl := os.Getenv("MAWAQUIT_HIGH_LATS"); hl != "" {
		switch m := praytimes.HighLatMethod(hl); m {
		case praytimes.HighLatNightMiddle, praytimes.HighLatAngleBased,
			praytimes.HighLatOneSeventh, praytimes.HighLatNone:
			cfg.HighLats = m
		default:
			return Config{}, fmt.Errorf("MAWAQUIT_HIGH_LATS: unknown mode %q", hl)
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
