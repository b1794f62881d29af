package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// DefaultSourceURL is the published 2017 NHTS CSV bundle.
const DefaultSourceURL = "https://nhts.ornl.gov/assets/2016/download/csv.zip"

// Config holds all run settings, populated from environment variables.
type Config struct {
	SourceURL   string
	OutputPath  string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string

	// WorkbookPath enables the XLSX summary export when non-empty.
	WorkbookPath string

	// PushgatewayURL enables the end-of-run metrics push when non-empty.
	PushgatewayURL string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeoutStr := envOrDefault("HTTP_TIMEOUT", "5m")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	cfg := &Config{
		SourceURL:      envOrDefault("SOURCE_URL", DefaultSourceURL),
		OutputPath:     envOrDefault("OUTPUT_PATH", "mode_distance.png"),
		HTTPTimeout:    timeout,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		WorkbookPath:   os.Getenv("XLSX_PATH"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	if !strings.HasPrefix(cfg.SourceURL, "http://") && !strings.HasPrefix(cfg.SourceURL, "https://") {
		return nil, errors.New("SOURCE_URL must be an http(s) URL")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
