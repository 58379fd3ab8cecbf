// Package config holds the process-wide settings for the image generation
// server. Values come from the environment (optionally seeded from .env
// files) and are fixed for the lifetime of the process.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Defaults for the provider endpoint and local output.
const (
	DefaultBaseURL   = "https://openrouter.ai/api/v1"
	DefaultModel     = "google/gemini-2.5-flash-image-preview"
	DefaultPath      = "/responses"
	DefaultReferer   = "https://github.com/ironsheep/image-gen-mcp"
	DefaultTitle     = "image-gen-mcp"
	DefaultOutputDir = "generated-images"
)

// ErrMissingAPIKey is returned by Load when no bearer token is configured.
var ErrMissingAPIKey = errors.New("IMAGE_GEN_API_KEY (or OPENROUTER_API_KEY) is not set")

// Config holds all configuration for the image generation server.
type Config struct {
	// Provider
	APIKey  string `env:"IMAGE_GEN_API_KEY"`
	BaseURL string `env:"IMAGE_GEN_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Model   string `env:"IMAGE_GEN_MODEL" envDefault:"google/gemini-2.5-flash-image-preview"`
	Path    string `env:"IMAGE_GEN_PATH" envDefault:"/responses"`
	Referer string `env:"IMAGE_GEN_REFERER" envDefault:"https://github.com/ironsheep/image-gen-mcp"`
	Title   string `env:"IMAGE_GEN_TITLE" envDefault:"image-gen-mcp"`

	// HTTPTimeout bounds a single provider call. Zero means no timeout.
	HTTPTimeout time.Duration `env:"IMAGE_GEN_HTTP_TIMEOUT" envDefault:"0s"`
	// MinInterval paces sequential provider calls within one tool call.
	MinInterval time.Duration `env:"IMAGE_GEN_MIN_INTERVAL" envDefault:"0s"`

	// Local files
	OutputDir      string `env:"IMAGE_GEN_OUTPUT_DIR" envDefault:"generated-images"`
	PreviewCommand string `env:"IMAGE_GEN_PREVIEW_COMMAND"`

	// Logging
	LogLevel  string `env:"IMAGE_GEN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"IMAGE_GEN_LOG_FORMAT" envDefault:"console"` // console or json
}

// Load reads configuration from the environment.
//
// A missing API key is reported as ErrMissingAPIKey alongside a fully
// populated Config, so the caller can still start the server and answer
// every tool call with the initialization error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	}
	if strings.TrimSpace(os.Getenv("IMAGE_GEN_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Path != "" && !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}

	if cfg.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

// LoadEnvFiles seeds the environment from .env files. Later files override
// earlier ones; unreadable files are reported to stderr and skipped.
func LoadEnvFiles() {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "image-gen-mcp", ".env"))
	}
	paths = append(paths, ".env")
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
