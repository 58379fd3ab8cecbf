package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"IMAGE_GEN_API_KEY", "OPENROUTER_API_KEY", "IMAGE_GEN_BASE_URL", "IMAGE_GEN_MODEL",
		"IMAGE_GEN_PATH", "IMAGE_GEN_LOG_LEVEL", "LOG_LEVEL", "IMAGE_GEN_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_GEN_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.Equal(t, DefaultReferer, cfg.Referer)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	require.NotNil(t, cfg, "config should still be populated")
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoad_FallbackKeyAndLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-fallback")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_NormalizesEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_GEN_API_KEY", "sk-test")
	t.Setenv("IMAGE_GEN_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("IMAGE_GEN_PATH", "images/generate")
	t.Setenv("IMAGE_GEN_HTTP_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", cfg.BaseURL)
	assert.Equal(t, "/images/generate", cfg.Path)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}
