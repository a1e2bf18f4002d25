package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "FONT_PATH", "SCRATCH_DIR", "SCRATCH_MAX_AGE", "FETCH_TIMEOUT",
		"FETCH_MAX_BYTES", "FETCH_INSECURE_TLS", "STAMP_LOCALE", "LOG_LEVEL",
		"LOG_FORMAT", "S3_REGION", "S3_ENDPOINT", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, DefaultFontPath, cfg.FontPath)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, int64(DefaultFetchMaxBytes), cfg.FetchMaxBytes)
	assert.Equal(t, "en", cfg.StampLocale)
	assert.False(t, cfg.FetchInsecureTLS)
	assert.False(t, cfg.S3Enabled())
	assert.NotEmpty(t, cfg.ScratchDir)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("FONT_PATH", "/srv/fonts/a.ttf")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_MAX_BYTES", "1024")
	t.Setenv("FETCH_INSECURE_TLS", "true")
	t.Setenv("STAMP_LOCALE", "ru")
	t.Setenv("LOG_FORMAT", "CONSOLE")
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "/srv/fonts/a.ttf", cfg.FontPath)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, int64(1024), cfg.FetchMaxBytes)
	assert.True(t, cfg.FetchInsecureTLS)
	assert.Equal(t, "ru", cfg.StampLocale)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.S3Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", "PORT", "abc"},
		{"port out of range", "PORT", "70000"},
		{"bad duration", "FETCH_TIMEOUT", "soon"},
		{"negative timeout", "FETCH_TIMEOUT", "-1s"},
		{"bad max bytes", "FETCH_MAX_BYTES", "lots"},
		{"bad bool", "FETCH_INSECURE_TLS", "maybe"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
