// Package config loads pdf-stamp settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Every setting has a default, so an
// empty environment yields a runnable configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort          = 3001
	DefaultFontPath      = "fonts/stamp.ttf"
	DefaultScratchMaxAge = 10 * time.Minute
	DefaultFetchTimeout  = 30 * time.Second
	DefaultFetchMaxBytes = 50 << 20
	DefaultStampLocale   = "en"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// Config holds runtime settings for the server and the CLI.
type Config struct {
	Port int

	// FontPath points at the TrueType file used for stamps and text
	// annotations. A missing file is not an error.
	FontPath string

	ScratchDir    string
	ScratchMaxAge time.Duration

	FetchTimeout     time.Duration
	FetchMaxBytes    int64
	FetchInsecureTLS bool

	StampLocale string

	LogLevel  string
	LogFormat string

	S3Region   string
	S3Endpoint string

	AllowedOrigins []string
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		FontPath:       DefaultFontPath,
		ScratchDir:     filepath.Join(os.TempDir(), "pdf-stamp"),
		ScratchMaxAge:  DefaultScratchMaxAge,
		FetchTimeout:   DefaultFetchTimeout,
		FetchMaxBytes:  DefaultFetchMaxBytes,
		StampLocale:    DefaultStampLocale,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		AllowedOrigins: []string{"https://*", "http://*"},
	}
}

// LoadDotEnv reads .env into the environment if the file exists.
// Variables already present in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load builds a Config from the environment on top of Default.
func Load() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("FONT_PATH"); v != "" {
		cfg.FontPath = v
	}
	if v := os.Getenv("SCRATCH_DIR"); v != "" {
		cfg.ScratchDir = v
	}

	var err error
	if cfg.ScratchMaxAge, err = durationEnv("SCRATCH_MAX_AGE", cfg.ScratchMaxAge); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return nil, err
	}

	if v := os.Getenv("FETCH_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_MAX_BYTES %q: %w", v, err)
		}
		cfg.FetchMaxBytes = n
	}
	if v := os.Getenv("FETCH_INSECURE_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_INSECURE_TLS %q: %w", v, err)
		}
		cfg.FetchInsecureTLS = b
	}

	if v := os.Getenv("STAMP_LOCALE"); v != "" {
		cfg.StampLocale = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	cfg.S3Region = os.Getenv("S3_REGION")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.ScratchDir == "" {
		return fmt.Errorf("config error: scratch dir is empty")
	}
	if c.ScratchMaxAge <= 0 {
		return fmt.Errorf("config error: scratch max age must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("config error: fetch timeout must be positive")
	}
	if c.FetchMaxBytes <= 0 {
		return fmt.Errorf("config error: fetch max bytes must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}
	return nil
}

// S3Enabled reports whether s3:// URLs should be served.
func (c *Config) S3Enabled() bool {
	return c.S3Region != ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
