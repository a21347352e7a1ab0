// Package config resolves runtime settings from .env files, environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/termuxdev/internal/logging"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/joho/godotenv"
)

const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvAPIKeyLegacy = "API_KEY"
	EnvModel        = "TERMUXDEV_MODEL"
	EnvAddr         = "TERMUXDEV_ADDR"
	EnvLogLevel     = "TERMUXDEV_LOG_LEVEL"
	EnvLogFormat    = "TERMUXDEV_LOG_FORMAT"
	EnvContentDir   = "TERMUXDEV_CONTENT_DIR"
	EnvHTTPTimeout  = "TERMUXDEV_HTTP_TIMEOUT"
	EnvMaxQuerySize = "TERMUXDEV_MAX_QUERY_SIZE"
	EnvOffline      = "TERMUXDEV_OFFLINE"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings.
type Config struct {
	APIKey       string
	Model        string
	Addr         string
	LogLevel     string
	LogFormat    string
	ContentDir   string
	HTTPTimeout  time.Duration
	MaxQuerySize int
	// Offline disables the external service; every query gets the fallback text.
	Offline bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Model:     advice.DefaultModel,
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: logging.FormatText,
	}
}

// Load reads the given .env files (".env" when none are given; missing files are
// ignored) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIKey); ok {
		cfg.APIKey = v
	} else if v, ok := get(EnvAPIKeyLegacy); ok {
		cfg.APIKey = v
	}
	if v, ok := get(EnvModel); ok {
		cfg.Model = v
	}
	if v, ok := get(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := get(EnvContentDir); ok {
		cfg.ContentDir = v
	}
	if v, ok := get(EnvHTTPTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvHTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}
	if v, ok := get(EnvMaxQuerySize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvMaxQuerySize, err)
		}
		cfg.MaxQuerySize = n
	}
	if v, ok := get(EnvOffline); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvOffline, err)
		}
		cfg.Offline = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout))
	}
	if c.MaxQuerySize < 0 {
		errs = append(errs, fmt.Errorf("max query size must not be negative, got %d", c.MaxQuerySize))
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Logger builds the application logger described by the config.
func (c *Config) Logger() *slog.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	if strings.EqualFold(c.LogFormat, logging.FormatJSON) {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}
