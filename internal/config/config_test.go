package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, advice.DefaultModel, cfg.Model)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Zero(t, cfg.MaxQuerySize, "queries are unlimited unless configured")
	assert.Empty(t, cfg.APIKey)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.False(t, cfg.Offline)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		EnvAPIKey:       " secret ",
		EnvModel:        "gemini-2.5-flash",
		EnvAddr:         "127.0.0.1:9000",
		EnvLogLevel:     "debug",
		EnvLogFormat:    "json",
		EnvContentDir:   "/sdcard/termuxdev",
		EnvHTTPTimeout:  "45s",
		EnvMaxQuerySize: "1024",
		EnvOffline:      "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "/sdcard/termuxdev", cfg.ContentDir)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1024, cfg.MaxQuerySize)
	assert.True(t, cfg.Offline)
	assert.NotNil(t, cfg.Logger())
}

func TestFromEnv_LegacyAPIKey(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{EnvAPIKeyLegacy: "legacy"}))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.APIKey)

	cfg, err = FromEnv(lookupFrom(map[string]string{EnvAPIKeyLegacy: "legacy", EnvAPIKey: "preferred"}))
	require.NoError(t, err)
	assert.Equal(t, "preferred", cfg.APIKey)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Bad Timeout", map[string]string{EnvHTTPTimeout: "soon"}},
		{"Negative Timeout", map[string]string{EnvHTTPTimeout: "-1s"}},
		{"Bad Size", map[string]string{EnvMaxQuerySize: "big"}},
		{"Negative Size", map[string]string{EnvMaxQuerySize: "-1"}},
		{"Bad Level", map[string]string{EnvLogLevel: "loud"}},
		{"Bad Format", map[string]string{EnvLogFormat: "xml"}},
		{"Bad Offline", map[string]string{EnvOffline: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.env))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TERMUXDEV_MODEL=from-dotenv\nTERMUXDEV_ADDR=:7070\n"), 0600))

	// Variables already in the environment win over the file.
	t.Setenv(EnvAddr, ":6060")
	t.Setenv(EnvModel, "")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, advice.DefaultModel, cfg.Model, "empty variables already set are not overridden by .env")
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}
