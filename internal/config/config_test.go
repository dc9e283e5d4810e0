package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_NAME", "APP_ENV", "HTTP_PORT", "SNAPSHOT_DIR",
	"BROWSER_MODE", "BROWSER_TIMEOUT", "BROWSER_HEADLESS", "BROWSER_USER_AGENT",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_TTL",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSL_MODE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "upwork-job-api", cfg.App.AppName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "5000", cfg.App.HTTPPort)
	assert.Empty(t, cfg.App.SnapshotDir)

	assert.Equal(t, BrowserModeChromedp, cfg.Browser.Mode)
	assert.Equal(t, 60*time.Second, cfg.Browser.Timeout)
	assert.True(t, cfg.Browser.Headless)

	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Database.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BROWSER_MODE", "STATIC")
	t.Setenv("BROWSER_TIMEOUT", "15")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("SNAPSHOT_DIR", "/tmp/pages")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, BrowserModeStatic, cfg.Browser.Mode)
	assert.Equal(t, 15*time.Second, cfg.Browser.Timeout)
	assert.False(t, cfg.Browser.Headless)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "/tmp/pages", cfg.App.SnapshotDir)
}

func TestFromEnv_DatabaseRequiresNameAndUser(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "DB_USER")

	t.Setenv("DB_NAME", "upwork")
	t.Setenv("DB_USER", "scraper")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unknown browser mode": {"BROWSER_MODE", "firefox"},
		"non numeric timeout":  {"BROWSER_TIMEOUT", "soon"},
		"zero timeout":         {"BROWSER_TIMEOUT", "0"},
		"negative ttl":         {"REDIS_TTL", "-1"},
		"bad headless flag":    {"BROWSER_HEADLESS", "maybe"},
		"non numeric port":     {"HTTP_PORT", "http"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errInvalidEnv))
		})
	}
}
