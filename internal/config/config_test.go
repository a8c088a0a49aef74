package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		Storage:           "sqlite",
		DBPath:            "budget.db",
		RedisAddr:         "localhost:6379",
		LogLevel:          "info",
		LogFormat:         "text",
		PasswordHasher:    "sha256",
		MinPasswordLength: 8,
		Currency:          "USD",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"db_path":     "from-json.db",
		"log_level":   "warn",
		"currency":    "EUR",
		"session_ttl": "1h",
	})
	t.Setenv("BUDGET_LOG_LEVEL", "error")
	t.Setenv("BUDGET_CURRENCY", "GBP")

	os.Args = []string{"budget", "-c", path, "-l", "debug", "users"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "from-json.db", cfg.DBPath, "json overrides defaults")
	assert.Equal(t, "GBP", cfg.Currency, "env overrides json")
	assert.Equal(t, "debug", cfg.LogLevel, "flags override env")
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "sqlite", cfg.Storage, "untouched keys keep defaults")
}

func TestRemainingArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"budget", "-config", "c.json", "-d", "x.db", "users"}
	assert.Equal(t, []string{"users"}, RemainingArgs())
}
