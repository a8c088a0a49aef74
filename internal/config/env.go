package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvConfig is a DTO for BUDGET_* environment variables. All fields are
// strings so that an unset variable can be told apart from a zero value.
type EnvConfig struct {
	Storage           string `env:"BUDGET_STORAGE"`
	DBPath            string `env:"BUDGET_DB_PATH"`
	PostgresDSN       string `env:"BUDGET_POSTGRES_DSN"`
	RedisAddr         string `env:"BUDGET_REDIS_ADDR"`
	RedisDB           string `env:"BUDGET_REDIS_DB"`
	LogLevel          string `env:"BUDGET_LOG_LEVEL"`
	LogFormat         string `env:"BUDGET_LOG_FORMAT"`
	PasswordHasher    string `env:"BUDGET_PASSWORD_HASHER"`
	MinPasswordLength string `env:"BUDGET_MIN_PASSWORD_LENGTH"`
	Currency          string `env:"BUDGET_CURRENCY"`
	SessionTTL        string `env:"BUDGET_SESSION_TTL"`
}

// parseEnv overlays cfg with non-empty BUDGET_* variables. Values that do
// not parse panic.
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(fmt.Sprintf("config: failed to load environment: %v", err))
	}

	overlay(&cfg.Storage, ec.Storage)
	overlay(&cfg.DBPath, ec.DBPath)
	overlay(&cfg.PostgresDSN, ec.PostgresDSN)
	overlay(&cfg.RedisAddr, ec.RedisAddr)
	overlay(&cfg.LogLevel, ec.LogLevel)
	overlay(&cfg.LogFormat, ec.LogFormat)
	overlay(&cfg.PasswordHasher, ec.PasswordHasher)
	overlay(&cfg.Currency, ec.Currency)

	if ec.RedisDB != "" {
		cfg.RedisDB = mustAtoi("BUDGET_REDIS_DB", ec.RedisDB)
	}
	if ec.MinPasswordLength != "" {
		cfg.MinPasswordLength = mustAtoi("BUDGET_MIN_PASSWORD_LENGTH", ec.MinPasswordLength)
	}
	if ec.SessionTTL != "" {
		d, err := time.ParseDuration(ec.SessionTTL)
		if err != nil {
			panic(fmt.Sprintf("config: BUDGET_SESSION_TTL: %v", err))
		}
		cfg.SessionTTL = d
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mustAtoi(name, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("config: %s: %v", name, err))
	}
	return n
}
