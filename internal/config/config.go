package config

import "time"

// Config holds runtime settings for the budget CLI.
type Config struct {
	Storage     string
	DBPath      string
	PostgresDSN string
	RedisAddr   string
	RedisDB     int

	LogLevel  string
	LogFormat string

	PasswordHasher    string
	MinPasswordLength int
	Currency          string
	// SessionTTL bounds a login session; zero keeps it for the life of the process.
	SessionTTL time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = "sqlite"
	c.DBPath = "budget.db"
	c.PostgresDSN = ""
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.PasswordHasher = "sha256"
	c.MinPasswordLength = 8
	c.Currency = "USD"
	c.SessionTTL = 0
}

// KnownFlags lists every command-line flag consumed by LoadConfig. The
// remaining arguments belong to the subcommand parser.
var KnownFlags = []string{"-c", "-config", "-d", "-s", "-l"}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
