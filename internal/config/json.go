package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish an absent key from a zero value.
type JsonConfig struct {
	Storage           *string `json:"storage"`
	DBPath            *string `json:"db_path"`
	PostgresDSN       *string `json:"postgres_dsn"`
	RedisAddr         *string `json:"redis_addr"`
	RedisDB           *int    `json:"redis_db"`
	LogLevel          *string `json:"log_level"`
	LogFormat         *string `json:"log_format"`
	PasswordHasher    *string `json:"password_hasher"`
	MinPasswordLength *int    `json:"min_password_length"`
	Currency          *string `json:"currency"`
	SessionTTL        *string `json:"session_ttl"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Nothing
// happens when neither flag is given. Read, unmarshal and duration errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setInt(&cfg.RedisDB, jc.RedisDB)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.PasswordHasher, jc.PasswordHasher)
	setInt(&cfg.MinPasswordLength, jc.MinPasswordLength)
	setString(&cfg.Currency, jc.Currency)

	if jc.SessionTTL != nil {
		d, err := time.ParseDuration(*jc.SessionTTL)
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
