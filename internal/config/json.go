package config

import (
	"encoding/json"
	"os"
	"time"

	"shopcore/internal/flagx"
	"shopcore/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	StoreDriver            string         `json:"store_driver"`
	DatabaseDSN            string         `json:"database_dsn"`
	SessionSecret          string         `json:"session_secret"`
	AdminEmail             string         `json:"admin_email"`
	AdminBootstrapPassword string         `json:"admin_bootstrap_password"`
	MaxLoginAttempts       int            `json:"max_login_attempts"`
	LockoutDuration        timex.Duration `json:"lockout_duration"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. Fields absent from the file keep
// their current (default) values. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.StoreDriver != "" {
		config.StoreDriver = c.StoreDriver
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SessionSecret != "" {
		config.SessionSecret = c.SessionSecret
	}
	if c.AdminEmail != "" {
		config.AdminEmail = c.AdminEmail
	}
	if c.AdminBootstrapPassword != "" {
		config.AdminBootstrapPassword = c.AdminBootstrapPassword
	}
	if c.MaxLoginAttempts != 0 {
		config.MaxLoginAttempts = c.MaxLoginAttempts
	}
	if c.LockoutDuration.Duration != 0 {
		config.LockoutDuration = time.Duration(c.LockoutDuration.Duration)
	}
}
