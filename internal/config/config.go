// Package config handles configuration for the storefront, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the storefront.
//
// Fields:
//   - StoreDriver: record store backend, "sqlite" or "postgres".
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN (pgx).
//   - SessionSecret: HMAC key for signing the persisted session (HS256).
//     When empty, a key is generated once and persisted in the record
//     store, so sessions survive restarts.
//   - AdminEmail: the reserved administrator identity.
//   - AdminBootstrapPassword: secret used to lazily initialize the admin
//     credential digest on first use. Rotate it after first sign-in.
//   - MaxLoginAttempts / LockoutDuration: lockout policy parameters.
type Config struct {
	StoreDriver            string
	DatabaseDSN            string
	SessionSecret          string
	AdminEmail             string
	AdminBootstrapPassword string
	MaxLoginAttempts       int
	LockoutDuration        time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: The bootstrap password is insecure for production and should be
// rotated immediately after provisioning.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.DatabaseDSN = "storefront.db"
	c.SessionSecret = ""
	c.AdminEmail = "admin@shop.local"
	c.AdminBootstrapPassword = "admin123"
	c.MaxLoginAttempts = 5
	c.LockoutDuration = 15 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
