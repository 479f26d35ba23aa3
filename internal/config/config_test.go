package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "storefront.db", cfg.DatabaseDSN)
	assert.Equal(t, "admin@shop.local", cfg.AdminEmail)
	assert.Equal(t, "admin123", cfg.AdminBootstrapPassword)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
}

func TestLoadConfigNoOverrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test"}

	cfg := LoadConfig()

	want := &Config{}
	want.LoadDefaults()
	assert.Equal(t, want, cfg)
}
