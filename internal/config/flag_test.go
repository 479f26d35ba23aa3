package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-d", "shop.db", "-m", "owner@shop.example", "-n", "3", "-l", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "shop.db", cfg.DatabaseDSN)
	assert.Equal(t, "owner@shop.example", cfg.AdminEmail)
	assert.Equal(t, 3, cfg.MaxLoginAttempts)
	assert.Equal(t, 5*time.Minute, cfg.LockoutDuration)

	// Untouched flags keep their defaults.
	assert.Equal(t, "sqlite", cfg.StoreDriver)
}
