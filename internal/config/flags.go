package config

import (
	"flag"
	"os"
	"time"

	"shopcore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   store driver ("sqlite" or "postgres")
//	-d string   SQLite path or PostgreSQL DSN
//	-s string   session signing secret
//	-m string   administrator email
//	-p string   administrator bootstrap password
//	-n int      max failed sign-in attempts before lockout
//	-l int      lockout duration, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-d", "-s", "-m", "-p", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StoreDriver, "r", config.StoreDriver, "record store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN or file path")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session signing secret")
	fs.StringVar(&config.AdminEmail, "m", config.AdminEmail, "administrator email")
	fs.StringVar(&config.AdminBootstrapPassword, "p", config.AdminBootstrapPassword, "administrator bootstrap password")
	fs.IntVar(&config.MaxLoginAttempts, "n", config.MaxLoginAttempts, "max failed sign-in attempts")

	lockoutDuration := fs.Int("l", int(config.LockoutDuration.Minutes()), "lockout duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LockoutDuration = time.Duration(*lockoutDuration) * time.Minute
}
