package main

import (
	"context"
	"log/slog"
	"os"

	"shopcore/internal/cli"
	"shopcore/internal/config"
	"shopcore/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewDefault(slog.LevelInfo)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(context.Background(), "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(context.Background())
}
