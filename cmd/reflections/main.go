package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/reflections/internal/cli"
	"github.com/JonMunkholm/reflections/internal/config"
	"github.com/JonMunkholm/reflections/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Overload lets a local .env win over inherited variables.
	envLoaded := godotenv.Overload() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ "+err.Error())
		return cli.ExitCodeError
	}

	closer, err := logging.Setup(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ "+err.Error())
		return cli.ExitCodeError
	}
	defer closer.Close()

	slog.Debug("configuration loaded", "env_file", envLoaded, "config", cfg.String())

	return cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, cfg)
}
