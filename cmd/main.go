package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/services"
	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	if err := shared.LoadEnv(config, ".env"); err != nil {
		logger.Fatalf("invalid environment: %v", err)
	}

	if level, err := shared.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	provider := services.NewSaavnServiceFromConfig(config.Provider, logger)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Provider:   provider,
		Dispatcher: dispatch.NewDispatcher(provider, logger),
		API:        services.NewAPIService("", nil),
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "saavnx",
		Usage:    "Search and fetch songs, albums, playlists and lyrics from JioSaavn",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
