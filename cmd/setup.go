package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default config.toml so it can be edited.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("created config could not be loaded: %w", err)
	}
	r.config = config

	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Adjust [server] and [provider] in %s, or set SAAVNX_* variables in .env\n", configPath)
	r.writePlain("2. Run 'saavnx serve' to start the API on %s\n", config.Server.Addr())
	return nil
}

// SetupCheck loads a config file and reports whether it is valid.
func (r *Runner) SetupCheck(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := shared.LoadEnv(config, cmd.String("env")); err != nil {
		return err
	}

	r.writePlainHeader("Configuration")
	r.writePlain("Server:    %s\n", config.Server.Addr())
	r.writePlain("Provider:  %s\n", config.Provider.BaseURL)
	r.writePlain("Rate:      %.1f req/s (burst %d)\n", config.Provider.RequestsPerSecond, config.Provider.Burst)
	r.writePlain("Log level: %s\n", config.Log.Level)
	r.writePlain("Docs:      %s\n", config.Server.DocsURL)
	return nil
}

// Docs opens the API documentation in the default browser.
func (r *Runner) Docs(ctx context.Context, cmd *cli.Command) error {
	target := r.config.Server.DocsURL
	if target == "" {
		return fmt.Errorf("%w: server.docs_url", shared.ErrMissingConfig)
	}

	if cmd.Bool("print") {
		return r.writePlain("%s\n", target)
	}

	r.logger.Info("opening docs", "url", target)
	return shared.OpenBrowser(ctx, target)
}
