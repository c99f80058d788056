// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/saavnx/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the JSON API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to bind (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// apiCommand handles direct calls against a running server
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to a running saavnx server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the server, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "server",
						Usage: "Server base URL",
						Value: "http://localhost:5100",
					},
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"q"},
						Usage:   "Query parameter as key=value (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// batchCommand resolves a file of queries concurrently
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Resolve a file of queries (one per line) and export each result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Query file, or - for stdin",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: batch.output_dir)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown or text",
				Value:   formatter.FormatJSON,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent workers (max 10)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Queries started per second",
			},
			&cli.BoolFlag{
				Name:  "lyrics",
				Usage: "Include lyrics in song records",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Keep only the first N songs of each result",
			},
			&cli.BoolFlag{
				Name:  "cover",
				Usage: "Download cover art for markdown exports",
			},
		},
		Action: r.Batch,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for catalog search",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Keep only the first N songs of each result",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/saavnx-tui.log",
			},
		},
		Action: r.TUI,
	}
}

// setupCommand handles configuration setup.
func setupCommand(r *Runner) *cli.Command {
	configFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		}
	}

	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a default config.toml",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:  "check",
				Usage: "Validate a config file and print the effective settings",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "env",
						Usage: "Optional dotenv file applied on top of the config",
						Value: ".env",
					},
				},
				Action: r.SetupCheck,
			},
		},
	}
}

// docsCommand opens the API documentation
func docsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "docs",
		Usage: "Open the API documentation in a browser",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the URL instead of opening it",
			},
		},
		Action: r.Docs,
	}
}
