package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/desertthunder/saavnx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Batch resolves every query in a file and exports each result.
//
// The file holds one query per line; "-" reads from stdin.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: batch engine not initialized", shared.ErrServiceUnavailable)
	}

	queries, err := r.readQueryFile(cmd.String("file"))
	if err != nil {
		return err
	}

	opts := tasks.BatchOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: r.config.Batch.Workers,
		RateLimit:  r.config.Batch.RateLimit,
		Lyrics:     cmd.Bool("lyrics"),
		WithCover:  cmd.Bool("cover"),
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Batch.OutputDir
	}
	if cmd.IsSet("workers") {
		opts.NumWorkers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}
	if cmd.IsSet("limit") {
		limit := int(cmd.Int("limit"))
		opts.Limit = &limit
	}

	progress := make(chan tasks.ProgressUpdate, len(queries)*3+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Run(ctx, progress, queries, opts)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	r.writePlainln("")
	r.writePlainHeader("Batch Summary")
	r.writePlain("Queries:   %d\n", result.TotalQueries)
	r.writePlain("Succeeded: %d\n", result.Succeeded)
	r.writePlain("Failed:    %d\n", result.Failed)
	r.writePlain("Output:    %s\n", result.OutputDirectory)
	r.writePlain("Manifest:  %s\n", result.ManifestPath)

	if result.Failed > 0 {
		r.writePlainln("Failed queries:")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  • %s: %v\n", res.Query, res.Error)
			}
		}
	}
	return nil
}

func (r *Runner) readQueryFile(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: --file", shared.ErrMissingArgument)
	}

	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open query file: %w", err)
		}
		defer f.Close()
		in = f
	}

	return tasks.ReadQueries(in)
}
