// package tasks implements batch resolution of catalog queries.
//
// The core abstraction is BatchEngine, which resolves many queries through the dispatcher with a worker pool.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
)

// QueryRunner answers a single query with an envelope. [dispatch.Dispatcher.Result] satisfies it.
type QueryRunner interface {
	Result(ctx context.Context, q models.RawQuery) models.Envelope
}

// BatchOpts contains configuration for batch runs.
type BatchOpts struct {
	Format     string  // Output format: json, csv, markdown, text
	OutputDir  string  // Base output directory (default: saavnx_batch_{epoch})
	NumWorkers int     // Concurrent workers (default: 4, max 10)
	RateLimit  float64 // Queries started per second (default: 2)
	Lyrics     bool    // Include lyrics in song records
	Limit      *int    // Truncate lists and songs sequences
	WithCover  bool    // Download cover art for markdown exports
}

// QueryJob is a single query queued for a worker.
type QueryJob struct {
	Index int
	Query string
}

// QueryResult is the outcome of one batch query.
type QueryResult struct {
	Index   int
	Query   string
	Kind    models.ResourceKind
	Success bool
	Error   error
	Files   []string
	Entries int // Songs or list entries in the envelope
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	TotalQueries    int
	Succeeded       int
	Failed          int
	OutputDirectory string
	ManifestPath    string
	Results         []QueryResult // Ordered by input position
}

// BatchEngine resolves query lists concurrently.
type BatchEngine struct {
	runner QueryRunner
	logger *log.Logger
}

// NewBatchEngine creates a [BatchEngine] backed by runner.
func NewBatchEngine(runner QueryRunner, logger *log.Logger) *BatchEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BatchEngine{runner: runner, logger: shared.WithLogger(logger, "component", "batch")}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BatchEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ReadQueries reads one query per line, skipping blank lines and lines starting with '#'.
func ReadQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries found", shared.ErrMissingInput)
	}
	return queries, nil
}
