package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/formatter"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 2.0
	manifestFile     = "batch_manifest.json"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Run resolves queries concurrently with rate limiting and progress tracking.
//
// Queries are started no faster than opts.RateLimit per second and handled by a bounded worker pool.
// Each successful envelope is written in opts.Format; failures are recorded and do not stop the run.
// A manifest summarizing every query is written to the output directory.
func (e *BatchEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, queries []string, opts BatchOpts) (*BatchResult, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("%w: dispatcher not initialized", shared.ErrServiceUnavailable)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries", shared.ErrMissingInput)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if !slices.Contains(formatter.Formats, opts.Format) {
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("saavnx_batch_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := len(queries)
	result := &BatchResult{
		TotalQueries:    total,
		OutputDirectory: opts.OutputDir,
		Results:         make([]QueryResult, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan QueryJob, total)
	results := make(chan QueryResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.worker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		e.sendProgress(prog, startingUpdate(total, opts.NumWorkers))
		for i, query := range queries {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- QueryJob{Index: i, Query: query}
			e.sendProgress(prog, resolvingUpdate(i+1, total, query))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.Succeeded++
			e.sendProgress(prog, resolvedUpdate(completed, total, res.Query, len(res.Files)))
		} else {
			result.Failed++
			e.sendProgress(prog, failedUpdate(completed, total, res.Query, res.Error))
		}
	}

	slices.SortFunc(result.Results, func(a, b QueryResult) int { return a.Index - b.Index })

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("batch interrupted after %d of %d queries: %w", completed, total, err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestFile)
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("batch completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))

	e.logger.Info("batch finished", "total", total, "succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}

// worker resolves queries from the jobs channel until it is closed or ctx is done.
func (e *BatchEngine) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan QueryJob,
	results chan<- QueryResult,
	opts BatchOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.resolve(ctx, job, opts)
	}
}

// resolve runs one query and writes its envelope to disk.
func (e *BatchEngine) resolve(ctx context.Context, job QueryJob, opts BatchOpts) QueryResult {
	res := QueryResult{
		Index: job.Index,
		Query: job.Query,
		Kind:  dispatch.Classify(job.Query).Kind,
		Files: []string{},
	}

	q := models.RawQuery{Text: job.Query, Limit: opts.Limit}
	if opts.Lyrics {
		lyrics := "true"
		q.Lyrics = &lyrics
	}

	env := e.runner.Result(ctx, q)
	if !env.Status {
		msg := env.Error
		if msg == "" {
			msg = "no result"
		}
		res.Error = fmt.Errorf("%w: %s", shared.ErrNotFound, msg)
		return res
	}

	res.Entries = env.Result.Len()
	if env.Result.Shape == models.ShapeSingle {
		res.Entries = 1
	}

	path := filepath.Join(opts.OutputDir, outputName(job, opts.Format))
	files, err := formatter.WriteExport(ctx, env, opts.Format, path, opts.WithCover)
	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return res
	}

	res.Files = files
	res.Success = true
	return res
}

// outputName derives a stable file (or, for markdown, directory) name from the query position and text.
func outputName(job QueryJob, format string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(job.Query), "-"), "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	if slug == "" {
		slug = "query"
	}

	name := fmt.Sprintf("%03d_%s", job.Index+1, slug)
	switch format {
	case formatter.FormatMarkdown:
		return name
	case formatter.FormatText:
		return name + ".txt"
	case formatter.FormatCSV:
		return name + ".csv"
	default:
		return name + ".json"
	}
}
