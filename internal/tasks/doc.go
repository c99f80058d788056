// Package tasks resolves lists of catalog queries with real-time progress reporting.
//
// # Batch Resolution
//
// [BatchEngine.Run] feeds each query through a [QueryRunner] (the dispatcher's unified result operation):
//   - queries are started by a producer throttled with a [rate.Limiter]
//   - a bounded pool of workers resolves them and writes each envelope with the formatter package
//   - failures are recorded per query and never stop the run
//   - a batch_manifest.json summarizes every query, in input order
//
// [ReadQueries] parses the one-query-per-line input files used by the CLI.
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
