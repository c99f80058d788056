package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/services"
	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/desertthunder/saavnx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	provider   services.Provider
	dispatcher *dispatch.Dispatcher
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.BatchEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Provider   services.Provider
	Dispatcher *dispatch.Dispatcher
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// A dispatcher is built from the provider when none is given.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.API == nil {
		opts.API = services.NewAPIService("", opts.HTTPClient)
	}
	if opts.Dispatcher == nil && opts.Provider != nil {
		opts.Dispatcher = dispatch.NewDispatcher(opts.Provider, opts.Logger)
	}

	var engine *tasks.BatchEngine
	if opts.Dispatcher != nil {
		engine = tasks.NewBatchEngine(opts.Dispatcher, opts.Logger)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		provider:   opts.Provider,
		dispatcher: opts.Dispatcher,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the logger used by the runner and the services it owns.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.provider != nil {
		r.dispatcher = dispatch.NewDispatcher(r.provider, logger)
		r.engine = tasks.NewBatchEngine(r.dispatcher, logger)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, songCommand, albumCommand, playlistCommand, lyricsCommand, resultCommand,
		apiCommand, batchCommand, tuiCommand, setupCommand, docsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) requireDispatcher() error {
	if r.dispatcher == nil {
		return fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
