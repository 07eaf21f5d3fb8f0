package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/duet/internal/cache"
	"github.com/desertthunder/duet/internal/repositories"
	"github.com/desertthunder/duet/internal/services"
	"github.com/desertthunder/duet/internal/session"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/desertthunder/duet/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	api      services.API
	sessions *session.Store
	engine   *tasks.Engine
	local    *repositories.SnapshotAdapter
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	API      services.API
	Sessions *session.Store
	Local    *repositories.SnapshotAdapter
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
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
	if opts.API == nil {
		opts.API = services.NewClient(opts.Config.API.BaseURL, nil, opts.Config.API.RateLimit)
	}
	if opts.Sessions == nil {
		tokens := session.NewFileTokenStore(opts.Config.Session.TokenPath)
		opts.Sessions = session.NewStore(opts.API, tokens, opts.Logger)
	}

	engine := tasks.NewEngine(opts.API, cache.New(), opts.Sessions, snapshotter(opts.Local), opts.Logger)

	return &Runner{
		config:   opts.Config,
		api:      opts.API,
		sessions: opts.Sessions,
		engine:   engine,
		local:    opts.Local,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// snapshotter avoids handing the engine a typed nil when no local cache is
// configured.
func snapshotter(local *repositories.SnapshotAdapter) tasks.Snapshotter {
	if local == nil {
		return nil
	}
	return local
}

// SetLogger replaces the runner's logger, used by the TUI to redirect logs to
// a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, profileCommand, lastfmCommand, discoverCommand, matchesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireSession restores the persisted session and fails protected commands
// when no token is present.
func (r *Runner) requireSession() error {
	if err := r.sessions.Initialize(); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !r.sessions.Authenticated() {
		return fmt.Errorf("%w: run 'duet auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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

// drainProgress prints progress updates until the channel closes, signalling
// done when the printer goroutine exits.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()
	return done
}
