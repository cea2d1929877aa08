package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/services"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify *services.SpotifyService
	genius  *services.GeniusService
	logger  *log.Logger
	output  io.Writer
	db      *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify *services.SpotifyService
	Genius  *services.GeniusService
	Logger  *log.Logger
	Output  io.Writer
	DB      *sql.DB
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

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		genius:  opts.Genius,
		logger:  opts.Logger,
		output:  opts.Output,
		db:      opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, harvestCommand, gameCommand, playCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the active logger, used by the TUI to redirect output to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// openDB opens (and caches) the configured SQLite database.
func (r *Runner) openDB() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	return db, nil
}

// newRNG builds the random source for stage generation. A non-zero seed gives
// reproducible games.
func (r *Runner) newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// gameEngine wires a GameEngine over the shared database connection.
func (r *Runner) gameEngine(seed int64) (*tasks.GameEngine, error) {
	if r.genius == nil {
		return nil, fmt.Errorf("%w: Genius client not initialized (set credentials.genius.client_token)", shared.ErrServiceUnavailable)
	}

	db, err := r.openDB()
	if err != nil {
		return nil, err
	}

	rng := r.newRNG(seed)
	synth := r.genius.Synthesizer(rng)

	engine := tasks.NewGameEngine(
		repositories.NewAssetRepository(db),
		repositories.NewGameRepository(db),
		synth,
		rng,
	)
	engine.SetChoiceSize(r.config.Game.ChoiceSize)
	return engine, nil
}

// playEngine wires a PlayEngine over the shared database connection.
func (r *Runner) playEngine() (*tasks.PlayEngine, error) {
	db, err := r.openDB()
	if err != nil {
		return nil, err
	}
	return tasks.NewPlayEngine(
		repositories.NewGameRepository(db),
		repositories.NewScoreboardRepository(db),
	), nil
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
