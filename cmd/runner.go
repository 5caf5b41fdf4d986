package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"crossfade/internal/auth"
	"crossfade/internal/repositories"
	"crossfade/internal/services"
	"crossfade/internal/shared"
	"crossfade/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	tokens     auth.TokenStore
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Tokens     auth.TokenStore
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Tokens == nil {
		opts.Tokens = auth.NewMemoryTokenStore()
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		tokens:     opts.Tokens,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, convertCommand, statusCommand, jobsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured SQLite database with migrations applied.
func (r *Runner) openDatabase(path string) (*sql.DB, error) {
	if path == "" {
		path = r.config.Database.Path
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// buildConverter assembles the conversion pipeline from the configuration.
// The Spotify client is returned alongside since OAuth handling needs it too.
func (r *Runner) buildConverter(db *sql.DB, pool *tasks.Pool) (*tasks.Converter, *services.SpotifyService) {
	youtube := services.NewYouTubeService(
		r.config.Credentials.YouTube.BaseURL,
		r.config.Credentials.YouTube.APIKey,
		r.httpClient,
	)
	spotify := services.NewSpotifyService("", r.httpClient, r.logger)

	converter := tasks.NewConverter(tasks.ConverterOpts{
		Source: youtube,
		Dest:   spotify,
		Store:  repositories.NewConversionRepository(db),
		Tokens: r.tokens,
		Pool:   pool,
		Logger: r.logger,
	})

	return converter, spotify
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
