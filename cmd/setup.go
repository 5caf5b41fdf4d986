package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"crossfade/internal/shared"
)

// Setup initializes the configuration file and database schema.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if cmd.Bool("create-config") {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		r.writePlain("Created %s\n", configPath)

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return err
		}
		r.config = config
	}

	path := cmd.String("db")
	if path == "" {
		path = r.config.Database.Path
	}

	db, err := r.openDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("database ready", "path", path)
	r.writePlain("Database initialized and migrations applied.\n")

	return nil
}
