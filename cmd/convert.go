package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"crossfade/internal/models"
	"crossfade/internal/repositories"
	"crossfade/internal/tasks"
)

// Convert runs a single conversion from the terminal and waits for the result.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	pool := tasks.NewPool(1, 1, r.logger)
	defer pool.Shutdown()

	converter, _ := r.buildConverter(db, pool)

	account := cmd.String("account")
	r.tokens.Put(account, cmd.String("token"))

	req := models.ConversionRequest{
		SourceURL: cmd.String("url"),
		AccountID: account,
	}
	if name := cmd.String("name"); name != "" {
		req.Name = &name
	}
	if description := cmd.String("description"); description != "" {
		req.Description = &description
	}
	if cmd.Bool("public") {
		public := true
		req.Public = &public
	}

	id, err := converter.Initiate(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("Conversion %s started\n", id)

	job, err := r.awaitConversion(ctx, converter, id)
	if err != nil {
		return err
	}

	switch job.Status {
	case models.StatusCompleted:
		r.writePlain("Completed: %d matched, %d skipped of %d tracks\n",
			job.MatchedTracks, job.SkippedTracks, job.TotalTracks)
		r.writePlain("Playlist: %s\n", job.PlaylistURL)
	case models.StatusFailed:
		r.writePlain("Failed: %s\n", job.ErrorMessage)
	}

	return nil
}

// awaitConversion polls the job store until the conversion reaches a terminal
// state or the context is cancelled.
func (r *Runner) awaitConversion(ctx context.Context, converter *tasks.Converter, id string) (*models.ConversionJob, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			job, err := converter.Status(ctx, id)
			if err != nil {
				return nil, err
			}
			if job.Status.Terminal() {
				return job, nil
			}
		}
	}
}

// Status reports a single conversion's persisted state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewConversionRepository(db)

	job, err := repo.FindByID(ctx, cmd.String("id"))
	if err != nil {
		return fmt.Errorf("failed to load conversion: %w", err)
	}

	return r.writeJSON(job, cmd.Bool("pretty"))
}

// Jobs lists an account's conversions, newest first.
func (r *Runner) Jobs(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewConversionRepository(db)

	jobs, err := repo.FindByAccount(ctx, cmd.String("account"))
	if err != nil {
		return fmt.Errorf("failed to list conversions: %w", err)
	}

	return r.writeJSON(jobs, cmd.Bool("pretty"))
}
