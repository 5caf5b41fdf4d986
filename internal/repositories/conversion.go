package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

// ConversionRepository implements the job store over SQLite.
//
// One row per conversion, keyed by the job's uuid. Matched and skipped track
// name lists are stored as JSON arrays. Save is an upsert so the pipeline can
// flush the same record after every transition.
type ConversionRepository struct {
	db *sql.DB
}

// NewConversionRepository creates a ConversionRepository with the given
// database connection.
func NewConversionRepository(db *sql.DB) *ConversionRepository {
	return &ConversionRepository{db: db}
}

// Save inserts or updates the conversion record keyed by its ID.
func (r *ConversionRepository) Save(ctx context.Context, job *models.ConversionJob) error {
	matchedNames, err := json.Marshal(emptyIfNil(job.MatchedTrackNames))
	if err != nil {
		return fmt.Errorf("failed to encode matched track names: %w", err)
	}

	skippedNames, err := json.Marshal(emptyIfNil(job.SkippedTrackNames))
	if err != nil {
		return fmt.Errorf("failed to encode skipped track names: %w", err)
	}

	var completedAt any
	if job.CompletedAt != nil {
		completedAt = job.CompletedAt.UTC()
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM conversions WHERE id = ?)", job.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check conversion existence: %w", err)
	}

	if !exists {
		sequence, err := NextSequence(r.db, "conversions")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		query := `
			INSERT INTO conversions (
				id, sequence, source_url, account_id, status, playlist_id,
				playlist_url, error_message, total_tracks, matched_tracks,
				skipped_tracks, matched_track_names, skipped_track_names,
				created_at, completed_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = r.db.ExecContext(ctx, query,
			job.ID,
			sequence,
			job.SourceURL,
			job.AccountID,
			string(job.Status),
			job.PlaylistID,
			job.PlaylistURL,
			job.ErrorMessage,
			job.TotalTracks,
			job.MatchedTracks,
			job.SkippedTracks,
			string(matchedNames),
			string(skippedNames),
			job.CreatedAt.UTC(),
			completedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert conversion: %w", err)
		}
		return nil
	}

	query := `
		UPDATE conversions
		SET status = ?, playlist_id = ?, playlist_url = ?, error_message = ?,
			total_tracks = ?, matched_tracks = ?, skipped_tracks = ?,
			matched_track_names = ?, skipped_track_names = ?, completed_at = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		string(job.Status),
		job.PlaylistID,
		job.PlaylistURL,
		job.ErrorMessage,
		job.TotalTracks,
		job.MatchedTracks,
		job.SkippedTracks,
		string(matchedNames),
		string(skippedNames),
		completedAt,
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversion: %w", err)
	}

	return nil
}

// FindByID retrieves a conversion record by its ID.
//
// Fails with an error wrapping [shared.ErrJobNotFound] when no record exists.
func (r *ConversionRepository) FindByID(ctx context.Context, id string) (*models.ConversionJob, error) {
	query := selectColumns + " WHERE id = ?"
	job, err := r.scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
		}
		return nil, err
	}
	return job, nil
}

// FindByAccount retrieves all of an account's conversions, newest first.
func (r *ConversionRepository) FindByAccount(ctx context.Context, accountID string) ([]*models.ConversionJob, error) {
	query := selectColumns + " WHERE account_id = ? ORDER BY created_at DESC, sequence DESC"

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var jobs []*models.ConversionJob
	for rows.Next() {
		job, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

const selectColumns = `
	SELECT id, source_url, account_id, status, playlist_id, playlist_url,
		error_message, total_tracks, matched_tracks, skipped_tracks,
		matched_track_names, skipped_track_names, created_at, completed_at
	FROM conversions
`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *ConversionRepository) scanRow(row scanner) (*models.ConversionJob, error) {
	var (
		job          models.ConversionJob
		status       string
		matchedNames string
		skippedNames string
		completedAt  sql.NullTime
	)

	err := row.Scan(
		&job.ID,
		&job.SourceURL,
		&job.AccountID,
		&status,
		&job.PlaylistID,
		&job.PlaylistURL,
		&job.ErrorMessage,
		&job.TotalTracks,
		&job.MatchedTracks,
		&job.SkippedTracks,
		&matchedNames,
		&skippedNames,
		&job.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan conversion: %w", err)
	}

	job.Status = models.JobStatus(status)

	if err := json.Unmarshal([]byte(matchedNames), &job.MatchedTrackNames); err != nil {
		return nil, fmt.Errorf("failed to decode matched track names: %w", err)
	}
	if err := json.Unmarshal([]byte(skippedNames), &job.SkippedTrackNames); err != nil {
		return nil, fmt.Errorf("failed to decode skipped track names: %w", err)
	}

	if completedAt.Valid {
		t := completedAt.Time.UTC()
		job.CompletedAt = &t
	}

	return &job, nil
}

func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
