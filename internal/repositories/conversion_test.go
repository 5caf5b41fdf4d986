package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newTestJob(id, accountID string) *models.ConversionJob {
	return models.NewConversionJob(id, models.ConversionRequest{
		SourceURL: "https://www.youtube.com/playlist?list=PLtest" + id,
		AccountID: accountID,
	})
}

func TestConversionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndFindByID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)
		job := newTestJob("conv-1", "user-1")

		if err := repo.Save(ctx, job); err != nil {
			t.Fatalf("failed to save job: %v", err)
		}

		retrieved, err := repo.FindByID(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to find job: %v", err)
		}

		if retrieved.ID != job.ID {
			t.Errorf("expected ID %s, got %s", job.ID, retrieved.ID)
		}

		if retrieved.Status != models.StatusPending {
			t.Errorf("expected status %s, got %s", models.StatusPending, retrieved.Status)
		}

		if retrieved.SourceURL != job.SourceURL {
			t.Errorf("expected source URL %s, got %s", job.SourceURL, retrieved.SourceURL)
		}

		if retrieved.CompletedAt != nil {
			t.Error("completed_at should be nil for a pending job")
		}
	})

	t.Run("SaveUpdatesExistingRecord", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)
		job := newTestJob("conv-2", "user-1")

		if err := repo.Save(ctx, job); err != nil {
			t.Fatalf("failed to save job: %v", err)
		}

		job.Status = models.StatusInProgress
		job.TotalTracks = 10
		if err := repo.Save(ctx, job); err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		job.PlaylistID = "sp-playlist"
		job.PlaylistURL = "https://open.spotify.com/playlist/sp-playlist"
		job.MatchedTracks = 8
		job.SkippedTracks = 2
		job.MatchedTrackNames = []string{"Artist One - Song One", "Artist Two - Song Two"}
		job.SkippedTrackNames = []string{"Unmatchable Title"}
		job.Complete()
		if err := repo.Save(ctx, job); err != nil {
			t.Fatalf("failed to complete job: %v", err)
		}

		retrieved, err := repo.FindByID(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to find job: %v", err)
		}

		if retrieved.Status != models.StatusCompleted {
			t.Errorf("expected status %s, got %s", models.StatusCompleted, retrieved.Status)
		}

		if retrieved.MatchedTracks != 8 || retrieved.SkippedTracks != 2 {
			t.Errorf("expected counts 8/2, got %d/%d", retrieved.MatchedTracks, retrieved.SkippedTracks)
		}

		if len(retrieved.MatchedTrackNames) != 2 {
			t.Fatalf("expected 2 matched names, got %d", len(retrieved.MatchedTrackNames))
		}

		if retrieved.MatchedTrackNames[0] != "Artist One - Song One" {
			t.Errorf("unexpected matched name: %s", retrieved.MatchedTrackNames[0])
		}

		if len(retrieved.SkippedTrackNames) != 1 {
			t.Fatalf("expected 1 skipped name, got %d", len(retrieved.SkippedTrackNames))
		}

		if retrieved.CompletedAt == nil {
			t.Error("completed_at should be set for a completed job")
		}
	})

	t.Run("SavePersistsFailure", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)
		job := newTestJob("conv-3", "user-1")
		job.Status = models.StatusInProgress
		job.Fail("no access token found for account user-1")

		if err := repo.Save(ctx, job); err != nil {
			t.Fatalf("failed to save job: %v", err)
		}

		retrieved, err := repo.FindByID(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to find job: %v", err)
		}

		if retrieved.Status != models.StatusFailed {
			t.Errorf("expected status %s, got %s", models.StatusFailed, retrieved.Status)
		}

		if retrieved.ErrorMessage != "no access token found for account user-1" {
			t.Errorf("unexpected error message: %s", retrieved.ErrorMessage)
		}

		if retrieved.CompletedAt == nil {
			t.Error("completed_at should be set for a failed job")
		}
	})

	t.Run("FindByIDNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)

		_, err := repo.FindByID(ctx, "missing")
		if err == nil {
			t.Fatal("expected an error for an unknown ID")
		}

		if !errors.Is(err, shared.ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("FindByAccountNewestFirst", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)

		for _, id := range []string{"conv-a", "conv-b", "conv-c"} {
			if err := repo.Save(ctx, newTestJob(id, "user-2")); err != nil {
				t.Fatalf("failed to save job %s: %v", id, err)
			}
		}

		if err := repo.Save(ctx, newTestJob("conv-other", "someone-else")); err != nil {
			t.Fatalf("failed to save job: %v", err)
		}

		jobs, err := repo.FindByAccount(ctx, "user-2")
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}

		if len(jobs) != 3 {
			t.Fatalf("expected 3 jobs, got %d", len(jobs))
		}

		// Same-timestamp rows fall back to sequence ordering, so the most
		// recently inserted job comes first.
		if jobs[0].ID != "conv-c" || jobs[2].ID != "conv-a" {
			t.Errorf("unexpected ordering: %s, %s, %s", jobs[0].ID, jobs[1].ID, jobs[2].ID)
		}
	})

	t.Run("FindByAccountEmpty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewConversionRepository(db)

		jobs, err := repo.FindByAccount(ctx, "nobody")
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}

		if len(jobs) != 0 {
			t.Errorf("expected no jobs, got %d", len(jobs))
		}
	})
}
