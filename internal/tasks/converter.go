package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"crossfade/internal/auth"
	"crossfade/internal/matcher"
	"crossfade/internal/models"
	"crossfade/internal/shared"
)

// SourceCatalog reads playlists from the source platform.
type SourceCatalog interface {
	// GetPlaylistInfo retrieves playlist metadata by ID.
	GetPlaylistInfo(ctx context.Context, playlistID string) (*models.Playlist, error)

	// GetPlaylistTracks retrieves the playlist's full track list in listing order.
	GetPlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error)
}

// DestinationCatalog searches tracks and writes playlists on the destination
// platform. Access tokens are threaded explicitly into every call.
type DestinationCatalog interface {
	// SearchTrack issues a best-effort top-1 lookup; (nil, nil) means no match.
	SearchTrack(ctx context.Context, query, token string) (*models.Track, error)

	// CreatePlaylist creates an empty playlist for the account.
	CreatePlaylist(ctx context.Context, accountID, name, description string, public bool, token string) (*models.Playlist, error)

	// AddTracksToPlaylist appends track URIs in bounded batches, in order.
	AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string, token string) error

	// TrackURI converts a track ID to the URI form the write API expects.
	TrackURI(trackID string) string
}

// JobStore persists conversion job records.
type JobStore interface {
	// Save inserts or updates a job record keyed by its ID.
	Save(ctx context.Context, job *models.ConversionJob) error

	// FindByID returns the job record, or an error wrapping
	// [shared.ErrJobNotFound] when no record exists for the ID.
	FindByID(ctx context.Context, id string) (*models.ConversionJob, error)

	// FindByAccount returns the account's job records, newest first.
	FindByAccount(ctx context.Context, accountID string) ([]*models.ConversionJob, error)
}

// Converter orchestrates playlist conversions end to end.
type Converter struct {
	source SourceCatalog
	dest   DestinationCatalog
	store  JobStore
	tokens auth.TokenStore
	pool   *Pool
	logger *log.Logger
}

// ConverterOpts contains the collaborators a Converter depends on.
type ConverterOpts struct {
	Source SourceCatalog
	Dest   DestinationCatalog
	Store  JobStore
	Tokens auth.TokenStore
	Pool   *Pool
	Logger *log.Logger
}

// NewConverter creates a Converter with the provided collaborators.
// A nil Pool gets default sizing; a nil Logger discards output.
func NewConverter(opts ConverterOpts) *Converter {
	if opts.Pool == nil {
		opts.Pool = NewPool(0, 0, opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Converter{
		source: opts.Source,
		dest:   opts.Dest,
		store:  opts.Store,
		tokens: opts.Tokens,
		pool:   opts.Pool,
		logger: opts.Logger,
	}
}

// Initiate accepts a conversion request and schedules its pipeline.
//
// A Pending job record is durably persisted before Initiate returns, so a
// Status call with the returned ID always finds it. The pipeline itself runs
// on the worker pool and never blocks the caller (beyond the pool's
// run-on-caller saturation fallback).
func (c *Converter) Initiate(ctx context.Context, req models.ConversionRequest) (string, error) {
	id := shared.GenerateID()
	job := models.NewConversionJob(id, req)

	if err := c.store.Save(ctx, job); err != nil {
		return "", fmt.Errorf("failed to persist conversion record: %w", err)
	}

	c.logger.Info("conversion initiated", "conversion", id, "account", req.AccountID)

	c.pool.Submit(func() {
		// The pipeline outlives the initiating request.
		c.run(context.Background(), id, req)
	})

	return id, nil
}

// Status returns the current persisted record for the job.
//
// The record is a snapshot: the job may advance between read and use. Fails
// with [shared.ErrJobNotFound] for unknown identifiers.
func (c *Converter) Status(ctx context.Context, id string) (*models.ConversionJob, error) {
	return c.store.FindByID(ctx, id)
}

// ListJobs returns all of the account's conversions, newest first.
func (c *Converter) ListJobs(ctx context.Context, accountID string) ([]*models.ConversionJob, error) {
	return c.store.FindByAccount(ctx, accountID)
}

// run executes the conversion pipeline for one job.
//
// Every state transition is flushed to the store before the next step begins.
// Any fault transitions the job to Failed exactly once with a human-readable
// message; nothing escapes the pipeline boundary.
func (c *Converter) run(ctx context.Context, id string, req models.ConversionRequest) {
	logger := c.logger.With("conversion", id)

	job, err := c.store.FindByID(ctx, id)
	if err != nil {
		logger.Error("conversion record vanished before pipeline start", "err", err)
		return
	}

	if err := c.convert(ctx, logger, job, req); err != nil {
		logger.Error("conversion failed", "err", err)
		job.Fail(err.Error())
		c.persist(ctx, logger, job)
		return
	}

	logger.Info("conversion completed",
		"matched", job.MatchedTracks, "skipped", job.SkippedTracks, "playlist", job.PlaylistID)
}

// convert walks the pipeline steps, mutating and persisting job as it goes.
// Returning an error leaves the Failed transition to the caller.
func (c *Converter) convert(ctx context.Context, logger *log.Logger, job *models.ConversionJob, req models.ConversionRequest) error {
	// Step 1: extract the source playlist reference. A bad URL is a caller
	// input error and fails the job straight from Pending.
	playlistID := req.ExtractPlaylistID()
	if playlistID == "" {
		return fmt.Errorf("%w: %s", shared.ErrInvalidPlaylistURL, req.SourceURL)
	}

	c.transition(ctx, logger, job, models.StatusInProgress)

	// Step 2: fetch source metadata and the full track list.
	srcPlaylist, err := c.source.GetPlaylistInfo(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch YouTube playlist: %w", err)
	}
	logger.Info("fetched source playlist", "name", srcPlaylist.Name, "tracks", srcPlaylist.TrackCount)

	tracks, err := c.source.GetPlaylistTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch YouTube playlist tracks: %w", err)
	}

	job.TotalTracks = len(tracks)
	c.persist(ctx, logger, job)

	// Step 3: resolve the destination credential. Absence is fatal for this run.
	token, ok := c.tokens.Get(req.AccountID)
	if !ok {
		return fmt.Errorf("%w for account %s", shared.ErrNoAccessToken, req.AccountID)
	}

	// Step 4: match each source track independently. A miss is a skip, never
	// a failure; only a destination-service fault aborts.
	var (
		uris         []string
		matchedNames []string
		skippedNames []string
	)

	for _, track := range tracks {
		query := matcher.PrepareSearchQuery(track.Title)

		match, err := c.dest.SearchTrack(ctx, query, token)
		if err != nil {
			return fmt.Errorf("destination search aborted: %w", err)
		}

		if match == nil {
			skippedNames = append(skippedNames, track.Title)
			logger.Debug("skipped", "title", track.Title)
			continue
		}

		uris = append(uris, c.dest.TrackURI(match.ID))
		matchedNames = append(matchedNames, match.Artist+" - "+match.Title)
		logger.Debug("matched", "title", track.Title, "match", match.Title,
			"confidence", fmt.Sprintf("%.2f", matcher.Confidence(query, match.Title, match.Artist)))
	}

	// Step 5: create the destination playlist.
	name := fmt.Sprintf("Converted from YouTube: %s", srcPlaylist.Name)
	if req.Name != nil {
		name = *req.Name
	}

	description := "Playlist converted from YouTube using Crossfade"
	if req.Description != nil {
		description = *req.Description
	}

	public := false
	if req.Public != nil {
		public = *req.Public
	}

	destPlaylist, err := c.dest.CreatePlaylist(ctx, req.AccountID, name, description, public, token)
	if err != nil {
		return err
	}
	logger.Info("created destination playlist", "playlist", destPlaylist.ID)

	// Step 6: populate it. A failed batch leaves the playlist partially
	// populated; that is surfaced through the Failed state, not rolled back.
	if len(uris) > 0 {
		if err := c.dest.AddTracksToPlaylist(ctx, destPlaylist.ID, uris, token); err != nil {
			return err
		}
	}

	// Step 7: record the outcome.
	job.PlaylistID = destPlaylist.ID
	job.PlaylistURL = destPlaylist.ExternalURL
	job.MatchedTracks = len(matchedNames)
	job.SkippedTracks = len(skippedNames)
	job.MatchedTrackNames = matchedNames
	job.SkippedTrackNames = skippedNames
	job.Complete()
	c.persist(ctx, logger, job)

	return nil
}

// transition advances the job's status and flushes it, refusing backward moves.
func (c *Converter) transition(ctx context.Context, logger *log.Logger, job *models.ConversionJob, next models.JobStatus) {
	if !job.Status.CanTransition(next) {
		logger.Warn("refusing status transition", "from", job.Status, "to", next)
		return
	}
	job.Status = next
	c.persist(ctx, logger, job)
}

// persist flushes the job record. Store failures are logged, not propagated:
// the pipeline's in-memory state remains authoritative for its own run.
func (c *Converter) persist(ctx context.Context, logger *log.Logger, job *models.ConversionJob) {
	if err := c.store.Save(ctx, job); err != nil {
		logger.Error("failed to persist conversion record", "status", job.Status, "err", err)
	}
}
