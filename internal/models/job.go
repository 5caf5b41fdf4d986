package models

import (
	"strings"
	"time"
)

// JobStatus enumerates the lifecycle states of a conversion job.
//
// Transitions move forward only: Pending → InProgress → {Completed | Failed}.
// Terminal states are absorbing.
type JobStatus string

const (
	StatusPending    JobStatus = "PENDING"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a transition from s to next is allowed.
func (s JobStatus) CanTransition(next JobStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusFailed
	case StatusInProgress:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// ConversionJob is the durable record of one playlist conversion.
//
// The ID is the only stable external handle to progress. Inputs are immutable
// once set; progress fields are populated as the pipeline advances.
type ConversionJob struct {
	ID        string    `json:"conversion_id"`
	SourceURL string    `json:"youtube_playlist_url"`
	AccountID string    `json:"spotify_user_id"`
	Status    JobStatus `json:"status"`

	PlaylistID   string `json:"spotify_playlist_id,omitempty"`
	PlaylistURL  string `json:"spotify_playlist_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	TotalTracks   int `json:"total_tracks"`
	MatchedTracks int `json:"matched_tracks"`
	SkippedTracks int `json:"skipped_tracks"`

	MatchedTrackNames []string `json:"matched_track_names,omitempty"`
	SkippedTrackNames []string `json:"skipped_track_names,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewConversionJob creates a Pending job record for the given request.
func NewConversionJob(id string, req ConversionRequest) *ConversionJob {
	return &ConversionJob{
		ID:        id,
		SourceURL: req.SourceURL,
		AccountID: req.AccountID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Complete marks the job finished, recording the timestamp exactly once.
func (j *ConversionJob) Complete() {
	j.Status = StatusCompleted
	if j.CompletedAt == nil {
		now := time.Now().UTC()
		j.CompletedAt = &now
	}
}

// Fail marks the job failed with a human-readable message.
func (j *ConversionJob) Fail(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
	if j.CompletedAt == nil {
		now := time.Now().UTC()
		j.CompletedAt = &now
	}
}

// ConversionRequest carries the caller-supplied inputs for a conversion.
//
// Name, Description and Public are optional overrides; nil means the pipeline
// applies its defaults.
type ConversionRequest struct {
	SourceURL   string  `json:"youtube_playlist_url"`
	AccountID   string  `json:"spotify_user_id"`
	Name        *string `json:"playlist_name,omitempty"`
	Description *string `json:"playlist_description,omitempty"`
	Public      *bool   `json:"is_public,omitempty"`
}

// ExtractPlaylistID pulls the playlist identifier from the YouTube URL's
// "list" parameter. Returns "" when the URL carries none.
func (r ConversionRequest) ExtractPlaylistID() string {
	_, after, found := strings.Cut(r.SourceURL, "list=")
	if !found {
		return ""
	}
	if idx := strings.IndexByte(after, '&'); idx >= 0 {
		after = after[:idx]
	}
	return after
}
