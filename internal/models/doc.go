// Package models defines the data model for the playlist conversion service.
//
// Two categories of types live here:
//
// 1. Transient values produced by the catalog clients:
//   - [Playlist] : playlist metadata in a platform-neutral shape
//   - [Track] : song metadata; YouTube entries carry id/title only
//
// 2. The durable conversion record:
//   - [ConversionJob] : one conversion request's full lifecycle, including
//     progress counters, matched/skipped name lists, and outcome
//   - [JobStatus] : forward-only state machine Pending → InProgress →
//     {Completed | Failed}
//   - [ConversionRequest] : caller-supplied inputs with optional overrides
//
// Track and Playlist values are immutable after construction and owned by the
// pipeline step that produced them; persisted job state is owned exclusively
// by the job store.
package models
