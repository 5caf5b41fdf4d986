// Package repositories implements SQLite persistence for conversion jobs.
//
// [ConversionRepository] is the durable job store behind the conversion
// pipeline. Every lifecycle transition is written through [ConversionRepository.Save]
// before the pipeline proceeds, so the persisted row is always the job's
// source of truth and survives process restarts.
//
// Track name lists are stored as JSON arrays in TEXT columns. Timestamps use
// nullable columns so completed_at stays NULL until a job reaches a terminal
// state.
//
// Sequence numbers provide stable, human-readable ordering independent of
// UUIDs and creation timestamps. The [NextSequence] function atomically
// increments per-table sequence counters in dedicated sequence tables.
package repositories
