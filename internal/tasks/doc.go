// Package tasks orchestrates playlist conversions between YouTube and Spotify.
//
// # Pipeline
//
// [Converter.Initiate] persists a Pending job record and submits the pipeline
// to a bounded [Pool]; the caller gets the job id back immediately and polls
// [Converter.Status]. The pipeline then runs to completion on one worker:
//
//  1. Extract the playlist id from the source URL
//  2. Fetch source playlist metadata and the full (paginated) track list
//  3. Resolve the account's destination access token
//  4. Normalize each title and search the destination catalog; misses become
//     skips, never failures
//  5. Create the destination playlist (templated name/description defaults,
//     private unless requested)
//  6. Append matched tracks in batches of at most 100
//  7. Record counts, name lists, and the playlist link; mark Completed
//
// Every state transition is flushed to the [JobStore] before the next step,
// so a concurrent status read never observes a state the job has already
// passed. Any fault marks the job Failed exactly once with the fault's
// message; a job is never left InProgress on error.
//
// # Scheduling
//
// [Pool] runs pipelines on a small fixed worker set with a bounded backlog.
// When saturated, a submission runs synchronously on the caller's goroutine
// rather than being dropped. Track searches within a pipeline are sequential,
// trading throughput for simplicity and for the catalogs' rate limits. There
// is no cancellation primitive: once scheduled, a pipeline completes or fails.
package tasks
