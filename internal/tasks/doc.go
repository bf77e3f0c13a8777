// Package tasks orchestrates bulk operations over the song library with real-time progress reporting.
//
// # Core Operation
//
// [ExportEngine.BulkExport] renders every matching library song to disk:
//   - Lists songs from a [SongSource] (the song repository)
//   - Renders each song body as HTML or plain text via a worker pool
//   - Optionally writes one SVG chord diagram per chord and song
//   - Writes a JSON manifest summarizing successes and failures
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Failure Handling
//
// A song that fails to parse or write is recorded in the result and the
// manifest; it never aborts the remaining exports.
package tasks
