// package tasks implements bulk operations over the song library.
//
// The core abstraction is ExportEngine, which renders stored songs to disk
// concurrently. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/songtext"
)

// SongSource supplies the library entries an operation works over.
//
// Satisfied by [repositories.SongRepository].
type SongSource interface {
	List(criteria map[string]any) ([]*models.StoredSong, error)
}

// SongExportResult represents the outcome of exporting a single song.
type SongExportResult struct {
	SongID  string   // Library id of the song
	Title   string   // Song title for display
	Success bool     // Whether the export succeeded
	Files   []string // Paths of all files written for this song
	Error   error    // Error if the export failed
}

// BulkExportResult contains all data from a bulk export operation.
type BulkExportResult struct {
	TotalSongs        int                // Songs processed
	SuccessfulExports int                // Songs exported without error
	FailedExports     int                // Songs that failed to export
	OutputDirectory   string             // Base output directory
	ManifestPath      string             // Path of the manifest file
	Results           []SongExportResult // Individual song results
}

// exportJob carries one song through the worker pool.
type exportJob struct {
	song *models.StoredSong
	step int
}

// ExportEngine renders library songs to files on disk.
type ExportEngine struct {
	songs  SongSource
	parser songtext.Parser
}

// NewExportEngine creates an engine over the given song source.
func NewExportEngine(songs SongSource, parser songtext.Parser) *ExportEngine {
	if parser == nil {
		parser = songtext.ChordPro{}
	}
	return &ExportEngine{songs: songs, parser: parser}
}

// sendProgress delivers an update without blocking; slow consumers drop
// intermediate updates rather than stalling the export.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
