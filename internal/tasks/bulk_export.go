package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mwestlake/chordstand/internal/chords"
	"github.com/mwestlake/chordstand/internal/diagrams"
	"github.com/mwestlake/chordstand/internal/formatter"
	"github.com/mwestlake/chordstand/internal/instruments"
	"github.com/mwestlake/chordstand/internal/shared"
)

// BulkExportOpts contains configuration for bulk library exports.
type BulkExportOpts struct {
	Format       string // Rendered body format: html or text (default: html)
	Instrument   string // Instrument for chord diagrams (default: Standard Ukulele)
	OutputDir    string // Base output directory (default: chordstand_export_{epoch})
	NumWorkers   int    // Concurrent workers (default: 5)
	WithDiagrams bool   // Also export SVG chord diagrams per song
}

// BulkExport renders every matching library song to disk concurrently.
//
// This method implements a worker pool pattern. It handles partial failures
// gracefully and generates a manifest file summarizing the export results.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	criteria map[string]any,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.songs == nil {
		return nil, fmt.Errorf("%w: song library not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("chordstand_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.Format == "" {
		opts.Format = "html"
	}
	if opts.Format != "html" && opts.Format != "text" {
		return nil, fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, opts.Format)
	}

	inst := instruments.Default()
	if opts.Instrument != "" {
		found, err := instruments.Lookup(opts.Instrument)
		if err != nil {
			return nil, err
		}
		inst = found
	}

	songs, err := e.songs.List(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SongExportResult, 0, len(songs)),
	}

	e.sendProgress(prog, loadingSongsUpdate(len(songs)))

	jobs := make(chan exportJob, len(songs))
	results := make(chan SongExportResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, inst, opts)
	}

	go func() {
		for i, song := range songs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			e.sendProgress(prog, exportingSongUpdate(i+1, len(songs), song.Title()))
			jobs <- exportJob{song: song, step: i + 1}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(songs), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(songs), res.Title, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, writingManifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports songs from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- SongExportResult,
	inst instruments.Instrument,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleSong(job, inst, opts)
	}
}

// exportSingleSong renders one song and writes its files.
func (e *ExportEngine) exportSingleSong(j exportJob, inst instruments.Instrument, opts BulkExportOpts) SongExportResult {
	result := SongExportResult{
		SongID:  j.song.ID(),
		Title:   j.song.Title(),
		Success: false,
		Files:   []string{},
	}

	song, err := e.parser.Parse(j.song.Content())
	if err != nil {
		result.Error = fmt.Errorf("failed to parse song: %w", err)
		return result
	}

	base := exportSlug(j.song.Title(), j.song.ID())

	var body, ext string
	if opts.Format == "text" {
		body, ext = formatter.Text(song), ".txt"
	} else {
		body, ext = formatter.HTML(song), ".html"
	}

	bodyPath := filepath.Join(opts.OutputDir, base+ext)
	if err := os.WriteFile(bodyPath, []byte(body), 0644); err != nil {
		result.Error = fmt.Errorf("failed to write rendered song: %w", err)
		return result
	}
	result.Files = append(result.Files, bodyPath)

	if opts.WithDiagrams {
		diagramDir := filepath.Join(opts.OutputDir, base)
		if err := os.MkdirAll(diagramDir, 0755); err != nil {
			result.Error = fmt.Errorf("failed to create diagram directory: %w", err)
			return result
		}

		for _, name := range chords.Names(song) {
			path := filepath.Join(diagramDir, exportSlug(name, name)+".svg")
			f, err := os.Create(path)
			if err != nil {
				result.Error = fmt.Errorf("failed to create diagram file: %w", err)
				return result
			}
			if err := diagrams.RenderSVG(f, inst, name); err != nil {
				f.Close()
				result.Error = fmt.Errorf("failed to render diagram for %s: %w", name, err)
				return result
			}
			if err := f.Close(); err != nil {
				result.Error = fmt.Errorf("failed to close diagram file: %w", err)
				return result
			}
			result.Files = append(result.Files, path)
		}
	}

	result.Success = true
	return result
}

// writeManifest summarizes the export as JSON next to the exported files.
func writeManifest(result *BulkExportResult, path string) error {
	type manifestEntry struct {
		SongID  string   `json:"song_id"`
		Title   string   `json:"title"`
		Success bool     `json:"success"`
		Files   []string `json:"files"`
		Error   string   `json:"error,omitempty"`
	}

	entries := make([]manifestEntry, 0, len(result.Results))
	for _, res := range result.Results {
		entry := manifestEntry{
			SongID:  res.SongID,
			Title:   res.Title,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(map[string]any{
		"total":      result.TotalSongs,
		"successful": result.SuccessfulExports,
		"failed":     result.FailedExports,
		"songs":      entries,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// exportSlug maps a display name to a filesystem-safe base name.
func exportSlug(name, fallback string) string {
	slug := strings.TrimSpace(strings.ToLower(name))
	slug = strings.NewReplacer(" ", "-", "#", "sharp", "/", "-").Replace(slug)

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
