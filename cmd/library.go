package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryAdd parses a song sheet and stores it in the library.
//
// Title and artist default to the sheet's own directives; flags override.
func (r *Runner) LibraryAdd(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSongFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	title := cmd.String("title")
	artist := cmd.String("artist")

	if title == "" || artist == "" {
		song, err := r.parser.Parse(content)
		if err != nil {
			return fmt.Errorf("failed to parse song: %w", err)
		}
		if title == "" {
			title = song.Title
		}
		if artist == "" {
			artist = song.Artist
		}
	}

	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	stored, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to check library: %w", err)
	}
	key := shared.NormalizeSongKey(title, artist)
	for _, s := range stored {
		if shared.NormalizeSongKey(s.Title(), s.Artist()) == key {
			return fmt.Errorf("%w: %q is already in the library (id %s)", shared.ErrInvalidArgument, s.Title(), s.ID())
		}
	}

	entry := models.NewStoredSong(title, artist, content)
	if err := repo.Create(entry); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "id", entry.ID(), "title", entry.Title())
	r.writePlain("added %q (id %s)\n", entry.Title(), entry.ID())
	return nil
}

// LibraryList prints the stored songs.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if artist := cmd.String("artist"); artist != "" {
		criteria["artist"] = artist
	}

	songs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		entries := make([]map[string]any, 0, len(songs))
		for _, song := range songs {
			entries = append(entries, map[string]any{
				"id":     song.ID(),
				"title":  song.Title(),
				"artist": song.Artist(),
			})
		}
		return r.writeJSON(map[string]any{"songs": entries}, true)
	}

	if len(songs) == 0 {
		return r.writePlain("library is empty\n")
	}

	r.writePlainHeader(fmt.Sprintf("Song Library (%d)", len(songs)))
	for _, song := range songs {
		line := song.Title()
		if song.Artist() != "" {
			line += " - " + song.Artist()
		}
		r.writePlain("%s\n  id: %s\n", line, song.ID())
	}
	return nil
}

// LibraryExport renders every stored song to files on disk.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if artist := cmd.String("artist"); artist != "" {
		criteria["artist"] = artist
	}

	instrument := cmd.String("instrument")
	if instrument == "" {
		instrument = r.config.Viewer.Instrument
	}

	engine := tasks.NewExportEngine(repo, r.parser)

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, prog, criteria, tasks.BulkExportOpts{
		Format:       cmd.String("format"),
		Instrument:   instrument,
		OutputDir:    cmd.String("output"),
		NumWorkers:   cmd.Int("workers"),
		WithDiagrams: cmd.Bool("diagrams"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("exported %d/%d songs to %s\n", result.SuccessfulExports, result.TotalSongs, result.OutputDirectory)
	return nil
}

// LibraryShow prints a stored song sheet's raw text.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ID argument is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	song, err := repo.Get(id)
	if err != nil {
		return fmt.Errorf("failed to get song: %w", err)
	}

	content := song.Content()
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return r.writePlain("%s", content)
}

// LibraryRemove soft-deletes a stored song.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ID argument is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.logger.Info("song removed", "id", id)
	r.writePlain("removed %s\n", id)
	return nil
}
