package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/ui"
	"github.com/mwestlake/chordstand/internal/viewer"
	"github.com/urfave/cli/v3"
)

// View launches the interactive terminal song viewer.
//
// The song comes from a FILE argument or a library entry via --id.
func (r *Runner) View(ctx context.Context, cmd *cli.Command) error {
	file := cmd.StringArg("file")
	id := cmd.String("id")

	if file == "" && id == "" {
		return fmt.Errorf("%w: provide a FILE argument or --id", shared.ErrMissingArgument)
	}
	if file != "" && id != "" {
		return fmt.Errorf("%w: cannot combine a FILE argument with --id", shared.ErrInvalidArgument)
	}

	var loader ui.Loader
	if file != "" {
		loader = func() (string, error) {
			return r.readSongFile(file)
		}
	} else {
		loader = func() (string, error) {
			db, repo, err := r.openLibrary()
			if err != nil {
				return "", err
			}
			defer db.Close()

			song, err := repo.Get(id)
			if err != nil {
				return "", fmt.Errorf("failed to get song: %w", err)
			}
			return song.Content(), nil
		}
	}

	opts := r.viewerOptions("")
	// The panel is the point of the interactive viewer; text mode suits a
	// terminal better than raw HTML markup.
	opts.Format = viewer.ModeText
	opts.ShowChords = true
	if inst := cmd.String("instrument"); inst != "" {
		opts.Instrument = inst
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/chordstand-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	v := viewer.New(opts, r.parser, fileLogger)
	model := ui.NewModel(v, loader, fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	return nil
}
