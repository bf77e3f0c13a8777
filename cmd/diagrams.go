package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwestlake/chordstand/internal/chords"
	"github.com/mwestlake/chordstand/internal/diagrams"
	"github.com/mwestlake/chordstand/internal/instruments"
	"github.com/urfave/cli/v3"
)

// Diagrams exports one SVG chord diagram per chord in a song sheet.
func (r *Runner) Diagrams(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSongFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	instName := cmd.String("instrument")
	if instName == "" {
		instName = r.config.Viewer.Instrument
	}
	inst, err := instruments.Lookup(instName)
	if err != nil {
		return err
	}

	song, err := r.parser.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse song: %w", err)
	}

	names := chords.Names(song)
	if len(names) == 0 {
		return r.writePlain("no chords found\n")
	}

	outDir := cmd.String("output")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range names {
		path := filepath.Join(outDir, diagramFilename(name))

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create diagram file: %w", err)
		}
		if err := diagrams.RenderSVG(f, inst, name); err != nil {
			f.Close()
			return fmt.Errorf("failed to render diagram for %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close diagram file: %w", err)
		}

		r.logger.Info("diagram written", "chord", name, "path", path)
	}

	r.writePlain("exported %d diagrams to %s\n", len(names), outDir)
	return nil
}

// diagramFilename maps a chord name to a filesystem-safe SVG filename.
func diagramFilename(chord string) string {
	name := strings.NewReplacer("#", "sharp", "/", "-").Replace(chord)
	return name + ".svg"
}
