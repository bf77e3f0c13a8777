package main

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/mwestlake/chordstand/internal/chords"
	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/viewer"
	"github.com/urfave/cli/v3"
)

// viewerOptions builds viewer options from the loaded configuration.
func (r *Runner) viewerOptions(content string) viewer.Options {
	opts := viewer.DefaultOptions()
	opts.Content = content

	vc := r.config.Viewer
	if vc.Instrument != "" {
		opts.Instrument = vc.Instrument
	}
	opts.ShowChords = vc.ShowChords
	if vc.ChordPosition != "" {
		opts.ChordPosition = viewer.Position(vc.ChordPosition)
	}
	if vc.Format != "" {
		opts.Format = viewer.Mode(vc.Format)
	}

	return opts
}

// Render formats a song sheet and writes it to stdout or a file.
func (r *Runner) Render(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSongFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	opts := r.viewerOptions(content)

	if f := cmd.String("format"); f != "" {
		mode, err := viewer.ParseMode(f)
		if err != nil {
			return fmt.Errorf("%w: --format %q", shared.ErrInvalidFlag, f)
		}
		opts.Format = mode
	}
	if p := cmd.String("position"); p != "" {
		pos, err := viewer.ParsePosition(p)
		if err != nil {
			return fmt.Errorf("%w: --position %q", shared.ErrInvalidFlag, p)
		}
		opts.ChordPosition = pos
	}
	if inst := cmd.String("instrument"); inst != "" {
		opts.Instrument = inst
	}
	if cmd.Bool("chords") {
		opts.ShowChords = true
	}

	v := viewer.New(opts, r.parser, r.logger)
	render := v.Render()

	out := render.Body
	if render.ShowPanel {
		out = composePanel(render)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.logger.Info("rendered song written", "path", path, "format", render.Mode)
		return nil
	}

	return r.writePlain("%s", out)
}

// composePanel attaches the chord panel to the rendered body at the
// configured position.
func composePanel(render viewer.Render) string {
	var panel string
	if render.Mode == viewer.ModeHTML {
		var b strings.Builder
		fmt.Fprintf(&b, "<aside class=\"chord-panel chord-panel-%s\" data-instrument=\"%s\">\n", render.Position, html.EscapeString(render.Instrument))
		b.WriteString("<ul>\n")
		for _, chord := range render.Chords {
			fmt.Fprintf(&b, "<li class=\"chord-name\">%s</li>\n", html.EscapeString(chord))
		}
		b.WriteString("</ul>\n</aside>")
		panel = b.String()
	} else {
		panel = "Chords (" + render.Instrument + "): " + strings.Join(render.Chords, " ")
	}

	if render.Position == viewer.PositionBottom {
		return render.Body + "\n" + panel
	}
	// Terminal output is line oriented; the right position renders above the
	// body like top.
	return panel + "\n" + render.Body
}

// Chords prints the chord names a song sheet uses.
func (r *Runner) Chords(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSongFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	song, err := r.parser.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse song: %w", err)
	}

	names := chords.Names(song)

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"chords": names}, true)
	}

	if len(names) == 0 {
		return r.writePlain("no chords found\n")
	}
	for _, name := range names {
		if err := r.writePlain("%s\n", name); err != nil {
			return err
		}
	}
	return nil
}
