package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/songtext"
	tu "github.com/mwestlake/chordstand/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			parser := songtext.ChordPro{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Parser: parser,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.parser == nil {
				t.Error("expected parser to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.config.Viewer.Instrument != "Standard Ukulele" {
				t.Errorf("expected default instrument, got %s", runner.config.Viewer.Instrument)
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		expected := []string{"setup", "render", "chords", "diagrams", "library", "view", "serve"}
		if len(commands) != len(expected) {
			t.Fatalf("expected %d commands, got %d", len(expected), len(commands))
		}
		for i, name := range expected {
			if commands[i].Name != name {
				t.Errorf("expected command %q at %d, got %q", name, i, commands[i].Name)
			}
		}
	})
}

// newTestApp wires a runner with a buffered output and a temp library into a
// CLI app so tests exercise flag parsing too.
func newTestApp(t *testing.T) (*cli.Command, *Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "library.db")

	runner := NewRunner(RunnerOpts{
		Config: config,
		Output: output,
	})

	app := &cli.Command{
		Name:     "chordstand",
		Commands: runner.register(),
	}
	return app, runner, output
}

func TestRenderCommand(t *testing.T) {
	t.Run("renders HTML by default", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title: Swing Low}\n[G]Swing low, sweet [C]chariot")

		err := app.Run(context.Background(), []string{"chordstand", "render", file})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `class="song-chord"`) {
			t.Errorf("expected HTML chord markup, got %s", result)
		}
		if !strings.Contains(result, "Swing Low") {
			t.Errorf("expected title in output, got %s", result)
		}
	})

	t.Run("renders text with chord panel", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[G]Swing low, sweet [C]chariot")

		err := app.Run(context.Background(), []string{
			"chordstand", "render", "--format", "text", "--chords", "--position", "bottom", file,
		})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}

		result := output.String()
		if strings.Contains(result, "<div") {
			t.Errorf("expected plain text output, got %s", result)
		}
		if !strings.Contains(result, "Chords (Standard Ukulele): C G") {
			t.Errorf("expected chord panel line, got %s", result)
		}
		bodyIdx := strings.Index(result, "Swing low")
		panelIdx := strings.Index(result, "Chords (")
		if bodyIdx < 0 || panelIdx < bodyIdx {
			t.Errorf("expected panel after body for bottom position, got %s", result)
		}
	})

	t.Run("escapes chord names in HTML panel", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[A&E]Swing low")

		err := app.Run(context.Background(), []string{"chordstand", "render", "--chords", file})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `<li class="chord-name">A&amp;E</li>`) {
			t.Errorf("expected escaped chord name in panel, got %s", result)
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[G]Swing low")

		err := app.Run(context.Background(), []string{"chordstand", "render", "--format", "pdf", file})
		if err == nil {
			t.Fatal("expected error for unknown format")
		}
	})

	t.Run("malformed input renders placeholder", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[G Swing low")

		err := app.Run(context.Background(), []string{"chordstand", "render", "--format", "text", file})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if !strings.Contains(output.String(), "Invalid format") {
			t.Errorf("expected invalid placeholder, got %s", output.String())
		}
	})

	t.Run("writes output file", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		dir := t.TempDir()
		file := tu.MustWriteFile(t, dir, "song.txt", "[G]Swing low")
		outPath := filepath.Join(dir, "song.html")

		err := app.Run(context.Background(), []string{"chordstand", "render", "--output", outPath, file})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}

		tu.AssertFileExists(t, outPath)
		if !strings.Contains(tu.MustReadFile(t, outPath), "song-line") {
			t.Error("expected rendered HTML in output file")
		}
	})
}

func TestChordsCommand(t *testing.T) {
	t.Run("lists sorted unique chords", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[G]a [C]b [G]c")

		err := app.Run(context.Background(), []string{"chordstand", "chords", file})
		if err != nil {
			t.Fatalf("chords failed: %v", err)
		}

		if output.String() != "C\nG\n" {
			t.Errorf("expected C and G, got %q", output.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "[Am]down [E7]by")

		err := app.Run(context.Background(), []string{"chordstand", "chords", "--json", file})
		if err != nil {
			t.Fatalf("chords failed: %v", err)
		}

		if !strings.Contains(output.String(), `"Am"`) || !strings.Contains(output.String(), `"E7"`) {
			t.Errorf("expected JSON chord list, got %s", output.String())
		}
	})

	t.Run("malformed input is an error", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title incomplete")

		err := app.Run(context.Background(), []string{"chordstand", "chords", file})
		if err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestDiagramsCommand(t *testing.T) {
	app, _, output := newTestApp(t)
	dir := t.TempDir()
	file := tu.MustWriteFile(t, dir, "song.txt", "[G]Swing low, sweet [C]chariot")
	outDir := filepath.Join(dir, "diagrams")

	err := app.Run(context.Background(), []string{"chordstand", "diagrams", "--output", outDir, file})
	if err != nil {
		t.Fatalf("diagrams failed: %v", err)
	}

	tu.AssertDirExists(t, outDir)
	tu.AssertFileExists(t, filepath.Join(outDir, "C.svg"))
	tu.AssertFileExists(t, filepath.Join(outDir, "G.svg"))
	if !strings.Contains(output.String(), "exported 2 diagrams") {
		t.Errorf("expected export summary, got %s", output.String())
	}
}

func TestLibraryCommands(t *testing.T) {
	t.Run("add and list", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title: Swing Low}\n{artist: Traditional}\n[G]Swing low")

		if err := app.Run(context.Background(), []string{"chordstand", "library", "add", file}); err != nil {
			t.Fatalf("library add failed: %v", err)
		}
		if !strings.Contains(output.String(), `added "Swing Low"`) {
			t.Errorf("expected add confirmation, got %s", output.String())
		}

		output.Reset()
		if err := app.Run(context.Background(), []string{"chordstand", "library", "list"}); err != nil {
			t.Fatalf("library list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Swing Low - Traditional") {
			t.Errorf("expected listed song, got %s", output.String())
		}
	})

	t.Run("add rejects duplicate entries", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title: Swing Low}\n{artist: Traditional}\n[G]Swing low")
		dupe := tu.MustWriteFile(t, t.TempDir(), "dupe.txt", "{title: swing  LOW}\n{artist: TRADITIONAL}\n[G]Swing low")

		if err := app.Run(context.Background(), []string{"chordstand", "library", "add", file}); err != nil {
			t.Fatalf("library add failed: %v", err)
		}

		err := app.Run(context.Background(), []string{"chordstand", "library", "add", dupe})
		if err == nil {
			t.Fatal("expected error adding the same song twice")
		}
		if !strings.Contains(err.Error(), "already in the library") {
			t.Errorf("expected duplicate error, got %v", err)
		}
	})

	t.Run("title flag overrides directive", func(t *testing.T) {
		app, _, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title: Original}\n[G]la")

		err := app.Run(context.Background(), []string{"chordstand", "library", "add", "--title", "Renamed", file})
		if err != nil {
			t.Fatalf("library add failed: %v", err)
		}
		if !strings.Contains(output.String(), `added "Renamed"`) {
			t.Errorf("expected overridden title, got %s", output.String())
		}
	})

	t.Run("show and remove", func(t *testing.T) {
		app, runner, output := newTestApp(t)
		file := tu.MustWriteFile(t, t.TempDir(), "song.txt", "{title: Swing Low}\n[G]Swing low")

		if err := app.Run(context.Background(), []string{"chordstand", "library", "add", file}); err != nil {
			t.Fatalf("library add failed: %v", err)
		}

		db, repo, err := runner.openLibrary()
		if err != nil {
			t.Fatalf("failed to open library: %v", err)
		}
		stored, err := repo.GetByTitle("Swing Low")
		db.Close()
		if err != nil {
			t.Fatalf("failed to find stored song: %v", err)
		}

		output.Reset()
		if err := app.Run(context.Background(), []string{"chordstand", "library", "show", stored.ID()}); err != nil {
			t.Fatalf("library show failed: %v", err)
		}
		if !strings.Contains(output.String(), "[G]Swing low") {
			t.Errorf("expected raw sheet, got %s", output.String())
		}

		output.Reset()
		if err := app.Run(context.Background(), []string{"chordstand", "library", "remove", stored.ID()}); err != nil {
			t.Fatalf("library remove failed: %v", err)
		}

		if err := app.Run(context.Background(), []string{"chordstand", "library", "show", stored.ID()}); err == nil {
			t.Error("expected error showing removed song")
		}
	})

	t.Run("export", func(t *testing.T) {
		app, _, output := newTestApp(t)
		dir := t.TempDir()
		file := tu.MustWriteFile(t, dir, "song.txt", "{title: Swing Low}\n[G]Swing low, sweet [C]chariot")

		if err := app.Run(context.Background(), []string{"chordstand", "library", "add", file}); err != nil {
			t.Fatalf("library add failed: %v", err)
		}

		output.Reset()
		outDir := filepath.Join(dir, "export")
		err := app.Run(context.Background(), []string{
			"chordstand", "library", "export", "--output", outDir, "--diagrams",
		})
		if err != nil {
			t.Fatalf("library export failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(outDir, "swing-low.html"))
		tu.AssertFileExists(t, filepath.Join(outDir, "export_manifest.json"))
		if !strings.Contains(output.String(), "exported 1/1 songs") {
			t.Errorf("expected export summary, got %s", output.String())
		}
	})

	t.Run("list empty library", func(t *testing.T) {
		app, _, output := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chordstand", "library", "list"}); err != nil {
			t.Fatalf("library list failed: %v", err)
		}
		if !strings.Contains(output.String(), "library is empty") {
			t.Errorf("expected empty message, got %s", output.String())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	app, _, _ := newTestApp(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	t.Setenv("CHORDSTAND_DB_PATH", filepath.Join(dir, "setup.db"))

	err := app.Run(context.Background(), []string{"chordstand", "setup", "--config", configPath})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, filepath.Join(dir, "setup.db"))
}
