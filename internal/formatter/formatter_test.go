package formatter

import (
	"strings"
	"testing"

	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/songtext"
)

func mustParse(t *testing.T, text string) *models.Song {
	t.Helper()
	song, err := songtext.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return song
}

func TestHTML(t *testing.T) {
	t.Run("ChordsAndLyrics", func(t *testing.T) {
		song := mustParse(t, "{title: Swing Low}\n[G]Swing low, sweet [C]chari[G]ot")
		out := HTML(song)

		for _, want := range []string{
			`<h1 class="song-title">Swing Low</h1>`,
			`<span class="song-chord">G</span>`,
			`<span class="song-chord">C</span>`,
			`<span class="song-lyric">Swing low, sweet </span>`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("HTML output missing %q\ngot: %s", want, out)
			}
		}
	})

	t.Run("EscapesMarkup", func(t *testing.T) {
		song := mustParse(t, "{title: <script>}\nlyric & <more>")
		out := HTML(song)

		if strings.Contains(out, "<script>") {
			t.Error("title should be escaped")
		}
		if !strings.Contains(out, "&lt;script&gt;") {
			t.Error("expected escaped title")
		}
		if !strings.Contains(out, "lyric &amp; &lt;more&gt;") {
			t.Error("expected escaped lyric text")
		}
	})

	t.Run("ChorusClass", func(t *testing.T) {
		song := mustParse(t, "{soc}\n[C]Glory\n{eoc}")
		out := HTML(song)
		if !strings.Contains(out, "song-chorus") {
			t.Error("expected chorus line class")
		}
	})

	t.Run("EmptySong", func(t *testing.T) {
		if got := HTML(mustParse(t, "")); got != EmptyHTML() {
			t.Errorf("expected empty placeholder, got %q", got)
		}
	})

	t.Run("Comment", func(t *testing.T) {
		song := mustParse(t, "{comment: Slowly}\n[G]Line")
		if !strings.Contains(HTML(song), `<div class="song-comment">Slowly</div>`) {
			t.Error("expected comment div")
		}
	})
}

func TestText(t *testing.T) {
	t.Run("ChordAlignment", func(t *testing.T) {
		song := mustParse(t, "[G]Swing low, sweet [C]chariot")
		out := Text(song)

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected chord row + lyric row, got %d lines: %q", len(lines), out)
		}

		chordRow, lyricRow := lines[0], lines[1]
		if !strings.HasPrefix(chordRow, "G") {
			t.Errorf("expected chord row to start with G, got %q", chordRow)
		}

		// C is anchored where "chariot" begins
		cCol := strings.Index(chordRow, "C")
		wantCol := strings.Index(lyricRow, "chariot")
		if cCol != wantCol {
			t.Errorf("C at column %d, chariot at column %d\n%s\n%s", cCol, wantCol, chordRow, lyricRow)
		}
	})

	t.Run("Header", func(t *testing.T) {
		song := mustParse(t, "{title: T}\n{artist: A}\n{key: G}\n[C]Line")
		out := Text(song)
		for _, want := range []string{"T\n", "A\n", "Key: G\n"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("ChorusIndent", func(t *testing.T) {
		song := mustParse(t, "{soc}\nGlory glory\n{eoc}")
		out := Text(song)
		if !strings.Contains(out, "  Glory glory") {
			t.Errorf("expected indented chorus line:\n%s", out)
		}
	})

	t.Run("LyricOnlyLineHasNoChordRow", func(t *testing.T) {
		song := mustParse(t, "Plain line")
		out := Text(song)
		if strings.TrimRight(out, "\n") != "Plain line" {
			t.Errorf("expected single lyric row, got %q", out)
		}
	})

	t.Run("EmptySong", func(t *testing.T) {
		if got := Text(mustParse(t, "")); got != EmptyText {
			t.Errorf("expected empty placeholder, got %q", got)
		}
	})
}

func TestPlaceholders(t *testing.T) {
	if !strings.Contains(InvalidHTML(), InvalidText) {
		t.Error("HTML invalid placeholder should carry the literal text")
	}
	if InvalidText != "Invalid format" {
		t.Errorf("invalid placeholder must be the literal Invalid format, got %q", InvalidText)
	}
}
