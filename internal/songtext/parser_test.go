package songtext

import (
	"errors"
	"testing"

	"github.com/mwestlake/chordstand/internal/shared"
)

func TestParse(t *testing.T) {
	t.Run("Metadata", func(t *testing.T) {
		song, err := Parse("{title: Swing Low}\n{artist: Trad.}\n{key: G}\n{capo: 2}\n{subtitle: Spiritual}")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if song.Title != "Swing Low" {
			t.Errorf("expected title Swing Low, got %q", song.Title)
		}
		if song.Artist != "Trad." {
			t.Errorf("expected artist Trad., got %q", song.Artist)
		}
		if song.Key != "G" {
			t.Errorf("expected key G, got %q", song.Key)
		}
		if song.Capo != "2" {
			t.Errorf("expected capo 2, got %q", song.Capo)
		}
		if song.Subtitle != "Spiritual" {
			t.Errorf("expected subtitle Spiritual, got %q", song.Subtitle)
		}
	})

	t.Run("ChordAnnotations", func(t *testing.T) {
		song, err := Parse("[G]Swing low, sweet [C]chari[G]ot")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if len(song.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(song.Lines))
		}

		items := song.Lines[0].Items
		want := []struct{ chord, lyric string }{
			{"G", "Swing low, sweet "},
			{"C", "chari"},
			{"G", "ot"},
		}
		if len(items) != len(want) {
			t.Fatalf("expected %d items, got %d", len(want), len(items))
		}
		for i, w := range want {
			if items[i].Chord != w.chord || items[i].Lyric != w.lyric {
				t.Errorf("item %d = {%q %q}, want {%q %q}", i, items[i].Chord, items[i].Lyric, w.chord, w.lyric)
			}
		}
	})

	t.Run("TextBeforeFirstChord", func(t *testing.T) {
		song, err := Parse("Oh, [D]Danny boy")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		items := song.Lines[0].Items
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Chord != "" || items[0].Lyric != "Oh, " {
			t.Errorf("expected leading chordless item, got {%q %q}", items[0].Chord, items[0].Lyric)
		}
		if items[1].Chord != "D" {
			t.Errorf("expected chord D, got %q", items[1].Chord)
		}
	})

	t.Run("ChorusSection", func(t *testing.T) {
		song, err := Parse("{soc}\n[C]Glory, glory\n{eoc}\n[G]Verse line")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if len(song.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(song.Lines))
		}
		if song.Lines[0].Section != "chorus" {
			t.Errorf("expected chorus section, got %q", song.Lines[0].Section)
		}
		if song.Lines[1].Section != "" {
			t.Errorf("expected verse line outside chorus, got %q", song.Lines[1].Section)
		}
	})

	t.Run("CommentDirective", func(t *testing.T) {
		song, err := Parse("{comment: Slowly}\n[G]Line")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if len(song.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(song.Lines))
		}
		if song.Lines[0].Comment != "Slowly" {
			t.Errorf("expected comment Slowly, got %q", song.Lines[0].Comment)
		}
	})

	t.Run("RemarkLinesDropped", func(t *testing.T) {
		song, err := Parse("# internal note\n[G]Line")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(song.Lines) != 1 {
			t.Errorf("expected remark line to be dropped, got %d lines", len(song.Lines))
		}
	})

	t.Run("UnknownDirective", func(t *testing.T) {
		song, err := Parse("{tempo: 120}")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if song.Meta["tempo"] != "120" {
			t.Errorf("expected tempo preserved in meta, got %q", song.Meta["tempo"])
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		song, err := Parse("")
		if err != nil {
			t.Fatalf("empty input should parse: %v", err)
		}
		if !song.Empty() {
			t.Error("expected empty song")
		}
	})

	t.Run("UnterminatedDirective", func(t *testing.T) {
		_, err := Parse("{title: Broken")
		if !errors.Is(err, shared.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("UnterminatedChord", func(t *testing.T) {
		_, err := Parse("[G broken lyric")
		if !errors.Is(err, shared.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("BlankLinesPreservedInside", func(t *testing.T) {
		song, err := Parse("[G]One\n\n[C]Two\n\n\n")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		// one blank separator kept, trailing blanks trimmed
		if len(song.Lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(song.Lines))
		}
		if len(song.Lines[1].Items) != 0 {
			t.Error("expected middle line to be blank")
		}
	})

	t.Run("WindowsLineEndings", func(t *testing.T) {
		song, err := Parse("{title: T}\r\n[G]Line\r\n")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if song.Title != "T" || len(song.Lines) != 1 {
			t.Errorf("CRLF input mishandled: title=%q lines=%d", song.Title, len(song.Lines))
		}
	})
}
