// package formatter renders a parsed song to display markup or plain text
package formatter

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/mwestlake/chordstand/internal/models"
)

// Placeholder strings for degraded rendering. "Invalid format" is the fixed
// fallback shown whenever parsing the song text fails.
const (
	EmptyText   = "No song to display"
	InvalidText = "Invalid format"
)

// EmptyHTML returns the markup placeholder for empty content.
func EmptyHTML() string {
	return fmt.Sprintf("<p class=\"song-empty\">%s</p>", EmptyText)
}

// InvalidHTML returns the markup placeholder for unparsable content.
func InvalidHTML() string {
	return fmt.Sprintf("<pre class=\"song-invalid\">%s</pre>", InvalidText)
}

// HTML renders the song as display markup: chords sit in spans directly
// before the lyric fragment they annotate, lines keep their section class.
func HTML(song *models.Song) string {
	if song.Empty() {
		return EmptyHTML()
	}

	var b strings.Builder
	b.WriteString("<div class=\"song\">\n")

	writeHeaderHTML(&b, song)

	b.WriteString("<div class=\"song-body\">\n")
	for _, line := range song.Lines {
		switch {
		case line.Comment != "":
			fmt.Fprintf(&b, "<div class=\"song-comment\">%s</div>\n", html.EscapeString(line.Comment))
		case len(line.Items) == 0:
			b.WriteString("<div class=\"song-line song-line-blank\"></div>\n")
		default:
			class := "song-line"
			if line.Section == "chorus" {
				class += " song-chorus"
			}
			fmt.Fprintf(&b, "<div class=\"%s\">", class)
			for _, item := range line.Items {
				b.WriteString("<span class=\"song-item\">")
				if chord := strings.TrimSpace(item.Chord); chord != "" {
					fmt.Fprintf(&b, "<span class=\"song-chord\">%s</span>", html.EscapeString(chord))
				}
				fmt.Fprintf(&b, "<span class=\"song-lyric\">%s</span>", html.EscapeString(item.Lyric))
				b.WriteString("</span>")
			}
			b.WriteString("</div>\n")
		}
	}
	b.WriteString("</div>\n</div>\n")

	return b.String()
}

func writeHeaderHTML(b *strings.Builder, song *models.Song) {
	if song.Title == "" && song.Subtitle == "" && song.Artist == "" {
		return
	}
	b.WriteString("<header class=\"song-header\">\n")
	if song.Title != "" {
		fmt.Fprintf(b, "<h1 class=\"song-title\">%s</h1>\n", html.EscapeString(song.Title))
	}
	if song.Subtitle != "" {
		fmt.Fprintf(b, "<h2 class=\"song-subtitle\">%s</h2>\n", html.EscapeString(song.Subtitle))
	}
	if song.Artist != "" {
		fmt.Fprintf(b, "<p class=\"song-artist\">%s</p>\n", html.EscapeString(song.Artist))
	}
	b.WriteString("</header>\n")
}

// Text renders the song as monospace plain text with chords aligned on a
// separate row above the lyrics they annotate.
func Text(song *models.Song) string {
	if song.Empty() {
		return EmptyText
	}

	var b strings.Builder

	if song.Title != "" {
		b.WriteString(song.Title + "\n")
	}
	if song.Subtitle != "" {
		b.WriteString(song.Subtitle + "\n")
	}
	if song.Artist != "" {
		b.WriteString(song.Artist + "\n")
	}
	if song.Key != "" {
		fmt.Fprintf(&b, "Key: %s\n", song.Key)
	}
	if song.Capo != "" {
		fmt.Fprintf(&b, "Capo: %s\n", song.Capo)
	}
	if b.Len() > 0 && len(song.Lines) > 0 {
		b.WriteString("\n")
	}

	for _, line := range song.Lines {
		indent := ""
		if line.Section == "chorus" {
			indent = "  "
		}

		switch {
		case line.Comment != "":
			fmt.Fprintf(&b, "%s(%s)\n", indent, line.Comment)
		case len(line.Items) == 0:
			b.WriteString("\n")
		default:
			chordRow, lyricRow := alignLine(line)
			if chordRow != "" {
				b.WriteString(indent + chordRow + "\n")
			}
			b.WriteString(indent + lyricRow + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// alignLine builds the chord row positioned over the lyric row.
func alignLine(line models.Line) (string, string) {
	var chordRow strings.Builder
	width := 0

	for _, item := range line.Items {
		if chord := strings.TrimSpace(item.Chord); chord != "" {
			for utf8.RuneCountInString(chordRow.String()) < width {
				chordRow.WriteString(" ")
			}
			if chordRow.Len() > 0 && !strings.HasSuffix(chordRow.String(), " ") {
				chordRow.WriteString(" ")
			}
			chordRow.WriteString(chord)
		}
		width += utf8.RuneCountInString(item.Lyric)
	}

	return strings.TrimRight(chordRow.String(), " "), strings.TrimRight(line.Lyrics(), " ")
}
