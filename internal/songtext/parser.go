// package songtext parses chord-annotation song markup into [models.Song]
package songtext

import (
	"fmt"
	"strings"

	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/shared"
)

// Parser converts raw song markup into a [models.Song].
//
// The viewer and server depend on this interface rather than the concrete
// implementation so they can be tested with stubs.
type Parser interface {
	Parse(text string) (*models.Song, error)
}

// ChordPro parses the brace-and-bracket song markup convention:
// directive lines wrapped in braces ({title: ...}), chord annotations
// embedded in lyric lines with square brackets ([G]lyric), and comment
// lines starting with '#'.
type ChordPro struct{}

var _ Parser = ChordPro{}

// Parse interprets text as chord-annotation markup.
//
// Empty input yields an empty song, not an error. Unterminated directives
// and unterminated chord brackets are parse errors.
func (ChordPro) Parse(text string) (*models.Song, error) {
	song := &models.Song{Meta: map[string]string{}}
	section := ""

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			if len(song.Lines) > 0 {
				song.Lines = append(song.Lines, models.Line{Section: section})
			}
		case strings.HasPrefix(trimmed, "#"):
			// remark line, not part of the song body
		case strings.HasPrefix(trimmed, "{"):
			next, err := applyDirective(song, trimmed, section, n+1)
			if err != nil {
				return nil, err
			}
			section = next
		default:
			items, err := parseLyricLine(line, n+1)
			if err != nil {
				return nil, err
			}
			song.Lines = append(song.Lines, models.Line{Section: section, Items: items})
		}
	}

	trimTrailingBlanks(song)
	return song, nil
}

// Parse parses text with the default [ChordPro] parser.
func Parse(text string) (*models.Song, error) {
	return ChordPro{}.Parse(text)
}

// applyDirective interprets one {name: value} line and returns the active section name.
func applyDirective(song *models.Song, line, section string, n int) (string, error) {
	if !strings.HasSuffix(line, "}") {
		return section, fmt.Errorf("%w: unterminated directive on line %d", shared.ErrInvalidFormat, n)
	}

	body := strings.TrimSpace(line[1 : len(line)-1])
	name, value := body, ""
	if idx := strings.Index(body, ":"); idx >= 0 {
		name = strings.TrimSpace(body[:idx])
		value = strings.TrimSpace(body[idx+1:])
	}

	switch strings.ToLower(name) {
	case "title", "t":
		song.Title = value
	case "subtitle", "st":
		song.Subtitle = value
	case "artist":
		song.Artist = value
	case "key":
		song.Key = value
	case "capo":
		song.Capo = value
	case "comment", "c":
		song.Lines = append(song.Lines, models.Line{Section: section, Comment: value})
	case "start_of_chorus", "soc":
		return "chorus", nil
	case "end_of_chorus", "eoc":
		return "", nil
	default:
		song.Meta[strings.ToLower(name)] = value
	}

	return section, nil
}

// parseLyricLine splits a lyric line into chord/lyric items.
//
// Text before the first chord becomes an item with an empty chord; each
// [chord] opens a new item carrying the lyric text up to the next chord.
func parseLyricLine(line string, n int) ([]models.Item, error) {
	var items []models.Item
	var chord, lyric strings.Builder
	inChord := false
	started := false // a chord has been opened for the current item

	flush := func() {
		if !started && lyric.Len() == 0 {
			return
		}
		items = append(items, models.Item{Chord: chord.String(), Lyric: lyric.String()})
		chord.Reset()
		lyric.Reset()
	}

	for _, r := range line {
		switch {
		case r == '[' && !inChord:
			flush()
			inChord = true
			started = true
		case r == ']' && inChord:
			inChord = false
		case inChord:
			chord.WriteRune(r)
		default:
			lyric.WriteRune(r)
		}
	}

	if inChord {
		return nil, fmt.Errorf("%w: unterminated chord on line %d", shared.ErrInvalidFormat, n)
	}
	flush()

	return items, nil
}

// trimTrailingBlanks drops empty lines left at the end of the body.
func trimTrailingBlanks(song *models.Song) {
	for len(song.Lines) > 0 {
		last := song.Lines[len(song.Lines)-1]
		if last.Comment == "" && len(last.Items) == 0 {
			song.Lines = song.Lines[:len(song.Lines)-1]
			continue
		}
		break
	}
}
