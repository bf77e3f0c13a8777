// package chords collects the distinct chord names referenced by a parsed song
package chords

import (
	"sort"
	"strings"

	"github.com/mwestlake/chordstand/internal/models"
)

// Names returns the deduplicated, lexicographically sorted chord names
// appearing anywhere in the song.
//
// Chord case and spelling are preserved verbatim from the markup; "G" and
// "g" are distinct entries. A nil or empty song yields an empty slice.
func Names(song *models.Song) []string {
	if song == nil {
		return []string{}
	}

	seen := map[string]struct{}{}
	for _, line := range song.Lines {
		for _, item := range line.Items {
			chord := strings.TrimSpace(item.Chord)
			if chord == "" {
				continue
			}
			seen[chord] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for chord := range seen {
		names = append(names, chord)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two chord lists carry the same names in the same order.
//
// Used by the viewer to suppress duplicate chords-changed notifications.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
