// package instruments defines the supported instruments and their chord shape library
package instruments

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mwestlake/chordstand/internal/shared"
	"gopkg.in/yaml.v3"
)

// Instrument describes a supported stringed instrument.
type Instrument struct {
	Name   string   // display identifier, e.g. "Standard Ukulele"
	Tuning []string // open string notes, lowest string first
}

// Strings returns the instrument's string count.
func (i Instrument) Strings() int { return len(i.Tuning) }

// The fixed set of supported instruments. Identifiers are part of the
// external configuration surface and must not change spelling.
var supported = []Instrument{
	{Name: "Standard Ukulele", Tuning: []string{"G", "C", "E", "A"}},
	{Name: "Baritone Ukulele", Tuning: []string{"D", "G", "B", "E"}},
	{Name: "5ths-tuned Ukulele", Tuning: []string{"G", "D", "A", "E"}},
	{Name: "Standard Guitar", Tuning: []string{"E", "A", "D", "G", "B", "E"}},
	{Name: "Drop-D Guitar", Tuning: []string{"D", "A", "D", "G", "B", "E"}},
	{Name: "Standard Mandolin", Tuning: []string{"G", "D", "A", "E"}},
}

// All returns the supported instruments in declaration order.
func All() []Instrument {
	out := make([]Instrument, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default instrument, Standard Ukulele.
func Default() Instrument { return supported[0] }

// Lookup resolves an instrument by its exact display identifier.
func Lookup(name string) (Instrument, error) {
	for _, inst := range supported {
		if inst.Name == name {
			return inst, nil
		}
	}
	return Instrument{}, fmt.Errorf("%w: %q", shared.ErrUnknownInstrument, name)
}

// IsSupported reports whether name is a valid instrument identifier.
func IsSupported(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Shape is a chord fingering on a particular instrument.
type Shape struct {
	Chord string
	Frets []int // per string, lowest first; 0 = open, -1 = muted
}

//go:embed shapes.yaml
var shapesYAML []byte

type shapeFile struct {
	Instruments map[string]map[string][]int `yaml:"instruments"`
}

var shapeDB = loadShapes()

func loadShapes() map[string]map[string][]int {
	var file shapeFile
	if err := yaml.Unmarshal(shapesYAML, &file); err != nil {
		panic(fmt.Sprintf("failed to parse embedded shape library: %v", err))
	}
	return file.Instruments
}

// ShapeFor resolves the fingering for a chord on the given instrument.
//
// Lookup is case-preserving and exact first; when the precise chord name has
// no entry the name is reduced to its root and minor/major quality (Gsus4 ->
// G, Am7 -> Am) and retried. Unknown chords return [shared.ErrUnknownChord].
func ShapeFor(inst Instrument, chord string) (Shape, error) {
	table, ok := shapeDB[inst.Name]
	if !ok {
		return Shape{}, fmt.Errorf("%w: no shape table for %q", shared.ErrUnknownChord, inst.Name)
	}

	for _, candidate := range candidates(chord) {
		if frets, ok := table[candidate]; ok {
			out := make([]int, len(frets))
			copy(out, frets)
			return Shape{Chord: chord, Frets: out}, nil
		}
	}

	return Shape{}, fmt.Errorf("%w: %q on %s", shared.ErrUnknownChord, chord, inst.Name)
}

// candidates lists lookup names from most to least specific.
func candidates(chord string) []string {
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return nil
	}

	out := []string{chord}

	root := chord[:1]
	rest := chord[1:]
	if strings.HasPrefix(rest, "#") || strings.HasPrefix(rest, "b") {
		root += rest[:1]
		rest = rest[1:]
	}

	minor := strings.HasPrefix(rest, "m") && !strings.HasPrefix(rest, "maj")
	if minor && root+"m" != chord {
		out = append(out, root+"m")
	}
	if strings.Contains(rest, "7") && root+"7" != chord && !minor {
		out = append(out, root+"7")
	}
	if root != chord {
		out = append(out, root)
	}

	return out
}
