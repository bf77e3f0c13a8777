// package diagrams draws chord fingering charts as SVG or terminal text
package diagrams

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/mwestlake/chordstand/internal/instruments"
)

// Geometry shared by every diagram. At least fretWindow frets are shown;
// the window grows when a shape's fretted span needs more rows, and shapes
// living further up the neck are shifted and labelled with their base fret.
const (
	fretWindow = 4

	cellW     = 22
	cellH     = 26
	marginX   = 28
	marginY   = 44
	captionY  = 22
	markerY   = 36
	labelPadY = 14
)

// Size returns the pixel dimensions of a default-window diagram for the
// given instrument.
func Size(inst instruments.Instrument) (int, int) {
	return size(inst, fretWindow)
}

func size(inst instruments.Instrument, span int) (int, int) {
	w := marginX*2 + cellW*(inst.Strings()-1)
	h := marginY + cellH*span + labelPadY
	return w, h
}

// RenderSVG resolves the chord's fingering on the instrument and writes an
// SVG diagram. Unknown chords render a placeholder frame instead of failing.
func RenderSVG(w io.Writer, inst instruments.Instrument, chord string) error {
	shape, err := instruments.ShapeFor(inst, chord)
	if err != nil {
		renderPlaceholderSVG(w, inst, chord)
		return nil
	}
	renderShapeSVG(w, inst, shape)
	return nil
}

func renderShapeSVG(w io.Writer, inst instruments.Instrument, shape instruments.Shape) {
	base, span := fretSpan(shape.Frets)
	width, height := size(inst, span)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")
	canvas.Text(width/2, captionY, shape.Chord, "text-anchor:middle;font-size:15px;font-family:sans-serif;font-weight:bold;fill:#222222")

	drawGridSVG(canvas, inst, base, span)

	for s, fret := range shape.Frets {
		x := marginX + s*cellW
		switch {
		case fret < 0:
			canvas.Text(x, markerY, "x", "text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#555555")
		case fret == 0:
			canvas.Circle(x, markerY-4, 4, "fill:none;stroke:#555555;stroke-width:1.2")
		default:
			y := marginY + (fret-base)*cellH + cellH/2
			canvas.Circle(x, y, 7, "fill:#222222")
		}
	}

	// string letters under the grid
	for s, note := range inst.Tuning {
		x := marginX + s*cellW
		canvas.Text(x, marginY+cellH*span+labelPadY-2, note, "text-anchor:middle;font-size:10px;font-family:sans-serif;fill:#888888")
	}

	canvas.End()
}

func drawGridSVG(canvas *svg.SVG, inst instruments.Instrument, base, span int) {
	gridW := cellW * (inst.Strings() - 1)

	// nut: thick when the window starts at the first fret
	if base == 1 {
		canvas.Rect(marginX, marginY-3, gridW, 3, "fill:#222222")
	} else {
		canvas.Text(marginX-10, marginY+cellH/2+4, fmt.Sprintf("%d", base), "text-anchor:end;font-size:11px;font-family:sans-serif;fill:#555555")
	}

	for f := 0; f <= span; f++ {
		y := marginY + f*cellH
		canvas.Line(marginX, y, marginX+gridW, y, "stroke:#222222;stroke-width:1")
	}
	for s := 0; s < inst.Strings(); s++ {
		x := marginX + s*cellW
		canvas.Line(x, marginY, x, marginY+cellH*span, "stroke:#222222;stroke-width:1")
	}
}

func renderPlaceholderSVG(w io.Writer, inst instruments.Instrument, chord string) {
	width, height := Size(inst)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")
	canvas.Text(width/2, captionY, chord, "text-anchor:middle;font-size:15px;font-family:sans-serif;font-weight:bold;fill:#222222")
	drawGridSVG(canvas, inst, 1, fretWindow)
	canvas.Text(width/2, marginY+cellH*2, "?", "text-anchor:middle;font-size:20px;font-family:sans-serif;fill:#aaaaaa")
	canvas.End()
}

// fretSpan picks the first fret of the displayed window and how many fret
// rows it covers. Every fretted position fits inside the window.
func fretSpan(frets []int) (int, int) {
	max := 0
	min := 1 << 30
	for _, f := range frets {
		if f > max {
			max = f
		}
		if f > 0 && f < min {
			min = f
		}
	}
	if max <= fretWindow {
		return 1, fretWindow
	}
	span := max - min + 1
	if span < fretWindow {
		span = fretWindow
	}
	return min, span
}

// Sketch renders the fingering as terminal text, one row per string with the
// highest string on top. Unknown chords yield a row of question marks.
func Sketch(inst instruments.Instrument, chord string) string {
	shape, err := instruments.ShapeFor(inst, chord)
	if err != nil {
		var b strings.Builder
		b.WriteString(chord + "\n")
		for s := inst.Strings() - 1; s >= 0; s-- {
			fmt.Fprintf(&b, "%-2s ?\n", inst.Tuning[s])
		}
		return b.String()
	}
	return sketchShape(inst, shape)
}

func sketchShape(inst instruments.Instrument, shape instruments.Shape) string {
	var b strings.Builder
	b.WriteString(shape.Chord + "\n")

	base, span := fretSpan(shape.Frets)
	for s := inst.Strings() - 1; s >= 0; s-- {
		fret := shape.Frets[s]
		fmt.Fprintf(&b, "%-2s ", inst.Tuning[s])
		switch {
		case fret < 0:
			b.WriteString("x")
		case fret == 0:
			b.WriteString("o")
		default:
			b.WriteString("|")
		}
		for f := base; f < base+span; f++ {
			if f == fret {
				b.WriteString("-●-|")
			} else {
				b.WriteString("---|")
			}
		}
		if base > 1 && s == inst.Strings()-1 {
			fmt.Fprintf(&b, " %dfr", base)
		}
		b.WriteString("\n")
	}

	return b.String()
}
