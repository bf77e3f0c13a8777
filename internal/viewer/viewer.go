package viewer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mwestlake/chordstand/internal/chords"
	"github.com/mwestlake/chordstand/internal/formatter"
	"github.com/mwestlake/chordstand/internal/instruments"
	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/songtext"
)

// Mode selects the body formatter.
type Mode string

const (
	ModeHTML Mode = "html"
	ModeText Mode = "text"
)

// Position places the chord panel relative to the song body.
type Position string

const (
	PositionTop    Position = "top"
	PositionRight  Position = "right"
	PositionBottom Position = "bottom"
)

// ParseMode validates a mode identifier.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHTML, ModeText:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, s)
}

// ParsePosition validates a chord panel position.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionTop, PositionRight, PositionBottom:
		return Position(s), nil
	}
	return "", fmt.Errorf("%w: chord position %q", shared.ErrInvalidArgument, s)
}

// Options is the externally supplied configuration surface.
type Options struct {
	Content       string
	Instrument    string
	ShowChords    bool
	ChordPosition Position
	Format        Mode
}

// DefaultOptions mirrors the documented attribute defaults.
func DefaultOptions() Options {
	return Options{
		Instrument:    instruments.Default().Name,
		ShowChords:    false,
		ChordPosition: PositionTop,
		Format:        ModeHTML,
	}
}

// origin tags whether a piece of view state is controlled by external
// configuration or has been overridden by user interaction. A user override
// is authoritative until the corresponding option itself changes.
type origin int

const (
	originConfig origin = iota
	originUser
)

// Viewer owns the user-adjustable view state for one song sheet and decides
// what the surfaces render. All operations are synchronous and never
// propagate parse failures; malformed input degrades to a placeholder body
// and an empty chord list.
type Viewer struct {
	logger *log.Logger
	parser songtext.Parser

	opts Options // last applied external configuration

	mode       Mode
	modeOrigin origin

	visible       bool
	visibleOrigin origin

	instrument       string
	instrumentOrigin origin

	listeners  []Listener
	lastChords []string
}

// New creates a Viewer initialized from opts.
func New(opts Options, parser songtext.Parser, logger *log.Logger) *Viewer {
	if parser == nil {
		parser = songtext.ChordPro{}
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	v := &Viewer{logger: logger, parser: parser}
	v.opts = normalize(opts, logger)
	v.mode = v.opts.Format
	v.visible = v.opts.ShowChords
	v.instrument = v.opts.Instrument
	return v
}

// normalize falls back to defaults for invalid option values.
func normalize(opts Options, logger *log.Logger) Options {
	def := DefaultOptions()
	if _, err := ParseMode(string(opts.Format)); err != nil {
		logger.Warn("invalid format option, using default", "format", opts.Format)
		opts.Format = def.Format
	}
	if _, err := ParsePosition(string(opts.ChordPosition)); err != nil {
		logger.Warn("invalid chord position option, using default", "position", opts.ChordPosition)
		opts.ChordPosition = def.ChordPosition
	}
	if !instruments.IsSupported(opts.Instrument) {
		logger.Warn("unsupported instrument option, using default", "instrument", opts.Instrument)
		opts.Instrument = def.Instrument
	}
	return opts
}

// Subscribe registers a listener for view notifications. Listeners are
// invoked synchronously, in registration order.
func (v *Viewer) Subscribe(l Listener) {
	v.listeners = append(v.listeners, l)
}

func (v *Viewer) emit(e Event) {
	for _, l := range v.listeners {
		l(e)
	}
}

// ApplyOptions resynchronizes the viewer with a new external configuration.
//
// Sync is one-way and per-field: an internal value is overwritten only when
// its own option actually changed, so reconfiguring an unrelated property
// does not clobber a user override.
func (v *Viewer) ApplyOptions(opts Options) {
	opts = normalize(opts, v.logger)

	if opts.Format != v.opts.Format {
		v.mode = opts.Format
		v.modeOrigin = originConfig
	}
	if opts.ShowChords != v.opts.ShowChords {
		v.visible = opts.ShowChords
		v.visibleOrigin = originConfig
	}
	if opts.Instrument != v.opts.Instrument {
		v.instrument = opts.Instrument
		v.instrumentOrigin = originConfig
	}

	v.opts = opts
}

// SetContent replaces the song text without touching view state.
func (v *Viewer) SetContent(text string) {
	v.opts.Content = text
}

// Accessors for the current state.
func (v *Viewer) Content() string      { return v.opts.Content }
func (v *Viewer) Mode() Mode           { return v.mode }
func (v *Viewer) Instrument() string   { return v.instrument }
func (v *Viewer) ChordsVisible() bool  { return v.visible }
func (v *Viewer) Position() Position   { return v.opts.ChordPosition }

// SetMode switches the display mode as a user action. Emits one
// [ModeChanged] notification when the mode actually changes.
func (v *Viewer) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	if v.mode == m {
		return nil
	}
	v.mode = m
	v.modeOrigin = originUser
	v.emit(ModeChanged{Mode: m})
	return nil
}

// ToggleMode flips between the two display modes.
func (v *Viewer) ToggleMode() {
	if v.mode == ModeHTML {
		_ = v.SetMode(ModeText)
	} else {
		_ = v.SetMode(ModeHTML)
	}
}

// SetInstrument selects an instrument as a user action. Emits one
// [InstrumentChanged] notification when the selection actually changes.
func (v *Viewer) SetInstrument(name string) error {
	if !instruments.IsSupported(name) {
		return fmt.Errorf("%w: %q", shared.ErrUnknownInstrument, name)
	}
	if v.instrument == name {
		return nil
	}
	v.instrument = name
	v.instrumentOrigin = originUser
	v.emit(InstrumentChanged{Instrument: name})
	return nil
}

// SetChordsVisible shows or hides the chord panel as a user action.
func (v *Viewer) SetChordsVisible(visible bool) {
	if v.visible == visible {
		return
	}
	v.visible = visible
	v.visibleOrigin = originUser
}

// ToggleChords flips chord panel visibility.
func (v *Viewer) ToggleChords() {
	v.SetChordsVisible(!v.visible)
}

// SetPosition changes where the chord panel is placed.
func (v *Viewer) SetPosition(p Position) error {
	if _, err := ParsePosition(string(p)); err != nil {
		return err
	}
	v.opts.ChordPosition = p
	return nil
}

// CyclePosition advances top -> right -> bottom -> top.
func (v *Viewer) CyclePosition() Position {
	switch v.opts.ChordPosition {
	case PositionTop:
		v.opts.ChordPosition = PositionRight
	case PositionRight:
		v.opts.ChordPosition = PositionBottom
	default:
		v.opts.ChordPosition = PositionTop
	}
	return v.opts.ChordPosition
}

// Render is the complete display decision for the current state.
type Render struct {
	Body       string
	Chords     []string
	ShowPanel  bool
	Position   Position
	Instrument string
	Mode       Mode
}

// Render parses the current content and produces the display decision.
//
// Parsing failures never escape: malformed text renders the fixed invalid
// placeholder, empty text the empty placeholder, and both yield an empty
// chord list. A [ChordsChanged] notification fires only when the extracted
// set differs from the previous render.
func (v *Viewer) Render() Render {
	body, names := v.renderBody()

	if !chords.Equal(v.lastChords, names) {
		v.lastChords = names
		v.emit(ChordsChanged{Chords: names})
	}

	return Render{
		Body:       body,
		Chords:     names,
		ShowPanel:  v.visible && len(names) > 0,
		Position:   v.opts.ChordPosition,
		Instrument: v.instrument,
		Mode:       v.mode,
	}
}

func (v *Viewer) renderBody() (string, []string) {
	if strings.TrimSpace(v.opts.Content) == "" {
		if v.mode == ModeText {
			return formatter.EmptyText, []string{}
		}
		return formatter.EmptyHTML(), []string{}
	}

	song, err := v.parser.Parse(v.opts.Content)
	if err != nil {
		v.logger.Warn("song text failed to parse", "err", err)
		if v.mode == ModeText {
			return formatter.InvalidText, []string{}
		}
		return formatter.InvalidHTML(), []string{}
	}

	if v.mode == ModeText {
		return formatter.Text(song), chords.Names(song)
	}
	return formatter.HTML(song), chords.Names(song)
}
