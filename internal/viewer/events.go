package viewer

// Event is a view notification delivered to subscribed listeners.
type Event any

// Listener receives view notifications.
type Listener func(Event)

// ChordsChanged fires when the set of distinct chords in the rendered song
// changes. The payload is sorted and deduplicated.
type ChordsChanged struct {
	Chords []string
}

// InstrumentChanged fires when the user selects a different instrument.
type InstrumentChanged struct {
	Instrument string
}

// ModeChanged fires when the user switches between the formatted and
// plain-text display modes.
type ModeChanged struct {
	Mode Mode
}
