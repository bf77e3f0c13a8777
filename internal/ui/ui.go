package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mwestlake/chordstand/internal/diagrams"
	"github.com/mwestlake/chordstand/internal/instruments"
	"github.com/mwestlake/chordstand/internal/viewer"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongView ViewState = iota
	InstrumentPickerView
)

// Loader supplies the song text to display, e.g. from a file or the library.
type Loader func() (string, error)

// Model represents the TUI application state.
//
// The model wraps a [viewer.Viewer] and translates key presses into its user
// operations; every viewer notification surfaces in the status line.
type Model struct {
	logger *log.Logger
	viewer *viewer.Viewer
	loader Loader

	view           ViewState
	width          int
	height         int
	instrumentList list.Model
	render         viewer.Render
	events         chan viewer.Event
	status         string
	err            error
	help           help.Model
	keys           keyMap
}

// NewModel creates a TUI model around an existing viewer.
func NewModel(v *viewer.Viewer, loader Loader, logger *log.Logger) *Model {
	m := &Model{
		logger: logger,
		viewer: v,
		loader: loader,
		view:   SongView,
		events: make(chan viewer.Event, 16),
		help:   help.New(),
		keys:   newKeyMap(),
	}

	v.Subscribe(func(e viewer.Event) {
		select {
		case m.events <- e:
		default:
		}
	})

	return m
}

// Init loads the song content and starts the notification loop.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent()}
	if m.loader != nil {
		cmds = append(cmds, m.loadContent())
	} else {
		m.render = m.viewer.Render()
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.instrumentList.Width() != 0 {
			m.instrumentList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongView:
			return m.handleSongKeys(msg)
		case InstrumentPickerView:
			return m.handlePickerKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgNotification:
			if event, ok := msg.data.(viewer.Event); ok {
				m.status = describe(event)
				m.logger.Debug("viewer notification", "event", m.status)
			}
			return m, m.waitForEvent()

		case MsgContentLoaded:
			if text, ok := msg.data.(string); ok {
				m.viewer.SetContent(text)
			}
			m.render = m.viewer.Render()
			return m, nil

		case MsgLoadFailed:
			if err, ok := msg.data.(error); ok {
				m.err = err
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongView:
		return m.renderSong()
	case InstrumentPickerView:
		return m.renderPicker()
	default:
		return ""
	}
}

// Err returns the error that terminated the session, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m":
		m.viewer.ToggleMode()
		m.render = m.viewer.Render()
	case "c":
		m.viewer.ToggleChords()
		m.render = m.viewer.Render()
	case "p":
		m.viewer.CyclePosition()
		m.render = m.viewer.Render()
	case "i":
		m.instrumentList = newInstrumentList(m.viewer.Instrument(), m.width-4, m.height-8)
		m.view = InstrumentPickerView
	}
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongView
		return m, nil
	case "enter":
		if selected := m.instrumentList.SelectedItem(); selected != nil {
			if item, ok := selected.(instrumentItem); ok {
				if err := m.viewer.SetInstrument(item.instrument.Name); err != nil {
					m.status = err.Error()
				}
				m.render = m.viewer.Render()
			}
		}
		m.view = SongView
		return m, nil
	}

	var cmd tea.Cmd
	m.instrumentList, cmd = m.instrumentList.Update(msg)
	return m, cmd
}

func (m *Model) loadContent() tea.Cmd {
	return func() tea.Msg {
		text, err := m.loader()
		if err != nil {
			return loadFailedMsg(err)
		}
		return contentLoadedMsg(text)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(<-m.events)
	}
}

func (m *Model) renderSong() string {
	body := m.render.Body

	var sections []string
	if m.render.ShowPanel {
		panel := m.renderPanel()
		switch m.render.Position {
		case viewer.PositionTop:
			sections = []string{panel, body}
		case viewer.PositionRight:
			sections = []string{lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panel)}
		case viewer.PositionBottom:
			sections = []string{body, panel}
		}
	} else {
		sections = []string{body}
	}

	sections = append(sections, m.renderStatus(), m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPanel draws one fretboard sketch per chord, side by side.
func (m *Model) renderPanel() string {
	inst, err := instruments.Lookup(m.render.Instrument)
	if err != nil {
		inst = instruments.Default()
	}

	blocks := make([]string, 0, len(m.render.Chords))
	for _, chord := range m.render.Chords {
		name, frets, _ := strings.Cut(diagrams.Sketch(inst, chord), "\n")
		blocks = append(blocks, styles.chord.Render(name)+"\n"+frets)
	}

	return styles.panel.Render(lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(blocks)...))
}

func joinSpaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, b)
	}
	return out
}

func (m *Model) renderStatus() string {
	parts := []string{
		fmt.Sprintf("format: %s", m.render.Mode),
		fmt.Sprintf("instrument: %s", m.render.Instrument),
		fmt.Sprintf("panel: %s", m.render.Position),
	}
	line := styles.status.Render(strings.Join(parts, " • "))
	if m.status != "" {
		line += "  " + styles.help.Render(m.status)
	}
	return line
}

func (m *Model) renderPicker() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.instrumentList.View(), helpView)
}

// describe formats a viewer notification for the status line.
func describe(event viewer.Event) string {
	switch e := event.(type) {
	case viewer.ChordsChanged:
		if len(e.Chords) == 0 {
			return "chords: none"
		}
		return "chords: " + strings.Join(e.Chords, " ")
	case viewer.InstrumentChanged:
		return "instrument changed to " + e.Instrument
	case viewer.ModeChanged:
		return "format changed to " + string(e.Mode)
	default:
		return ""
	}
}
