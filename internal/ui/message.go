package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwestlake/chordstand/internal/viewer"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgNotification MsgKind = iota
	MsgContentLoaded
	MsgLoadFailed
)

// notificationMsg is the constructor for [MsgNotification]
func notificationMsg(event viewer.Event) Msg {
	return Msg{kind: MsgNotification, data: event}
}

// contentLoadedMsg is the constructor for [MsgContentLoaded]
func contentLoadedMsg(text string) Msg {
	return Msg{kind: MsgContentLoaded, data: text}
}

// loadFailedMsg is the constructor for [MsgLoadFailed]
func loadFailedMsg(err error) Msg {
	return Msg{kind: MsgLoadFailed, data: err}
}
