// Package ui implements an interactive terminal song sheet viewer using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [SongView] : the formatted song body with an optional chord diagram panel
//  2. [InstrumentPickerView] : a list of supported instruments for the panel
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// It wraps a [viewer.Viewer]: key presses map onto the viewer's user operations
// (m toggles html/text, c toggles the chord panel, p cycles the panel position,
// i opens the instrument picker), and viewer notifications arrive over a channel
// and surface in the status line.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
