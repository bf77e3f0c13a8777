package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	chord  lipgloss.Style
	err    lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	panel  lipgloss.Style
}

func NewPalette(t, c, e, s, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		chord:  NewBold(c),
		err:    NewBold(e),
		status: NewStyle(s),
		help:   NewEm(h),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
