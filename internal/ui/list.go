package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mwestlake/chordstand/internal/instruments"
)

var _ list.Item = instrumentItem{}

// instrumentItem wraps [instruments.Instrument] to implement [list.Item].
type instrumentItem struct {
	instrument instruments.Instrument
}

func (i instrumentItem) FilterValue() string { return i.instrument.Name }
func (i instrumentItem) Title() string       { return i.instrument.Name }
func (i instrumentItem) Description() string {
	return "tuning " + strings.Join(i.instrument.Tuning, " ")
}

// newInstrumentList builds the picker list over all supported instruments,
// pre-selecting the named one.
func newInstrumentList(selected string, width, height int) list.Model {
	all := instruments.All()
	items := make([]list.Item, len(all))
	index := 0
	for i, inst := range all {
		items[i] = instrumentItem{instrument: inst}
		if inst.Name == selected {
			index = i
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Instruments"
	l.Styles.Title = styles.title
	l.Select(index)
	l.SetShowHelp(false)
	return l
}
