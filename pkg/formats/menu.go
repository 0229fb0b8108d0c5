package formats

import (
	"errors"
	"fmt"
)

// ErrNoEntry is returned when activating an index outside the menu.
var ErrNoEntry = errors.New("formats: no such menu entry")

// Action is a caller-provided entry listed before the import entries, e.g.
// "Open..." or "Connect to device...".
type Action struct {
	Label string
	Run   func()
}

// MenuEntry is one row of the import menu. Exactly one of Format and run is
// set unless the entry is a separator.
type MenuEntry struct {
	Label     string
	Format    *Format
	Separator bool

	run func()
}

// ImportMenu lists the open actions followed by one "Import" entry per
// format. Choosing a format entry calls FormatSelected.
type ImportMenu struct {
	// FormatSelected receives the format of an activated import entry.
	FormatSelected func(*Format)

	entries []MenuEntry
}

// NewImportMenu builds the menu for every format in c.
func NewImportMenu(c *Catalog, actions ...Action) *ImportMenu {
	m := &ImportMenu{}
	for _, a := range actions {
		m.entries = append(m.entries, MenuEntry{Label: a.Label, run: a.Run})
	}

	var formats []*Format
	if c != nil {
		formats = c.Formats()
	}
	if len(actions) > 0 && len(formats) > 0 {
		m.entries = append(m.entries, MenuEntry{Separator: true})
	}
	for _, f := range formats {
		m.entries = append(m.entries, MenuEntry{
			Label:  fmt.Sprintf("Import %s...", f.Name),
			Format: f,
		})
	}
	return m
}

// Entries returns the menu rows in display order.
func (m *ImportMenu) Entries() []MenuEntry {
	out := make([]MenuEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Activate runs the entry at index i. Separators do nothing.
func (m *ImportMenu) Activate(i int) error {
	if i < 0 || i >= len(m.entries) {
		return fmt.Errorf("%w: %d", ErrNoEntry, i)
	}
	e := m.entries[i]
	switch {
	case e.Format != nil:
		if m.FormatSelected != nil {
			m.FormatSelected(e.Format)
		}
	case e.run != nil:
		e.run()
	}
	return nil
}
