// Package textwidth maps between display columns and rune indices.
//
// Terminal cells and string indices disagree as soon as a line contains
// double-width (CJK) glyphs, combining marks, or tabs. Everything that walks
// captured pane content goes through a Measurer so both views stay
// consistent.
package textwidth

import "github.com/mattn/go-runewidth"

// DefaultTabStop is the tab stop interval used by terminals.
const DefaultTabStop = 8

// Measurer computes display widths. Tab handling depends on the tmux version
// the snapshot came from: tmux >= 3.6 renders position-aware tabs, older
// versions always advance a full tab stop.
//
// A Measurer is not safe for concurrent use; one run owns exactly one.
type Measurer struct {
	positionAwareTabs bool
	cache             map[rune]int
}

// NewMeasurer creates a Measurer. positionAwareTabs selects the tmux >= 3.6
// tab behavior.
func NewMeasurer(positionAwareTabs bool) *Measurer {
	return &Measurer{
		positionAwareTabs: positionAwareTabs,
		cache:             make(map[rune]int),
	}
}

// TabWidth returns the width of a tab starting at the given visual position.
func TabWidth(pos int) int {
	return DefaultTabStop - pos%DefaultTabStop
}

// RuneWidth returns the display width of r at visual position pos:
// 2 for East-Asian wide/fullwidth glyphs, 0 for zero-width and combining
// marks, 1 otherwise. pos only matters for tabs.
func (m *Measurer) RuneWidth(r rune, pos int) int {
	if r == '\t' {
		if m.positionAwareTabs {
			return TabWidth(pos)
		}
		return DefaultTabStop
	}
	if w, ok := m.cache[r]; ok {
		return w
	}
	w := runewidth.RuneWidth(r)
	m.cache[r] = w
	return w
}

// StringWidth returns the total display width of s.
func (m *Measurer) StringWidth(s string) int {
	pos := 0
	for _, r := range s {
		pos += m.RuneWidth(r, pos)
	}
	return pos
}

// RunesWidth returns the total display width of rs starting at visual
// position start.
func (m *Measurer) RunesWidth(rs []rune, start int) int {
	pos := start
	for _, r := range rs {
		pos += m.RuneWidth(r, pos)
	}
	return pos - start
}

// TrueIndex converts a visual column into a rune index into line. A wide
// character straddles two columns; a column inside it maps past that
// character, matching where the terminal would place the cursor. Columns
// beyond the line's total width clamp to the line length.
func (m *Measurer) TrueIndex(line string, visualCol int) int {
	pos := 0
	idx := 0
	for _, r := range line {
		if pos >= visualCol {
			break
		}
		pos += m.RuneWidth(r, pos)
		idx++
	}
	return idx
}
