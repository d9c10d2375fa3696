// Package finder scans pane snapshots for occurrences of a search pattern.
package finder

import (
	"unicode"

	"github.com/timvw/tmux-easyjump/internal/model"
	"github.com/timvw/tmux-easyjump/internal/smartsign"
	"github.com/timvw/tmux-easyjump/internal/textwidth"
)

// Finder locates pattern occurrences across panes. Matching walks rune
// boundaries, so a match can never start or end inside a double-width
// character's second cell.
type Finder struct {
	measure       *textwidth.Measurer
	expand        *smartsign.Expander
	caseSensitive bool
}

// New creates a Finder.
func New(measure *textwidth.Measurer, expand *smartsign.Expander, caseSensitive bool) *Finder {
	return &Finder{measure: measure, expand: expand, caseSensitive: caseSensitive}
}

// Find returns every occurrence of pattern (or one of its smartsign
// variants) across the given panes. Distances are measured in a shared
// window coordinate space against the active pane's cursor; without an
// active pane the window origin is used. The result is unordered; the hint
// allocator sorts it.
func (f *Finder) Find(panes []*model.PaneSnapshot, pattern string) []model.Match {
	patRunes := []rune(pattern)
	if len(patRunes) == 0 {
		return nil
	}

	variants := make([][]rune, 0, 2)
	for _, v := range f.expand.Expand(pattern) {
		variants = append(variants, f.fold([]rune(v)))
	}

	curY, curX := 0, 0
	for _, p := range panes {
		if p.Active {
			curY, curX = p.CursorScreen()
			break
		}
	}

	var matches []model.Match
	for _, pane := range panes {
		for lineNum, line := range pane.Lines {
			runes := []rune(line)
			folded := f.fold(runes)
			visual := 0
			for pos := 0; pos+len(patRunes) <= len(runes); pos++ {
				if pos > 0 {
					visual += f.measure.RuneWidth(runes[pos-1], visual)
				}
				sub := folded[pos : pos+len(patRunes)]
				if !matchesAny(sub, variants) {
					continue
				}
				dy := pane.Top + lineNum - curY
				dx := pane.Left + visual - curX
				matches = append(matches, model.Match{
					PaneID:    pane.ID,
					Line:      lineNum,
					VisualCol: visual,
					Width:     f.measure.RunesWidth(runes[pos:pos+len(patRunes)], visual),
					Distance:  dy*dy + dx*dx,
				})
			}
		}
	}
	return matches
}

// fold lowercases rune by rune when matching is case-insensitive. Per-rune
// folding keeps indices aligned with the original line.
func (f *Finder) fold(rs []rune) []rune {
	if f.caseSensitive {
		return rs
	}
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func matchesAny(sub []rune, variants [][]rune) bool {
	for _, v := range variants {
		if equalRunes(sub, v) {
			return true
		}
	}
	return false
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
