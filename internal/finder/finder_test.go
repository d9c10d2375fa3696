package finder

import (
	"testing"

	"github.com/timvw/tmux-easyjump/internal/model"
	"github.com/timvw/tmux-easyjump/internal/smartsign"
	"github.com/timvw/tmux-easyjump/internal/textwidth"
)

func newTestFinder(caseSensitive bool) *Finder {
	return New(
		textwidth.NewMeasurer(true),
		smartsign.NewExpander(true, nil),
		caseSensitive,
	)
}

func pane(id string, top, left int, lines ...string) *model.PaneSnapshot {
	return &model.PaneSnapshot{
		ID:     id,
		Top:    top,
		Left:   left,
		Width:  80,
		Height: len(lines),
		Lines:  lines,
	}
}

func TestFind_BasicOccurrences(t *testing.T) {
	p := pane("%1", 0, 0, "hello", "echo test")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "e")
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}

	want := []struct {
		line int
		col  int
		dist int
	}{
		{0, 1, 1},  // h[e]llo, cursor at (0,0)
		{1, 0, 1},  // [e]cho
		{1, 6, 37}, // t[e]st
	}
	for i, w := range want {
		m := matches[i]
		if m.Line != w.line || m.VisualCol != w.col || m.Distance != w.dist {
			t.Errorf("match %d: got (line %d, col %d, dist %d), want (line %d, col %d, dist %d)",
				i, m.Line, m.VisualCol, m.Distance, w.line, w.col, w.dist)
		}
		if m.Width != 1 {
			t.Errorf("match %d: width got %d, want 1", i, m.Width)
		}
	}
}

func TestFind_SmartsignVariant(t *testing.T) {
	p := pane("%1", 0, 0, "#1 item and 3 more")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "3")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (literal and shifted)", len(matches))
	}
	if matches[0].VisualCol != 0 {
		t.Errorf("shifted match col: got %d, want 0", matches[0].VisualCol)
	}
	if matches[1].VisualCol != 12 {
		t.Errorf("literal match col: got %d, want 12", matches[1].VisualCol)
	}
}

func TestFind_SmartsignDisabled(t *testing.T) {
	f := New(textwidth.NewMeasurer(true), smartsign.NewExpander(false, nil), false)
	p := pane("%1", 0, 0, "#1 item and 3 more")
	p.Active = true

	matches := f.Find([]*model.PaneSnapshot{p}, "3")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].VisualCol != 12 {
		t.Errorf("col: got %d, want 12", matches[0].VisualCol)
	}
}

func TestFind_WideCharColumns(t *testing.T) {
	p := pane("%1", 0, 0, "哈哈test")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "t")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	// Two double-width glyphs occupy columns 0-3, so "t" starts at column 4.
	if matches[0].VisualCol != 4 {
		t.Errorf("first match col: got %d, want 4", matches[0].VisualCol)
	}
	if matches[1].VisualCol != 7 {
		t.Errorf("second match col: got %d, want 7", matches[1].VisualCol)
	}
}

func TestFind_WideCharMatchWidth(t *testing.T) {
	p := pane("%1", 0, 0, "x哈y")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "哈")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].VisualCol != 1 || matches[0].Width != 2 {
		t.Errorf("got (col %d, width %d), want (col 1, width 2)",
			matches[0].VisualCol, matches[0].Width)
	}
}

func TestFind_CaseSensitivity(t *testing.T) {
	p := pane("%1", 0, 0, "Hello hello")
	p.Active = true

	insensitive := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "h")
	if len(insensitive) != 2 {
		t.Errorf("case-insensitive: got %d matches, want 2", len(insensitive))
	}

	sensitive := newTestFinder(true).Find([]*model.PaneSnapshot{p}, "h")
	if len(sensitive) != 1 {
		t.Fatalf("case-sensitive: got %d matches, want 1", len(sensitive))
	}
	if sensitive[0].VisualCol != 6 {
		t.Errorf("case-sensitive col: got %d, want 6", sensitive[0].VisualCol)
	}
}

func TestFind_PatternLongerThanLine(t *testing.T) {
	p := pane("%1", 0, 0, "ab")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "abc")
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestFind_EmptyPattern(t *testing.T) {
	p := pane("%1", 0, 0, "hello")
	p.Active = true

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "")
	if matches != nil {
		t.Errorf("got %v, want nil", matches)
	}
}

func TestFind_DistanceAcrossPanes(t *testing.T) {
	left := pane("%1", 0, 0, "target")
	left.Active = true
	left.CursorY = 0
	left.CursorX = 0
	right := pane("%2", 0, 40, "target")

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{left, right}, "target")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Distance != 0 {
		t.Errorf("active pane match: dist got %d, want 0", matches[0].Distance)
	}
	// Right pane match is 40 columns away in window coordinates.
	if matches[1].Distance != 1600 {
		t.Errorf("right pane match: dist got %d, want 1600", matches[1].Distance)
	}
}

func TestFind_CursorFromActivePane(t *testing.T) {
	p := pane("%1", 2, 3, "e")
	p.Active = true
	p.CursorY = 0
	p.CursorX = 0

	matches := newTestFinder(false).Find([]*model.PaneSnapshot{p}, "e")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	// Match and cursor share window coordinates (2,3), so they coincide.
	if matches[0].Distance != 0 {
		t.Errorf("dist: got %d, want 0", matches[0].Distance)
	}
}
