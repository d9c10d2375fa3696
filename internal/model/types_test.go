package model

import "testing"

func TestCursorScreen(t *testing.T) {
	p := &PaneSnapshot{Top: 12, Left: 40, CursorY: 3, CursorX: 7}
	y, x := p.CursorScreen()
	if y != 15 || x != 47 {
		t.Errorf("got (%d, %d), want (15, 47)", y, x)
	}
}

func TestRightEdge(t *testing.T) {
	p := &PaneSnapshot{Left: 40, Width: 39}
	if got := p.RightEdge(); got != 79 {
		t.Errorf("got %d, want 79", got)
	}
}
