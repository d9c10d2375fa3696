package model

// PaneSnapshot is a point-in-time view of one visible pane. It is captured
// once per invocation and never mutated afterwards.
type PaneSnapshot struct {
	// ID is the tmux pane identifier (e.g., "%3").
	ID string
	// Active reports whether this pane has focus in the window.
	Active bool
	// Top and Left are the pane's offset in window coordinates.
	Top  int
	Left int
	// Width and Height are the pane's size in cells.
	Width  int
	Height int
	// CopyMode reports whether the pane is in copy mode, in which case
	// CursorY/CursorX are scroll-relative copy-mode coordinates.
	CopyMode bool
	// ScrollPosition is how far the pane is scrolled back (0 = live screen).
	ScrollPosition int
	// CursorY and CursorX are the cursor position in pane-local coordinates.
	CursorY int
	CursorX int
	// Lines is the captured visible content, one entry per row.
	Lines []string
}

// CursorScreen returns the pane cursor in shared window coordinates, so
// positions from different panes are comparable.
func (p *PaneSnapshot) CursorScreen() (y, x int) {
	return p.Top + p.CursorY, p.Left + p.CursorX
}

// RightEdge returns the first column to the right of the pane.
func (p *PaneSnapshot) RightEdge() int {
	return p.Left + p.Width
}

// Match is one occurrence of the search pattern inside a pane.
type Match struct {
	// PaneID identifies the owning pane.
	PaneID string
	// Line is the row index into the pane's captured lines.
	Line int
	// VisualCol is the display column where the match starts, pane-local.
	VisualCol int
	// Width is the display width consumed by the matched text.
	Width int
	// Distance is the squared Euclidean distance, in screen cells, from the
	// reference cursor. Squared keeps the ordering and stays integral.
	Distance int
}

// Hint binds a keystroke label to a match. Labels are one or two characters
// from the configured alphabet; no single-character label is a prefix of any
// two-character one.
type Hint struct {
	Label string
	Match Match
}
