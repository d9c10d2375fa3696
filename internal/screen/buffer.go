package screen

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell. A wide rune occupies its start cell; the cell
// to its right becomes a continuation cell with R == 0.
type Cell struct {
	R     rune
	Style Style
}

type cellKey struct {
	row, col int
}

// Buffer tracks drawn cells and the overwrites since the last commit, so a
// backend can restore exactly the cells an overlay touched. Bounds are
// clipped, matching what a terminal would discard.
type Buffer struct {
	width  int
	height int
	cells  map[cellKey]Cell
	// saved holds each cell's content at the moment it was first
	// overwritten after the last commit. A cell absent from cells at that
	// moment is recorded with present == false.
	saved map[cellKey]savedCell
}

type savedCell struct {
	cell    Cell
	present bool
}

// NewBuffer creates a Buffer with the given bounds.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		cells:  make(map[cellKey]Cell),
		saved:  make(map[cellKey]savedCell),
	}
}

// SetText places text rune by rune starting at (row, col), advancing by each
// rune's display width, and returns the cells actually written (clipped to
// the buffer bounds) for the backend to emit.
func (b *Buffer) SetText(row, col int, text string, style Style) []CellWrite {
	if row < 0 || row >= b.height {
		return nil
	}
	var writes []CellWrite
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col < 0 || col+w > b.width {
			col += w
			continue
		}
		b.setCell(row, col, Cell{R: r, Style: style})
		if w == 2 {
			b.setCell(row, col+1, Cell{})
		}
		writes = append(writes, CellWrite{Row: row, Col: col, Text: string(r), Style: style})
		col += w
	}
	return writes
}

func (b *Buffer) setCell(row, col int, c Cell) {
	key := cellKey{row, col}
	if _, dirty := b.saved[key]; !dirty {
		old, ok := b.cells[key]
		b.saved[key] = savedCell{cell: old, present: ok}
	}
	b.cells[key] = c
}

// Commit makes the current content the baseline that Restore returns to.
func (b *Buffer) Commit() {
	b.saved = make(map[cellKey]savedCell)
}

// CellWrite is one cell-level draw operation for a backend to emit.
type CellWrite struct {
	Row   int
	Col   int
	Text  string
	Style Style
}

// Restore rolls every cell modified since the last commit back to its prior
// content and returns the writes needed to repaint them. Cells that were
// empty before are repainted as spaces; continuation cells of wide runes are
// repainted by their start cell.
func (b *Buffer) Restore() []CellWrite {
	keys := make([]cellKey, 0, len(b.saved))
	for k := range b.saved {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].col < keys[j].col
	})

	var writes []CellWrite
	for _, k := range keys {
		prev := b.saved[k]
		switch {
		case !prev.present:
			delete(b.cells, k)
			writes = append(writes, CellWrite{Row: k.row, Col: k.col, Text: " ", Style: StyleNormal})
		case prev.cell.R == 0:
			// Continuation cell: the wide rune's start cell repaints it.
			b.cells[k] = prev.cell
		default:
			b.cells[k] = prev.cell
			writes = append(writes, CellWrite{Row: k.row, Col: k.col, Text: string(prev.cell.R), Style: prev.cell.Style})
		}
	}
	b.saved = make(map[cellKey]savedCell)
	return writes
}

// Cell returns the cell at (row, col) and whether anything was drawn there.
func (b *Buffer) Cell(row, col int) (Cell, bool) {
	c, ok := b.cells[cellKey{row, col}]
	return c, ok
}

// Line renders one row of the buffer as runes, padding undrawn cells with
// spaces. Continuation cells contribute nothing; the wide rune before them
// already covers their column.
func (b *Buffer) Line(row int) []Cell {
	line := make([]Cell, 0, b.width)
	for col := 0; col < b.width; {
		c, ok := b.cells[cellKey{row, col}]
		if !ok {
			line = append(line, Cell{R: ' '})
			col++
			continue
		}
		if c.R == 0 {
			// Orphan continuation (start cell was clipped); blank it.
			line = append(line, Cell{R: ' '})
			col++
			continue
		}
		line = append(line, c)
		col += runewidth.RuneWidth(c.R)
	}
	return line
}

// Width and Height expose the buffer bounds.
func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
