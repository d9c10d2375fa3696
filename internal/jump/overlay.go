package jump

import (
	"sort"
	"strings"

	"github.com/timvw/tmux-easyjump/internal/model"
	"github.com/timvw/tmux-easyjump/internal/screen"
	"github.com/timvw/tmux-easyjump/internal/textwidth"
)

// overlay composes the multi-pane snapshot and the hint labels on a Screen.
// The pane paint is committed as the base frame; hint draws stay on top of
// it, so narrowing restores originals through the screen's cell tracking.
type overlay struct {
	scr     screen.Screen
	measure *textwidth.Measurer
	panes   map[string]*model.PaneSnapshot
	height  int
	vBorder string
	hBorder string

	positions []hintPos
}

// hintPos is one hint label placed in screen coordinates.
type hintPos struct {
	hint      model.Hint
	screenY   int
	screenX   int
	rightEdge int
	// chWidth is the display width of the character under the hint; the
	// second label character lands after it.
	chWidth int
}

func newOverlay(scr screen.Screen, measure *textwidth.Measurer, panes []*model.PaneSnapshot, height int, vBorder, hBorder string) *overlay {
	byID := make(map[string]*model.PaneSnapshot, len(panes))
	for _, p := range panes {
		byID[p.ID] = p
	}
	return &overlay{
		scr:     scr,
		measure: measure,
		panes:   byID,
		height:  height,
		vBorder: vBorder,
		hBorder: hBorder,
	}
}

// drawPanes paints every pane's content and the borders between panes, then
// commits the frame.
func (o *overlay) drawPanes() error {
	panes := make([]*model.PaneSnapshot, 0, len(o.panes))
	maxX := 0
	for _, p := range o.panes {
		panes = append(panes, p)
		if p.RightEdge() > maxX {
			maxX = p.RightEdge()
		}
	}
	sort.Slice(panes, func(i, j int) bool {
		return panes[i].Top+panes[i].Height < panes[j].Top+panes[j].Height
	})

	for i, p := range panes {
		visible := p.Height
		if rest := o.height - p.Top; rest < visible {
			visible = rest
		}
		if visible <= 0 {
			continue
		}

		for y, line := range p.Lines {
			if y >= visible {
				break
			}
			line = o.expandTabs(line)
			if pad := p.Width - o.measure.StringWidth(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			o.scr.DrawText(p.Top+y, p.Left, o.truncate(line, p.Width), screen.StyleNormal)
		}

		if p.RightEdge() < maxX {
			for y := p.Top; y < p.Top+visible; y++ {
				o.scr.DrawText(y, p.RightEdge(), o.vBorder, screen.StyleDim)
			}
		}
		if endY := p.Top + visible; endY < o.height && i != len(panes)-1 {
			o.scr.DrawText(endY, p.Left, strings.Repeat(o.hBorder, p.Width), screen.StyleDim)
		}
	}

	return o.scr.Flush()
}

// setHints resolves hint labels to screen positions. Hints whose match fell
// outside the captured content are dropped.
func (o *overlay) setHints(hints []model.Hint) {
	o.positions = o.positions[:0]
	for _, h := range hints {
		p, ok := o.panes[h.Match.PaneID]
		if !ok || h.Match.Line >= len(p.Lines) {
			continue
		}
		line := []rune(p.Lines[h.Match.Line])
		idx := o.measure.TrueIndex(p.Lines[h.Match.Line], h.Match.VisualCol)
		if idx >= len(line) {
			continue
		}
		o.positions = append(o.positions, hintPos{
			hint:      h,
			screenY:   p.Top + h.Match.Line,
			screenX:   p.Left + h.Match.VisualCol,
			rightEdge: p.RightEdge(),
			chWidth:   o.measure.RuneWidth(line[idx], h.Match.VisualCol),
		})
	}
}

// drawHints overlays every hint label onto the committed frame.
func (o *overlay) drawHints() {
	for _, pos := range o.positions {
		if pos.screenY >= o.height {
			continue
		}
		label := []rune(pos.hint.Label)
		o.scr.DrawText(pos.screenY, pos.screenX, string(label[0]), screen.StyleHintFirst)
		if len(label) > 1 {
			if nextX := pos.screenX + pos.chWidth; nextX < pos.rightEdge {
				o.scr.DrawText(pos.screenY, nextX, string(label[1]), screen.StyleHintSecond)
			}
		}
	}
}

// narrow restores the frame and redraws only the hints still reachable
// under prefix, showing their remaining keystroke.
func (o *overlay) narrow(prefix string) {
	o.scr.Restore()
	for _, pos := range o.positions {
		if pos.screenY >= o.height {
			continue
		}
		label := []rune(pos.hint.Label)
		plen := len([]rune(prefix))
		if !strings.HasPrefix(pos.hint.Label, prefix) || len(label) <= plen {
			continue
		}
		o.scr.DrawText(pos.screenY, pos.screenX, string(label[plen]), screen.StyleHintSecond)
	}
}

// restore removes all hint overlays, bringing back the committed frame.
func (o *overlay) restore() {
	o.scr.Restore()
}

// expandTabs replaces tabs with the spaces they occupy on screen, keeping
// later columns aligned with the captured geometry.
func (o *overlay) expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	pos := 0
	for _, r := range line {
		if r == '\t' {
			w := o.measure.RuneWidth(r, pos)
			sb.WriteString(strings.Repeat(" ", w))
			pos += w
			continue
		}
		sb.WriteRune(r)
		pos += o.measure.RuneWidth(r, pos)
	}
	return sb.String()
}

// truncate cuts line at the given display width, never splitting a wide
// character.
func (o *overlay) truncate(line string, width int) string {
	pos := 0
	for i, r := range line {
		w := o.measure.RuneWidth(r, pos)
		if pos+w > width {
			return line[:i]
		}
		pos += w
	}
	return line
}
