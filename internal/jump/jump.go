// Package jump runs one capture → match → hint → select → move cycle.
package jump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/tmux-easyjump/internal/config"
	"github.com/timvw/tmux-easyjump/internal/finder"
	"github.com/timvw/tmux-easyjump/internal/hints"
	"github.com/timvw/tmux-easyjump/internal/model"
	"github.com/timvw/tmux-easyjump/internal/mux"
	ejotel "github.com/timvw/tmux-easyjump/internal/otel"
	"github.com/timvw/tmux-easyjump/internal/screen"
	"github.com/timvw/tmux-easyjump/internal/smartsign"
	"github.com/timvw/tmux-easyjump/internal/textwidth"
)

var tracer = otel.Tracer("tmux-easyjump")

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeJumped    Outcome = "jumped"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeNoMatch   Outcome = "no_match"
)

// Runner holds the collaborators for one jump. Construct it once per
// invocation; it is not reusable.
type Runner struct {
	Mux     mux.Multiplexer
	Config  *config.Config
	Log     *slog.Logger
	Metrics *ejotel.Metrics

	// NewScreen builds the renderer backend for the given client size.
	// Defaults to the backend selected by Config; tests inject fakes.
	NewScreen func(width, height int) screen.Screen
}

// Run executes the full cycle for the given search pattern. A cancelled
// selection and a pattern with no occurrences are successful outcomes; only
// setup failures return an error.
func (r *Runner) Run(ctx context.Context, pattern string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "jump",
		trace.WithAttributes(attribute.Int("pattern.length", len([]rune(pattern)))))
	defer span.End()

	// Snapshot.
	start := time.Now()
	measure := textwidth.NewMeasurer(r.positionAwareTabs(ctx))
	panes, err := r.snapshot(ctx)
	if err != nil {
		return "", err
	}
	r.endPhase(ctx, "snapshot", start)
	r.Metrics.RecordSnapshot(ctx, len(panes))

	if len(panes) == 0 {
		return r.noMatch(ctx)
	}

	// Find.
	start = time.Now()
	expand := smartsign.NewExpander(r.Config.Smartsign, r.Config.ShiftTable())
	f := finder.New(measure, expand, r.Config.CaseSensitive)
	matches := f.Find(panes, pattern)
	r.endPhase(ctx, "find", start)
	r.Metrics.RecordMatches(ctx, len(matches))
	r.Log.Debug("matches found", "pattern", pattern, "count", len(matches))

	switch len(matches) {
	case 0:
		return r.noMatch(ctx)
	case 1:
		if err := r.moveTo(ctx, panes, measure, matches[0]); err != nil {
			return "", err
		}
		r.Metrics.RecordJump(ctx, string(OutcomeJumped))
		return OutcomeJumped, nil
	}

	// Assign.
	start = time.Now()
	assigned, dropped := hints.Assign(matches, r.Config.AlphabetRunes())
	r.endPhase(ctx, "assign", start)
	r.Metrics.RecordHints(ctx, len(assigned), dropped)
	if dropped > 0 {
		r.Log.Debug("hint capacity exceeded", "dropped", dropped)
	}

	// Render.
	start = time.Now()
	width, height, err := r.Mux.ClientSize(ctx)
	if err != nil {
		return "", fmt.Errorf("client size: %w", err)
	}
	scr := r.newScreen(width, height)
	if err := scr.Init(); err != nil {
		return "", fmt.Errorf("screen init: %w", err)
	}
	defer scr.Cleanup()

	ov := newOverlay(scr, measure, panes, height, r.Config.VerticalBorder, r.Config.HorizontalBorder)
	if err := ov.drawPanes(); err != nil {
		return "", fmt.Errorf("draw panes: %w", err)
	}
	ov.setHints(assigned)
	ov.drawHints()
	r.endPhase(ctx, "render", start)

	// The overlay window sits at the end of the window list; switching to
	// it routes the next keystrokes to this process.
	if err := r.Mux.SelectWindow(ctx, "{end}"); err != nil {
		r.Log.Warn("select-window failed", "err", err)
	}

	// Select.
	start = time.Now()
	sel := NewSelector(assigned)
	outcome, err := r.selectLoop(ctx, scr, ov, sel)
	r.endPhase(ctx, "select", start)
	if err != nil {
		return "", err
	}

	if outcome == OutcomeJumped {
		ov.restore()
		if err := r.moveTo(ctx, panes, measure, sel.Target().Match); err != nil {
			return "", err
		}
	}
	r.Metrics.RecordJump(ctx, string(outcome))
	return outcome, nil
}

// selectLoop feeds keystrokes into the selector until it reaches a terminal
// state, narrowing the overlay after each partial prefix.
func (r *Runner) selectLoop(ctx context.Context, scr screen.Screen, ov *overlay, sel *Selector) (Outcome, error) {
	for {
		switch sel.State() {
		case Resolved:
			return OutcomeJumped, nil
		case Cancelled:
			return OutcomeCancelled, nil
		}

		key, err := scr.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, screen.ErrCancelled) {
				sel.Cancel()
				continue
			}
			return "", fmt.Errorf("read key: %w", err)
		}
		sel.Advance(key)
		if sel.State() == AwaitingSecondKey {
			ov.narrow(sel.Prefix())
		}
	}
}

// snapshot lists visible panes and captures their content. A pane that
// fails to capture is skipped; losing one pane must not lose the jump.
func (r *Runner) snapshot(ctx context.Context) ([]*model.PaneSnapshot, error) {
	listed, err := r.Mux.ListPanes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list panes: %w", err)
	}

	panes := make([]*model.PaneSnapshot, 0, len(listed))
	for _, p := range listed {
		if p.Height <= 0 || p.Width <= 0 {
			continue
		}
		lines, err := r.Mux.CapturePane(ctx, p)
		if err != nil {
			r.Log.Warn("skipping pane", "pane", p.ID, "err", err)
			continue
		}
		p.Lines = lines
		panes = append(panes, p)
	}
	return panes, nil
}

// moveTo places the multiplexer cursor on the match, converting the visual
// column back to a rune index, and optionally begins a selection there.
func (r *Runner) moveTo(ctx context.Context, panes []*model.PaneSnapshot, measure *textwidth.Measurer, m model.Match) error {
	var pane *model.PaneSnapshot
	for _, p := range panes {
		if p.ID == m.PaneID {
			pane = p
			break
		}
	}
	if pane == nil || m.Line >= len(pane.Lines) {
		return fmt.Errorf("match target %s:%d no longer in snapshot", m.PaneID, m.Line)
	}

	col := measure.TrueIndex(pane.Lines[m.Line], m.VisualCol)
	if err := r.Mux.MoveCursor(ctx, pane, m.Line, col); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	if r.Config.Select {
		if err := r.Mux.BeginSelection(ctx, pane); err != nil {
			return fmt.Errorf("begin selection: %w", err)
		}
	}
	r.Log.Debug("cursor moved", "pane", pane.ID, "line", m.Line, "col", col)
	return nil
}

func (r *Runner) noMatch(ctx context.Context) (Outcome, error) {
	if err := r.Mux.DisplayMessage(ctx, "no match"); err != nil {
		r.Log.Warn("display-message failed", "err", err)
	}
	r.Metrics.RecordJump(ctx, string(OutcomeNoMatch))
	return OutcomeNoMatch, nil
}

// positionAwareTabs reports whether the multiplexer renders tabs against
// tab stops (tmux >= 3.6) rather than as a fixed eight cells.
func (r *Runner) positionAwareTabs(ctx context.Context) bool {
	major, minor := r.Mux.Version(ctx)
	return major > 3 || (major == 3 && minor >= 6)
}

func (r *Runner) newScreen(width, height int) screen.Screen {
	if r.NewScreen != nil {
		return r.NewScreen(width, height)
	}
	if r.Config.AltScreen {
		return screen.NewAltScreen(width, height)
	}
	return screen.NewDirect(width, height)
}

func (r *Runner) endPhase(ctx context.Context, name string, start time.Time) {
	d := time.Since(start)
	r.Metrics.RecordPhase(ctx, name, d.Seconds())
	if r.Config.Perf {
		r.Log.Info("phase complete", "phase", name, "duration", d)
	}
}
