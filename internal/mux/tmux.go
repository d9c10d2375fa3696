package mux

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/timvw/tmux-easyjump/internal/model"
)

// paneFormat is the list-panes format string. One batched call returns
// everything the snapshot needs; field order must match parsePaneLine.
const paneFormat = "#{pane_id},#{window_zoomed_flag},#{pane_active}," +
	"#{pane_top},#{pane_height},#{pane_left},#{pane_width}," +
	"#{pane_in_mode},#{scroll_position}," +
	"#{cursor_y},#{cursor_x},#{copy_cursor_y},#{copy_cursor_x}"

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	log *slog.Logger

	versionOnce  bool
	versionMajor int
	versionMinor int
}

// NewTmux creates a new tmux multiplexer. A nil logger disables command
// tracing.
func NewTmux(log *slog.Logger) *Tmux {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tmux{log: log}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// ListPanes returns geometry and cursor metadata for every visible pane of
// the current window. Individual malformed lines are skipped with a warning
// rather than failing the whole snapshot.
func (t *Tmux) ListPanes(ctx context.Context) ([]*model.PaneSnapshot, error) {
	out, err := t.run(ctx, "list-panes", "-F", paneFormat)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}
	return t.parsePaneList(out), nil
}

// parsePaneList parses list-panes output, dropping malformed lines and, in a
// zoomed window, every pane but the active one.
func (t *Tmux) parsePaneList(out string) []*model.PaneSnapshot {
	var panes []*model.PaneSnapshot
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		pane, zoomed, err := parsePaneLine(line)
		if err != nil {
			t.log.Warn("skipping pane", "line", line, "err", err)
			continue
		}
		// In a zoomed window only the active pane is on screen.
		if zoomed && !pane.Active {
			continue
		}
		panes = append(panes, pane)
	}
	return panes
}

// parsePaneLine parses one list-panes output line in paneFormat order.
func parsePaneLine(line string) (*model.PaneSnapshot, bool, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 13 {
		return nil, false, fmt.Errorf("expected 13 fields, got %d", len(fields))
	}

	ints := make([]int, 13)
	for i, f := range fields[3:] {
		if f == "" {
			continue // scroll_position is empty when not scrolled
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false, fmt.Errorf("field %d: %w", i+3, err)
		}
		ints[i+3] = n
	}

	pane := &model.PaneSnapshot{
		ID:             fields[0],
		Active:         fields[2] == "1",
		Top:            ints[3],
		Height:         ints[4],
		Left:           ints[5],
		Width:          ints[6],
		CopyMode:       fields[7] == "1",
		ScrollPosition: ints[8],
	}
	// Copy mode reports a scroll-relative cursor in separate fields.
	if pane.CopyMode {
		pane.CursorY = ints[11]
		pane.CursorX = ints[12]
	} else {
		pane.CursorY = ints[9]
		pane.CursorX = ints[10]
	}
	return pane, fields[1] == "1", nil
}

// CapturePane captures the pane's on-screen rows. A scrolled pane is
// captured at its scroll window so the snapshot matches what the user sees.
func (t *Tmux) CapturePane(ctx context.Context, pane *model.PaneSnapshot) ([]string, error) {
	if pane.Height <= 0 || pane.Width <= 0 {
		return nil, nil
	}

	args := []string{"capture-pane", "-p", "-t", pane.ID}
	if pane.ScrollPosition > 0 {
		end := -(pane.ScrollPosition - pane.Height + 1)
		args = append(args,
			"-S", strconv.Itoa(-pane.ScrollPosition),
			"-E", strconv.Itoa(end))
	}

	out, err := t.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("tmux capture-pane -t %s: %w", pane.ID, err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) > pane.Height {
		lines = lines[:pane.Height]
	}
	return lines, nil
}

// ClientSize returns the attached client's size. The bottom row holds the
// tmux status line and is excluded.
func (t *Tmux) ClientSize(ctx context.Context) (int, int, error) {
	out, err := t.run(ctx, "display-message", "-p", "#{client_width},#{client_height}")
	if err != nil {
		return 0, 0, fmt.Errorf("tmux display-message: %w", err)
	}
	parts := strings.Split(strings.TrimSpace(out), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected client size %q", out)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h - 1, nil
}

// MoveCursor walks the copy-mode cursor to (line, col). tmux has no
// absolute copy-mode addressing, so the cursor moves relative to top-line
// and start-of-line.
func (t *Tmux) MoveCursor(ctx context.Context, pane *model.PaneSnapshot, line, col int) error {
	cmds := [][]string{
		{"select-pane", "-t", pane.ID},
	}
	if !pane.CopyMode {
		cmds = append(cmds, []string{"copy-mode", "-t", pane.ID})
	}
	cmds = append(cmds, []string{"send-keys", "-X", "-t", pane.ID, "top-line"})
	if line > 0 {
		cmds = append(cmds, []string{"send-keys", "-X", "-t", pane.ID, "-N", strconv.Itoa(line), "cursor-down"})
	}
	cmds = append(cmds, []string{"send-keys", "-X", "-t", pane.ID, "start-of-line"})
	if col > 0 {
		cmds = append(cmds, []string{"send-keys", "-X", "-t", pane.ID, "-N", strconv.Itoa(col), "cursor-right"})
	}

	for _, args := range cmds {
		if _, err := t.run(ctx, args...); err != nil {
			return fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// BeginSelection starts a copy-mode selection at the current cursor.
func (t *Tmux) BeginSelection(ctx context.Context, pane *model.PaneSnapshot) error {
	_, err := t.run(ctx, "send-keys", "-X", "-t", pane.ID, "begin-selection")
	if err != nil {
		return fmt.Errorf("tmux begin-selection: %w", err)
	}
	return nil
}

// SelectWindow switches the client to the given window target.
func (t *Tmux) SelectWindow(ctx context.Context, target string) error {
	_, err := t.run(ctx, "select-window", "-t", target)
	if err != nil {
		return fmt.Errorf("tmux select-window: %w", err)
	}
	return nil
}

// DisplayMessage shows a transient status-line message.
func (t *Tmux) DisplayMessage(ctx context.Context, msg string) error {
	_, err := t.run(ctx, "display-message", msg)
	if err != nil {
		return fmt.Errorf("tmux display-message: %w", err)
	}
	return nil
}

// versionPattern matches "3.5", "3.0a", "3.1-rc2" and "next-3.6".
var versionPattern = regexp.MustCompile(`(?:next-)?(\d+)\.(\d+)`)

// Version detects the tmux version, cached for the run. Development builds
// ("master") and OpenBSD base versions report (0, 0) so callers use the
// conservative behavior.
func (t *Tmux) Version(ctx context.Context) (int, int) {
	if t.versionOnce {
		return t.versionMajor, t.versionMinor
	}
	t.versionOnce = true
	t.versionMajor, t.versionMinor = 0, 0

	out, err := t.run(ctx, "-V")
	if err != nil {
		return 0, 0
	}
	v := strings.TrimSpace(out)
	if strings.Contains(v, "openbsd-") || strings.Contains(v, "master") {
		return 0, 0
	}
	m := versionPattern.FindStringSubmatch(v)
	if m == nil {
		return 0, 0
	}
	t.versionMajor, _ = strconv.Atoi(m[1])
	t.versionMinor, _ = strconv.Atoi(m[2])
	return t.versionMajor, t.versionMinor
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			err = fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		t.log.Debug("tmux command failed", "args", args, "err", err)
		return "", err
	}
	t.log.Debug("tmux command", "args", args, "bytes", len(out))
	return string(out), nil
}
