// Package mux provides an abstraction over terminal multiplexers (tmux, zellij).
//
// This package is pure transport: it snapshots pane topology and content and
// issues cursor commands, without interpreting any of it. Matching and hint
// logic live elsewhere.
package mux

import (
	"context"

	"github.com/timvw/tmux-easyjump/internal/model"
)

// Multiplexer abstracts terminal multiplexer operations.
// Implementations exist for tmux and (future) zellij.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux", "zellij").
	Name() string

	// ListPanes returns metadata for all visible panes of the current
	// window: geometry, cursor, scroll and mode state. When the window is
	// zoomed only the active pane is visible and returned. Content is not
	// captured; see CapturePane.
	ListPanes(ctx context.Context) ([]*model.PaneSnapshot, error)

	// CapturePane captures the visible content of a pane, one string per
	// row, honoring the pane's scroll position.
	CapturePane(ctx context.Context, pane *model.PaneSnapshot) ([]string, error)

	// ClientSize returns the attached client's usable width and height.
	ClientSize(ctx context.Context) (width, height int, err error)

	// MoveCursor places the copy-mode cursor of the pane on the given line
	// and rune column, entering copy mode first when needed.
	MoveCursor(ctx context.Context, pane *model.PaneSnapshot, line, col int) error

	// BeginSelection starts a copy-mode selection at the current cursor.
	BeginSelection(ctx context.Context, pane *model.PaneSnapshot) error

	// SelectWindow switches the client to the given window target.
	SelectWindow(ctx context.Context, target string) error

	// DisplayMessage shows a transient status-line message.
	DisplayMessage(ctx context.Context, msg string) error

	// Version returns the multiplexer's (major, minor) version, or (0, 0)
	// when detection fails.
	Version(ctx context.Context) (major, minor int)
}
