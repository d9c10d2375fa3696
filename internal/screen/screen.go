// Package screen renders the pane snapshot and hint overlay.
//
// Two backends implement the same capability set: a bubbletea program that
// owns the alternate screen, and a direct backend that writes escape
// sequences and tracks exactly the cells it touches. The jump engine only
// sees the Screen interface and picks a backend once at startup.
package screen

import (
	"context"
	"errors"
)

// Style is a backend-independent text attribute.
type Style int

const (
	StyleNormal Style = iota
	// StyleDim renders pane borders.
	StyleDim
	// StyleHintFirst marks the first character of a hint label.
	StyleHintFirst
	// StyleHintSecond marks the second character of a hint label.
	StyleHintSecond
)

// ErrCancelled is returned by ReadKey when the user interrupts the run.
var ErrCancelled = errors.New("cancelled by user")

// Screen is the rendering capability set. Implementations are single-use:
// Init once, then draw/read, then Cleanup. Cleanup must be safe to call on
// every exit path, including after a failed Init.
type Screen interface {
	// Init acquires the terminal. No terminal state may be altered if Init
	// returns an error.
	Init() error

	// DrawText draws text at (row, col) in screen coordinates. Drawing
	// outside the screen bounds is silently clipped. Output may be
	// buffered until Flush.
	DrawText(row, col int, text string, style Style)

	// Flush makes all drawn text visible and commits it as the frame that
	// Restore returns to.
	Flush() error

	// Restore rewrites every cell modified since the last Flush with its
	// prior content, leaving unrelated cells untouched.
	Restore()

	// ReadKey blocks for a single keypress. It returns ErrCancelled when
	// the user interrupts (Ctrl-C/Escape) or when ctx is cancelled.
	ReadKey(ctx context.Context) (rune, error)

	// Cleanup releases the terminal, restoring the state from before Init.
	Cleanup()
}
