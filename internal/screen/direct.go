package screen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Direct renders by writing escape sequences straight to the terminal,
// without an alternate screen. It remembers every cell it overwrites so
// Restore repaints only what it touched.
type Direct struct {
	buf *Buffer
	out *termenv.Output

	in       cancelreader.CancelReader
	fd       int
	oldState *term.State

	initialized bool
}

// NewDirect creates the direct backend for a screen of the given size.
func NewDirect(width, height int) *Direct {
	return &Direct{buf: NewBuffer(width, height)}
}

// Init puts the terminal into raw mode, hides the cursor and clears the
// screen. Nothing is altered if raw mode or the input reader cannot be set
// up.
func (d *Direct) Init() error {
	in, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("input reader: %w", err)
	}

	d.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(d.fd)
	if err != nil {
		in.Close()
		return fmt.Errorf("raw mode: %w", err)
	}

	d.in = in
	d.oldState = oldState
	d.out = termenv.NewOutput(os.Stdout)
	d.initialized = true

	d.out.HideCursor()
	d.out.ClearScreen()
	return nil
}

// DrawText draws text at (row, col), clipped to the screen.
func (d *Direct) DrawText(row, col int, text string, style Style) {
	for _, wr := range d.buf.SetText(row, col, text, style) {
		// termenv cursor addressing is 1-based.
		d.out.MoveCursor(wr.Row+1, wr.Col+1)
		d.out.WriteString(d.styled(wr.Text, wr.Style))
	}
}

func (d *Direct) styled(text string, style Style) string {
	p := d.out.ColorProfile()
	switch style {
	case StyleDim:
		return d.out.String(text).Faint().String()
	case StyleHintFirst:
		return d.out.String(text).Foreground(p.Color("9")).Bold().String()
	case StyleHintSecond:
		return d.out.String(text).Foreground(p.Color("10")).Bold().String()
	default:
		return text
	}
}

// Flush commits the frame that Restore returns to. Draws are written
// unbuffered, so there is no pending output to push.
func (d *Direct) Flush() error {
	d.buf.Commit()
	return nil
}

// Restore repaints every cell drawn since the last Flush with its prior
// content.
func (d *Direct) Restore() {
	for _, wr := range d.buf.Restore() {
		d.out.MoveCursor(wr.Row+1, wr.Col+1)
		d.out.WriteString(d.styled(wr.Text, wr.Style))
	}
}

// ReadKey blocks for one keypress. Ctrl-C and Escape cancel, as does ctx.
func (d *Direct) ReadKey(ctx context.Context) (rune, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			d.in.Cancel()
		case <-stop:
		}
	}()

	var b [4]byte
	n := 0
	for {
		_, err := d.in.Read(b[n : n+1])
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return 0, ErrCancelled
			}
			return 0, err
		}
		n++
		if utf8.FullRune(b[:n]) || n == 4 {
			r, _ := utf8.DecodeRune(b[:n])
			if r == 0x03 || r == 0x1b { // Ctrl-C, Escape
				return 0, ErrCancelled
			}
			return r, nil
		}
	}
}

// Cleanup restores the terminal state from before Init. Safe to call more
// than once and after a failed Init.
func (d *Direct) Cleanup() {
	if !d.initialized {
		return
	}
	d.initialized = false

	d.out.Reset()
	d.out.ShowCursor()
	term.Restore(d.fd, d.oldState)
	d.in.Close()
}
