package screen

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dimStyle        = lipgloss.NewStyle().Faint(true)
	hintFirstStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hintSecondStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// AltScreen is the full-screen backend: a bubbletea program owning the
// alternate screen. Entering and leaving the alternate screen gives
// restore-on-exit for free; the cell buffer provides the overlay-level
// restore between keystrokes.
type AltScreen struct {
	model *overlayModel
	prog  *tea.Program
	keys  chan keyEvent
	done  chan error

	initialized bool
}

// NewAltScreen creates the alternate-screen backend for a screen of the
// given size.
func NewAltScreen(width, height int) *AltScreen {
	keys := make(chan keyEvent, 8)
	return &AltScreen{
		model: &overlayModel{
			buf:  NewBuffer(width, height),
			keys: keys,
			cancel: key.NewBinding(
				key.WithKeys("ctrl+c", "esc"),
			),
		},
		keys: keys,
		done: make(chan error, 1),
	}
}

// Init starts the program. Terminal acquisition happens inside the program
// loop; a failure surfaces on the first ReadKey or on Cleanup.
func (a *AltScreen) Init() error {
	a.prog = tea.NewProgram(a.model, tea.WithAltScreen())
	a.initialized = true
	go func() {
		_, err := a.prog.Run()
		a.done <- err
	}()
	return nil
}

// DrawText draws text at (row, col), clipped to the screen.
func (a *AltScreen) DrawText(row, col int, text string, style Style) {
	a.prog.Send(drawMsg{row: row, col: col, text: text, style: style})
}

// Flush commits the frame; the program repaints on its own.
func (a *AltScreen) Flush() error {
	a.prog.Send(commitMsg{})
	return nil
}

// Restore rolls back every cell drawn since the last Flush.
func (a *AltScreen) Restore() {
	a.prog.Send(restoreMsg{})
}

// ReadKey blocks for one decoded keypress from the program.
func (a *AltScreen) ReadKey(ctx context.Context) (rune, error) {
	select {
	case <-ctx.Done():
		return 0, ErrCancelled
	case err := <-a.done:
		// Program ended before a key arrived (terminal failure or quit).
		a.done <- err
		if err != nil {
			return 0, err
		}
		return 0, ErrCancelled
	case ev := <-a.keys:
		if ev.cancelled {
			return 0, ErrCancelled
		}
		return ev.r, nil
	}
}

// Cleanup quits the program, which leaves the alternate screen and restores
// the terminal. Safe to call more than once.
func (a *AltScreen) Cleanup() {
	if !a.initialized {
		return
	}
	a.initialized = false
	a.prog.Quit()
	<-a.done
}

type keyEvent struct {
	r         rune
	cancelled bool
}

type drawMsg struct {
	row, col int
	text     string
	style    Style
}

type commitMsg struct{}

type restoreMsg struct{}

// overlayModel holds the cell grid. All mutation happens inside Update, on
// the program goroutine.
type overlayModel struct {
	buf    *Buffer
	keys   chan<- keyEvent
	cancel key.Binding
}

func (m *overlayModel) Init() tea.Cmd {
	return nil
}

func (m *overlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case drawMsg:
		m.buf.SetText(msg.row, msg.col, msg.text, msg.style)
	case commitMsg:
		m.buf.Commit()
	case restoreMsg:
		m.buf.Restore()
	case tea.KeyMsg:
		m.deliver(msg)
	}
	return m, nil
}

func (m *overlayModel) deliver(msg tea.KeyMsg) {
	var ev keyEvent
	switch {
	case key.Matches(msg, m.cancel):
		ev.cancelled = true
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		ev.r = msg.Runes[0]
	default:
		// Arrows, function keys and chords are never hint characters;
		// rune 0 matches no label and falls out of the selection loop.
	}
	select {
	case m.keys <- ev:
	default:
		// Reader is gone; drop rather than wedge the program loop.
	}
}

func (m *overlayModel) View() string {
	var sb strings.Builder
	for row := 0; row < m.buf.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		renderLine(&sb, m.buf.Line(row))
	}
	return sb.String()
}

// renderLine writes one row, batching runs of equal style into a single
// styled segment.
func renderLine(sb *strings.Builder, cells []Cell) {
	var run strings.Builder
	style := StyleNormal
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(applyStyle(run.String(), style))
		run.Reset()
	}
	for _, c := range cells {
		if c.Style != style {
			flush()
			style = c.Style
		}
		run.WriteRune(c.R)
	}
	flush()
}

func applyStyle(text string, style Style) string {
	switch style {
	case StyleDim:
		return dimStyle.Render(text)
	case StyleHintFirst:
		return hintFirstStyle.Render(text)
	case StyleHintSecond:
		return hintSecondStyle.Render(text)
	default:
		return text
	}
}
