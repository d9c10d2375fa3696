package jump

import (
	"strings"

	"github.com/timvw/tmux-easyjump/internal/model"
)

// SelectionState is the state of the hint selection machine.
type SelectionState int

const (
	// AwaitingFirstKey means no keystroke has been consumed yet.
	AwaitingFirstKey SelectionState = iota
	// AwaitingSecondKey means the first keystroke narrowed the hints to
	// two-character labels sharing that prefix.
	AwaitingSecondKey
	// Resolved means exactly one hint was selected.
	Resolved
	// Cancelled means the selection ended without a target.
	Cancelled
)

// Selector narrows a hint set to a single match, one keystroke at a time.
// Labels are prefix-free, so the first full-length unique candidate is the
// answer; an empty candidate set cancels.
type Selector struct {
	hints  []model.Hint
	prefix string
	state  SelectionState
	target model.Hint
}

// NewSelector creates a Selector. An empty hint set is Cancelled from the
// start; no key read is needed to find that out.
func NewSelector(hints []model.Hint) *Selector {
	s := &Selector{hints: hints}
	if len(hints) == 0 {
		s.state = Cancelled
	}
	return s
}

// State returns the current state.
func (s *Selector) State() SelectionState {
	return s.state
}

// Prefix returns the accumulated keystrokes.
func (s *Selector) Prefix() string {
	return s.prefix
}

// Target returns the selected hint; only valid in the Resolved state.
func (s *Selector) Target() model.Hint {
	return s.target
}

// Cancel moves the machine to Cancelled, for interrupts.
func (s *Selector) Cancel() {
	s.state = Cancelled
}

// Advance consumes one keystroke. It is a no-op in a terminal state.
func (s *Selector) Advance(r rune) {
	if s.state == Resolved || s.state == Cancelled {
		return
	}
	s.prefix += string(r)

	var remaining []model.Hint
	for _, h := range s.hints {
		if strings.HasPrefix(h.Label, s.prefix) {
			remaining = append(remaining, h)
		}
	}

	switch {
	case len(remaining) == 0:
		s.state = Cancelled
	case len(remaining) == 1 && remaining[0].Label == s.prefix:
		s.target = remaining[0]
		s.state = Resolved
	default:
		s.hints = remaining
		s.state = AwaitingSecondKey
	}
}
