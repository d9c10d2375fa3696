package jump

import (
	"testing"

	"github.com/timvw/tmux-easyjump/internal/model"
)

func hint(label, paneID string) model.Hint {
	return model.Hint{Label: label, Match: model.Match{PaneID: paneID}}
}

func TestSelector_EmptyHintSet(t *testing.T) {
	s := NewSelector(nil)
	if s.State() != Cancelled {
		t.Errorf("state: got %v, want Cancelled", s.State())
	}
}

func TestSelector_SingleKeyResolve(t *testing.T) {
	s := NewSelector([]model.Hint{hint("a", "%1"), hint("s", "%2")})

	s.Advance('s')
	if s.State() != Resolved {
		t.Fatalf("state: got %v, want Resolved", s.State())
	}
	if s.Target().Match.PaneID != "%2" {
		t.Errorf("target pane: got %q, want %q", s.Target().Match.PaneID, "%2")
	}
}

func TestSelector_DoubleKeyResolve(t *testing.T) {
	s := NewSelector([]model.Hint{
		hint("a", "%1"),
		hint("fa", "%2"),
		hint("fs", "%3"),
	})

	s.Advance('f')
	if s.State() != AwaitingSecondKey {
		t.Fatalf("after first key: got %v, want AwaitingSecondKey", s.State())
	}
	if s.Prefix() != "f" {
		t.Errorf("prefix: got %q, want %q", s.Prefix(), "f")
	}

	s.Advance('s')
	if s.State() != Resolved {
		t.Fatalf("after second key: got %v, want Resolved", s.State())
	}
	if s.Target().Match.PaneID != "%3" {
		t.Errorf("target pane: got %q, want %q", s.Target().Match.PaneID, "%3")
	}
}

func TestSelector_NonHintKeyCancels(t *testing.T) {
	s := NewSelector([]model.Hint{hint("a", "%1"), hint("s", "%2")})

	s.Advance('x')
	if s.State() != Cancelled {
		t.Errorf("state: got %v, want Cancelled", s.State())
	}
}

func TestSelector_SecondKeyCancels(t *testing.T) {
	s := NewSelector([]model.Hint{hint("fa", "%1"), hint("fs", "%2")})

	s.Advance('f')
	s.Advance('x')
	if s.State() != Cancelled {
		t.Errorf("state: got %v, want Cancelled", s.State())
	}
}

func TestSelector_Cancel(t *testing.T) {
	s := NewSelector([]model.Hint{hint("a", "%1")})
	s.Cancel()
	if s.State() != Cancelled {
		t.Errorf("state: got %v, want Cancelled", s.State())
	}

	// Terminal state ignores further keystrokes.
	s.Advance('a')
	if s.State() != Cancelled {
		t.Errorf("after Advance: got %v, want Cancelled", s.State())
	}
}

func TestSelector_ResolveIsTerminal(t *testing.T) {
	s := NewSelector([]model.Hint{hint("a", "%1"), hint("s", "%2")})
	s.Advance('a')
	s.Advance('s')

	if s.State() != Resolved {
		t.Fatalf("state: got %v, want Resolved", s.State())
	}
	if s.Target().Match.PaneID != "%1" {
		t.Errorf("target pane: got %q, want %q", s.Target().Match.PaneID, "%1")
	}
}
