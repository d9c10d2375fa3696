package smartsign

import (
	"reflect"
	"testing"
)

func TestExpand_SingleChar(t *testing.T) {
	e := NewExpander(true, nil)

	got := e.Expand("3")
	want := []string{"3", "#"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q): got %v, want %v", "3", got, want)
	}
}

func TestExpand_NoShiftedSymbol(t *testing.T) {
	e := NewExpander(true, nil)

	got := e.Expand("a")
	want := []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q): got %v, want %v", "a", got, want)
	}
}

func TestExpand_CartesianProduct(t *testing.T) {
	e := NewExpander(true, nil)

	got := e.Expand("12")
	want := []string{"12", "1@", "!2", "!@"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q): got %v, want %v", "12", got, want)
	}
}

func TestExpand_MixedPositions(t *testing.T) {
	e := NewExpander(true, nil)

	got := e.Expand("a3")
	want := []string{"a3", "a#"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q): got %v, want %v", "a3", got, want)
	}
}

func TestExpand_OriginalFirst(t *testing.T) {
	e := NewExpander(true, nil)

	for _, pattern := range []string{"3", "12", ";[", "a"} {
		got := e.Expand(pattern)
		if len(got) == 0 || got[0] != pattern {
			t.Errorf("Expand(%q): first variant got %v, want %q", pattern, got, pattern)
		}
	}
}

func TestExpand_Disabled(t *testing.T) {
	e := NewExpander(false, nil)

	got := e.Expand("3")
	want := []string{"3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q) disabled: got %v, want %v", "3", got, want)
	}
}

func TestExpand_EmptyPattern(t *testing.T) {
	e := NewExpander(true, nil)

	got := e.Expand("")
	want := []string{""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(\"\"): got %v, want %v", got, want)
	}
}

func TestExpand_CustomTable(t *testing.T) {
	e := NewExpander(true, map[rune]rune{'a': 'A'})

	got := e.Expand("ab")
	want := []string{"ab", "Ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(%q) custom table: got %v, want %v", "ab", got, want)
	}
}
