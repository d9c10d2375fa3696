// Package hints generates and assigns keystroke labels for matches.
//
// With alphabet size k there are at most k*k addressable matches. When more
// than k matches exist the alphabet is split: the first characters stay
// single-keystroke labels and the rest become prefixes of two-character
// labels. The split keeps as many single-character labels as capacity
// allows, so the closest matches need the fewest keystrokes, and no single
// label is ever a prefix of a double one.
package hints

import (
	"sort"

	"github.com/timvw/tmux-easyjump/internal/model"
)

// Generate returns needed labels built from alphabet, singles first. The
// result is capped at len(alphabet)^2; asking for more silently returns the
// maximum. Labels are unique and prefix-free.
func Generate(alphabet []rune, needed int) []string {
	k := len(alphabet)
	if k == 0 || needed <= 0 {
		return nil
	}
	if max := k * k; needed > max {
		needed = max
	}

	if needed <= k {
		labels := make([]string, needed)
		for i := 0; i < needed; i++ {
			labels[i] = string(alphabet[i])
		}
		return labels
	}

	// Largest number of single-character labels s such that the remaining
	// k-s prefixes still cover the rest: needed <= (k-s)*k + s.
	singles := 0
	for s := k; s >= 1; s-- {
		if needed <= (k-s)*k+s {
			singles = s
			break
		}
	}

	labels := make([]string, 0, needed)
	for i := 0; i < singles; i++ {
		labels = append(labels, string(alphabet[i]))
	}
	for _, prefix := range alphabet[singles:] {
		for _, suffix := range alphabet {
			if len(labels) == needed {
				return labels
			}
			labels = append(labels, string(prefix)+string(suffix))
		}
	}
	return labels
}

// Assign pairs matches with labels in ascending distance order, ties broken
// by (pane, line, column) so allocation is deterministic. Matches beyond
// label capacity get no hint; the second return value is how many were
// dropped.
func Assign(matches []model.Match, alphabet []rune) ([]model.Hint, int) {
	sorted := make([]model.Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.PaneID != b.PaneID {
			return a.PaneID < b.PaneID
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.VisualCol < b.VisualCol
	})

	labels := Generate(alphabet, len(sorted))
	assigned := make([]model.Hint, len(labels))
	for i, label := range labels {
		assigned[i] = model.Hint{Label: label, Match: sorted[i]}
	}
	return assigned, len(sorted) - len(labels)
}
