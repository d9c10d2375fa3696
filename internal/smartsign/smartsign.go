// Package smartsign expands a typed search pattern into its shifted-symbol
// equivalents, so typing "3" also finds "#" without holding shift.
package smartsign

// DefaultTable maps unshifted keys to their shifted symbol on a US QWERTY
// layout. Other layouts can supply their own table through configuration.
var DefaultTable = map[rune]rune{
	',':  '<',
	'.':  '>',
	'/':  '?',
	'1':  '!',
	'2':  '@',
	'3':  '#',
	'4':  '$',
	'5':  '%',
	'6':  '^',
	'7':  '&',
	'8':  '*',
	'9':  '(',
	'0':  ')',
	'-':  '_',
	'=':  '+',
	';':  ':',
	'[':  '{',
	']':  '}',
	'`':  '~',
	'\'': '"',
	'\\': '|',
}

// Expander generates pattern variants from a shift-symbol table. A nil or
// empty table (or a disabled expander) yields only the original pattern.
type Expander struct {
	table   map[rune]rune
	enabled bool
}

// NewExpander creates an Expander. When table is nil, DefaultTable is used.
func NewExpander(enabled bool, table map[rune]rune) *Expander {
	if table == nil {
		table = DefaultTable
	}
	return &Expander{table: table, enabled: enabled}
}

// Expand returns all variants of pattern with each position independently
// substituted by its shifted symbol, the cartesian product over positions.
// The original pattern is always the first element. Every variant has the
// same rune length as the original.
func (e *Expander) Expand(pattern string) []string {
	if !e.enabled || pattern == "" {
		return []string{pattern}
	}

	variants := []string{""}
	for _, r := range pattern {
		options := []rune{r}
		if alt, ok := e.table[r]; ok {
			options = append(options, alt)
		}
		next := make([]string, 0, len(variants)*len(options))
		for _, v := range variants {
			for _, opt := range options {
				next = append(next, v+string(opt))
			}
		}
		variants = next
	}
	return variants
}
