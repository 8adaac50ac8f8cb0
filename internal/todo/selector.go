package todo

import "strconv"

// Selector identifies one item, either by zero-based index or by
// case-insensitive exact text match.
type Selector struct {
	raw     string
	index   int
	numeric bool
}

// ParseSelector interprets raw as an index when it consists entirely of
// ASCII digits, and as item text otherwise. Index parsing wins, so an
// item whose text is all digits can only be selected by index.
func ParseSelector(raw string) Selector {
	sel := Selector{raw: raw, index: -1}
	if !isAllDigits(raw) {
		return sel
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Too many digits for an int. Fall back to a text match.
		return sel
	}
	sel.index = n
	sel.numeric = true
	return sel
}

// ByIndex reports whether the selector addresses an item by position.
func (s Selector) ByIndex() bool {
	return s.numeric
}

// String returns the raw selector input.
func (s Selector) String() string {
	return s.raw
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
