package pattern

import "math"

// Selector characters recognised at the start of a placeholder.
const (
	SelectorWhole = '@'
	SelectorLast  = '#'
	SelectorName  = '0'
	SelectorExt   = '$'
)

// maxSelectorDigits is how many digits of a numeric selector belong to the
// selector; the offset search starts after them.
const maxSelectorDigits = 2

// FileContext supplies the values of the 0 and $ selectors.
type FileContext struct {
	Name string // base name without extension
	Ext  string // extension including the dot, empty when absent
}

// Kind tags a Resolution.
type Kind int

const (
	// KindLiteral means the token did not select anything and is copied as is.
	KindLiteral Kind = iota
	// KindResolved means the token selected a value.
	KindResolved
)

func (k Kind) String() string {
	if k == KindResolved {
		return "resolved"
	}
	return "literal"
}

// Resolution is the result of resolving one placeholder token.
type Resolution struct {
	Kind      Kind
	Value     string
	Offset    Offset
	HasOffset bool
}

// Literal returns a resolution that copies raw unchanged.
func Literal(raw string) Resolution {
	return Resolution{Kind: KindLiteral, Value: raw}
}

// Resolved returns a resolution for a selected value and its optional offset.
func Resolved(value string, off Offset, hasOffset bool) Resolution {
	return Resolution{Kind: KindResolved, Value: value, Offset: off, HasOffset: hasOffset}
}

// Resolve maps a placeholder token to its value. Numeric selectors that are 0
// or not below t.Len() fall back to a literal copy of the token.
func Resolve(token string, t *Table, file FileContext) Resolution {
	if token == "" {
		return Literal(token)
	}
	if t == nil {
		t = EmptyTable()
	}

	switch token[0] {
	case SelectorWhole:
		off, ok := ParseOffset(token, 1)
		return Resolved(t.Whole(), off, ok)
	case SelectorLast:
		off, ok := ParseOffset(token, 1)
		return Resolved(t.Last(), off, ok)
	case SelectorName:
		off, ok := ParseOffset(token, 1)
		return Resolved(file.Name, off, ok)
	case SelectorExt:
		off, ok := ParseOffset(token, 1)
		return Resolved(file.Ext, off, ok)
	}

	run := digitRun(token)
	if run == 0 {
		return Literal(token)
	}
	idx := leadingInt(token)
	if idx == math.MaxInt {
		return Literal(token)
	}
	value, ok := t.Slot(idx)
	if idx == 0 || !ok {
		return Literal(token)
	}
	off, hasOffset := ParseOffset(token, min(run, maxSelectorDigits))
	return Resolved(value, off, hasOffset)
}
