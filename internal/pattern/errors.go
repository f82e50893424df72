package pattern

import (
	"gitlab.com/tozd/go/errors"
)

// ErrBadPattern is returned for an unbalanced template or an offset that
// falls outside the resolved value. Test with errors.Is.
var ErrBadPattern = errors.Base("bad pattern")

func unbalanced(template string, delim rune) errors.E {
	return errors.WithDetails(
		errors.Errorf("%w: unbalanced delimiter %q", ErrBadPattern, delim),
		"template", template,
	)
}

func outOfRange(token string, off Offset, total int) errors.E {
	return errors.WithDetails(
		errors.Errorf("%w: offset %d,%d out of range in %q (%d codepoints)", ErrBadPattern, off.Start, off.Length, token, total),
		"token", token,
		"start", off.Start,
		"length", off.Length,
		"codepoints", total,
	)
}
