package pattern

import (
	"math"
	"strings"
)

// OffsetDelimiter separates the selector from the start and length fields.
const OffsetDelimiter = ','

// Offset narrows a resolved value to a codepoint range. Start is 1-based.
// A zero Length with HasLength unset means "to the end of the value".
type Offset struct {
	Start     int
	Length    int
	HasLength bool
}

// ParseOffset looks for an offset suffix in token at or after byte index
// from. It never fails: non-numeric fields read as 0 and are rejected later
// by the range check in Fill.
func ParseOffset(token string, from int) (Offset, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(token) {
		return Offset{}, false
	}
	i := strings.IndexByte(token[from:], OffsetDelimiter)
	if i < 0 {
		return Offset{}, false
	}
	rest := token[from+i+1:]

	off := Offset{Start: leadingInt(rest)}
	if j := strings.IndexByte(rest, OffsetDelimiter); j >= 0 {
		off.Length = leadingInt(rest[j+1:])
		off.HasLength = true
	}
	return off, true
}

// leadingInt parses the decimal digits at the start of s, stopping at the
// first non-digit. It returns 0 when s does not start with a digit and
// saturates instead of overflowing.
func leadingInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		n = n*10 + d
	}
	return n
}

// digitRun returns the length of the run of decimal digits at the start of s.
func digitRun(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
