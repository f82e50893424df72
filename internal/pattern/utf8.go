package pattern

// isLeading reports whether b starts a codepoint (anything but 10xxxxxx).
func isLeading(b byte) bool {
	return b&0xC0 != 0x80
}

// CodepointLen returns the number of UTF-8 codepoints in s.
// Every byte that is not a continuation byte counts as one codepoint, so
// malformed input never panics and never undercounts.
func CodepointLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isLeading(s[i]) {
			n++
		}
	}
	return n
}

// CodepointIndex returns the byte offset of the first byte of the pos'th
// (0-based) codepoint in s. ok is false when s has pos or fewer codepoints.
func CodepointIndex(s string, pos int) (offset int, ok bool) {
	if pos < 0 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if !isLeading(s[i]) {
			continue
		}
		if pos == 0 {
			return i, true
		}
		pos--
	}
	return 0, false
}

// CodepointSlice converts the codepoint range [start, end) to byte offsets.
// An index past the last codepoint maps to len(s).
func CodepointSlice(s string, start, end int) (from, to int) {
	from, ok := CodepointIndex(s, start)
	if !ok {
		from = len(s)
	}
	to, ok = CodepointIndex(s, end)
	if !ok {
		to = len(s)
	}
	if to < from {
		to = from
	}
	return from, to
}
