// Package pattern fills destination templates such as "%1%/%0%%$%" from a
// helper's output and the current file's name.
package pattern

import "strings"

// DefaultDelimiter wraps placeholders in a destination template.
const DefaultDelimiter = '%'

// Template is a destination pattern whose delimiters are known to balance.
type Template struct {
	raw   string
	delim rune
	parts []string // even indexes are literal text, odd indexes are tokens
}

// Compile splits raw on delim. It fails with ErrBadPattern when the
// delimiters do not pair up.
func Compile(raw string, delim rune) (*Template, error) {
	parts := strings.Split(raw, string(delim))
	if len(parts)%2 == 0 {
		return nil, unbalanced(raw, delim)
	}
	return &Template{raw: raw, delim: delim, parts: parts}, nil
}

// String returns the template source.
func (tp *Template) String() string {
	return tp.raw
}

// Delimiter returns the placeholder delimiter.
func (tp *Template) Delimiter() rune {
	return tp.delim
}

// Tokens returns the placeholder tokens in order, delimiters stripped.
func (tp *Template) Tokens() []string {
	out := make([]string, 0, len(tp.parts)/2)
	for i := 1; i < len(tp.parts); i += 2 {
		out = append(out, tp.parts[i])
	}
	return out
}

// Fill resolves every placeholder against t and file and returns the
// resulting path. Any out of range offset aborts the whole fill.
func (tp *Template) Fill(t *Table, file FileContext) (string, error) {
	var b strings.Builder
	b.Grow(len(tp.raw))
	for i, part := range tp.parts {
		if i%2 == 0 {
			b.WriteString(part)
			continue
		}
		piece, err := expand(part, t, file)
		if err != nil {
			return "", err
		}
		b.WriteString(piece)
	}
	return b.String(), nil
}

// Fill compiles template and fills it in one step.
func Fill(template string, delim rune, t *Table, file FileContext) (string, error) {
	tp, err := Compile(template, delim)
	if err != nil {
		return "", err
	}
	return tp.Fill(t, file)
}

// expand resolves a single token and applies its offset.
func expand(token string, t *Table, file FileContext) (string, error) {
	res := Resolve(token, t, file)
	if res.Kind == KindLiteral || !res.HasOffset {
		return res.Value, nil
	}

	value := res.Value
	off := res.Offset
	total := CodepointLen(value)

	// An explicit zero length is rejected; only a missing length is open ended.
	if off.Start < 1 || (off.HasLength && off.Length == 0) || off.Start >= total+1 {
		return "", outOfRange(token, off, total)
	}

	length := off.Length
	if remaining := total - off.Start + 1; !off.HasLength || length > remaining {
		length = remaining
	}
	from, to := CodepointSlice(value, off.Start-1, off.Start-1+length)
	return value[from:to], nil
}
