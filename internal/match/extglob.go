package match

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMatcher is a source glob rewritten for doublestar. The ksh forms
// @(a|b) and ?(a|b) become brace alternation; a glob that is entirely !(pat)
// matches every name pat does not.
type globMatcher struct {
	glob   string
	negate bool
}

func compileGlob(glob string) (globMatcher, error) {
	var m globMatcher
	if strings.HasPrefix(glob, "!(") {
		end, err := closeParen(glob, 1)
		if err != nil {
			return m, err
		}
		if end == len(glob)-1 {
			m.negate = true
			glob = glob[2:end]
		}
	}
	translated, err := translateExtglob(glob)
	if err != nil {
		return m, err
	}
	if !doublestar.ValidatePattern(translated) {
		return m, fmt.Errorf("source pattern %q: %w", glob, doublestar.ErrBadPattern)
	}
	m.glob = translated
	return m, nil
}

func (m globMatcher) Match(name string) (bool, error) {
	ok, err := doublestar.Match(m.glob, name)
	if err != nil {
		return false, err
	}
	return ok != m.negate, nil
}

func translateExtglob(glob string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		if ch == '\\' && i+1 < len(glob) {
			b.WriteString(glob[i : i+2])
			i++
			continue
		}
		if i+1 >= len(glob) || glob[i+1] != '(' || !strings.ContainsRune("@?!+*", rune(ch)) {
			b.WriteByte(ch)
			continue
		}
		end, err := closeParen(glob, i+1)
		if err != nil {
			return "", err
		}
		if ch != '@' && ch != '?' {
			return "", fmt.Errorf("source pattern %q: %c(...) is only supported as the whole pattern or not at all", glob, ch)
		}
		alts := splitAlternatives(glob[i+2 : end])
		for k, alt := range alts {
			inner, err := translateExtglob(alt)
			if err != nil {
				return "", err
			}
			alts[k] = inner
		}
		if ch == '?' {
			alts = append(alts, "")
		}
		b.WriteString("{" + strings.Join(alts, ",") + "}")
		i = end
	}
	return b.String(), nil
}

// closeParen returns the index of the ')' matching the '(' at open.
func closeParen(glob string, open int) (int, error) {
	depth := 0
	for i := open; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("source pattern %q: unclosed '('", glob)
}

// splitAlternatives splits on top-level '|' and escapes commas, which
// doublestar would read as brace separators.
func splitAlternatives(s string) []string {
	var alts []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\' && i+1 < len(s):
			cur.WriteString(s[i : i+2])
			i++
			continue
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == '|' && depth == 0:
			alts = append(alts, cur.String())
			cur.Reset()
			continue
		case ch == ',' && depth == 0:
			cur.WriteString(`\,`)
			continue
		}
		cur.WriteByte(ch)
	}
	return append(alts, cur.String())
}
