package docs

import (
	"fmt"
	"strings"
)

// Topic is one page of `smv docs`.
type Topic struct {
	Name    string // argument to `smv docs`
	Title   string
	Summary string // shown in the topic list
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Names returns the topic names in display order.
func Names() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Get looks up a topic by name or by an unambiguous prefix of one, so
// `smv docs pat` opens "patterns".
func Get(name string) (Topic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var found []Topic
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
		if name != "" && strings.HasPrefix(t.Name, name) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return Topic{}, fmt.Errorf("unknown topic %q (topics: %s)", name, strings.Join(Names(), ", "))
	}
	matches := make([]string, len(found))
	for i, t := range found {
		matches[i] = t.Name
	}
	return Topic{}, fmt.Errorf("topic %q is ambiguous: %s", name, strings.Join(matches, ", "))
}
