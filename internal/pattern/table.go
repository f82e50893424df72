package pattern

import "strings"

// DefaultMaxSlots bounds the variable table: slot 0 plus 99 split values.
const DefaultMaxSlots = 100

// Table holds the variables derived from one helper run. Slot 0 is the whole
// helper output, slots 1..Len()-1 are its space separated fields. A Table is
// built per file and must not be shared between concurrent fills.
type Table struct {
	slots []string
}

// EmptyTable returns the table used when no helper is configured: a single
// empty slot 0 and no split values.
func EmptyTable() *Table {
	return &Table{slots: []string{""}}
}

// NewTable builds a table from raw helper output. A trailing line break is
// stripped from slot 0. Fields beyond maxSlots-1 are dropped.
func NewTable(raw string, maxSlots int) *Table {
	if maxSlots < 1 {
		maxSlots = 1
	}
	whole := strings.TrimSuffix(raw, "\n")
	whole = strings.TrimSuffix(whole, "\r")

	t := &Table{slots: make([]string, 1, min(maxSlots, 16))}
	t.slots[0] = whole
	for _, field := range strings.Split(whole, " ") {
		if len(t.slots) >= maxSlots {
			break
		}
		if field == "" {
			continue
		}
		t.slots = append(t.slots, field)
	}
	return t
}

// Len returns the number of populated slots, slot 0 included.
func (t *Table) Len() int {
	return len(t.slots)
}

// Slot returns slot i. ok is false when i is out of range.
func (t *Table) Slot(i int) (string, bool) {
	if i < 0 || i >= len(t.slots) {
		return "", false
	}
	return t.slots[i], true
}

// Whole returns slot 0, the unsplit helper output.
func (t *Table) Whole() string {
	return t.slots[0]
}

// Last returns the last populated slot. With no split values this is slot 0.
func (t *Table) Last() string {
	return t.slots[len(t.slots)-1]
}

// Fields returns a copy of slots 1..Len()-1.
func (t *Table) Fields() []string {
	out := make([]string, len(t.slots)-1)
	copy(out, t.slots[1:])
	return out
}
