package tm

import (
	"fmt"
	"slices"
)

type key struct {
	state  State
	symbol Symbol
}

// Table is the transition function. It is built once and read-only while a
// machine runs, so one Table may back many machines.
type Table struct {
	byKey map[key]Transition
	order []Transition
}

func NewTable() *Table {
	return &Table{byKey: make(map[key]Transition)}
}

// NewTableFrom builds a table, failing on the first invalid or duplicate transition.
func NewTableFrom(ts ...Transition) (*Table, error) {
	t := NewTable()
	for _, tr := range ts {
		if err := t.Insert(tr); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Insert adds a transition. A second transition for the same (state, symbol)
// pair is rejected rather than shadowed.
func (t *Table) Insert(tr Transition) error {
	if !tr.Move.Valid() {
		return fmt.Errorf("%w: %q in %s", ErrInvalidDirection, rune(tr.Move), tr)
	}
	k := tr.key()
	if prev, ok := t.byKey[k]; ok {
		return fmt.Errorf("%w: %s conflicts with %s", ErrDuplicateTransition, tr, prev)
	}
	t.byKey[k] = tr
	t.order = append(t.order, tr)
	return nil
}

func (t *Table) Lookup(q State, s Symbol) (Transition, bool) {
	tr, ok := t.byKey[key{state: q, symbol: s}]
	return tr, ok
}

// Transitions returns the transitions in insertion order.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) Len() int { return len(t.order) }

// States returns every state named by the table, ascending.
func (t *Table) States() []State {
	seen := make(map[State]bool)
	for _, tr := range t.order {
		seen[tr.From] = true
		seen[tr.To] = true
	}
	states := make([]State, 0, len(seen))
	for q := range seen {
		states = append(states, q)
	}
	slices.Sort(states)
	return states
}
