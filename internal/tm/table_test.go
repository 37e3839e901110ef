package tm

import (
	"errors"
	"testing"
)

func TestTableLookup(t *testing.T) {
	table, err := NewTableFrom(
		Transition{From: 2, Read: '0', To: 3, Move: Right, Write: WriteSymbol('x')},
		Transition{From: 2, Read: '#', To: 9, Move: Right},
		Transition{From: 9, Read: Blank, To: Accept, Move: Left},
	)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tests := []struct {
		name   string
		state  State
		symbol Symbol
		found  bool
		to     State
	}{
		{"write transition", 2, '0', true, 3},
		{"plain transition", 2, '#', true, 9},
		{"blank symbol", 9, Blank, true, Accept},
		{"unknown symbol", 2, '1', false, 0},
		{"unknown state", 4, '0', false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := table.Lookup(tt.state, tt.symbol)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && tr.To != tt.to {
				t.Errorf("expected target %d, got %d", tt.to, tr.To)
			}
		})
	}
}

func TestTableRejectsDuplicates(t *testing.T) {
	table := NewTable()
	if err := table.Insert(Transition{From: 2, Read: '1', To: 4, Move: Right}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := table.Insert(Transition{From: 2, Read: '1', To: 5, Move: Left})
	if !errors.Is(err, ErrDuplicateTransition) {
		t.Fatalf("expected ErrDuplicateTransition, got %v", err)
	}

	tr, _ := table.Lookup(2, '1')
	if tr.To != 4 {
		t.Errorf("duplicate insert replaced the original transition: %v", tr)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 transition, got %d", table.Len())
	}
}

func TestTableRejectsInvalidDirection(t *testing.T) {
	table := NewTable()
	err := table.Insert(Transition{From: 2, Read: '1', To: 4, Move: 'X'})
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestTableOrderAndStates(t *testing.T) {
	ts := []Transition{
		{From: 7, Read: 'a', To: 3, Move: Left},
		{From: 3, Read: 'b', To: Accept, Move: Right},
		{From: 3, Read: 'a', To: 7, Move: Right, Write: WriteSymbol(Blank)},
	}
	table, err := NewTableFrom(ts...)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got := table.Transitions()
	for i := range ts {
		if got[i] != ts[i] {
			t.Errorf("transition %d: expected %v, got %v", i, ts[i], got[i])
		}
	}

	states := table.States()
	want := []State{Accept, 3, 7}
	if len(states) != len(want) {
		t.Fatalf("expected states %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("expected states %v, got %v", want, states)
		}
	}
}

func TestWriteBlankIsNotNoWrite(t *testing.T) {
	if WriteSymbol(Blank) == NoWrite {
		t.Fatal("writing blank must differ from not writing")
	}
	if NoWrite.Set {
		t.Error("NoWrite must not be set")
	}
}

func BenchmarkLookup(b *testing.B) {
	table := NewTable()
	for q := State(2); q < 66; q++ {
		for _, s := range "01#x_" {
			_ = table.Insert(Transition{From: q, Read: Symbol(s), To: q + 1, Move: Right})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Lookup(State(2+i%64), '#')
	}
}
