package tm

import (
	"fmt"
	"unicode/utf8"
)

// Tape is a fixed-size, left-bounded tape. Moving left off cell 0 is a no-op;
// moving right off the last cell is an error.
type Tape struct {
	cells []Symbol
	head  int
	// width is one past the rightmost cell the head or the input ever covered.
	width int
}

// NewTape lays word out from cell 0 on a blank tape of the given size.
// At least one blank cell must remain after the word.
func NewTape(size int, word string) (*Tape, error) {
	n := utf8.RuneCountInString(word)
	if size < 1 || n >= size {
		return nil, fmt.Errorf("%w: word of %d symbols, tape of %d cells", ErrTapeTooSmall, n, size)
	}
	cells := make([]Symbol, size)
	for i := range cells {
		cells[i] = Blank
	}
	i := 0
	for _, r := range word {
		cells[i] = Symbol(r)
		i++
	}
	return &Tape{cells: cells, width: max(n, 1)}, nil
}

func (t *Tape) Read() Symbol { return t.cells[t.head] }

func (t *Tape) Write(w Write) {
	if w.Set {
		t.cells[t.head] = w.Symbol
	}
}

// Move shifts the head one cell. On ErrTapeOverflow the head is not moved.
func (t *Tape) Move(d Direction) error {
	switch d {
	case Left:
		if t.head > 0 {
			t.head--
		}
		return nil
	case Right:
		if t.head+1 >= len(t.cells) {
			return ErrTapeOverflow
		}
		t.head++
		if t.head == t.width {
			t.width++
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, rune(d))
	}
}

func (t *Tape) Head() int  { return t.head }
func (t *Tape) Width() int { return t.width }
func (t *Tape) Size() int  { return len(t.cells) }

// Window copies cells [0, width).
func (t *Tape) Window() []Symbol {
	w := make([]Symbol, t.width)
	copy(w, t.cells[:t.width])
	return w
}

func (t *Tape) String() string {
	return string(symbolsToRunes(t.cells[:t.width]))
}

func symbolsToRunes(s []Symbol) []rune {
	r := make([]rune, len(s))
	for i, c := range s {
		r[i] = rune(c)
	}
	return r
}
