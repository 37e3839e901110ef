package tm

import (
	"errors"
	"fmt"
)

// Domain errors for loading and running machines.
var (
	// ErrMalformedDescription indicates description text that does not parse.
	ErrMalformedDescription = errors.New("tm: malformed description")

	// ErrDuplicateTransition indicates two transitions for one (state, symbol) pair.
	ErrDuplicateTransition = errors.New("tm: duplicate transition")

	// ErrInvalidDirection indicates a move other than L or R.
	ErrInvalidDirection = errors.New("tm: invalid direction")

	// ErrTapeTooSmall indicates an input word that leaves no blank cell on the tape.
	ErrTapeTooSmall = errors.New("tm: tape too small for input word")

	// ErrTapeOverflow indicates the head moved right past the last cell.
	ErrTapeOverflow = errors.New("tm: tape too small")

	// ErrStepLimit indicates the run exceeded its step budget without halting.
	ErrStepLimit = errors.New("tm: step limit exceeded")
)

// RuntimeError wraps an error with the configuration it happened in.
type RuntimeError struct {
	Step    int
	State   State
	Head    int
	Wrapped error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("step %d (state %d, head %d): %v", e.Step, e.State, e.Head, e.Wrapped)
}

func (e *RuntimeError) Unwrap() error {
	return e.Wrapped
}
