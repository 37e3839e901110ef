package tm

import "fmt"

// State identifies a machine state. Accept and Reject are reserved.
type State int

const (
	Accept State = 0
	Reject State = 1
)

// Halting reports whether q is one of the two terminal states.
func (q State) Halting() bool { return q == Accept || q == Reject }

// Symbol is a single tape cell value.
type Symbol rune

// Blank fills every cell not covered by the input word.
const Blank Symbol = '_'

func (s Symbol) String() string { return string(rune(s)) }

type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
)

func (d Direction) Valid() bool { return d == Left || d == Right }

func (d Direction) String() string { return string(rune(d)) }

// Write is the optional symbol a transition puts under the head.
// The zero value writes nothing; writing Blank is a real write.
type Write struct {
	Symbol Symbol
	Set    bool
}

// NoWrite leaves the cell under the head untouched.
var NoWrite = Write{}

func WriteSymbol(s Symbol) Write { return Write{Symbol: s, Set: true} }

// Transition fires in state From when Read is under the head.
type Transition struct {
	From  State
	Read  Symbol
	To    State
	Write Write
	Move  Direction
}

func (t Transition) key() key { return key{state: t.From, symbol: t.Read} }

func (t Transition) String() string {
	if t.Write.Set {
		return fmt.Sprintf("%d,%c,%d,%c,%c", t.From, t.Read, t.To, t.Move, t.Write.Symbol)
	}
	return fmt.Sprintf("%d,%c,%d,%c", t.From, t.Read, t.To, t.Move)
}

// Snapshot is an immutable copy of a machine configuration.
type Snapshot struct {
	State State
	Steps int
	Head  int
	// Tape holds cells [0, width).
	Tape []Symbol
	// Last is nil before the first step and after a step that found no transition.
	Last *Transition
}

// Observer is notified with the initial configuration and after every step.
type Observer interface {
	OnStep(s Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnStep(s Snapshot) { f(s) }

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Config bounds a single run.
type Config struct {
	TapeSize int
	// MaxSteps stops a run with ErrStepLimit once exceeded; zero means unlimited.
	MaxSteps int
}

const DefaultTapeSize = 1024

func DefaultConfig() Config {
	return Config{TapeSize: DefaultTapeSize}
}

type Verdict int

const (
	Running Verdict = iota
	Accepted
	Rejected
	Loop
	Overflow
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accept"
	case Rejected:
		return "reject"
	case Loop:
		return "loop"
	case Overflow:
		return "overflow"
	default:
		return "running"
	}
}

type Result struct {
	Verdict Verdict
	State   State
	Steps   int
	Head    int
	Width   int
	Metrics map[string]float64
}
