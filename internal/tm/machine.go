package tm

import (
	"context"
	"errors"
)

// Machine executes one run of a transition table over one input word.
// It is not safe for concurrent use; build one Machine per run.
type Machine struct {
	table     *Table
	tape      *Tape
	start     State
	state     State
	steps     int
	last      *Transition
	cfg       Config
	metrics   []Metric
	observers []Observer
}

func New(table *Table, start State, word string, cfg Config) (*Machine, error) {
	if cfg.TapeSize == 0 {
		cfg.TapeSize = DefaultTapeSize
	}
	tape, err := NewTape(cfg.TapeSize, word)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = NewTable()
	}
	return &Machine{
		table:     table,
		tape:      tape,
		start:     start,
		state:     start,
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (m *Machine) AddMetric(mt Metric)     { m.metrics = append(m.metrics, mt) }
func (m *Machine) AddObserver(o Observer) { m.observers = append(m.observers, o) }

func (m *Machine) State() State { return m.state }
func (m *Machine) Steps() int   { return m.steps }
func (m *Machine) Tape() *Tape  { return m.tape }
func (m *Machine) Halted() bool { return m.state.Halting() }

// Last returns the transition applied by the most recent step, or nil.
func (m *Machine) Last() *Transition { return m.last }

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State: m.state,
		Steps: m.steps,
		Head:  m.tape.Head(),
		Tape:  m.tape.Window(),
		Last:  m.last,
	}
}

// Step applies one transition. A (state, symbol) pair with no transition sends
// the machine to Reject and moves the head left, leaving the tape as it was.
// Step on a halted machine does nothing.
func (m *Machine) Step() error {
	if m.Halted() {
		return nil
	}
	m.steps++
	tr, ok := m.table.Lookup(m.state, m.tape.Read())
	if !ok {
		m.last = nil
		m.state = Reject
		return m.tape.Move(Left)
	}

	m.last = &tr
	m.tape.Write(tr.Write)
	if err := m.tape.Move(tr.Move); err != nil {
		return &RuntimeError{Step: m.steps, State: m.state, Head: m.tape.Head(), Wrapped: err}
	}
	m.state = tr.To
	return nil
}

// Run steps until the machine halts. Observers see the initial configuration
// and every completed step; Run itself does no I/O.
func (m *Machine) Run(ctx context.Context) (*Result, error) {
	for _, mt := range m.metrics {
		mt.Reset()
	}

	m.notify(m.Snapshot())

	for !m.Halted() {
		select {
		case <-ctx.Done():
			return m.result(Loop), ctx.Err()
		default:
		}

		if m.cfg.MaxSteps > 0 && m.steps >= m.cfg.MaxSteps {
			return m.result(Loop), &RuntimeError{Step: m.steps, State: m.state, Head: m.tape.Head(), Wrapped: ErrStepLimit}
		}

		if err := m.Step(); err != nil {
			if errors.Is(err, ErrTapeOverflow) {
				return m.result(Overflow), err
			}
			return m.result(Running), err
		}

		m.notify(m.Snapshot())
	}

	return m.result(m.verdict()), nil
}

// Reset rewinds the machine to its start state on a fresh copy of word.
func (m *Machine) Reset(word string) error {
	tape, err := NewTape(m.tape.Size(), word)
	if err != nil {
		return err
	}
	m.tape = tape
	m.state = m.start
	m.steps = 0
	m.last = nil
	for _, mt := range m.metrics {
		mt.Reset()
	}
	return nil
}

func (m *Machine) notify(s Snapshot) {
	for _, mt := range m.metrics {
		mt.Observe(s)
	}
	for _, o := range m.observers {
		o.OnStep(s)
	}
}

func (m *Machine) verdict() Verdict {
	switch m.state {
	case Accept:
		return Accepted
	case Reject:
		return Rejected
	default:
		return Running
	}
}

func (m *Machine) result(v Verdict) *Result {
	res := &Result{
		Verdict: v,
		State:   m.state,
		Steps:   m.steps,
		Head:    m.tape.Head(),
		Width:   m.tape.Width(),
		Metrics: make(map[string]float64, len(m.metrics)),
	}
	for _, mt := range m.metrics {
		res.Metrics[mt.Name()] = mt.Value()
	}
	return res
}
