package storage

import (
	"github.com/san-kum/turing/internal/trace"
	"github.com/san-kum/turing/internal/tm"
)

// Recorder collects every observed configuration of a run.
type Recorder struct {
	steps []StepRecord
}

func NewRecorder() *Recorder {
	return &Recorder{steps: make([]StepRecord, 0, 64)}
}

func (r *Recorder) OnStep(s tm.Snapshot) {
	tape := make([]rune, len(s.Tape))
	for i, c := range s.Tape {
		tape[i] = rune(c)
	}
	r.steps = append(r.steps, StepRecord{
		Step:       s.Steps,
		State:      int(s.State),
		Head:       s.Head,
		Tape:       string(tape),
		Transition: trace.Transition(s.Last),
	})
}

func (r *Recorder) Steps() []StepRecord { return r.steps }

// Metadata describes a finished run for Save.
func Metadata(name string, start tm.State, word string, transitions int, cfg tm.Config, res *tm.Result, runErr error) RunMetadata {
	meta := RunMetadata{
		Name:        name,
		Start:       int(start),
		Word:        word,
		TapeSize:    cfg.TapeSize,
		MaxSteps:    cfg.MaxSteps,
		Transitions: transitions,
	}
	if res != nil {
		meta.Verdict = res.Verdict.String()
		meta.Steps = res.Steps
		meta.Metrics = res.Metrics
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	return meta
}

// Snapshot rebuilds the configuration part of a record. The transition is
// only kept as text, so Last is nil.
func (r StepRecord) Snapshot() tm.Snapshot {
	tape := make([]tm.Symbol, 0, len(r.Tape))
	for _, c := range r.Tape {
		tape = append(tape, tm.Symbol(c))
	}
	return tm.Snapshot{State: tm.State(r.State), Steps: r.Step, Head: r.Head, Tape: tape}
}

// Line renders the record as the trace line it was recorded from.
func (r StepRecord) Line() string {
	second := r.Transition
	if r.Step == 0 {
		second = "init config"
	}
	return trace.Configuration(r.Snapshot()) + "\t" + second
}
