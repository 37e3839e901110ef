package metrics

import "github.com/san-kum/turing/internal/tm"

// DistinctStates counts the different states the machine entered, including
// the start state.
type DistinctStates struct {
	name string
	seen map[tm.State]struct{}
}

func NewDistinctStates() *DistinctStates {
	return &DistinctStates{
		name: "distinct_states",
		seen: make(map[tm.State]struct{}),
	}
}

func (d *DistinctStates) Name() string { return d.name }

func (d *DistinctStates) Observe(s tm.Snapshot) {
	d.seen[s.State] = struct{}{}
}

func (d *DistinctStates) Value() float64 { return float64(len(d.seen)) }

func (d *DistinctStates) Reset() {
	clear(d.seen)
}

// Defaults returns a fresh set of the standard run metrics.
func Defaults() []tm.Metric {
	return []tm.Metric{
		NewWrites(),
		NewHeadTravel(),
		NewMaxHead(),
		NewDistinctStates(),
	}
}
