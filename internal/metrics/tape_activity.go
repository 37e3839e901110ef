package metrics

import "github.com/san-kum/turing/internal/tm"

// Writes counts steps whose transition wrote a symbol.
type Writes struct {
	name  string
	count int
}

func NewWrites() *Writes {
	return &Writes{name: "writes"}
}

func (w *Writes) Name() string { return w.name }

func (w *Writes) Observe(s tm.Snapshot) {
	if s.Steps > 0 && s.Last != nil && s.Last.Write.Set {
		w.count++
	}
}

func (w *Writes) Value() float64 { return float64(w.count) }

func (w *Writes) Reset() { w.count = 0 }

// HeadTravel counts cells the head actually moved, so clamped left moves
// at cell 0 do not count.
type HeadTravel struct {
	name    string
	moves   int
	prev    int
	started bool
}

func NewHeadTravel() *HeadTravel {
	return &HeadTravel{name: "head_travel"}
}

func (h *HeadTravel) Name() string { return h.name }

func (h *HeadTravel) Observe(s tm.Snapshot) {
	if h.started && s.Head != h.prev {
		h.moves++
	}
	h.prev = s.Head
	h.started = true
}

func (h *HeadTravel) Value() float64 { return float64(h.moves) }

func (h *HeadTravel) Reset() {
	h.moves = 0
	h.prev = 0
	h.started = false
}

// MaxHead tracks the rightmost cell the head visited.
type MaxHead struct {
	name string
	max  int
}

func NewMaxHead() *MaxHead {
	return &MaxHead{name: "max_head"}
}

func (m *MaxHead) Name() string { return m.name }

func (m *MaxHead) Observe(s tm.Snapshot) {
	if s.Head > m.max {
		m.max = s.Head
	}
}

func (m *MaxHead) Value() float64 { return float64(m.max) }

func (m *MaxHead) Reset() { m.max = 0 }
