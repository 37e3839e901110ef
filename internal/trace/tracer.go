package trace

import (
	"io"

	"github.com/san-kum/turing/internal/tm"
)

// Tracer writes one line per observed snapshot.
type Tracer struct {
	w       io.Writer
	painter Painter
	lines   int
	err     error
}

func NewTracer(w io.Writer, p Painter) *Tracer {
	if p == nil {
		p = Plain
	}
	return &Tracer{w: w, painter: p}
}

func (t *Tracer) OnStep(s tm.Snapshot) {
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.w, PaintLine(s, t.painter)+"\n"); err != nil {
		t.err = err
		return
	}
	t.lines++
}

// Lines reports how many lines were written.
func (t *Tracer) Lines() int { return t.lines }

// Err returns the first write error; later snapshots are dropped after it.
func (t *Tracer) Err() error { return t.err }
