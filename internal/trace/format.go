// Package trace renders machine configurations and transitions as text lines.
package trace

import (
	"fmt"
	"strings"

	"github.com/san-kum/turing/internal/tm"
)

// HeadMarker is printed immediately before the cell under the head.
const HeadMarker = '}'

const initLabel = "init config"

// Painter decorates the pieces of a trace line. Plain leaves them untouched.
type Painter interface {
	State(name string, q tm.State) string
	Head(cell string) string
	Transition(text string) string
}

type plain struct{}

func (plain) State(name string, _ tm.State) string { return name }
func (plain) Head(cell string) string              { return cell }
func (plain) Transition(text string) string        { return text }

// Plain is the undecorated painter used for piped output.
var Plain Painter = plain{}

func StateName(q tm.State) string {
	switch q {
	case tm.Accept:
		return "Q_acc"
	case tm.Reject:
		return "Q_rej"
	default:
		return fmt.Sprintf("Q%d", q)
	}
}

// Configuration renders "<state>\t<steps> <tape>" with the head marker in place.
func Configuration(s tm.Snapshot) string {
	return paintConfiguration(s, Plain)
}

func paintConfiguration(s tm.Snapshot, p Painter) string {
	var sb strings.Builder
	sb.WriteString(p.State(StateName(s.State), s.State))
	fmt.Fprintf(&sb, "\t%3d ", s.Steps)
	for i, c := range s.Tape {
		if i == s.Head {
			sb.WriteString(p.Head(string(HeadMarker) + string(rune(c))))
			continue
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// Transition renders (Q<from>,<read>) -> (Q<to>,<dir>[,<write>]), or "" for nil.
func Transition(t *tm.Transition) string {
	if t == nil {
		return ""
	}
	if t.Write.Set {
		return fmt.Sprintf("(Q%d,%c) -> (Q%d,%c,%c)", t.From, t.Read, t.To, t.Move, t.Write.Symbol)
	}
	return fmt.Sprintf("(Q%d,%c) -> (Q%d,%c)", t.From, t.Read, t.To, t.Move)
}

// Line renders a full trace line. The initial configuration is labelled
// "init config"; a step that found no transition has an empty second column.
func Line(s tm.Snapshot) string {
	return PaintLine(s, Plain)
}

func PaintLine(s tm.Snapshot, p Painter) string {
	if p == nil {
		p = Plain
	}
	second := initLabel
	if s.Steps > 0 {
		second = Transition(s.Last)
		if second != "" {
			second = p.Transition(second)
		}
	}
	return paintConfiguration(s, p) + "\t" + second
}
