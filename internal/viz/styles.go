package viz

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/turing/internal/tm"
	"github.com/san-kum/turing/internal/trace"
)

// Painter colors trace lines with a Theme. It satisfies trace.Painter.
type Painter struct {
	state      lipgloss.Style
	accept     lipgloss.Style
	reject     lipgloss.Style
	head       lipgloss.Style
	transition lipgloss.Style
}

var _ trace.Painter = (*Painter)(nil)

// NewPainter builds a painter that renders for w. With color off the
// renderer is pinned to the Ascii profile and every style is a no-op.
func NewPainter(w io.Writer, theme Theme, color bool) *Painter {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(ProfileFor(true))
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Painter{
		state:      r.NewStyle().Foreground(theme.State),
		accept:     r.NewStyle().Bold(true).Foreground(theme.Accept),
		reject:     r.NewStyle().Bold(true).Foreground(theme.Reject),
		head:       r.NewStyle().Bold(true).Foreground(theme.Head).Background(theme.HeadBg),
		transition: r.NewStyle().Foreground(theme.Transition),
	}
}

// ProfileFor returns the terminal's color profile, upgraded to TrueColor when
// color is forced on a stream termenv would classify as Ascii.
func ProfileFor(force bool) termenv.Profile {
	p := termenv.ColorProfile()
	if force && p == termenv.Ascii {
		return termenv.TrueColor
	}
	return p
}

func (p *Painter) State(name string, q tm.State) string {
	switch q {
	case tm.Accept:
		return p.accept.Render(name)
	case tm.Reject:
		return p.reject.Render(name)
	default:
		return p.state.Render(name)
	}
}

func (p *Painter) Head(cell string) string        { return p.head.Render(cell) }
func (p *Painter) Transition(text string) string { return p.transition.Render(text) }

var (
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineChart renders the most recent width values as a one-line chart.
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		idx = max(0, min(idx, len(sparkChars)-1))

		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}
