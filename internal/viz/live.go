package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/turing/internal/tm"
	"github.com/san-kum/turing/internal/trace"
)

const (
	historyCapacity = 600
	tapeView        = 64
	minDelay        = 10 * time.Millisecond
	maxDelay        = 2 * time.Second
)

type TickMsg time.Time

// LiveModel steps a machine on a timer and renders its configuration.
type LiveModel struct {
	machine  *tm.Machine
	word     string
	name     string
	theme    Theme
	delay    time.Duration
	running  bool
	heads    []float64
	lines    []string
	err      error
	maxSteps int
}

// NewLiveModel wraps m, which must be freshly built for word. fps sets the
// initial tick rate.
func NewLiveModel(m *tm.Machine, name, word string, fps, maxSteps int) LiveModel {
	if fps <= 0 {
		fps = 10
	}
	lm := LiveModel{
		machine:  m,
		word:     word,
		name:     name,
		theme:    CurrentTheme,
		delay:    time.Second / time.Duration(fps),
		running:  true,
		maxSteps: maxSteps,
	}
	lm.record()
	return lm
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.step()
		case "r":
			m.reset()
		case "+", "=":
			m.delay = max(m.delay/2, minDelay)
		case "-", "_":
			m.delay = min(m.delay*2, maxDelay)
		case "t":
			m.theme = NextTheme(m.theme)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one transition unless the machine halted, failed, or ran
// out of budget.
func (m *LiveModel) step() {
	if m.machine.Halted() || m.err != nil {
		return
	}
	if m.maxSteps > 0 && m.machine.Steps() >= m.maxSteps {
		m.err = &tm.RuntimeError{Step: m.machine.Steps(), State: m.machine.State(), Head: m.machine.Tape().Head(), Wrapped: tm.ErrStepLimit}
		return
	}
	if err := m.machine.Step(); err != nil {
		m.err = err
		return
	}
	m.record()
}

func (m *LiveModel) record() {
	snap := m.machine.Snapshot()
	m.heads = append(m.heads, float64(snap.Head))
	if len(m.heads) > historyCapacity {
		m.heads = m.heads[1:]
	}
	m.lines = append(m.lines, trace.Line(snap))
	if len(m.lines) > historyCapacity {
		m.lines = m.lines[1:]
	}
}

func (m *LiveModel) reset() {
	m.err = nil
	m.heads = m.heads[:0]
	m.lines = m.lines[:0]
	if err := m.machine.Reset(m.word); err != nil {
		m.err = err
		return
	}
	m.record()
}

// Status is "RUNNING", "PAUSED", or the final verdict.
func (m LiveModel) Status() string {
	switch {
	case errors.Is(m.err, tm.ErrTapeOverflow):
		return "OVERFLOW"
	case errors.Is(m.err, tm.ErrStepLimit):
		return "STEP LIMIT"
	case m.err != nil:
		return "ERROR"
	case m.machine.State() == tm.Accept:
		return "ACCEPT"
	case m.machine.State() == tm.Reject:
		return "REJECT"
	case m.running:
		return "RUNNING"
	}
	return "PAUSED"
}

// Lines returns the trace lines recorded so far, oldest first.
func (m LiveModel) Lines() []string { return m.lines }

func (m LiveModel) View() string {
	th := m.theme
	header := lipgloss.NewStyle().Bold(true).Foreground(th.State)
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(10)
	value := lipgloss.NewStyle().Foreground(th.Text)
	help := lipgloss.NewStyle().Foreground(th.Muted).Italic(true).MarginTop(1)
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Border).Padding(0, 1)

	snap := m.machine.Snapshot()
	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n\n")
	s.WriteString(m.renderTape(snap) + "\n\n")

	s.WriteString(label.Render("Status") + m.statusStyle().Render(m.Status()) + "\n")
	s.WriteString(label.Render("State") + value.Render(trace.StateName(snap.State)) + "\n")
	s.WriteString(label.Render("Steps") + value.Render(fmt.Sprintf("%d", snap.Steps)) + "\n")
	s.WriteString(label.Render("Head") + value.Render(fmt.Sprintf("%d", snap.Head)) + "\n")
	s.WriteString(label.Render("Delay") + value.Render(m.delay.String()) + "\n")
	s.WriteString(label.Render("Last") + value.Render(trace.Transition(snap.Last)) + "\n")
	s.WriteString(label.Render("Head path") + SparklineChart(m.heads, 40) + "\n")

	s.WriteString(help.Render("SP:Pause N:Step R:Reset +/-:Speed T:Theme Q:Quit"))
	return panel.Render(s.String())
}

func (m LiveModel) statusStyle() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	switch m.Status() {
	case "ACCEPT":
		return st.Foreground(m.theme.Accept)
	case "RUNNING", "PAUSED":
		return st.Foreground(m.theme.Text)
	}
	return st.Foreground(m.theme.Reject)
}

// renderTape shows a window of the tape centered on the head.
func (m LiveModel) renderTape(s tm.Snapshot) string {
	lo := max(0, s.Head-tapeView/2)
	hi := min(len(s.Tape), lo+tapeView)
	cell := lipgloss.NewStyle().Foreground(m.theme.Text)
	head := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Head).Background(m.theme.HeadBg)

	var sb strings.Builder
	if lo > 0 {
		sb.WriteString("…")
	}
	for i := lo; i < hi; i++ {
		c := string(rune(s.Tape[i]))
		if i == s.Head {
			sb.WriteString(head.Render(c))
			continue
		}
		sb.WriteString(cell.Render(c))
	}
	if hi < len(s.Tape) {
		sb.WriteString("…")
	}
	return sb.String()
}

// RunLive runs the live stepper until the user quits or ctx is cancelled.
func RunLive(ctx context.Context, model LiveModel, opts ...tea.ProgramOption) (LiveModel, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	final, err := p.Run()
	if err != nil {
		return model, err
	}
	return final.(LiveModel), nil
}
