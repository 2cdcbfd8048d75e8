// Package tui is the bubbletea live view of a running building simulation.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/integrators"
	"github.com/san-kum/shearsim/internal/physics"
	"github.com/san-kum/shearsim/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	historyLen    = 60
	stepsPerFrame = 20
	frameInterval = 16 * time.Millisecond
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model steps a ShearBuilding with RK4 on every frame and draws the floor
// displacements, energy split and recent history.
type Model struct {
	building   *physics.ShearBuilding
	integrator dynamo.Integrator
	cfg        dynamo.Config
	x0         dynamo.State

	state  dynamo.State
	t      float64
	step   int
	steps  int
	speed  float64
	paused bool
	err    error

	scale   float64
	history [3][]float64 // x1, x2, energy
	width   int
}

func NewModel(b *physics.ShearBuilding, x0 dynamo.State, cfg dynamo.Config) Model {
	m := Model{
		building:   b,
		integrator: integrators.NewRK4(),
		cfg:        cfg,
		x0:         x0,
		speed:      1,
		width:      80,
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.state = m.x0
	m.t = 0
	m.step = 0
	m.steps = m.cfg.Steps()
	m.err = nil
	m.scale = 1e-6
	for i := range m.history {
		m.history[i] = m.history[i][:0]
	}
}

func (m Model) Done() bool { return m.step >= m.steps || m.err != nil }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "r":
			m.reset()
			m.paused = false
		case "+", "=":
			m.speed = math.Min(m.speed*2, 64)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.25)
		case "0":
			m.speed = 1
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.paused && !m.Done() {
			m.advance(max(1, int(stepsPerFrame*m.speed)))
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	for i := 0; i < n && !m.Done(); i++ {
		next, err := m.integrator.Step(m.building, m.t, m.state, m.cfg.Dt)
		if err != nil {
			m.err = err
			return
		}
		m.state = next
		m.t += m.cfg.Dt
		m.step++
	}

	m.scale = math.Max(m.scale, math.Max(math.Abs(m.state[dynamo.X1]), math.Abs(m.state[dynamo.X2])))
	m.record(0, m.state[dynamo.X1])
	m.record(1, m.state[dynamo.X2])
	m.record(2, m.building.Energy(m.state))
}

func (m *Model) record(i int, v float64) {
	m.history[i] = append(m.history[i], v)
	if len(m.history[i]) > historyLen {
		m.history[i] = m.history[i][1:]
	}
}

// floor draws one storey as a marker offset from the centre line in
// proportion to its displacement.
func (m Model) floor(label string, x float64, width int) string {
	half := width / 2
	off := int(math.Round(x / m.scale * float64(half-1)))
	off = max(-half+1, min(off, half-1))

	row := []rune(strings.Repeat(" ", width))
	row[half] = '┊'
	row[half+off] = '■'
	return fmt.Sprintf("   %s %s %s", dim.Render(label), cyan.Render(string(row)), white.Render(fmt.Sprintf("%+.6f m", x)))
}

func (m Model) View() string {
	var b strings.Builder

	status := viz.StatusRunning.Render("● running")
	switch {
	case m.err != nil:
		status = viz.ErrorText.Render("✗ " + m.err.Error())
	case m.Done():
		status = viz.StatusDone.Render("■ done")
	case m.paused:
		status = yellow.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s  %s  %s\n", cyan.Render("shear building 2-DOF"), status, dim.Render(fmt.Sprintf("x%.2g", m.speed))))

	progress := 0.0
	if m.steps > 0 {
		progress = float64(m.step) / float64(m.steps)
	}
	b.WriteString(fmt.Sprintf("   %s %s\n\n", viz.ProgressBar(progress, 36), dim.Render(fmt.Sprintf("%.2fs/%.0fs", m.t, m.cfg.Duration))))

	w := max(21, min(m.width-30, 61))
	b.WriteString(m.floor("lt2", m.state[dynamo.X2], w) + "\n")
	b.WriteString(m.floor("lt1", m.state[dynamo.X1], w) + "\n")
	b.WriteString("   " + dim.Render("   "+strings.Repeat("▀", w)) + "\n")

	ke := m.building.KineticEnergy(m.state)
	pe := m.building.PotentialEnergy(m.state)
	if total := ke + pe; total > 0 {
		const ew = 20
		kb := int(ke / total * ew)
		b.WriteString(fmt.Sprintf("\n   energi %s%s  %s %.3f  %s %.3f J\n",
			green.Render(strings.Repeat("█", kb)),
			yellow.Render(strings.Repeat("█", ew-kb)),
			green.Render("EK"), ke,
			yellow.Render("EP"), pe))
	}

	labels := [3]string{"x1", "x2", "E "}
	for i, h := range m.history {
		if len(h) > 1 {
			b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render(labels[i]), viz.SparklineChart(h, 40)))
		}
	}

	b.WriteString("\n" + dim.Render("   space pause  ±speed  r reset  q quit") + "\n")
	return b.String()
}

// Run starts the live view on the alternate screen.
func Run(b *physics.ShearBuilding, x0 dynamo.State, cfg dynamo.Config) error {
	p := tea.NewProgram(NewModel(b, x0, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
