// Package tui renders a gradient descent run live in the terminal.
package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dualgrad/internal/descent"
	"github.com/san-kum/dualgrad/internal/dual"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps the descent one iteration per frame and plots the loss
// history. The descent state lives entirely in the model; each frame is
// one dual-number evaluation.
type Model struct {
	obj       descent.Objective
	cfg       descent.Config
	w0        float64
	w         float64
	step      int
	losses    []float64
	paused    bool
	converged bool
	failed    error
	fps       int
}

func NewModel(obj descent.Objective, w0 float64, cfg descent.Config, fps int) Model {
	return Model{
		obj:    obj,
		cfg:    cfg,
		w0:     w0,
		w:      w0,
		losses: make([]float64, 0, historyCapacity),
		fps:    fps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.paused = !m.paused
		case "r":
			m.w = m.w0
			m.step = 0
			m.losses = m.losses[:0]
			m.converged = false
			m.failed = nil
		case "+", "=":
			m.cfg.LearningRate *= 1.5
		case "-":
			m.cfg.LearningRate /= 1.5
		}
		return m, nil

	case TickMsg:
		if !m.paused && !m.done() {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) done() bool {
	return m.converged || m.failed != nil || m.step >= m.cfg.Steps
}

func (m *Model) advance() {
	y, err := m.obj.Eval(dual.Var(m.w))
	if err != nil {
		m.failed = err
		return
	}

	loss, grad := y.Real, y.Tangent
	if !y.IsValid() {
		m.failed = fmt.Errorf("invalid loss (NaN/Inf) at w=%g", m.w)
		return
	}

	m.losses = append(m.losses, loss)
	if len(m.losses) > historyCapacity {
		m.losses = m.losses[1:]
	}
	m.step++

	if m.cfg.Tolerance > 0 && math.Abs(grad) <= m.cfg.Tolerance {
		m.converged = true
		return
	}

	m.w -= m.cfg.LearningRate * grad
}

func (m Model) View() string {
	s := headerStyle.Render(fmt.Sprintf("dualgrad live — %s", m.obj.Name())) + "\n"

	if len(m.losses) > 1 {
		graph := asciigraph.Plot(m.losses,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("loss"),
		)
		s += graphStyle.Render(graph) + "\n"
	}

	row := func(label string, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	s += row("step", fmt.Sprintf("%d / %d", m.step, m.cfg.Steps))
	s += row("weight", fmt.Sprintf("%.6f", m.w))
	if len(m.losses) > 0 {
		s += row("loss", fmt.Sprintf("%.6f", m.losses[len(m.losses)-1]))
	}
	s += row("lr", fmt.Sprintf("%.4f", m.cfg.LearningRate))

	switch {
	case m.failed != nil:
		s += errorStyle.Render("stopped: "+m.failed.Error()) + "\n"
	case m.converged:
		s += headerStyle.Render("converged") + "\n"
	case m.paused:
		s += valueStyle.Render("paused") + "\n"
	}

	s += helpStyle.Render("space pause · r reset · +/- learning rate · q quit")
	return s
}

// Run blocks until the user quits the live view.
func Run(obj descent.Objective, w0 float64, cfg descent.Config, fps int) error {
	p := tea.NewProgram(NewModel(obj, w0, cfg, fps))
	_, err := p.Run()
	return err
}
