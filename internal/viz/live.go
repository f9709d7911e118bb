// Package viz renders the water grid live in the terminal. The host
// loop is a bubbletea program stepping the engine at a fixed tick rate
// independent of terminal redraw cadence.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gridflow/internal/engine"
	"github.com/san-kum/gridflow/internal/fluid"
)

const historyCapacity = 300

type TickMsg time.Time

// Model holds the engine, brush state, and visualization buffers.
type Model struct {
	eng  *engine.Engine
	name string
	fps  int

	running  bool
	showHelp bool

	cursorX, cursorY int
	tool             engine.EditKind
	radius           float64
	amount           float64

	massHistory []float64
}

// NewModel initializes the live view around an engine.
func NewModel(eng *engine.Engine, name string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	cfg := eng.Config()
	return Model{
		eng:         eng,
		name:        name,
		fps:         fps,
		running:     true,
		cursorX:     cfg.Width / 2,
		cursorY:     cfg.Height / 2,
		tool:        engine.AddWater,
		radius:      2,
		amount:      1.0,
		massHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the interactive program.
func Run(eng *engine.Engine, name string, fps int) error {
	p := tea.NewProgram(NewModel(eng, name, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.step()
			}
		case "r":
			m.eng.Reset()
			m.massHistory = m.massHistory[:0]
		case "e":
			m.eng.SetAutoEmit(!m.eng.AutoEmit())
		case "1":
			m.tool = engine.AddWater
		case "2":
			m.tool = engine.AddWall
		case "3":
			m.tool = engine.Erase
		case "4":
			m.tool = engine.Drain
		case "+", "=":
			if m.radius < 10 {
				m.radius++
			}
		case "-", "_":
			if m.radius > 0 {
				m.radius--
			}
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case "enter", "b":
			m.eng.ApplyEdit(m.cursorX, m.cursorY, m.radius, m.tool, m.amount)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	cfg := m.eng.Config()
	x, y := m.cursorX+dx, m.cursorY+dy
	if x >= 1 && x < cfg.Width-1 {
		m.cursorX = x
	}
	if y >= 1 && y < cfg.Height-1 {
		m.cursorY = y
	}
}

func (m *Model) step() {
	m.eng.Step()
	snap := m.eng.Snapshot()
	m.massHistory = append(m.massHistory, snap.TotalMass())
	if len(m.massHistory) > historyCapacity {
		m.massHistory = m.massHistory[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.eng.Snapshot()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(canvasStyle.Render(m.renderGrid(snap)) + "\n")

	if len(m.massHistory) > 1 {
		chart := asciigraph.Plot(m.massHistory, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Total mass"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	wet := 0
	for i, mass := range snap.Mass {
		if !snap.Wall[i] && mass > fluid.MinMass {
			wet++
		}
	}
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", snap.Tick)) + "\n")
	s.WriteString(labelStyle.Render("Total mass") + valueStyle.Render(fmt.Sprintf("%.2f", snap.TotalMass())) + "\n")
	s.WriteString(labelStyle.Render("Wet cells") + valueStyle.Render(fmt.Sprintf("%d", wet)) + "\n")
	emit := "off"
	if m.eng.AutoEmit() {
		emit = "on"
	}
	s.WriteString(labelStyle.Render("Emitter") + valueStyle.Render(emit) + "\n")
	s.WriteString(labelStyle.Render("Tool") + toolStyle.Render(fmt.Sprintf("%s r=%.0f", m.tool, m.radius)) + "\n")

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space pause · s step · e emitter · r reset · arrows/hjkl cursor\n" +
				"enter/b paint · 1 water 2 wall 3 erase 4 drain · +/- radius · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help · q quit"))
	}
	return s.String()
}

func (m Model) renderGrid(snap engine.Snapshot) string {
	var b strings.Builder
	for y := 0; y < snap.H; y++ {
		for x := 0; x < snap.W; x++ {
			if x == m.cursorX && y == m.cursorY {
				b.WriteString(cursorStyle.Render("+"))
				continue
			}
			i := snap.Index(x, y)
			switch {
			case snap.Wall[i]:
				b.WriteString(wallStyle.Render("█"))
			case snap.Mass[i] <= fluid.MinMass:
				b.WriteByte(' ')
			default:
				level := waterLevel(snap.Mass[i])
				b.WriteString(waterStyles[level].Render(string(waterRunes[level])))
			}
		}
		if y < snap.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
