package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/robokit/simenv/internal/simenv"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Live is the interactive stepping view over a world. Each tick advances
// the physics, captures the skeleton and redraws.
type Live struct {
	world    simenv.World
	viewer   *Viewer
	canvas   *Canvas
	camera   *Camera
	running  bool
	steps    int
	robot    int // index into the robot list
	dof      int // traced DOF of the selected robot
	history  []float64
	showHelp bool
}

// NewLive wires the view to a world. The viewer should be the same one
// registered on the world so controller overlays show up.
func NewLive(w simenv.World, v *Viewer) *Live {
	if v == nil {
		v = NewViewer()
	}
	return &Live{
		world:   w,
		viewer:  v,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		running: true,
		history: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Live) Init() tea.Cmd { return tick() }

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.world.SaveState()
		case "r":
			m.world.RestoreState()
		case "tab":
			robots := m.world.GetRobots()
			if len(robots) > 0 {
				m.robot = (m.robot + 1) % len(robots)
				m.dof = 0
				m.history = m.history[:0]
			}
		case ">", ".":
			m.cycleDOF(1)
		case "<", ",":
			m.cycleDOF(-1)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.world.StepPhysics(1)
			m.steps++
			m.trace()
		}
		m.canvas.Clear()
		m.viewer.Capture(m.world)
		m.viewer.Render(m.canvas, m.camera)
		return m, tick()
	}
	return m, nil
}

func (m *Live) cycleDOF(dir int) {
	r := m.selectedRobot()
	if r == nil || r.NumDOFs() == 0 {
		return
	}
	m.dof = (m.dof + dir + r.NumDOFs()) % r.NumDOFs()
	m.history = m.history[:0]
}

func (m *Live) selectedRobot() simenv.Robot {
	robots := m.world.GetRobots()
	if len(robots) == 0 {
		return nil
	}
	if m.robot >= len(robots) {
		m.robot = 0
	}
	return robots[m.robot]
}

func (m *Live) trace() {
	r := m.selectedRobot()
	if r == nil || m.dof >= r.NumDOFs() {
		return
	}
	v := r.DOFPositions([]int{m.dof})
	if len(v) != 1 {
		return
	}
	m.history = append(m.history, v[0])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Live) View() string {
	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.stats())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if len(m.history) > 2 {
		graph := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(70))
		body = lipgloss.JoinVertical(lipgloss.Left, body, graphStyle.Render(graph))
	}
	if m.showHelp {
		body = lipgloss.JoinVertical(lipgloss.Left, body, helpStyle.Render(
			"space pause  s save  r restore  tab robot  <> dof  xyz rotate  +- zoom  q quit"))
	}
	return body
}

func (m *Live) stats() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("simenv"))
	b.WriteByte('\n')

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}
	row("Status", status)
	row("Steps", fmt.Sprintf("%d", m.steps))
	row("Timestep", fmt.Sprintf("%.4f s", m.world.PhysicsTimeStep()))
	row("Checkpoints", fmt.Sprintf("%d", savedStates(m.world)))

	if r := m.selectedRobot(); r != nil {
		row("Robot", r.Name())
		row("DOF", fmt.Sprintf("%d / %d", m.dof, r.NumDOFs()))
		v := r.DOFPositions([]int{m.dof})
		if len(v) == 1 {
			row("Position", fmt.Sprintf("%+.4f", v[0]))
		}
	}
	return b.String()
}

// savedStates reads the checkpoint depth when the backend exposes it.
func savedStates(w simenv.World) int {
	type depther interface{ SavedStates() int }
	if d, ok := w.(depther); ok {
		return d.SavedStates()
	}
	return 0
}

// Run blocks in the interactive view until the user quits.
func Run(w simenv.World, v *Viewer) error {
	p := tea.NewProgram(NewLive(w, v), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
