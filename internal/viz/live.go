package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/kav-sh/orbitals/internal/orbit"
)

const (
	canvasWidth  = 70
	canvasHeight = 26
	trailLength  = 90
	historyCap   = 240
	frameMs      = 1000.0 / 30.0
)

type TickMsg time.Time

// Model drives the interactive cluster view. The cluster is stepped on the
// UI frame clock, so pausing the view pauses the simulation.
type Model struct {
	cluster *orbit.Cluster
	factory func() *orbit.Cluster
	rng     *rand.Rand

	nowMs   float64
	running bool

	canvas   *Canvas
	trails   map[int64][]struct{ x, z float64 }
	selected int

	zoom       float64
	zoomVel    float64
	zoomTarget float64
	spring     harmonica.Spring

	radiusHistory []float64
}

// NewModel builds the view around a cluster factory so reset can rebuild
// the starting state.
func NewModel(factory func() *orbit.Cluster, seed int64) Model {
	return Model{
		cluster:       factory(),
		factory:       factory,
		rng:           rand.New(rand.NewSource(seed)),
		running:       true,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trails:        make(map[int64][]struct{ x, z float64 }),
		zoom:          8,
		zoomTarget:    8,
		spring:        harmonica.NewSpring(harmonica.FPS(30), 6.0, 0.6),
		radiusHistory: make([]float64, 0, historyCap),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.cluster = m.factory()
			m.nowMs = 0
			m.selected = 0
			m.trails = make(map[int64][]struct{ x, z float64 })
			m.radiusHistory = m.radiusHistory[:0]
		case "tab":
			m.cycleSelection()
		case "s":
			if b := m.selectedBody(); b != nil {
				m.cluster.SetAsSun(b.ID, m.nowMs)
			}
		case "a":
			d := orbit.RandomDescriptor(m.rng, m.cluster.Dims())
			m.cluster.AddBody(d)
		case "x":
			if b := m.selectedBody(); b != nil {
				m.cluster.RemoveBody(b.ID)
				m.cycleSelection()
			}
		case "+", "=":
			m.zoomTarget *= 1.25
			if m.zoomTarget > 64 {
				m.zoomTarget = 64
			}
		case "-", "_":
			m.zoomTarget *= 0.8
			if m.zoomTarget < 2 {
				m.zoomTarget = 2
			}
		}
	case TickMsg:
		if m.running {
			m.cluster.Tick(m.nowMs, frameMs)
			m.nowMs += frameMs
			m.record()
		}
		m.zoom, m.zoomVel = m.spring.Update(m.zoom, m.zoomVel, m.zoomTarget)
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleSelection() {
	planets := m.planets()
	if len(planets) == 0 {
		m.selected = 0
		return
	}
	m.selected = (m.selected + 1) % len(planets)
}

func (m *Model) planets() []*orbit.Body {
	var out []*orbit.Body
	for _, b := range m.cluster.Bodies() {
		if b.Role != orbit.RoleSun {
			out = append(out, b)
		}
	}
	return out
}

func (m *Model) selectedBody() *orbit.Body {
	planets := m.planets()
	if len(planets) == 0 {
		return nil
	}
	if m.selected >= len(planets) {
		m.selected = len(planets) - 1
	}
	return planets[m.selected]
}

// record appends trail points and the mean orbital radius sample.
func (m *Model) record() {
	sun := m.cluster.Sun()
	seen := make(map[int64]bool)
	sum, n := 0.0, 0
	for _, b := range m.cluster.Bodies() {
		seen[b.ID] = true
		if b.Role == orbit.RoleSun {
			continue
		}
		tr := append(m.trails[b.ID], struct{ x, z float64 }{b.Pos.X, b.Pos.Z})
		if len(tr) > trailLength {
			tr = tr[1:]
		}
		m.trails[b.ID] = tr
		if sun != nil {
			dx, dy, dz := b.Pos.X-sun.Pos.X, b.Pos.Y-sun.Pos.Y, b.Pos.Z-sun.Pos.Z
			sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
			n++
		}
	}
	for id := range m.trails {
		if !seen[id] {
			delete(m.trails, id)
		}
	}
	if n > 0 {
		m.radiusHistory = append(m.radiusHistory, sum/float64(n))
		if len(m.radiusHistory) > historyCap {
			m.radiusHistory = m.radiusHistory[1:]
		}
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.SetScale(m.zoom)

	sun := m.cluster.Sun()
	if sun != nil {
		pulse := 0.45 + 0.12*math.Sin(m.nowMs/400)
		m.canvas.Ring(sun.Pos.X, sun.Pos.Z, pulse)
		m.canvas.Disc(sun.Pos.X, sun.Pos.Z, 0.2)
	}
	for _, tr := range m.trails {
		for _, p := range tr {
			m.canvas.Plot(p.x, p.z)
		}
	}
	for _, b := range m.cluster.Bodies() {
		if b.Role == orbit.RoleSun {
			continue
		}
		m.canvas.Disc(b.Pos.X, b.Pos.Z, 0.1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := panelStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(titleStyle.Render("ORBITALS") + "  ")
	if m.running {
		s.WriteString(runningStyle.Render("running"))
	} else {
		s.WriteString(pausedStyle.Render("paused"))
	}
	s.WriteString(subtleStyle.Render(fmt.Sprintf("  t=%.1fs  zoom %.1f", m.nowMs/1000, m.zoom)))
	s.WriteString("\n\n")

	sun := m.cluster.Sun()
	if sun != nil {
		s.WriteString(sunStyle.Render("☀ "+sun.Name) + "\n")
	} else {
		s.WriteString(subtleStyle.Render("no sun") + "\n")
	}

	sel := m.selectedBody()
	for _, b := range m.planets() {
		radius, compat := math.NaN(), math.NaN()
		if sun != nil {
			dx, dy, dz := b.Pos.X-sun.Pos.X, b.Pos.Y-sun.Pos.Y, b.Pos.Z-sun.Pos.Z
			radius = math.Sqrt(dx*dx + dy*dy + dz*dz)
			compat = orbit.PreferredCompatibility(sun, b)
		}
		marker := " "
		if b.Swapping() {
			marker = "~"
		}
		line := fmt.Sprintf("%s %-12s r=%5.2f c=%4.2f", marker, b.Name, radius, compat)
		if sel != nil && b.ID == sel.ID {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if len(m.radiusHistory) > 1 {
		chart := asciigraph.Plot(m.radiusHistory,
			asciigraph.Height(5), asciigraph.Width(34),
			asciigraph.Caption("mean radius"))
		s.WriteString("\n" + subtleStyle.Render(chart) + "\n")
	}

	s.WriteString(subtleStyle.Render("\nspace:pause r:reset tab:select s:sun\na:add x:remove +/-:zoom q:quit"))
	sidebar := panelStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sidebar)
}

// Run starts the interactive view on the alternate screen.
func Run(factory func() *orbit.Cluster, seed int64) error {
	p := tea.NewProgram(NewModel(factory, seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
