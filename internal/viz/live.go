package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/scene"
)

const (
	width           = 64
	height          = 22
	historyCapacity = 600
	pointerStep     = 0.1
	defaultFan      = 0.45
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a scene from wall-clock ticks and draws it.
type Model struct {
	sc        *scene.Scene
	title     string
	kickForce float64
	kicks     []float64
	pointer   rig.Pointer
	running   bool
	showHelp  bool
	lastTick  time.Time

	canvas *Canvas
	camera *Camera
	fan    float64

	tipHistory  []float64
	rootHistory []float64
}

func NewModel(sc *scene.Scene, cfg *config.Config) Model {
	kicks := append([]float64(nil), cfg.Sim.Kicks...)
	sort.Float64s(kicks)
	title := cfg.Name
	if title == "" {
		title = "swayrig"
	}
	return Model{
		sc:          sc,
		title:       title,
		kickForce:   cfg.Sway.KickForce,
		kicks:       kicks,
		running:     true,
		canvas:      NewCanvas(width, height),
		camera:      NewCamera(),
		fan:         defaultFan,
		tipHistory:  make([]float64, 0, historyCapacity),
		rootHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "b", "enter":
			m.sc.Kick(m.kickForce)
		case "up", "k":
			m.nudge(0, -pointerStep)
		case "down", "j":
			m.nudge(0, pointerStep)
		case "left", "h":
			m.nudge(-pointerStep, 0)
		case "right", "l":
			m.nudge(pointerStep, 0)
		case "c":
			m.pointer = rig.Pointer{}
		case "t":
			NextTheme()
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
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		cols, rows := m.canvas.Size()
		m.pointer = pointerAt(msg.X-2, msg.Y-1, cols, rows)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.sc.Kick(m.kickForce)
		}
	case TickMsg:
		now := time.Time(msg)
		delta := 1.0 / 60
		if !m.lastTick.IsZero() {
			delta = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		if m.running {
			m.step(delta)
		}
		return m, tick()
	}
	return m, nil
}

// step advances one frame. Frame deltas above the scene's cap are clamped
// by the scene itself, so a stalled terminal does not explode the springs.
func (m *Model) step(delta float64) {
	m.sc.Frame(delta, m.pointer)
	for len(m.kicks) > 0 && m.sc.Time() >= m.kicks[0] {
		m.sc.Kick(m.kickForce)
		m.kicks = m.kicks[1:]
	}

	m.tipHistory = appendCapped(m.tipHistory, m.tipBend())
	fwd, _ := m.sc.Sway().Rotation()
	m.rootHistory = appendCapped(m.rootHistory, fwd)
}

func (m *Model) tipBend() float64 {
	chains := m.sc.Chains()
	if len(chains) == 0 || chains[0].Len() == 0 {
		return 0
	}
	x, _ := chains[0].Rotation(chains[0].Len() - 1)
	return x
}

func (m *Model) nudge(dx, dy float64) {
	m.pointer = rig.Pointer{X: m.pointer.X + dx, Y: m.pointer.Y + dy}.Clamped()
}

func (m *Model) reset() {
	m.sc.Reset()
	m.pointer = rig.Pointer{}
	m.tipHistory = m.tipHistory[:0]
	m.rootHistory = m.rootHistory[:0]
}

func appendCapped(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

// pointerAt maps a terminal cell to the normalised pointer, centre is zero.
func pointerAt(col, row, w, h int) rig.Pointer {
	if w <= 0 || h <= 0 {
		return rig.Pointer{}
	}
	hw, hh := float64(w)/2, float64(h)/2
	return rig.Pointer{
		X: (float64(col) - hw) / hw,
		Y: (float64(row) - hh) / hh,
	}.Clamped()
}

func (m *Model) draw() {
	m.canvas.Clear()
	Render3D(m.canvas, BouquetWireframe(m.sc, m.fan), m.camera)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(CurrentTheme.Stem).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("SWAYING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.tipHistory) > 1 {
		chart := asciigraph.Plot(m.tipHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("tip bend (rad)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	w := m.sc.Wind()
	fwd, side := m.sc.Sway().Rotation()
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.2fs", m.sc.Time())},
		{"Wind", fmt.Sprintf("x %+.3f  z %+.3f", w.X, w.Z)},
		{"Pointer", fmt.Sprintf("x %+.2f  y %+.2f", m.pointer.X, m.pointer.Y)},
		{"Root", fmt.Sprintf("fwd %+.3f  side %+.3f", fwd, side)},
		{"Theme", CurrentTheme.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle().Render(r[1]) + "\n")
	}

	s.WriteString("\n" + labelStyle.Render("Root trace") + Sparkline(m.rootHistory, 24) + "\n")

	if chains := m.sc.Chains(); len(chains) > 0 {
		s.WriteString("\n" + Separator(30) + "\n")
		c := chains[0]
		for i := 0; i < c.Len(); i++ {
			x, _ := c.Rotation(i)
			s.WriteString(labelStyle.Render(fmt.Sprintf("seg %d", i)) + BendBar(x, c.Bound(), 16) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause B:Kick R:Reset Q:Quit\nhjkl:Pointer C:Centre T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  B/Enter  - Kick the bouquet         ║
║  R        - Settle every spring      ║
║  Arrows   - Move the pointer         ║
║  Mouse    - Point, click to kick     ║
║  C        - Centre the pointer       ║
║  xX yY zZ - Orbit the camera         ║
║  +/-      - Zoom                     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run opens the live view full screen with mouse tracking.
func Run(sc *scene.Scene, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(sc, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
