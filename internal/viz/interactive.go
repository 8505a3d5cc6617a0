package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/scene"
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	errorMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var presetInfo = map[string]string{
	"tier/low":      "two segments per stem",
	"tier/medium":   "three segments per stem",
	"tier/high":     "four segments per stem",
	"wind/calm":     "slow, faint drift",
	"wind/breezy":   "the default breeze",
	"wind/gusty":    "fast, strong gusts",
	"scene/bouquet": "five stems, orbiting pointer",
	"scene/reveal":  "three stems with a bounce",
	"scene/single":  "one stem",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type model struct {
	state, cursor int
	presets       []string
	base          *config.Config
	cfg           *config.Config
	paramNames    []string
	paramCursor   int
	err           error
	liveModel     Model
}

// NewInteractiveApp lists every preset and applies the chosen one on top of
// base before the live view starts.
func NewInteractiveApp(base *config.Config) *model {
	presets := make([]string, 0)
	for _, g := range config.ListGroups() {
		for _, n := range config.ListPresets(g) {
			presets = append(presets, g+"/"+n)
		}
	}
	return &model{state: stateMenu, presets: presets, base: base}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		group, name, _ := strings.Cut(m.presets[m.cursor], "/")
		m.cfg = m.base.Clone()
		config.Apply(m.cfg, group, name)
		m.cfg.Name = m.presets[m.cursor]
		m.paramNames = sortedKeys(m.cfg.GetParams())
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.scaleParam(0.9)
	case "right", "l":
		m.scaleParam(1.1)
	case "s", "enter":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *model) scaleParam(f float64) {
	name := m.paramNames[m.paramCursor]
	v := m.cfg.GetParams()[name]
	if v == 0 {
		v = 0.01
	}
	_ = m.cfg.SetParam(name, v*f)
}

func (m *model) start() tea.Cmd {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return nil
	}
	sc, err := scene.New(m.cfg.SceneOptions())
	if err != nil {
		m.err = err
		return nil
	}
	m.liveModel = NewModel(sc, m.cfg)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("SWAYRIG") + "\n    " + subtleStyle.Render("wind and pointer driven stems") + "\n    " + subtleStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-14s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-14s", name)), idleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n    " + subtleStyle.Render(presetInfo[m.cfg.Name]) + "\n    " + subtleStyle.Render("─────────────────────────") + "\n\n")
	params := m.cfg.GetParams()
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8.3f", params[name])
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-24s", name)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-24s", name)), idleDesc.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errorMessage.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
