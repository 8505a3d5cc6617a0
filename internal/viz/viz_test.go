package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(3, 3)
	if !c.IsSet(3, 3) {
		t.Fatal("dot not set")
	}
	if got := c.Cell(0, 1); got != blank|0x80 {
		t.Errorf("unexpected cell %U", got)
	}
	c.Unset(3, 3)
	if got := c.Cell(0, 1); got != blank {
		t.Errorf("cell not cleared: %U", got)
	}

	c.Set(-1, 0)
	c.Set(100, 0)
	if strings.Count(c.String(), string(blank)) != 2 {
		t.Error("out of range dots should be ignored")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot %d missing", i)
		}
	}
}

func TestCameraProjectsFocusToCentre(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(cam.Focus, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("focus projected to (%d,%d) visible=%v", x, y, ok)
	}
}

func newScene(t *testing.T, stems int) (*scene.Scene, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Stems = stems
	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		t.Fatal(err)
	}
	return sc, cfg
}

func TestBouquetWireframe(t *testing.T) {
	sc, _ := newScene(t, 3)
	w := BouquetWireframe(sc, 0.5)

	// three segments and one bloom per stem
	if w.Len() != 12 {
		t.Fatalf("expected 12 edges, got %d", w.Len())
	}
	bloom := w.Edges[3]
	if !bloom.Bloom || bloom.Start.Y != 3 {
		t.Errorf("upright stem should bloom at height 3, got %+v", bloom)
	}
	if w.Edges[0].Start.X != -0.5 || w.Edges[8].Start.X != 0.5 {
		t.Errorf("stems not fanned: %+v %+v", w.Edges[0].Start, w.Edges[8].Start)
	}

	c := NewCanvas(40, 20)
	Render3D(c, w, NewCamera())
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > blank && r <= 0x28ff }) {
		t.Error("nothing drawn")
	}
}

func TestPointerAt(t *testing.T) {
	if p := pointerAt(10, 5, 20, 10); p != (rig.Pointer{}) {
		t.Errorf("centre should be zero, got %+v", p)
	}
	if p := pointerAt(-50, 50, 20, 10); p.X != -1 || p.Y != 1 {
		t.Errorf("expected clamped corner, got %+v", p)
	}
}

func TestMouseMovesPointerAndKicks(t *testing.T) {
	sc, cfg := newScene(t, 1)
	var m tea.Model = NewModel(sc, cfg)

	// Top right corner of the canvas, inside the panel border.
	m, _ = m.Update(tea.MouseMsg{X: 2 + width, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if p := m.(Model).pointer; p.X != 1 || p.Y != -1 {
		t.Errorf("expected top right pointer, got %+v", p)
	}
	if sc.Sway().Forward().Velocity == 0 {
		t.Error("left click should kick the root")
	}

	sc.Reset()
	m, _ = m.Update(tea.MouseMsg{X: 2 + width/2, Y: 1 + height/2, Action: tea.MouseActionMotion})
	if p := m.(Model).pointer; p != (rig.Pointer{}) {
		t.Errorf("expected centred pointer, got %+v", p)
	}
	if sc.Sway().Forward().Velocity != 0 {
		t.Error("motion alone should not kick")
	}
}

func TestCanvasSize(t *testing.T) {
	cols, rows := NewCanvas(7, 3).Size()
	if cols != 7 || rows != 3 {
		t.Errorf("Size() = %d, %d", cols, rows)
	}
}

func TestModelTicksAndKeys(t *testing.T) {
	sc, cfg := newScene(t, 1)
	var m tea.Model = NewModel(sc, cfg)

	start := time.Unix(0, 0)
	for i := 0; i < 30; i++ {
		m, _ = m.Update(TickMsg(start.Add(time.Duration(i) * time.Second / 60)))
	}
	if sc.Frames() != 30 {
		t.Fatalf("expected 30 frames, got %d", sc.Frames())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if sc.Sway().Forward().Velocity == 0 {
		t.Error("kick key should push the root")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = m.Update(TickMsg(start.Add(time.Second)))
	if sc.Frames() != 30 {
		t.Error("paused model should not step")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if sc.Sway().Forward().Velocity != 0 {
		t.Error("reset should settle the root")
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused status")
	}
}

func TestScheduledKickFires(t *testing.T) {
	sc, cfg := newScene(t, 1)
	cfg.Sim.Kicks = []float64{0.1}
	m := NewModel(sc, cfg)

	for i := 0; i < 5; i++ {
		m.step(1.0 / 60)
	}
	if sc.Sway().Forward().Velocity != 0 {
		t.Fatal("kick fired early")
	}
	for i := 0; i < 3; i++ {
		m.step(1.0 / 60)
	}
	if len(m.kicks) != 0 {
		t.Error("kick should have been consumed")
	}
}

func TestNextThemeWraps(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)
	SetTheme(Themes[len(Themes)-1].Name)
	NextTheme()
	if CurrentTheme.Name != Themes[0].Name {
		t.Errorf("expected wrap to %s, got %s", Themes[0].Name, CurrentTheme.Name)
	}
}

func TestInteractivePresetFlow(t *testing.T) {
	var m tea.Model = NewInteractiveApp(config.DefaultConfig())
	if !strings.Contains(m.View(), "scene/bouquet") {
		t.Fatal("menu should list presets")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "stem.max_bend") {
		t.Fatal("config view should list tunable params")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Error("starting should schedule the first tick")
	}
	if m.(model).state != stateSim {
		t.Error("expected live state")
	}
}
