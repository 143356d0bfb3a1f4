package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

func testWorld(t *testing.T) (*world.World, *physics.Particle) {
	t.Helper()
	w, err := world.New(800, 600, world.WithRayCount(8))
	if err != nil {
		t.Fatal(err)
	}
	p, err := physics.NewParticle(geom.Vec(100, 100), geom.Vec(10, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	w.AddParticle(p)
	m, err := optics.NewPlaneMirror(geom.Vec(300, 100), geom.Vec(300, 500))
	if err != nil {
		t.Fatal(err)
	}
	w.AddMirror(m)
	w.Refresh()
	return w, p
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestStepsPerFrame(t *testing.T) {
	tests := []struct {
		dt   float64
		want int
	}{
		{0.01, 2},
		{1.0 / 60, 1},
		{0.001, 17},
		{0.5, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := stepsPerFrame(tt.dt); got != tt.want {
			t.Errorf("stepsPerFrame(%v) = %d, want %d", tt.dt, got, tt.want)
		}
	}
}

func TestModel_TickAdvancesWorld(t *testing.T) {
	w, _ := testWorld(t)
	m := NewModel(w, 0.01, "test", nil)

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick must schedule the next tick")
	}
	if got := w.Time(); got < 0.019 || got > 0.021 {
		t.Errorf("time after one tick = %v, want two steps of 0.01", got)
	}

	m = press(m, " ")
	before := w.Time()
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if w.Time() != before {
		t.Error("paused model must not step")
	}
	if m.running {
		t.Error("space must pause")
	}
}

func TestModel_Selection(t *testing.T) {
	w, p := testWorld(t)
	m := NewModel(w, 0.01, "test", nil)

	if m.selected != w.ID() {
		t.Fatal("world must start selected")
	}
	m = press(m, "down")
	if m.selected != p.ID() {
		t.Errorf("down must select the particle")
	}
	m = press(m, "j")
	if m.selected != w.ID() {
		t.Errorf("selection must wrap back to the world")
	}
	m = press(m, "up")
	if m.selected != p.ID() {
		t.Errorf("up must wrap to the last entity")
	}

	m = press(m, "o")
	if m.recorder.Observer() != p.ID() {
		t.Error("o must make the selection the observer")
	}
	if got := m.recorder.Series(p.ID(), "x"); len(got) != 1 || got[0] != 0 {
		t.Errorf("observer sees itself at the origin, got %v", got)
	}
}

func TestModel_ViewKeys(t *testing.T) {
	w, _ := testWorld(t)
	m := NewModel(w, 0.01, "test", nil)

	zoom := m.view.Zoom
	m = press(m, "+")
	if m.view.Zoom <= zoom {
		t.Error("+ must zoom in")
	}
	m = press(m, "-", "-")
	if m.view.Zoom >= zoom {
		t.Error("- must zoom out")
	}

	m = press(m, "r")
	if m.showRays {
		t.Error("r must hide rays")
	}
	m = press(m, "?")
	if !m.showHelp {
		t.Error("? must show help")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q must return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q must quit")
	}
}

func TestModel_Resize(t *testing.T) {
	w, _ := testWorld(t)
	m := NewModel(w, 0.01, "test", nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)
	if m.canvas.Width != 160-panelWidth-8 || m.canvas.Height != 46 {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	if m.view.DotW != m.canvas.DotWidth() {
		t.Error("viewport must follow the canvas size")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	m = next.(Model)
	if m.canvas.Width != 160-panelWidth-8 {
		t.Error("tiny windows must keep the previous canvas")
	}
}

func TestModel_DrawsScene(t *testing.T) {
	w, p := testWorld(t)
	m := NewModel(w, 0.01, "test", nil)
	m.draw()

	var layers [numLayers]int
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			layers[m.canvas.LayerAt(col, row)]++
		}
	}
	for _, l := range []Layer{LayerBounds, LayerRay, LayerMirror, LayerParticle} {
		if layers[l] == 0 {
			t.Errorf("nothing drawn on layer %d", l)
		}
	}

	m.selected = p.ID()
	view := m.View()
	if !strings.Contains(view, "TEST") {
		t.Error("view must show the title")
	}
	if !strings.Contains(view, p.ID().String()) {
		t.Error("view must name the selected particle")
	}
}

func TestSnapshot(t *testing.T) {
	w, _ := testWorld(t)
	c := Snapshot(w, 40, 15)
	if c.Width != 40 || c.Height != 15 {
		t.Fatalf("canvas = %dx%d", c.Width, c.Height)
	}
	var mirror, particle bool
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			switch c.LayerAt(col, row) {
			case LayerMirror:
				mirror = true
			case LayerParticle:
				particle = true
			}
		}
	}
	if !mirror || !particle {
		t.Errorf("mirror drawn=%v particle drawn=%v", mirror, particle)
	}
}
