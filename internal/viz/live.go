package viz

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/telemetry"
	"github.com/san-kum/raysim/internal/world"
)

const (
	defaultCols = 80
	defaultRows = 24
	frameRate   = 60

	// GIFPath is where g saves a recording.
	GIFPath = "raysim.gif"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live view of one world: the canvas on the left, the
// selected entity with its plots on the right.
type Model struct {
	world    *world.World
	recorder *telemetry.Recorder
	dt       float64
	perTick  int
	title    string

	canvas   *Canvas
	view     Viewport
	selected physics.ID

	running   bool
	showRays  bool
	showHelp  bool
	recording bool
	frames    *FrameRecorder
	status    string

	logger *slog.Logger
}

// NewModel builds a live view of w stepped by dt. The world entity starts
// both selected and as the observer.
func NewModel(w *world.World, dt float64, title string, logger *slog.Logger) Model {
	canvas := NewCanvas(defaultCols, defaultRows)
	rec := telemetry.NewRecorder(telemetry.DefaultCapacity)
	rec.SetObserver(w.ID())
	rec.Record(w)

	return Model{
		world:    w,
		recorder: rec,
		dt:       dt,
		perTick:  stepsPerFrame(dt),
		title:    title,
		canvas:   canvas,
		view:     NewViewport(w.Width(), w.Height(), canvas.DotWidth(), canvas.DotHeight()),
		selected: w.ID(),
		running:  true,
		showRays: true,
		logger:   logging.OrNop(logger),
	}
}

// stepsPerFrame keeps simulated time close to wall time at frameRate.
func stepsPerFrame(dt float64) int {
	if !(dt > 0) {
		return 1
	}
	n := int(math.Round(1 / (frameRate * dt)))
	return max(1, n)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.cycleSelection(-1)
		case "down", "j":
			m.cycleSelection(1)
		case "o":
			m.recorder.SetObserver(m.selected)
			m.recorder.Record(m.world)
		case "+", "=":
			m.view.ZoomIn()
		case "-", "_":
			m.view.ZoomOut()
		case "r":
			m.showRays = !m.showRays
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "g":
			m.toggleRecording()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.frames.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < m.perTick; i++ {
		m.world.Update(m.dt)
		m.recorder.Record(m.world)
	}
}

func (m *Model) resize(w, h int) {
	cols := w - panelWidth - 8
	rows := h - 4
	if cols < 20 || rows < 8 {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	m.view.DotW, m.view.DotH = m.canvas.DotWidth(), m.canvas.DotHeight()
}

// cycleSelection moves the selection through world-first entity order.
func (m *Model) cycleSelection(dir int) {
	m.selected = telemetry.Cycle(telemetry.Entities(m.world), m.selected, dir)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = NewFrameRecorder(CurrentTheme)
		m.status = "recording"
		return
	}
	m.recording = false
	if err := m.frames.Save(GIFPath); err != nil {
		m.logger.Warn("gif not saved", "path", GIFPath, "err", err)
		m.status = err.Error()
	} else {
		m.logger.Info("gif saved", "path", GIFPath, "frames", m.frames.Len())
		m.status = "saved " + GIFPath
	}
	m.frames = nil
}

// observerEntity returns the current reference entity; a vanished
// observer falls back to the world.
func (m *Model) observerEntity(entities []telemetry.Entity) telemetry.Entity {
	if e, ok := telemetry.Find(entities, m.recorder.Observer()); ok {
		return e
	}
	return entities[0]
}

// Snapshot draws the current state of w onto a cols x rows canvas, viewed
// from the world center.
func Snapshot(w *world.World, cols, rows int) *Canvas {
	m := NewModel(w, 0, "", nil)
	m.canvas = NewCanvas(cols, rows)
	m.view.DotW, m.view.DotH = m.canvas.DotWidth(), m.canvas.DotHeight()
	m.draw()
	return m.canvas
}

func (m *Model) draw() {
	c, v := m.canvas, &m.view
	c.Clear()

	entities := telemetry.Entities(m.world)
	v.Center = m.observerEntity(entities).R

	ww, wh := m.world.Width(), m.world.Height()
	corners := [5]geom.Vector{geom.Vec(0, 0), geom.Vec(ww, 0), geom.Vec(ww, wh), geom.Vec(0, wh), geom.Vec(0, 0)}
	c.SetPen(LayerBounds)
	for i := 0; i < 4; i++ {
		v.DrawSegment(c, corners[i], corners[i+1])
	}

	if m.showRays {
		c.SetPen(LayerRay)
		for _, r := range m.world.Rays() {
			for s := range r.Segments() {
				v.DrawSegment(c, s.First, s.Second)
			}
		}
	}

	c.SetPen(LayerMirror)
	for _, mir := range m.world.Mirrors() {
		v.DrawSegment(c, mir.P0(), mir.P1())
	}

	for _, e := range entities[1:] {
		c.SetPen(LayerParticle)
		if e.ID == m.selected {
			c.SetPen(LayerSelected)
		}
		v.DrawPoint(c, e.R, 1)
	}
	if sel, ok := telemetry.Find(entities, m.selected); ok && v.Visible(sel.R) {
		x, y := v.Project(sel.R)
		c.SetPen(LayerSelected)
		c.DrawBox(int(x), int(y), 3)
	}
}

func (m Model) View() string {
	st := newStyles(CurrentTheme)
	m.draw()
	canvasView := st.canvas.Render(m.canvas.Render(st.layers))

	entities := telemetry.Entities(m.world)
	sel, ok := telemetry.Find(entities, m.selected)
	if !ok {
		sel = entities[0]
	}
	obs := m.observerEntity(entities)

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recording {
		status += " ● REC"
	}
	s.WriteString(st.warning.Render(status) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.world.Time()))
	row("Particles", fmt.Sprintf("%d (%d removed)", m.world.Len(), m.world.Removed()))
	row("Rays", rayState(m.showRays, len(m.world.Rays())))
	row("Boundary", m.world.Boundary().String())
	row("Zoom", fmt.Sprintf("%.2fx", m.view.Zoom))
	row("Observer", obs.String())
	s.WriteString("\n" + st.active.Render("▸ "+sel.String()) + "\n")

	rel := func(a, b float64) string { return fmt.Sprintf("%9.2f", a-b) }
	if sel.Kind == telemetry.KindParticle {
		row("r", rel(sel.R.X, obs.R.X)+rel(sel.R.Y, obs.R.Y))
		row("v", rel(sel.V.X, obs.V.X)+rel(sel.V.Y, obs.V.Y))
		row("a", rel(sel.A.X, obs.A.X)+rel(sel.A.Y, obs.A.Y))
	}

	for _, name := range plotSeries(sel.Kind) {
		data := m.recorder.Series(sel.ID, name)
		if len(data) < 2 {
			continue
		}
		chart := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption(name))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.status != "" {
		s.WriteString(st.muted.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render(st.separator(panelWidth-6)) + "\n")
	s.WriteString(st.hints("spc", "pause", "↑↓", "select", "o", "observe") + "\n")
	s.WriteString(st.hints("+/-", "zoom", "r", "rays", "?", "help", "q", "quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, st.helpBox.Render(helpText), mainView)
	}
	return mainView
}

// plotSeries names the series charted for an entity kind.
func plotSeries(k telemetry.Kind) []string {
	if k == telemetry.KindWorld {
		return []string{"E"}
	}
	return []string{"x", "y"}
}

func rayState(on bool, n int) string {
	if !on {
		return "hidden"
	}
	return fmt.Sprintf("%d", n)
}

const helpText = `KEYBOARD SHORTCUTS
Space    pause or resume
Up/K     select previous entity
Down/J   select next entity
O        observe from the selection
+ / -    zoom in or out
R        show or hide rays
T        cycle themes
G        start or stop GIF recording
?        toggle this help
Q        quit`

// RunLive opens the live view of w in the alternate screen and blocks
// until the user quits.
func RunLive(w *world.World, dt float64, title string, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewModel(w, dt, title, logger), tea.WithAltScreen()).Run()
	return err
}
