package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/telemetry"
	"github.com/san-kum/raysim/internal/viz"
	"github.com/san-kum/raysim/internal/world"
)

const (
	screenW = 1280
	screenH = 720

	// maxStepsPerFrame bounds catch-up work after a slow frame.
	maxStepsPerFrame = 1000
)

var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
	ColSelect   = rl.NewColor(255, 255, 255, 255)
	ColVelocity = rl.NewColor(0, 220, 0, 255)
	ColAccel    = rl.NewColor(40, 120, 255, 255)
)

// App is the raylib front end. It starts in the scene menu unless built
// with a world.
type App struct {
	scenes   []string
	cursor   int
	inMenu   bool
	sceneErr string

	world    *world.World
	recorder *telemetry.Recorder
	dt       float64
	title    string
	acc      float64

	view        viz.Viewport
	selected    physics.ID
	running     bool
	showRays    bool
	showVectors bool
	showHelp    bool
	quit        bool

	logger *slog.Logger
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "raysim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp returns an app showing w, or the scene menu when w is nil.
func NewApp(w *world.World, dt float64, title string, logger *slog.Logger) *App {
	a := &App{
		scenes: config.ListPresets(),
		inMenu: w == nil,
		logger: logging.OrNop(logger),
	}
	if w != nil {
		a.load(w, dt, title)
	}
	return a
}

func (a *App) load(w *world.World, dt float64, title string) {
	a.world, a.dt, a.title = w, dt, title
	a.recorder = telemetry.NewRecorder(telemetry.DefaultCapacity)
	a.recorder.SetObserver(w.ID())
	a.recorder.Record(w)
	a.view = viz.NewViewport(w.Width(), w.Height(), screenW, screenH)
	a.selected = w.ID()
	a.running, a.showRays, a.showVectors = true, true, true
	a.acc = 0
	a.inMenu = false
}

// Run opens a window on w and blocks until it is closed.
func Run(w *world.World, dt float64, title string, logger *slog.Logger) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(w, dt, title, logger).RunLoop()
}

// RunInteractive opens a window on the scene menu.
func RunInteractive(logger *slog.Logger) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(nil, 0, "", logger).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if a.inMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inMenu, a.running = true, false
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	entities := telemetry.Entities(a.world)
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.selected = telemetry.Cycle(entities, a.selected, 1)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.selected = telemetry.Cycle(entities, a.selected, -1)
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.recorder.SetObserver(a.selected)
		a.recorder.Record(a.world)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.view.ZoomIn()
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.view.ZoomOut()
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.view.ZoomIn()
	} else if wheel < 0 {
		a.view.ZoomOut()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.showRays = !a.showRays
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.showVectors = !a.showVectors
	}
	if rl.IsKeyPressed(rl.KeyT) {
		viz.NextTheme()
	}
	if rl.IsKeyPressed(rl.KeySlash) {
		a.showHelp = !a.showHelp
	}

	a.view.DotW, a.view.DotH = rl.GetScreenWidth(), rl.GetScreenHeight()

	if !a.running {
		return
	}
	a.acc += float64(rl.GetFrameTime())
	for steps := 0; a.acc >= a.dt && steps < maxStepsPerFrame; steps++ {
		a.world.Update(a.dt)
		a.recorder.Record(a.world)
		a.acc -= a.dt
	}
	if a.acc > a.dt {
		a.acc = 0
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.cursor = (a.cursor + 1) % len(a.scenes)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.cursor = (a.cursor - 1 + len(a.scenes)) % len(a.scenes)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		cfg := config.GetPreset(a.scenes[a.cursor])
		w, err := cfg.BuildWorld(a.logger)
		if err != nil {
			a.sceneErr = err.Error()
			a.logger.Warn("scene not loaded", "scene", cfg.Name, "err", err)
			return
		}
		a.sceneErr = ""
		a.load(w, cfg.Dt, cfg.Name)
	}
}

func themeColor(l viz.Layer, alpha uint8) rl.Color {
	r, g, b := viz.CurrentTheme.RGB(l)
	return rl.NewColor(r, g, b, alpha)
}

func (a *App) toScreen(p geom.Vector) rl.Vector2 {
	x, y := a.view.Project(p)
	return rl.NewVector2(float32(x), float32(y))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.inMenu {
		a.drawMenu()
	} else {
		a.drawWorld()
		a.drawHUD()
		a.drawTelemetry()
	}
	rl.EndDrawing()
}

func (a *App) drawWorld() {
	entities := telemetry.Entities(a.world)
	obs, ok := telemetry.Find(entities, a.recorder.Observer())
	if !ok {
		obs = entities[0]
	}
	a.view.Center = obs.R

	ww, wh := a.world.Width(), a.world.Height()
	corners := [5]geom.Vector{geom.Vec(0, 0), geom.Vec(ww, 0), geom.Vec(ww, wh), geom.Vec(0, wh), geom.Vec(0, 0)}
	for i := 0; i < 4; i++ {
		rl.DrawLineEx(a.toScreen(corners[i]), a.toScreen(corners[i+1]), 2, themeColor(viz.LayerBounds, 255))
	}

	if a.showRays {
		col := themeColor(viz.LayerRay, 90)
		for _, r := range a.world.Rays() {
			for s := range r.Segments() {
				rl.DrawLineV(a.toScreen(s.First), a.toScreen(s.Second), col)
			}
		}
	}

	for _, m := range a.world.Mirrors() {
		rl.DrawLineEx(a.toScreen(m.P0()), a.toScreen(m.P1()), 3, themeColor(viz.LayerMirror, 255))
	}

	for _, e := range entities[1:] {
		pos := a.toScreen(e.R)
		if a.showVectors {
			rl.DrawLineEx(pos, a.toScreen(e.R.Add(e.V.Sub(obs.V))), 2, ColVelocity)
			rl.DrawLineEx(pos, a.toScreen(e.R.Add(e.A.Sub(obs.A))), 2, ColAccel)
		}
		col := themeColor(viz.LayerParticle, 255)
		if e.ID == a.selected {
			col = themeColor(viz.LayerSelected, 255)
			rl.DrawCircleLines(int32(pos.X), int32(pos.Y), 10, col)
		}
		rl.DrawCircleV(pos, 4, col)
	}
}

func (a *App) drawHUD() {
	rl.DrawText("raysim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s", a.title), 130, 36, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-130, 30, 16, col)

	entities := telemetry.Entities(a.world)
	sel, ok := telemetry.Find(entities, a.selected)
	if !ok {
		sel = entities[0]
	}
	obs, ok := telemetry.Find(entities, a.recorder.Observer())
	if !ok {
		obs = entities[0]
	}

	lines := []string{
		fmt.Sprintf("t          %.2fs", a.world.Time()),
		fmt.Sprintf("particles  %d (%d removed)", a.world.Len(), a.world.Removed()),
		fmt.Sprintf("rays       %d", len(a.world.Rays())),
		fmt.Sprintf("zoom       %.2fx", a.view.Zoom),
		fmt.Sprintf("observer   %s", obs),
		fmt.Sprintf("selected   %s", sel),
	}
	if sel.Kind == telemetry.KindParticle {
		lines = append(lines,
			fmt.Sprintf("r  %8.2f %8.2f", sel.R.X-obs.R.X, sel.R.Y-obs.R.Y),
			fmt.Sprintf("v  %8.2f %8.2f", sel.V.X-obs.V.X, sel.V.Y-obs.V.Y),
			fmt.Sprintf("a  %8.2f %8.2f", sel.A.X-obs.A.X, sel.A.Y-obs.A.Y),
		)
	}
	for i, l := range lines {
		rl.DrawText(l, 30, int32(80+i*20), 16, ColText)
	}

	hint := "[SPACE] PAUSE  [UP/DOWN] SELECT  [O] OBSERVE  [R] RAYS  [V] VECTORS  [ESC] MENU  [Q] QUIT"
	if a.showHelp {
		hint = "[+/-/WHEEL] ZOOM  [T] THEME  [?] HELP  green: velocity  blue: acceleration"
	}
	rl.DrawText(hint, 30, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-90, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
}

// drawTelemetry plots the selected entity's first position series, or the
// world's energy.
func (a *App) drawTelemetry() {
	name := "x"
	if k, ok := a.recorder.Kind(a.selected); ok && k == telemetry.KindWorld {
		name = "E"
	}
	data := a.recorder.Series(a.selected, name)
	if len(data) < 2 {
		return
	}

	rectX, rectY := float32(30), float32(rl.GetScreenHeight()-120)
	width, height := float32(400), float32(60)

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(data))
	for i, v := range data {
		px := rectX + float32(i)/float32(len(data))*width
		py := rectY + height - float32((v-minVal)/(maxVal-minVal))*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, themeColor(viz.LayerSelected, 255))
	rl.DrawText(fmt.Sprintf("%s: %.3g", name, data[len(data)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}

func (a *App) drawMenu() {
	rl.DrawText("raysim", 50, 50, 40, ColSelect)
	rl.DrawText("Select Scene", 50, 100, 16, ColTextDim)

	y := int32(160)
	for i, name := range a.scenes {
		if i == a.cursor {
			rl.DrawText("> "+name, 50, y, 20, ColSelect)
		} else {
			rl.DrawText("  "+name, 50, y, 20, ColText)
		}
		y += 28
	}
	if a.sceneErr != "" {
		rl.DrawText(a.sceneErr, 50, y+20, 16, rl.Red)
	}

	rl.DrawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", int32(rl.GetScreenWidth())-430, int32(rl.GetScreenHeight())-40, 14, ColTextDim)
}
