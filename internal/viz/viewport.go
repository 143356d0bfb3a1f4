package viz

import (
	"math"

	"github.com/san-kum/raysim/internal/geom"
)

const (
	minZoom  = 0.25
	maxZoom  = 64
	zoomStep = 1.25
)

// Viewport maps world coordinates onto canvas dots. At zoom 1 the whole
// world rectangle fits the canvas; Center is the world point drawn in the
// middle. The y axis points up in the world and down on the canvas.
type Viewport struct {
	WorldW, WorldH float64
	DotW, DotH     int
	Zoom           float64
	Center         geom.Vector
}

func NewViewport(worldW, worldH float64, dotW, dotH int) Viewport {
	return Viewport{
		WorldW: worldW,
		WorldH: worldH,
		DotW:   dotW,
		DotH:   dotH,
		Zoom:   1,
		Center: geom.Vec(worldW/2, worldH/2),
	}
}

// Scale returns dots per world unit.
func (v Viewport) Scale() float64 {
	s := math.Min(float64(v.DotW-1)/v.WorldW, float64(v.DotH-1)/v.WorldH)
	return s * v.Zoom
}

func (v *Viewport) ZoomIn()  { v.Zoom = math.Min(maxZoom, v.Zoom*zoomStep) }
func (v *Viewport) ZoomOut() { v.Zoom = math.Max(minZoom, v.Zoom/zoomStep) }

// Project returns the dot coordinates of p, unrounded.
func (v Viewport) Project(p geom.Vector) (float64, float64) {
	s := v.Scale()
	x := float64(v.DotW)/2 + (p.X-v.Center.X)*s
	y := float64(v.DotH)/2 - (p.Y-v.Center.Y)*s
	return x, y
}

// Visible reports whether p lands on the canvas.
func (v Viewport) Visible(p geom.Vector) bool {
	x, y := v.Project(p)
	return x >= 0 && y >= 0 && x < float64(v.DotW) && y < float64(v.DotH)
}

// DrawPoint draws a marker at p when it is on screen.
func (v Viewport) DrawPoint(c *Canvas, p geom.Vector, arm int) {
	if !p.IsFinite() || !v.Visible(p) {
		return
	}
	x, y := v.Project(p)
	c.DrawMarker(int(x), int(y), arm)
}

// DrawSegment draws the part of the world segment a-b that is on screen.
func (v Viewport) DrawSegment(c *Canvas, a, b geom.Vector) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	x0, y0 := v.Project(a)
	x1, y1 := v.Project(b)
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, float64(v.DotW-1), float64(v.DotH-1))
	if !ok {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// clip trims the segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clip(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
