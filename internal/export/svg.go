package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/telemetry"
	"github.com/san-kum/raysim/internal/viz"
	"github.com/san-kum/raysim/internal/world"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot,
// colored by the cell's layer in theme.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotWidth()) * scale
	height := float64(canvas.DotHeight()) * scale

	var sb strings.Builder
	svgHeader(&sb, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := string(theme.LayerColor(canvas.LayerAt(col, row)))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.IsSet(x, y) {
						continue
					}
					cx := float64(x)*scale + scale/2
					cy := float64(y)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WorldToSVG draws a snapshot of w: the world rectangle, mirrors, rays and
// particles, scaled so that the world is width pixels wide. World y points
// up, so the image is flipped.
func WorldToSVG(w *world.World, width int, theme viz.Theme) string {
	scale := float64(width) / w.Width()
	height := w.Height() * scale
	pt := func(p geom.Vector) (float64, float64) {
		return p.X * scale, height - p.Y*scale
	}

	var sb strings.Builder
	svgHeader(&sb, float64(width), height)

	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%.0f" fill="none" stroke="%s" stroke-width="2"/>
`, width, height, theme.Bounds))

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="0.5" stroke-opacity="0.6">
`, theme.Ray))
	for _, r := range w.Rays() {
		sb.WriteString(`<polyline points="`)
		for i, p := range r.Points() {
			x, y := pt(p)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="2">
`, theme.Mirror))
	for _, m := range w.Mirrors() {
		x0, y0 := pt(m.P0())
		x1, y1 := pt(m.P1())
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, theme.Particle))
	for _, p := range w.Particles() {
		x, y := pt(p.Position())
		r := math.Max(2, 2*math.Sqrt(p.Mass()))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, x, y, r))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws points as one path fitted into width x height,
// with 10% padding around the bounding box.
func TrajectoryToSVG(points []geom.Vector, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Trajectory returns the recorded x, y samples of a particle as points.
func Trajectory(rec *telemetry.Recorder, id physics.ID) []geom.Vector {
	xs, ys := rec.Series(id, "x"), rec.Series(id, "y")
	n := min(len(xs), len(ys))
	out := make([]geom.Vector, n)
	for i := range n {
		out[i] = geom.Vec(xs[i], ys[i])
	}
	return out
}
