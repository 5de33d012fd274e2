package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/orrery"
)

// hexColors approximates the terminal palette
var hexColors = map[orrery.Color]string{
	orrery.Reset:  "#e0e0e0",
	orrery.Yellow: "#ffd700",
	orrery.Blue:   "#3b7bff",
	orrery.Red:    "#ff4b3a",
	orrery.Gray:   "#7f7f7f",
	orrery.Orange: "#ff8700",
	orrery.Cyan:   "#00d7d7",
}

func HexColor(c orrery.Color) string {
	if h, ok := hexColors[c]; ok {
		return h
	}
	return hexColors[orrery.Reset]
}

// OrreryToSVG draws every orbit and each body at simulated time t with
// speed multiplier m, on a square canvas of size pixels.
func OrreryToSVG(bodies []orrery.Body, t, m float64, size int) string {
	maxRadius := 0.0
	for _, b := range bodies {
		if b.Radius > maxRadius {
			maxRadius = b.Radius
		}
	}
	if maxRadius == 0 {
		maxRadius = 1
	}

	half := float64(size) / 2
	scale := half * 0.92 / maxRadius

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="%s" stroke-width="1" stroke-dasharray="2 4">
`, size, size, size, size, HexColor(orbit.RingColor)))

	for _, b := range bodies {
		if b.Radius == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, half, half, b.Radius*scale))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g font-family="monospace" font-size="14" text-anchor="middle" dominant-baseline="central">
`)
	for _, b := range bodies {
		p := orbit.Position(b.Radius, orbit.AngleAt(b, t, m))
		x := half + p.X*scale
		y := half - p.Y*scale
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s"><title>%s</title>%s</text>
`, x, y, HexColor(b.Color), escape(b.Name), escape(string(b.Glyph))))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a path around the origin with equal x and y
// scale, marking the first point.
func TrajectoryToSVG(points []orbit.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	extent := 0.0
	for _, p := range points {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if extent == 0 {
		extent = 1
	}

	cx, cy := float64(width)/2, float64(height)/2
	scale := math.Min(cx, cy) * 0.9 / extent
	toPixel := func(p orbit.Point) (float64, float64) {
		return cx + p.X*scale, cy - p.Y*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x, y := toPixel(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	x0, y0 := toPixel(points[0])
	sb.WriteString(fmt.Sprintf(`"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>
</svg>`, cx, cy, HexColor(orrery.Yellow), x0, y0, strokeColor))
	return sb.String()
}

// Trail samples a body's path over duration at steps points.
func Trail(b orrery.Body, start, duration, m float64, steps int) []orbit.Point {
	if steps < 2 {
		steps = 2
	}
	points := make([]orbit.Point, steps)
	for i := range points {
		t := start + duration*float64(i)/float64(steps-1)
		points[i] = orbit.Position(b.Radius, orbit.AngleAt(b, t, m))
	}
	return points
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
