package orbit

import (
	"math"

	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/orrery"
)

const (
	// RingDensity is the number of samples per world unit of circumference.
	RingDensity = 0.8

	RingGlyph = '.'
	RingColor = orrery.Gray

	twoPi = 2 * math.Pi
)

// Point is a position in world coordinates.
type Point struct {
	X, Y float64
}

// RingSamples returns floor(2πr·density); zero for r <= 0.
func RingSamples(radius float64) int {
	if !(radius > 0) {
		return 0
	}
	return int(math.Floor(twoPi * radius * RingDensity))
}

// Ring samples a circle of the given radius centred at the origin.
func Ring(radius float64) []Point {
	n := RingSamples(radius)
	if n == 0 {
		return nil
	}
	points := make([]Point, n)
	for i := range points {
		points[i] = Position(radius, twoPi*float64(i)/float64(n))
	}
	return points
}

// PlotRing draws the ring for radius onto c and returns how many samples
// landed on the grid.
func PlotRing(c *canvas.Canvas, radius float64) int {
	plotted := 0
	for _, p := range Ring(radius) {
		if c.SetPosition(RingGlyph, RingColor, p.X, p.Y) {
			plotted++
		}
	}
	return plotted
}

// Position returns (r·cos θ, r·sin θ).
func Position(radius, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: radius * cos, Y: radius * sin}
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

