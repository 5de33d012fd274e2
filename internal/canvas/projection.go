package canvas

import (
	"math"

	"github.com/san-kum/orrery/internal/orrery"
)

// DefaultFontAspect approximates a terminal cell's width-to-height ratio.
const DefaultFontAspect = 0.5

// Projection maps world coordinates onto a fixed width x height grid.
// The spans are derived once so that circles render round on non-square
// character cells.
type Projection struct {
	width, height int
	spanX, spanY  float64
}

// NewProjection validates the parameters and derives the per-axis spans.
func NewProjection(width, height int, span, fontAspect float64) (Projection, error) {
	if width <= 0 {
		return Projection{}, orrery.Invalid("width", width)
	}
	if height <= 0 {
		return Projection{}, orrery.Invalid("height", height)
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return Projection{}, orrery.Invalid("span", span)
	}
	if !(fontAspect > 0) || math.IsInf(fontAspect, 0) {
		return Projection{}, orrery.Invalid("font_aspect", fontAspect)
	}

	p := Projection{width: width, height: height, spanX: span, spanY: span}
	apparentWidth := float64(width) * fontAspect
	if apparentWidth > float64(height) {
		p.spanX = span * apparentWidth / float64(height)
	} else {
		p.spanY = span * float64(height) / apparentWidth
	}
	return p, nil
}

func (p Projection) Width() int  { return p.width }
func (p Projection) Height() int { return p.height }

// Spans returns the half-extent of the visible world along each axis.
func (p Projection) Spans() (spanX, spanY float64) { return p.spanX, p.spanY }

// ToScreen maps (x, y) to a cell. ok is false when the point falls outside
// the grid; such points are dropped by callers, not reported.
// The closed edge x == spanX (or y == -spanY) lands on the last column
// (row) instead of one past it.
func (p Projection) ToScreen(x, y float64) (col, row int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}

	fx := math.Floor(0.5 * (x/p.spanX + 1) * float64(p.width))
	fy := math.Floor(0.5 * (-y/p.spanY + 1) * float64(p.height))

	if fx == float64(p.width) && x <= p.spanX {
		fx--
	}
	if fy == float64(p.height) && -y <= p.spanY {
		fy--
	}

	if fx < 0 || fx >= float64(p.width) || fy < 0 || fy >= float64(p.height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// Index returns the linear cell index for an on-grid cell.
func (p Projection) Index(col, row int) int {
	return row*p.width + col
}

// Contains reports whether (col, row) addresses a cell of the grid.
func (p Projection) Contains(col, row int) bool {
	return col >= 0 && col < p.width && row >= 0 && row < p.height
}
