package canvas

import (
	"strings"

	"github.com/san-kum/orrery/internal/orrery"
)

// Blank is the glyph of an empty cell.
const Blank = ' '

// Cell is one character position of a frame.
type Cell struct {
	Glyph rune
	Color orrery.Color
}

var blankCell = Cell{Glyph: Blank, Color: orrery.Reset}

// Canvas is a fixed-size grid of cells addressed in world coordinates.
type Canvas struct {
	proj  Projection
	cells []Cell
}

// New builds a blank canvas. It fails with orrery.ErrInvalidConfig for
// non-positive dimensions, span or aspect.
func New(width, height int, span, fontAspect float64) (*Canvas, error) {
	p, err := NewProjection(width, height, span, fontAspect)
	if err != nil {
		return nil, err
	}
	return FromProjection(p), nil
}

// FromProjection builds a blank canvas sharing p's geometry.
func FromProjection(p Projection) *Canvas {
	c := &Canvas{
		proj:  p,
		cells: make([]Cell, p.width*p.height),
	}
	c.Clear()
	return c
}

func (c *Canvas) Width() int             { return c.proj.width }
func (c *Canvas) Height() int            { return c.proj.height }
func (c *Canvas) Projection() Projection { return c.proj }

// Cells exposes the backing row-major slice. Callers must not resize it.
func (c *Canvas) Cells() []Cell { return c.cells }

// SetPosition plots glyph at world (x, y). Last write wins; off-grid
// points are dropped and reported as false.
func (c *Canvas) SetPosition(glyph rune, color orrery.Color, x, y float64) bool {
	col, row, ok := c.proj.ToScreen(x, y)
	if !ok {
		return false
	}
	c.cells[c.proj.Index(col, row)] = Cell{Glyph: glyph, Color: color}
	return true
}

// SetCell writes directly in screen coordinates.
func (c *Canvas) SetCell(glyph rune, color orrery.Color, col, row int) bool {
	if !c.proj.Contains(col, row) {
		return false
	}
	c.cells[c.proj.Index(col, row)] = Cell{Glyph: glyph, Color: color}
	return true
}

// DrawText writes s left to right from (col, row), clipping at the edge.
func (c *Canvas) DrawText(col, row int, s string, color orrery.Color) {
	for _, r := range s {
		c.SetCell(r, color, col, row)
		col++
	}
}

// At returns the cell at a screen position; off-grid reads are blank.
func (c *Canvas) At(col, row int) Cell {
	if !c.proj.Contains(col, row) {
		return blankCell
	}
	return c.cells[c.proj.Index(col, row)]
}

// Clear resets every cell to blank with the reset color.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blankCell
	}
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	cp := &Canvas{proj: c.proj, cells: make([]Cell, len(c.cells))}
	copy(cp.cells, c.cells)
	return cp
}

// CopyFrom overwrites c with src's cells. Both canvases must share
// dimensions; it reports false and leaves c untouched otherwise.
func (c *Canvas) CopyFrom(src *Canvas) bool {
	if src.proj.width != c.proj.width || src.proj.height != c.proj.height {
		return false
	}
	copy(c.cells, src.cells)
	return true
}

// Equal reports whether both canvases hold identical cells.
func (c *Canvas) Equal(other *Canvas) bool {
	if other == nil || len(c.cells) != len(other.cells) || c.proj.width != other.proj.width {
		return false
	}
	for i := range c.cells {
		if c.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the glyphs without color, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.proj.width + 1) * c.proj.height)
	for row := 0; row < c.proj.height; row++ {
		start := row * c.proj.width
		for _, cell := range c.cells[start : start+c.proj.width] {
			b.WriteRune(cell.Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
