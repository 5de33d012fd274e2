package render

import (
	"bufio"
	"io"

	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/orrery"
)

// Renderer emits the difference between consecutive frames.
type Renderer struct {
	out  *countingWriter
	w    *bufio.Writer
	prev *canvas.Canvas

	lastColor orrery.Color
	colorSet  bool
}

// NewRenderer wraps w. No previous frame is known, so the first Render
// writes every cell unless Prime is called.
func NewRenderer(w io.Writer) *Renderer {
	cw := &countingWriter{w: w}
	return &Renderer{
		out: cw,
		w:   bufio.NewWriterSize(cw, 64*1024),
	}
}

// Prime declares what is currently on screen, typically a blank canvas
// right after a clear.
func (r *Renderer) Prime(onScreen *canvas.Canvas) {
	r.prev = onScreen.Clone()
}

// Invalidate forgets the previous frame; the next Render is a full redraw.
func (r *Renderer) Invalidate() {
	r.prev = nil
}

// Full redraws every cell of frame.
func (r *Renderer) Full(frame *canvas.Canvas) (int, error) {
	r.Invalidate()
	return r.Render(frame)
}

// Render writes the cells of frame that differ from the previous frame
// and returns how many were written. frame becomes the previous frame.
// A dimension change forces a full redraw.
func (r *Renderer) Render(frame *canvas.Canvas) (int, error) {
	full := r.prev == nil || r.prev.Width() != frame.Width() || r.prev.Height() != frame.Height()
	if full {
		r.prev = canvas.FromProjection(frame.Projection())
	}

	width := frame.Width()
	next := frame.Cells()
	prev := r.prev.Cells()
	r.colorSet = false

	written := 0
	for i, cell := range next {
		if !full && cell == prev[i] {
			continue
		}
		writeCursorPos(r.w, i%width, i/width)
		if !r.colorSet || cell.Color != r.lastColor {
			r.w.Write(ColorSequence(cell.Color))
			r.lastColor = cell.Color
			r.colorSet = true
		}
		r.w.WriteRune(cell.Glyph)
		prev[i] = cell
		written++
	}

	if written > 0 && r.lastColor != orrery.Reset {
		r.w.Write(csiReset)
	}
	return written, r.w.Flush()
}

// BytesWritten is the total number of bytes handed to the underlying writer.
func (r *Renderer) BytesWritten() int64 {
	return r.out.n
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
