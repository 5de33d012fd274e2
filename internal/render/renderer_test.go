package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/orrery"
)

func TestRenderer_IdenticalFrameWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	frame := newCanvas(t, 80, 24)
	frame.SetPosition('O', orrery.Yellow, 0, 0)

	if _, err := r.Render(frame); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	n, err := r.Render(frame.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("identical frame wrote %d cells, %d bytes", n, buf.Len())
	}
}

func TestRenderer_FirstRenderIsFull(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	n, err := r.Render(newCanvas(t, 4, 3))
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Errorf("first render wrote %d cells, want 12", n)
	}
}

func TestRenderer_PrimedExactOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	blank := newCanvas(t, 3, 2)
	r.Prime(blank)

	frame := blank.Clone()
	frame.SetCell('a', orrery.Red, 1, 0)
	frame.SetCell('b', orrery.Red, 2, 1)

	n, err := r.Render(frame)
	if err != nil {
		t.Fatal(err)
	}
	want := "\x1b[1;2H\x1b[31ma\x1b[2;3Hb\x1b[0m"
	if n != 2 || buf.String() != want {
		t.Errorf("got %d cells %q, want 2 cells %q", n, buf.String(), want)
	}
}

func TestRenderer_ColorChangeAloneIsDirty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	a := newCanvas(t, 5, 1)
	a.SetCell('x', orrery.Blue, 0, 0)
	r.Prime(a)

	b := a.Clone()
	b.SetCell('x', orrery.Cyan, 0, 0)

	n, _ := r.Render(b)
	if n != 1 || !strings.Contains(buf.String(), "\x1b[36mx") {
		t.Errorf("got %d cells %q", n, buf.String())
	}
}

func TestRenderer_OneBodyMoveWritesTwoCells(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	background := newCanvas(t, 80, 24)
	for col := 0; col < 80; col++ {
		background.SetCell('.', orrery.Gray, col, 12)
	}

	before := background.Clone()
	before.SetCell('E', orrery.Blue, 50, 12)
	r.Prime(before)

	after := background.Clone()
	after.SetCell('E', orrery.Blue, 51, 12)

	n, err := r.Render(after)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("wrote %d cells, want 2", n)
	}
	if !strings.Contains(buf.String(), "\x1b[13;51H\x1b[90m.") || !strings.Contains(buf.String(), "\x1b[13;52H\x1b[34mE") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRenderer_ResizeForcesFullRedraw(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Prime(newCanvas(t, 4, 4))

	n, _ := r.Render(newCanvas(t, 2, 2))
	if n != 4 {
		t.Errorf("wrote %d cells after resize, want 4", n)
	}
}

func TestRenderer_InvalidateAndFull(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	frame := newCanvas(t, 3, 3)
	r.Prime(frame)

	if n, _ := r.Full(frame); n != 9 {
		t.Errorf("Full wrote %d cells, want 9", n)
	}
	if n, _ := r.Render(frame); n != 0 {
		t.Errorf("Render after Full wrote %d cells, want 0", n)
	}
	if r.BytesWritten() != int64(buf.Len()) {
		t.Errorf("BytesWritten() = %d, want %d", r.BytesWritten(), buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderer_WriteErrorSurfaces(t *testing.T) {
	r := NewRenderer(failingWriter{})
	if _, err := r.Render(newCanvas(t, 2, 2)); err == nil {
		t.Error("expected write error")
	}
}

func TestColorSequence(t *testing.T) {
	tests := map[orrery.Color]string{
		orrery.Reset:  "\x1b[0m",
		orrery.Yellow: "\x1b[33m",
		orrery.Blue:   "\x1b[34m",
		orrery.Red:    "\x1b[31m",
		orrery.Gray:   "\x1b[90m",
		orrery.Orange: "\x1b[38;5;208m",
		orrery.Cyan:   "\x1b[36m",
	}
	for c, want := range tests {
		if got := string(ColorSequence(c)); got != want {
			t.Errorf("ColorSequence(%v) = %q, want %q", c, got, want)
		}
	}
	if got := string(ColorSequence(orrery.Color(200))); got != "\x1b[0m" {
		t.Errorf("unknown color should reset, got %q", got)
	}
}

func newCanvas(t *testing.T, w, h int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(w, h, 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
