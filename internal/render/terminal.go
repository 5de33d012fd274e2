package render

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Default grid used when the terminal size cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// KeySource delivers keyboard input one byte at a time.
type KeySource interface {
	// Poll returns a pending byte without blocking.
	Poll() (byte, bool)
	// Wait blocks until a byte arrives or ctx is done; ok is false once
	// input is exhausted or on cancellation.
	Wait(ctx context.Context) (byte, bool)
	Close() error
}

// Terminal is a scoped handle on the controlling terminal. Open acquires
// it (hidden cursor, cleared screen, raw input when stdin is a TTY) and
// Close releases it.
type Terminal struct {
	out    io.Writer
	outFd  int
	inFd   int
	keys   KeySource
	raw    *term.State
	closed bool
}

// Open prepares in and out for rendering.
func Open(in, out *os.File) (*Terminal, error) {
	t := &Terminal{out: out, outFd: int(out.Fd()), inFd: int(in.Fd())}

	if term.IsTerminal(t.inFd) {
		old, err := term.MakeRaw(t.inFd)
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		t.raw = old
	}
	t.keys = newKeySource(in)

	if err := t.begin(); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// NewTerminal builds a handle over an arbitrary writer and key source.
// The size is always the default grid.
func NewTerminal(out io.Writer, keys KeySource) (*Terminal, error) {
	t := &Terminal{out: out, outFd: -1, inFd: -1, keys: keys}
	if err := t.begin(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminal) begin() error {
	if _, err := t.out.Write(csiClear); err != nil {
		return err
	}
	_, err := t.out.Write(csiCursorHide)
	return err
}

// Writer is where frames for this terminal go.
func (t *Terminal) Writer() io.Writer { return t.out }

// Size returns the grid in cells, falling back to 80x24.
func (t *Terminal) Size() (width, height int) {
	if t.outFd < 0 {
		return DefaultWidth, DefaultHeight
	}
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// ShouldStop drains pending input without blocking and reports whether a
// quit key (Enter, q, Ctrl-C) was among it.
func (t *Terminal) ShouldStop() bool {
	stop := false
	for {
		b, ok := t.keys.Poll()
		if !ok {
			return stop
		}
		if IsQuitKey(b) {
			stop = true
		}
	}
}

// WaitKey blocks for one key press, end of input, or cancellation.
func (t *Terminal) WaitKey(ctx context.Context) {
	t.keys.Wait(ctx)
}

// Close shows the cursor, clears the screen and restores the input mode.
// It is safe to call more than once.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for _, seq := range [][]byte{csiReset, csiCursorShow, csiClear} {
		if _, err := t.out.Write(seq); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.raw != nil {
		if err := term.Restore(t.inFd, t.raw); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.keys != nil {
		t.keys.Close()
	}
	return firstErr
}

// IsQuitKey reports whether b ends the animation.
func IsQuitKey(b byte) bool {
	switch b {
	case '\r', '\n', 'q', 'Q', 0x03:
		return true
	}
	return false
}
