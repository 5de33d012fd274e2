package scene

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/render"
)

// Display is the terminal as seen by the loop.
type Display interface {
	Size() (width, height int)
	ShouldStop() bool
	WaitKey(ctx context.Context)
}

// Clock abstracts wall time so the loop can be driven in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// WallClock is the real clock.
var WallClock Clock = wallClock{}

// Loop drives a Scene onto a Display.
type Loop struct {
	Scene    *Scene
	Display  Display
	Renderer *render.Renderer
	Clock    Clock
	Stats    *metrics.FrameStats
	Log      *log.Logger
	// Metrics is optional.
	Metrics *metrics.Collector
}

// Run renders until the display asks to stop or ctx is done. Only render
// errors are returned; stopping is not an error.
func (l *Loop) Run(ctx context.Context) error {
	if l.Clock == nil {
		l.Clock = WallClock
	}
	if l.Stats == nil {
		l.Stats = metrics.NewFrameStats()
	}
	if l.Log == nil {
		l.Log = log.New(io.Discard, "", 0)
	}

	// the terminal was just cleared
	l.Renderer.Prime(canvas.FromProjection(l.Scene.Background().Projection()))

	opts := l.Scene.Options()
	l.Log.Printf("start mode=%s grid=%dx%d bodies=%d fps=%d speed=%.2f",
		opts.Mode, l.Scene.Width(), l.Scene.Height(), len(l.Scene.Bodies()), opts.FPS, opts.Speed)

	var err error
	if opts.Mode == orrery.Static {
		err = l.runStatic(ctx)
	} else {
		err = l.runAnimated(ctx)
	}

	l.Log.Printf("stop frames=%d cells=%d mean=%.1f max=%d bytes=%d err=%v",
		l.Stats.Frames, l.Stats.Cells, l.Stats.MeanCells(), l.Stats.MaxCells, l.Stats.Bytes, err)
	return err
}

// runStatic draws every cell once and waits for a key or cancellation.
func (l *Loop) runStatic(ctx context.Context) error {
	if err := l.emit(l.Clock.Now(), l.Renderer.Full); err != nil {
		return err
	}
	l.Display.WaitKey(ctx)
	return nil
}

func (l *Loop) runAnimated(ctx context.Context) error {
	fps := l.Scene.Options().FPS
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	poll := interval / 4
	if poll < time.Millisecond {
		poll = time.Millisecond
	}

	last := l.Clock.Now()
	var lastFrame time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if l.Display.ShouldStop() {
			return nil
		}

		now := l.Clock.Now()
		if wait := interval - now.Sub(lastFrame); !lastFrame.IsZero() && wait > 0 {
			if wait > poll {
				wait = poll
			}
			l.Clock.Sleep(wait)
			continue
		}

		if w, h := l.Display.Size(); w != l.Scene.Width() || h != l.Scene.Height() {
			if err := l.Scene.Resize(w, h); err != nil {
				return err
			}
			l.Renderer.Invalidate()
			l.Log.Printf("resize grid=%dx%d", w, h)
		}

		l.Scene.Step(now.Sub(last).Seconds())
		last = now

		if err := l.emit(now, l.Renderer.Render); err != nil {
			return err
		}
		lastFrame = now
	}
}

func (l *Loop) emit(now time.Time, draw func(*canvas.Canvas) (int, error)) error {
	frame := l.Scene.Frame()
	if l.Scene.Options().ShowStatus {
		l.drawStatus(frame)
	}

	before := l.Renderer.BytesWritten()
	n, err := draw(frame)
	if err != nil {
		return fmt.Errorf("render frame %d: %w", l.Stats.Frames, err)
	}
	written := l.Renderer.BytesWritten() - before
	l.Stats.Observe(n, written, now)
	if l.Metrics != nil {
		l.Metrics.ObserveFrame(n, written, l.Stats.FPS())
	}
	return nil
}

func (l *Loop) drawStatus(frame *canvas.Canvas) {
	status := fmt.Sprintf(" t=%.1f  speed=%.2gx  fps=%.0f  [q/enter to quit] ",
		l.Scene.Animator().Elapsed(), l.Scene.Speed(), l.Stats.FPS())
	frame.DrawText(0, frame.Height()-1, status, orrery.Gray)
}
