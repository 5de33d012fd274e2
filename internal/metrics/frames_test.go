package metrics

import (
	"math"
	"testing"
	"time"
)

func TestFrameStatsObserve(t *testing.T) {
	s := NewFrameStats()
	start := time.Unix(0, 0)

	s.Observe(100, 900, start)
	s.Observe(2, 30, start.Add(time.Second/30))
	s.Observe(4, 50, start.Add(2*time.Second/30))

	if s.Frames != 3 || s.Cells != 106 || s.Bytes != 980 {
		t.Errorf("totals = %d frames, %d cells, %d bytes", s.Frames, s.Cells, s.Bytes)
	}
	if s.LastCells != 4 || s.MaxCells != 100 {
		t.Errorf("last=%d max=%d", s.LastCells, s.MaxCells)
	}
	if math.Abs(s.FPS()-30) > 0.01 {
		t.Errorf("expected ~30 fps, got %f", s.FPS())
	}
	if math.Abs(s.MeanCells()-106.0/3) > 1e-9 {
		t.Errorf("unexpected mean %f", s.MeanCells())
	}
}

func TestFrameStatsReset(t *testing.T) {
	s := NewFrameStats()
	s.Observe(10, 10, time.Now())

	s.Reset()
	if s.Frames != 0 || s.FPS() != 0 || s.MeanCells() != 0 {
		t.Error("expected zero stats after reset")
	}
}
