package metrics

import "time"

// FrameStats accumulates per-frame renderer output.
type FrameStats struct {
	Frames    int
	Cells     int
	LastCells int
	MaxCells  int
	Bytes     int64

	fps       float64
	lastFrame time.Time
	smoothing float64
}

func NewFrameStats() *FrameStats {
	return &FrameStats{smoothing: 0.9}
}

// Observe records one emitted frame that wrote cells cells at time now.
func (s *FrameStats) Observe(cells int, bytes int64, now time.Time) {
	if !s.lastFrame.IsZero() {
		if dt := now.Sub(s.lastFrame).Seconds(); dt > 0 {
			inst := 1 / dt
			if s.fps == 0 {
				s.fps = inst
			} else {
				s.fps = s.smoothing*s.fps + (1-s.smoothing)*inst
			}
		}
	}
	s.lastFrame = now

	s.Frames++
	s.Cells += cells
	s.Bytes += bytes
	s.LastCells = cells
	if cells > s.MaxCells {
		s.MaxCells = cells
	}
}

// FPS is an exponentially smoothed frame rate.
func (s *FrameStats) FPS() float64 { return s.fps }

// MeanCells is the average number of cells written per frame.
func (s *FrameStats) MeanCells() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Cells) / float64(s.Frames)
}

func (s *FrameStats) Reset() {
	*s = FrameStats{smoothing: s.smoothing}
}
