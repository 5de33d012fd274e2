package scene

import (
	"errors"
	"testing"

	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/orrery"
)

func TestNew_DefaultCatalog(t *testing.T) {
	s, err := New(config.DefaultConfig(), 80, 24)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sun := s.Background().At(40, 12)
	if sun.Glyph != 'O' || sun.Color != orrery.Yellow {
		t.Errorf("center = %+v, want sun", sun)
	}

	frame := s.Frame()
	for _, b := range s.Bodies()[1:] {
		found := false
		for _, cell := range frame.Cells() {
			if cell.Glyph == b.Glyph && cell.Color == b.Color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s not drawn", b.Name)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Span = 0
	if _, err := New(cfg, 80, 24); !errors.Is(err, orrery.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := New(config.DefaultConfig(), 0, 24); !errors.Is(err, orrery.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero width, got %v", err)
	}
}

func TestFrame_BackgroundUntouched(t *testing.T) {
	s, _ := New(config.DefaultConfig(), 80, 24)
	before := s.Background().Clone()

	for i := 0; i < 10; i++ {
		s.Step(1)
		s.Frame()
	}

	if !s.Background().Equal(before) {
		t.Error("frame composition modified the background")
	}
}

func TestFrame_BodiesDrawnOverRings(t *testing.T) {
	body := orrery.Body{Name: "p", Glyph: 'p', Color: orrery.Red, Radius: 10, Period: 10}
	opts := Options{Span: 30, FontAspect: 0.5, Speed: 1, FPS: 30, ShowOrbits: true}
	s, err := NewFromBodies([]orrery.Body{body}, opts, 80, 24)
	if err != nil {
		t.Fatal(err)
	}

	col, row, _ := s.Background().Projection().ToScreen(10, 0)
	if got := s.Background().At(col, row); got.Glyph != orbit.RingGlyph {
		t.Fatalf("ring missing under body start, got %+v", got)
	}
	if got := s.Frame().At(col, row); got.Glyph != 'p' {
		t.Errorf("body not drawn over ring, got %+v", got)
	}
}

func TestScene_NoSunNoOrbits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ShowSun = false
	cfg.ShowOrbits = false
	s, _ := New(cfg, 80, 24)

	blank := canvas.FromProjection(s.Background().Projection())
	if !s.Background().Equal(blank) {
		t.Error("background should be blank without sun and orbits")
	}
}

func TestScene_ResizeKeepsAngles(t *testing.T) {
	s, _ := New(config.DefaultConfig(), 80, 24)
	s.Step(3)
	angle := s.Animator().Orbiters()[1].Angle

	if err := s.Resize(120, 40); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 120 || s.Height() != 40 || s.Frame().Width() != 120 {
		t.Errorf("resize not applied: %dx%d", s.Width(), s.Height())
	}
	if s.Animator().Orbiters()[1].Angle != angle {
		t.Error("resize reset body angles")
	}
}

func TestScene_SpeedAndReset(t *testing.T) {
	s, _ := New(config.DefaultConfig(), 80, 24)
	s.SetSpeed(4)
	s.Step(0.5)
	if s.Animator().Elapsed() != 2 {
		t.Errorf("elapsed = %v, want 2", s.Animator().Elapsed())
	}
	s.Reset()
	if s.Animator().Elapsed() != 0 {
		t.Error("reset did not clear elapsed time")
	}
}
