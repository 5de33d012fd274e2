// Package scene composes the background, the animated bodies and the
// frame-paced loop that pushes frames to a terminal.
package scene

import (
	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/orrery"
)

// Options are the rendering knobs taken from a config.Config.
type Options struct {
	Span       float64
	FontAspect float64
	Speed      float64
	FPS        int
	Mode       orrery.RenderMode
	ShowSun    bool
	ShowOrbits bool
	ShowStatus bool
}

func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Span:       cfg.Span,
		FontAspect: cfg.FontAspect,
		Speed:      cfg.Speed,
		FPS:        cfg.FPS,
		Mode:       cfg.RenderMode(),
		ShowSun:    cfg.ShowSun,
		ShowOrbits: cfg.ShowOrbits,
		ShowStatus: cfg.ShowStatus,
	}
}

// Scene owns the static background, the animated bodies and the frame
// they are composed into.
type Scene struct {
	opts       Options
	bodies     []orrery.Body
	animator   *orbit.Animator
	background *canvas.Canvas
	frame      *canvas.Canvas
}

// New validates cfg and lays the scene out on a width x height grid.
func New(cfg *config.Config, width, height int) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return NewFromBodies(bodies, OptionsFrom(cfg), width, height)
}

// NewFromBodies builds a scene without going through a config file.
func NewFromBodies(bodies []orrery.Body, opts Options, width, height int) (*Scene, error) {
	animator, err := orbit.NewAnimator(bodies)
	if err != nil {
		return nil, err
	}
	s := &Scene{opts: opts, bodies: bodies, animator: animator}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize rebuilds the projection and background for a new grid. Body
// angles are kept.
func (s *Scene) Resize(width, height int) error {
	proj, err := canvas.NewProjection(width, height, s.opts.Span, s.opts.FontAspect)
	if err != nil {
		return err
	}

	bg := canvas.FromProjection(proj)
	if s.opts.ShowOrbits {
		for _, b := range s.bodies {
			orbit.PlotRing(bg, b.Radius)
		}
	}
	if s.opts.ShowSun {
		for _, b := range s.bodies {
			if b.Radius == 0 {
				bg.SetPosition(b.Glyph, b.Color, 0, 0)
			}
		}
	}

	s.background = bg
	s.frame = bg.Clone()
	return nil
}

// Step advances the bodies by dt time units at the configured speed.
func (s *Scene) Step(dt float64) {
	s.animator.Advance(dt, s.opts.Speed)
}

// Frame composes the current frame: background, then orbiting bodies in
// catalog order. The returned canvas is reused by the next call.
func (s *Scene) Frame() *canvas.Canvas {
	s.frame.CopyFrom(s.background)
	for _, o := range s.animator.Orbiters() {
		if o.Body.Radius == 0 {
			continue
		}
		p := o.Position()
		s.frame.SetPosition(o.Body.Glyph, o.Body.Color, p.X, p.Y)
	}
	return s.frame
}

func (s *Scene) Width() int                 { return s.background.Width() }
func (s *Scene) Height() int                { return s.background.Height() }
func (s *Scene) Options() Options           { return s.opts }
func (s *Scene) Background() *canvas.Canvas { return s.background }
func (s *Scene) Animator() *orbit.Animator  { return s.animator }
func (s *Scene) Bodies() []orrery.Body      { return s.bodies }

func (s *Scene) Speed() float64         { return s.opts.Speed }
func (s *Scene) SetSpeed(speed float64) { s.opts.Speed = speed }

// Reset returns every body to its phase.
func (s *Scene) Reset() { s.animator.Reset() }
