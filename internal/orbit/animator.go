package orbit

import (
	"fmt"
	"strings"

	"github.com/san-kum/orrery/internal/orrery"
)

// AngularVelocity returns 2π/period, or zero for a non-positive period.
func AngularVelocity(period float64) float64 {
	if !(period > 0) {
		return 0
	}
	return twoPi / period
}

// AngleAt returns the angle of b after t time units at speed multiplier m.
// It is the closed form of repeatedly calling Advance.
func AngleAt(b orrery.Body, t, m float64) float64 {
	if b.Radius == 0 {
		return NormalizeAngle(b.Phase)
	}
	return NormalizeAngle(b.Phase + AngularVelocity(b.Period)*t*m)
}

// Orbiter is a body together with its current angle.
type Orbiter struct {
	Body  orrery.Body
	Angle float64
}

// Position returns the orbiter's current world position.
func (o Orbiter) Position() Point {
	return Position(o.Body.Radius, o.Angle)
}

// Animator advances a fixed set of bodies. It is not safe for concurrent use.
type Animator struct {
	orbiters []Orbiter
	elapsed  float64
}

// NewAnimator validates every body and places it at its phase.
func NewAnimator(bodies []orrery.Body) (*Animator, error) {
	a := &Animator{orbiters: make([]Orbiter, len(bodies))}
	for i, b := range bodies {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		a.orbiters[i] = Orbiter{Body: b, Angle: NormalizeAngle(b.Phase)}
	}
	return a, nil
}

// Advance moves every body by dt time units at multiplier m.
func (a *Animator) Advance(dt, m float64) {
	for i := range a.orbiters {
		o := &a.orbiters[i]
		if o.Body.Radius == 0 {
			continue
		}
		o.Angle = NormalizeAngle(o.Angle + AngularVelocity(o.Body.Period)*dt*m)
	}
	a.elapsed += dt * m
}

// Reset returns every body to its phase.
func (a *Animator) Reset() {
	for i := range a.orbiters {
		a.orbiters[i].Angle = NormalizeAngle(a.orbiters[i].Body.Phase)
	}
	a.elapsed = 0
}

// Elapsed is the simulated time since construction or the last Reset.
func (a *Animator) Elapsed() float64 { return a.elapsed }

// Orbiters returns the live slice in catalog order.
func (a *Animator) Orbiters() []Orbiter { return a.orbiters }

// Lookup finds an orbiter by body name, ignoring case.
func (a *Animator) Lookup(name string) (Orbiter, error) {
	for _, o := range a.orbiters {
		if strings.EqualFold(o.Body.Name, name) {
			return o, nil
		}
	}
	return Orbiter{}, fmt.Errorf("%w: %s", orrery.ErrUnknownBody, name)
}
