// Package orrery provides the domain primitives shared by the renderer.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Body]: one celestial object with glyph, color and orbit
//   - [Color]: enumerated foreground color tag
//   - [RenderMode]: selects between a single static frame and animation
//
// # Example
//
//	earth := orrery.Body{Name: "Earth", Glyph: 'E', Color: orrery.Blue, Radius: 10}
//	if err := earth.Validate(); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// Values in this package are plain data. Bodies are copied into the
// animator and never shared between goroutines.
package orrery
