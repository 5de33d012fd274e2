package orrery

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Color is a terminal foreground color tag.
type Color uint8

const (
	Reset Color = iota
	Yellow
	Blue
	Red
	Gray
	Orange
	Cyan
)

var colorNames = [...]string{
	Reset:  "reset",
	Yellow: "yellow",
	Blue:   "blue",
	Red:    "red",
	Gray:   "gray",
	Orange: "orange",
	Cyan:   "cyan",
}

// Colors lists every tag in declaration order.
var Colors = []Color{Reset, Yellow, Blue, Red, Gray, Orange, Cyan}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor maps a case-insensitive name to its tag. "grey" and "default"
// are accepted as aliases.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "grey":
		return Gray, nil
	case "default", "":
		return Reset, nil
	}
	for _, c := range Colors {
		if c.String() == n {
			return c, nil
		}
	}
	return Reset, &ConfigError{Field: "color", Value: name, Wrapped: ErrUnknownColor}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RenderMode selects whether the animator stage runs.
type RenderMode uint8

const (
	Animated RenderMode = iota
	Static
)

func (m RenderMode) String() string {
	switch m {
	case Static:
		return "static"
	default:
		return "animated"
	}
}

func ParseRenderMode(name string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "animated", "animate":
		return Animated, nil
	case "static":
		return Static, nil
	}
	return Animated, &ConfigError{Field: "mode", Value: name, Wrapped: ErrUnknownMode}
}

// Body is one celestial object. The Sun is a body with zero radius.
type Body struct {
	Name   string
	Glyph  rune
	Color  Color
	Radius float64 // world units
	Period float64 // time units per revolution
	Phase  float64 // initial angle, radians
}

// Validate reports whether the body can be placed and animated.
func (b Body) Validate() error {
	if b.Glyph == 0 || b.Glyph == utf8.RuneError {
		return Invalid(b.Name+".glyph", b.Glyph)
	}
	if b.Radius < 0 || math.IsNaN(b.Radius) || math.IsInf(b.Radius, 0) {
		return Invalid(b.Name+".radius", b.Radius)
	}
	if b.Radius > 0 && !(b.Period > 0) {
		return Invalid(b.Name+".period", b.Period)
	}
	return nil
}

// KeplerPeriod returns radius^1.5, the default period for a body that does
// not configure one.
func KeplerPeriod(radius float64) float64 {
	return math.Pow(radius, 1.5)
}
