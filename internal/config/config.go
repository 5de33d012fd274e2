package config

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/san-kum/orrery/internal/orrery"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSpan       = 30.0
	DefaultFontAspect = 0.5
	DefaultSpeed      = 1.0
	DefaultFPS        = 30
	MaxFPS            = 240
)

type Config struct {
	Span       float64      `yaml:"span"`
	FontAspect float64      `yaml:"font_aspect"`
	Speed      float64      `yaml:"speed"`
	FPS        int          `yaml:"fps"`
	Mode       string       `yaml:"mode"`
	ShowSun    bool         `yaml:"show_sun"`
	ShowOrbits bool         `yaml:"show_orbits"`
	ShowStatus bool         `yaml:"show_status"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

// BodyConfig is one row of the catalog. A zero period on an orbiting
// body means radius^1.5.
type BodyConfig struct {
	Name   string       `yaml:"name"`
	Glyph  string       `yaml:"glyph"`
	Color  orrery.Color `yaml:"color"`
	Radius float64      `yaml:"radius"`
	Period float64      `yaml:"period,omitempty"`
	Phase  float64      `yaml:"phase"`
}

// DefaultCatalog is the Sun and the eight planets.
func DefaultCatalog() []BodyConfig {
	return []BodyConfig{
		{Name: "Sun", Glyph: "O", Color: orrery.Yellow},
		{Name: "Mercury", Glyph: "M", Color: orrery.Gray, Radius: 4, Phase: 0.0},
		{Name: "Venus", Glyph: "V", Color: orrery.Yellow, Radius: 7, Phase: 1.1},
		{Name: "Earth", Glyph: "E", Color: orrery.Blue, Radius: 10, Phase: 2.3},
		{Name: "Mars", Glyph: "m", Color: orrery.Red, Radius: 13, Phase: 3.6},
		{Name: "Jupiter", Glyph: "J", Color: orrery.Orange, Radius: 17, Phase: 0.6},
		{Name: "Saturn", Glyph: "S", Color: orrery.Yellow, Radius: 21, Phase: 4.4},
		{Name: "Uranus", Glyph: "U", Color: orrery.Cyan, Radius: 25, Phase: 5.3},
		{Name: "Neptune", Glyph: "N", Color: orrery.Blue, Radius: 29, Phase: 2.9},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Span:       DefaultSpan,
		FontAspect: DefaultFontAspect,
		Speed:      DefaultSpeed,
		FPS:        DefaultFPS,
		Mode:       orrery.Animated.String(),
		ShowSun:    true,
		ShowOrbits: true,
		Bodies:     DefaultCatalog(),
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto decodes the file over base, so keys the file leaves out keep
// their base values. A bodies list in the file replaces the whole table.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that would otherwise fail later during
// projection or animation.
func (c *Config) Validate() error {
	if !(c.Span > 0) || math.IsInf(c.Span, 0) {
		return orrery.Invalid("span", c.Span)
	}
	if !(c.FontAspect > 0) || math.IsInf(c.FontAspect, 0) {
		return orrery.Invalid("font_aspect", c.FontAspect)
	}
	if math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) {
		return orrery.Invalid("speed", c.Speed)
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return orrery.Invalid("fps", c.FPS)
	}
	if _, err := orrery.ParseRenderMode(c.Mode); err != nil {
		return err
	}
	_, err := c.Catalog()
	return err
}

// RenderMode parses Mode, defaulting to animated.
func (c *Config) RenderMode() orrery.RenderMode {
	m, _ := orrery.ParseRenderMode(c.Mode)
	return m
}

// Catalog converts the body table into validated bodies.
func (c *Config) Catalog() ([]orrery.Body, error) {
	bodies := make([]orrery.Body, 0, len(c.Bodies))
	seen := make(map[string]bool, len(c.Bodies))
	for _, bc := range c.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, err
		}
		if seen[b.Name] {
			return nil, orrery.Invalid("name", b.Name)
		}
		seen[b.Name] = true
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Body converts a single row.
func (bc BodyConfig) Body() (orrery.Body, error) {
	if bc.Name == "" {
		return orrery.Body{}, orrery.Invalid("name", bc.Name)
	}
	if utf8.RuneCountInString(bc.Glyph) != 1 {
		return orrery.Body{}, orrery.Invalid(bc.Name+".glyph", bc.Glyph)
	}
	glyph, _ := utf8.DecodeRuneInString(bc.Glyph)

	period := bc.Period
	if period == 0 && bc.Radius > 0 {
		period = orrery.KeplerPeriod(bc.Radius)
	}

	b := orrery.Body{
		Name:   bc.Name,
		Glyph:  glyph,
		Color:  bc.Color,
		Radius: bc.Radius,
		Period: period,
		Phase:  bc.Phase,
	}
	return b, b.Validate()
}

// MaxRadius is the largest orbit in the catalog.
func (c *Config) MaxRadius() float64 {
	max := 0.0
	for _, b := range c.Bodies {
		if b.Radius > max {
			max = b.Radius
		}
	}
	return max
}
