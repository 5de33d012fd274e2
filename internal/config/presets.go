package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/orrery/internal/orrery"
)

// Presets build a fresh Config each call so callers may mutate the result.
var Presets = map[string]func() *Config{
	"classic": DefaultConfig,
	"inner": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = cfg.Bodies[:5]
		cfg.Span = 14
		return cfg
	},
	"outer": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = append(cfg.Bodies[:1:1], cfg.Bodies[5:]...)
		cfg.Speed = 4
		return cfg
	},
	"fast": func() *Config {
		cfg := DefaultConfig()
		cfg.Speed = 5
		cfg.ShowStatus = true
		return cfg
	},
	"static": func() *Config {
		cfg := DefaultConfig()
		cfg.Mode = orrery.Static.String()
		return cfg
	},
}

func GetPreset(name string) (*Config, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", orrery.ErrUnknownPreset, name, ListPresets())
	}
	return build(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
