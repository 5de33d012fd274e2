package orrery

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and lookup.
var (
	// ErrInvalidConfig indicates grid dimensions, span or aspect that cannot be projected.
	ErrInvalidConfig = errors.New("orrery: invalid configuration")

	// ErrUnknownColor indicates a color name with no matching tag.
	ErrUnknownColor = errors.New("orrery: unknown color")

	// ErrUnknownBody indicates a body name missing from the catalog.
	ErrUnknownBody = errors.New("orrery: unknown body")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("orrery: unknown preset")

	// ErrUnknownMode indicates a render mode name that cannot be parsed.
	ErrUnknownMode = errors.New("orrery: unknown render mode")
)

// ConfigError wraps a configuration error with the offending field.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// Invalid returns a ConfigError wrapping ErrInvalidConfig.
func Invalid(field string, value any) error {
	return &ConfigError{Field: field, Value: value, Wrapped: ErrInvalidConfig}
}
