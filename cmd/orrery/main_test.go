package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/orrery"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"classic", "inner", "outer", "fast", "static"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing preset %s in %q", name, out)
		}
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "Neptune") {
		t.Errorf("unexpected catalog output:\n%s", out)
	}

	out, err = execute(t, "catalog", "--preset", "inner")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Neptune") || !strings.Contains(out, "Mars") {
		t.Errorf("inner preset should stop at Mars:\n%s", out)
	}
}

func TestInvalidFlagsRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero span", []string{"catalog", "--span", "0"}},
		{"negative aspect", []string{"catalog", "--aspect", "-1"}},
		{"zero fps", []string{"catalog", "--fps", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, orrery.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := execute(t, "catalog", "--preset", "pluto")
	if !errors.Is(err, orrery.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestInitConfigAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")

	if _, err := execute(t, "init-config", path); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init-config", path); err == nil {
		t.Error("expected refusal to overwrite")
	}
	if _, err := execute(t, "init-config", path, "--force"); err != nil {
		t.Errorf("force should overwrite: %v", err)
	}

	out, err := execute(t, "catalog", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Jupiter") {
		t.Errorf("loaded catalog missing Jupiter:\n%s", out)
	}
}

func TestPresetThenConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.yaml")
	if err := os.WriteFile(path, []byte("speed: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "catalog", "--preset", "inner", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Jupiter") || !strings.Contains(out, "Mars") {
		t.Errorf("config file should only override speed, inner bodies expected:\n%s", out)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--preset", "inner", "--config", path, "--span", "9"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speed != 2 || cfg.Span != 9 || len(cfg.Bodies) != 5 {
		t.Errorf("precedence broken: speed=%v span=%v bodies=%d", cfg.Speed, cfg.Span, len(cfg.Bodies))
	}
}

func TestPlotCommand(t *testing.T) {
	out, err := execute(t, "plot", "earth", "--periods", "1", "--samples", "40")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "body: Earth") || !strings.Contains(out, "x vs time") {
		t.Errorf("unexpected plot output:\n%s", out)
	}

	if _, err := execute(t, "plot", "pluto"); !errors.Is(err, orrery.ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
	if _, err := execute(t, "plot", "sun"); err == nil {
		t.Error("the sun has no orbit to plot")
	}
}

func TestExportCommands(t *testing.T) {
	dir := t.TempDir()

	snap := filepath.Join(dir, "snap.svg")
	if _, err := execute(t, "export-svg", snap, "--at", "12.5"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("snapshot is not an SVG")
	}

	trail := filepath.Join(dir, "mars.svg")
	out, err := execute(t, "export-trail", "mars", trail, "--samples", "90")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "exported 90 points") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSnapshotCommand(t *testing.T) {
	out, err := execute(t, "snapshot", "--preset", "inner", "--width", "40", "--height", "12", "--at", "3")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Errorf("line %d has %d columns", i, n)
		}
	}
	if !strings.Contains(out, "O") || strings.Contains(out, "\x1b") {
		t.Errorf("expected a plain frame with the sun:\n%s", out)
	}

	if _, err := execute(t, "snapshot", "--width", "0"); err == nil {
		t.Error("expected an error for zero width")
	}
}

func TestEphemerisCommand(t *testing.T) {
	out, err := execute(t, "ephemeris", "-", "--steps", "2", "--preset", "inner")
	if err != nil {
		t.Fatal(err)
	}
	// header + 3 rows of 5 bodies
	if got := strings.Count(out, "\n"); got != 16 {
		t.Errorf("expected 16 lines, got %d:\n%s", got, out)
	}

	path := filepath.Join(t.TempDir(), "eph.json")
	if _, err := execute(t, "ephemeris", path, "--format", "json", "--steps", "5"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "ephemeris", path, "--format", "xml"); err == nil {
		t.Error("expected unknown format error")
	}
}
