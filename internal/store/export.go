package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/orrery"
)

type Sample struct {
	Body  string  `json:"body"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Ephemeris is a table of body positions at evenly spaced times.
type Ephemeris struct {
	Speed   float64    `json:"speed"`
	Dt      float64    `json:"dt"`
	Steps   int        `json:"steps"`
	Times   []float64  `json:"times"`
	Samples [][]Sample `json:"samples"`
}

// Record steps an Animator from its initial phases and samples every
// body after each step, starting with t=0.
func Record(bodies []orrery.Body, dt, speed float64, steps int) (*Ephemeris, error) {
	if !(dt > 0) {
		return nil, orrery.Invalid("dt", dt)
	}
	if steps < 1 {
		return nil, orrery.Invalid("steps", steps)
	}

	anim, err := orbit.NewAnimator(bodies)
	if err != nil {
		return nil, err
	}

	e := &Ephemeris{
		Speed:   speed,
		Dt:      dt,
		Steps:   steps,
		Times:   make([]float64, 0, steps+1),
		Samples: make([][]Sample, 0, steps+1),
	}
	for i := 0; i <= steps; i++ {
		if i > 0 {
			anim.Advance(dt, speed)
		}
		row := make([]Sample, 0, len(bodies))
		for _, o := range anim.Orbiters() {
			p := o.Position()
			row = append(row, Sample{Body: o.Body.Name, X: p.X, Y: p.Y, Angle: o.Angle})
		}
		e.Times = append(e.Times, anim.Elapsed())
		e.Samples = append(e.Samples, row)
	}
	return e, nil
}

func ExportJSON(path string, e *Ephemeris) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, e)
}

func WriteJSON(w io.Writer, e *Ephemeris) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e)
}

func ExportCSV(path string, e *Ephemeris) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, e)
}

// WriteCSV writes one row per body per time step.
func WriteCSV(w io.Writer, e *Ephemeris) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"time", "body", "x", "y", "angle"}); err != nil {
		return err
	}
	for i, row := range e.Samples {
		ts := strconv.FormatFloat(e.Times[i], 'f', 6, 64)
		for _, s := range row {
			record := []string{
				ts,
				s.Body,
				strconv.FormatFloat(s.X, 'f', 6, 64),
				strconv.FormatFloat(s.Y, 'f', 6, 64),
				strconv.FormatFloat(s.Angle, 'f', 6, 64),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// Write picks the encoder by format name.
func Write(w io.Writer, format string, e *Ephemeris) error {
	switch format {
	case "json":
		return WriteJSON(w, e)
	case "csv":
		return WriteCSV(w, e)
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}
