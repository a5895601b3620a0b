// Package sweep builds a series of parts whose bore diameter steps across
// a range and writes each one as a named ASCII STL artifact.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/winksaville/cubes/part"
)

// ErrInvalidSweep is wrapped by every Spec validation error.
var ErrInvalidSweep = errors.New("invalid sweep")

// Spec describes the diameters of a sweep.
type Spec struct {
	Count         int
	StartDiameter float64
	Step          float64
}

// Validate returns an error wrapping ErrInvalidSweep if s is unusable.
func (s Spec) Validate() error {
	switch {
	case s.Count < 1:
		return fmt.Errorf("%w: cube count %d must be at least 1", ErrInvalidSweep, s.Count)
	case s.StartDiameter < 0 || math.IsNaN(s.StartDiameter) || math.IsInf(s.StartDiameter, 0):
		return fmt.Errorf("%w: start diameter %g must not be negative", ErrInvalidSweep, s.StartDiameter)
	case math.IsNaN(s.Step) || math.IsInf(s.Step, 0):
		return fmt.Errorf("%w: diameter step %g is not finite", ErrInvalidSweep, s.Step)
	case s.Diameter(s.Count-1) < 0:
		return fmt.Errorf("%w: diameter of cube %d is negative", ErrInvalidSweep, s.Count-1)
	}
	return nil
}

// Diameter returns the bore diameter of sweep index i.
func (s Spec) Diameter(i int) float64 {
	return s.StartDiameter + float64(i)*s.Step
}

// Diameters returns the bore diameter of every sweep index.
func (s Spec) Diameters() []float64 {
	d := make([]float64, max(s.Count, 0))
	for i := range d {
		d[i] = s.Diameter(i)
	}
	return d
}

// Template holds the part parameters shared by every index of a sweep.
type Template struct {
	SideLength    float64
	WallThickness float64
	Segments      int
	EmitLabel     bool
}

// Part returns the part spec for a bore of the given diameter.
func (t Template) Part(diameter float64) part.Spec {
	return part.Spec{
		SideLength:    t.SideLength,
		TubeDiameter:  diameter,
		WallThickness: t.WallThickness,
		Segments:      t.Segments,
		EmitLabel:     t.EmitLabel,
	}
}

// Name returns the artifact file name of sweep index i out of count.
func Name(i, count int, p part.Spec) string {
	var idx string
	if count != 1 {
		idx = fmt.Sprintf("-%d", i)
	}
	if !p.HasBore() {
		return fmt.Sprintf("cube%s.len_side-%.3f.stl", idx, p.SideLength)
	}
	return fmt.Sprintf("cube-with-tube%s.len_side-%.3f_tube_diameter-%.3f_segments-%d.stl",
		idx, p.SideLength, p.TubeDiameter, p.Segments)
}

// SolidName returns the STL solid name for an artifact file name.
func SolidName(name string) string {
	return strings.TrimSuffix(name, ".stl")
}
