// Package part assembles bore-through gauge cubes: a cube, an optional
// cylindrical bore along z and an optional diameter label on the y=0 face.
package part

import (
	"errors"
	"fmt"
	"math"
)

// MinSegments is the fewest facets a bore may be approximated with.
const MinSegments = 3

// ErrInvalidSpec is wrapped by every Spec validation error.
var ErrInvalidSpec = errors.New("invalid part spec")

// Spec holds the parameters of one part.
type Spec struct {
	SideLength float64
	// TubeDiameter of the bore. Zero builds a plain cube.
	TubeDiameter float64
	// WallThickness selects the double walled variant when positive.
	WallThickness float64
	// Segments is the number of facets of the bore.
	Segments  int
	EmitLabel bool
}

// HasBore reports whether the part has a bore.
func (s Spec) HasBore() bool { return s.TubeDiameter > 0 }

// Validate returns an error wrapping ErrInvalidSpec if s cannot be built.
func (s Spec) Validate() error {
	switch {
	case s.Segments < MinSegments:
		return fmt.Errorf("%w: segments %d less than %d", ErrInvalidSpec, s.Segments, MinSegments)
	case !(s.SideLength > 0) || math.IsInf(s.SideLength, 0):
		return fmt.Errorf("%w: side length %g must be positive", ErrInvalidSpec, s.SideLength)
	case s.TubeDiameter < 0 || math.IsNaN(s.TubeDiameter):
		return fmt.Errorf("%w: tube diameter %g must not be negative", ErrInvalidSpec, s.TubeDiameter)
	case s.WallThickness < 0 || math.IsNaN(s.WallThickness):
		return fmt.Errorf("%w: wall thickness %g must not be negative", ErrInvalidSpec, s.WallThickness)
	case s.TubeDiameter >= s.SideLength:
		return fmt.Errorf("%w: tube diameter %g must be less than side length %g", ErrInvalidSpec, s.TubeDiameter, s.SideLength)
	case s.HasBore() && s.TubeDiameter+s.WallThickness >= s.SideLength:
		return fmt.Errorf("%w: tube diameter %g plus wall %g must be less than side length %g",
			ErrInvalidSpec, s.TubeDiameter, s.WallThickness, s.SideLength)
	}
	return nil
}
