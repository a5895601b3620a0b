// Package csg defines the solid modeling capabilities used to assemble parts
// and an Engine implementation backed by signed distance functions.
package csg

import (
	"errors"
	"io"

	"github.com/winksaville/cubes/form2/text"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrFlat is returned when a 3D operation receives a flat solid.
	ErrFlat = errors.New("operation requires a 3D solid, got flat")
	// ErrNotFlat is returned when a planar operation receives a 3D solid.
	ErrNotFlat = errors.New("operation requires a flat solid")
	// ErrForeign is returned for solids created by a different Engine.
	ErrForeign = errors.New("solid was not created by this engine")
)

// Solid is an opaque handle to geometry owned by an Engine. It may only be
// passed back to the Engine that created it.
type Solid interface{}

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max r3.Vec
}

// Extents returns the size of the box along each axis.
func (b Box) Extents() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Engine is the set of solid modeling operations parts are built from.
// Angles are in degrees. Flat solids come from Text, lie in the z=0 plane
// and only support Translate within that plane, Bounds and Extrude.
type Engine interface {
	// Cube returns a cube with one corner at the origin spanning [0,side] on every axis.
	Cube(side float64) (Solid, error)
	// Cylinder returns a faceted cylinder with its axis on z from z=0 to z=height.
	Cylinder(radius, height float64, segments int) (Solid, error)
	Translate(s Solid, v r3.Vec) (Solid, error)
	// Rotate rotates about x, then y, then z.
	Rotate(s Solid, xDeg, yDeg, zDeg float64) (Solid, error)
	Union(a, b Solid) (Solid, error)
	// Difference returns a with b removed.
	Difference(a, b Solid) (Solid, error)
	// Text returns the flat outline of s, one em being size units tall.
	Text(f *text.Font, s string, size float64) (Solid, error)
	// Extrude sweeps a flat solid along +z from z=0 to z=depth.
	Extrude(s Solid, depth float64) (Solid, error)
	Bounds(s Solid) (Box, error)
	// WriteASCII writes s to w as an ASCII STL solid called name.
	WriteASCII(w io.Writer, s Solid, name string) error
}
