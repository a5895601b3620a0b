package sdf

import (
	"math"

	"github.com/winksaville/cubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// ExtrudeFunc maps r3.Vec to V2 - the point used to evaluate the SDF2.
type ExtrudeFunc func(p r3.Vec) r2.Vec

// NormalExtrude returns an extrusion function.
func NormalExtrude(p r3.Vec) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// Translate3d returns a 3d translation matrix.
func Translate3d(v r3.Vec) d3.Transform {
	return d3.Translation(v)
}

// RotateXYZ returns the rotation that turns by x, then y, then z degrees
// about the respective axes.
func RotateXYZ(x, y, z float64) d3.Transform {
	var m d3.Transform
	if x != 0 {
		m = d3.Rotation(DtoR(x), r3.Vec{X: 1})
	}
	if y != 0 {
		m = d3.Rotation(DtoR(y), r3.Vec{Y: 1}).Mul(m)
	}
	if z != 0 {
		m = d3.Rotation(DtoR(z), r3.Vec{Z: 1}).Mul(m)
	}
	return m
}
