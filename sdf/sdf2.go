package sdf

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// MinFunc is a minimum functions for SDF blending.
type MinFunc func(a, b float64) float64

// translate2 is an SDF2 moved in the plane.
type translate2 struct {
	sdf SDF2
	v   r2.Vec
	bb  r2.Box
}

// Translate2D moves an SDF2 by v.
func Translate2D(sdf SDF2, v r2.Vec) SDF2 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	if inner, ok := sdf.(*translate2); ok {
		sdf = inner.sdf
		v = r2.Add(v, inner.v)
	}
	bb := sdf.Bounds()
	return &translate2{
		sdf: sdf,
		v:   v,
		bb:  r2.Box{Min: r2.Add(bb.Min, v), Max: r2.Add(bb.Max, v)},
	}
}

// Evaluate returns the minimum distance to a translated SDF2.
func (s *translate2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(r2.Sub(p, s.v))
}

// Bounds returns the bounding box of a translated SDF2.
func (s *translate2) Bounds() r2.Box {
	return s.bb
}
