package csg

import (
	"fmt"
	"io"

	"github.com/winksaville/cubes/form2/text"
	"github.com/winksaville/cubes/form3"
	"github.com/winksaville/cubes/internal/d3"
	"github.com/winksaville/cubes/render"
	"github.com/winksaville/cubes/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultCells is the default mesh resolution along the longest axis.
	DefaultCells = 100
	// DefaultSimplify is the default fraction of triangles kept on output.
	DefaultSimplify = 0.02
)

// SDFEngine implements Engine by composing signed distance functions and
// meshing them with an octree marching tetrahedra renderer on output.
type SDFEngine struct {
	// Cells is the number of mesh cells along the longest axis of a solid's
	// bounding box when it is written.
	Cells int
	// Simplify is the fraction of mesh triangles kept on output by quadric
	// decimation. Zero or values of 1 and above write the full mesh, which
	// is closed.
	Simplify float64
}

var _ Engine = (*SDFEngine)(nil)

// NewSDFEngine returns an SDFEngine meshing with the given resolution.
// Values below 2 select DefaultCells.
func NewSDFEngine(cells int) *SDFEngine {
	if cells < 2 {
		cells = DefaultCells
	}
	return &SDFEngine{Cells: cells}
}

type solid3 struct{ s sdf.SDF3 }

type solid2 struct{ s sdf.SDF2 }

func (e *SDFEngine) Cube(side float64) (Solid, error) {
	if side <= 0 {
		return nil, fmt.Errorf("cube side %g must be positive", side)
	}
	box, err := form3.Box(d3.Elem(side), 0)
	if err != nil {
		return nil, err
	}
	return solid3{sdf.Transform3D(box, sdf.Translate3d(d3.Elem(side/2)))}, nil
}

func (e *SDFEngine) Cylinder(radius, height float64, segments int) (Solid, error) {
	prism, err := form3.Prism(segments, radius, height)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return solid3{sdf.Transform3D(prism, sdf.Translate3d(r3.Vec{Z: height / 2}))}, nil
}

func (e *SDFEngine) Translate(s Solid, v r3.Vec) (Solid, error) {
	switch s := s.(type) {
	case solid3:
		return solid3{sdf.Transform3D(s.s, sdf.Translate3d(v))}, nil
	case solid2:
		if v.Z != 0 {
			return nil, fmt.Errorf("translate flat solid out of plane by %g: %w", v.Z, ErrFlat)
		}
		return solid2{sdf.Translate2D(s.s, r2.Vec{X: v.X, Y: v.Y})}, nil
	}
	return nil, ErrForeign
}

func (e *SDFEngine) Rotate(s Solid, xDeg, yDeg, zDeg float64) (Solid, error) {
	s3, err := as3(s)
	if err != nil {
		return nil, err
	}
	return solid3{sdf.Transform3D(s3, sdf.RotateXYZ(xDeg, yDeg, zDeg))}, nil
}

func (e *SDFEngine) Union(a, b Solid) (Solid, error) {
	a3, b3, err := as3Pair(a, b)
	if err != nil {
		return nil, err
	}
	return solid3{sdf.Union3D(a3, b3)}, nil
}

func (e *SDFEngine) Difference(a, b Solid) (Solid, error) {
	a3, b3, err := as3Pair(a, b)
	if err != nil {
		return nil, err
	}
	return solid3{sdf.Difference3D(a3, b3)}, nil
}

func (e *SDFEngine) Text(f *text.Font, s string, size float64) (Solid, error) {
	if f == nil {
		return nil, fmt.Errorf("text %q: nil font", s)
	}
	if size <= 0 {
		return nil, fmt.Errorf("text size %g must be positive", size)
	}
	t, err := text.SDF(f, s, size)
	if err != nil {
		return nil, fmt.Errorf("text %q: %w", s, err)
	}
	return solid2{t}, nil
}

func (e *SDFEngine) Extrude(s Solid, depth float64) (Solid, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("extrude depth %g must be positive", depth)
	}
	switch s := s.(type) {
	case solid2:
		ext := sdf.Extrude3D(s.s, depth)
		return solid3{sdf.Transform3D(ext, sdf.Translate3d(r3.Vec{Z: depth / 2}))}, nil
	case solid3:
		return nil, ErrNotFlat
	}
	return nil, ErrForeign
}

func (e *SDFEngine) Bounds(s Solid) (Box, error) {
	switch s := s.(type) {
	case solid3:
		bb := s.s.Bounds()
		return Box{Min: bb.Min, Max: bb.Max}, nil
	case solid2:
		bb := s.s.Bounds()
		return Box{Min: d3.FromR2(bb.Min, 0), Max: d3.FromR2(bb.Max, 0)}, nil
	}
	return Box{}, ErrForeign
}

func (e *SDFEngine) WriteASCII(w io.Writer, s Solid, name string) error {
	s3, err := as3(s)
	if err != nil {
		return err
	}
	cells := e.Cells
	if cells < 2 {
		cells = DefaultCells
	}
	var r render.Renderer = render.NewOctreeRenderer(s3, cells)
	if e.Simplify > 0 && e.Simplify < 1 {
		if r, err = render.Simplify(r, e.Simplify); err != nil {
			return err
		}
	}
	return render.WriteASCII(w, name, r)
}

// SDF3 returns the distance function behind a 3D solid.
func (e *SDFEngine) SDF3(s Solid) (sdf.SDF3, error) {
	return as3(s)
}

func as3(s Solid) (sdf.SDF3, error) {
	switch s := s.(type) {
	case solid3:
		return s.s, nil
	case solid2:
		return nil, ErrFlat
	}
	return nil, ErrForeign
}

func as3Pair(a, b Solid) (sdf.SDF3, sdf.SDF3, error) {
	a3, err := as3(a)
	if err != nil {
		return nil, nil, err
	}
	b3, err := as3(b)
	if err != nil {
		return nil, nil, err
	}
	return a3, b3, nil
}
