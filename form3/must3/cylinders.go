package must3

import (
	"math"

	"github.com/winksaville/cubes/form2/must2"
	"github.com/winksaville/cubes/internal/d3"
	"github.com/winksaville/cubes/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// box is a 3d box.
type box struct {
	size  r3.Vec
	round float64
	bb    r3.Box
}

// Box return an SDF3 for a 3d box centered on the origin
// (rounded corners with round > 0).
func Box(size r3.Vec, round float64) sdf.SDF3 {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("size <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	size = r3.Scale(0.5, size)
	if round > math.Min(size.X, math.Min(size.Y, size.Z)) {
		panic("round larger than box")
	}
	return &box{
		size:  r3.Sub(size, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, size), Max: size},
	}
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(p), s.size)
	outside := r3.Norm(d3.MaxElem(q, r3.Vec{}))
	inside := math.Min(d3.Max(q), 0)
	return outside + inside - s.round
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return s.bb
}

// Prism returns a regular n sided prism approximating a cylinder of the given
// radius. It is centered on the origin with its axis along z and its
// vertices on the circle of the given radius.
func Prism(sides int, radius, height float64) sdf.SDF3 {
	if height <= 0 {
		panic("height <= 0")
	}
	return sdf.Extrude3D(must2.Polygon(must2.Nagon(sides, radius)), height)
}
