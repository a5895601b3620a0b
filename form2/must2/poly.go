package must2

import (
	"math"

	"github.com/winksaville/cubes/internal/d2"
	"github.com/winksaville/cubes/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

// polygon is an SDF2 made from one or more closed loops of line segments.
// Loops may nest; a point is inside when the summed winding number of
// all loops is non-zero.
type polygon struct {
	start  []r2.Vec  // segment start points
	end    []r2.Vec  // segment end points
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     r2.Box
}

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) sdf.SDF2 {
	return Contours([][]r2.Vec{vertex})
}

// Contours returns an SDF2 made from several closed loops of line segments
// using the non-zero winding rule. Glyph outlines with holes are expressed
// as an outer loop and inner loops of opposite orientation.
func Contours(loops [][]r2.Vec) sdf.SDF2 {
	if len(loops) == 0 {
		panic("no contours")
	}
	s := polygon{}
	var all d2.Set
	for _, vertex := range loops {
		n := len(vertex)
		if n < 3 {
			panic("number of vertices < 3")
		}
		for i := 0; i < n; i++ {
			a := vertex[i]
			b := vertex[(i+1)%n]
			if i == n-1 && d2.EqualWithin(a, vertex[0], tolerance) {
				// Loop was already closed by the caller.
				break
			}
			l := r2.Sub(b, a)
			length := r2.Norm(l)
			if length == 0 {
				continue
			}
			s.start = append(s.start, a)
			s.end = append(s.end, b)
			s.length = append(s.length, length)
			s.vector = append(s.vector, r2.Scale(1/length, l))
		}
		all = append(all, vertex...)
	}
	if len(s.start) < 3 {
		panic("degenerate polygon")
	}
	s.bb = r2.Box{Min: all.Min(), Max: all.Max()}
	return &s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // d^2 to polygon (>0)
	wn := 0               // winding number (inside/outside)

	for i, a := range s.start {
		b := s.end[i]
		pa := r2.Sub(p, a)
		v := s.vector[i]

		t := r2.Dot(pa, v)                        // t-parameter of projection onto line
		dn := r2.Dot(pa, r2.Vec{X: v.Y, Y: -v.X}) // normal distance from p to line

		switch {
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(r2.Sub(p, b)))
		default:
			dd = math.Min(dd, dn*dn)
		}

		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 {
				wn++ // upward crossing, p left of segment
			}
		} else if b.Y <= p.Y && dn > 0 {
			wn-- // downward crossing, p right of segment
		}
	}

	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box {
	return s.bb
}

// Nagon return the vertices of a N sided regular polygon
// inscribed in a circle of the given radius. The first vertex
// lies on the +x axis and vertices proceed counter-clockwise.
func Nagon(n int, radius float64) d2.Set {
	if n < 3 {
		panic("n-gon needs at least 3 sides")
	}
	if radius <= 0 {
		panic("n-gon radius must be positive")
	}
	v := make(d2.Set, n)
	step := 2 * math.Pi / float64(n)
	for i := range v {
		v[i] = d2.Rotate(r2.Vec{X: radius}, step*float64(i))
	}
	return v
}
