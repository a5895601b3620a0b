package render

import (
	"github.com/winksaville/cubes/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxTrianglesPerCube is the most triangles a single cube can produce:
// 6 tetrahedra with up to 2 triangles each.
const maxTrianglesPerCube = 12

// kuhn lists the six tetrahedra sharing the 0-7 diagonal of a cube whose
// corners are indexed by bit 0 = x, bit 1 = y and bit 2 = z. Every cube of
// the grid is split the same way so tetrahedra of neighbouring cubes meet
// face to face.
var kuhn = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

// sample is an evaluated grid point.
type sample struct {
	i sdf.V3i
	p r3.Vec
	d float64
}

// cubeToTriangles writes the triangles of the surface crossing a cube
// with corners c to dst and returns how many were written.
// dst must have room for maxTrianglesPerCube triangles.
func cubeToTriangles(dst []Triangle3, c *[8]sample) int {
	n := 0
	for _, tet := range kuhn {
		n += tetToTriangles(dst[n:], [4]*sample{&c[tet[0]], &c[tet[1]], &c[tet[2]], &c[tet[3]]})
	}
	return n
}

// tetToTriangles polygonises the zero level set within a tetrahedron.
// Samples with negative distance are inside.
func tetToTriangles(dst []Triangle3, t [4]*sample) int {
	var inb, outb [4]*sample
	in, out := inb[:0], outb[:0]
	for _, s := range t {
		if s.d < 0 {
			in = append(in, s)
		} else {
			out = append(out, s)
		}
	}
	var tris [2]Triangle3
	nt := 0
	switch len(in) {
	case 1:
		tris[0] = Triangle3{V: [3]r3.Vec{crossing(in[0], out[0]), crossing(in[0], out[1]), crossing(in[0], out[2])}}
		nt = 1
	case 3:
		tris[0] = Triangle3{V: [3]r3.Vec{crossing(in[0], out[0]), crossing(in[1], out[0]), crossing(in[2], out[0])}}
		nt = 1
	case 2:
		// The crossings form a quad; walk it in order and split it in two.
		a := crossing(in[0], out[0])
		b := crossing(in[0], out[1])
		c := crossing(in[1], out[1])
		d := crossing(in[1], out[0])
		tris[0] = Triangle3{V: [3]r3.Vec{a, b, c}}
		tris[1] = Triangle3{V: [3]r3.Vec{a, c, d}}
		nt = 2
	default:
		return 0
	}
	// Normals point from the inside samples toward the outside samples.
	var dir r3.Vec
	for _, s := range out {
		dir = r3.Add(dir, r3.Scale(1/float64(len(out)), s.p))
	}
	for _, s := range in {
		dir = r3.Sub(dir, r3.Scale(1/float64(len(in)), s.p))
	}
	n := 0
	for _, tri := range tris[:nt] {
		cr := tri.cross()
		if cr == (r3.Vec{}) {
			continue
		}
		if r3.Dot(cr, dir) < 0 {
			tri.V[1], tri.V[2] = tri.V[2], tri.V[1]
		}
		dst[n] = tri
		n++
	}
	return n
}

// crossing returns the point where the distance field crosses zero along
// the edge between a and b. Endpoints are ordered by grid index so the
// tetrahedra sharing an edge compute bit-identical vertices.
func crossing(a, b *sample) r3.Vec {
	if b.i.Less(a.i) {
		a, b = b, a
	}
	t := a.d / (a.d - b.d)
	return r3.Add(a.p, r3.Scale(t, r3.Sub(b.p, a.p)))
}
