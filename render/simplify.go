package render

import (
	"errors"
	"io"

	"github.com/fogleman/simplify"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinSimplified is the fewest triangles Simplify reduces a mesh to.
const MinSimplified = 500

// Simplify reads every triangle of r and returns a Renderer over the mesh
// decimated by quadric edge collapse to about factor of its triangle count.
// Coplanar facets collapse first so flat faces shrink to a few triangles.
// A factor of 1 or more, or a mesh of at most MinSimplified triangles,
// returns the mesh unchanged.
func Simplify(r Renderer, factor float64) (Renderer, error) {
	if !(factor > 0) {
		return nil, errors.New("simplify factor must be positive")
	}
	model, err := RenderAll(r)
	if err != nil {
		return nil, err
	}
	if n := float64(len(model)); n*factor < MinSimplified {
		factor = MinSimplified / n
	}
	if factor >= 1 {
		return &sliceRenderer{tris: model}, nil
	}
	in := make([]*simplify.Triangle, len(model))
	for i, t := range model {
		in[i] = &simplify.Triangle{
			V1: simplify.Vector(t.V[0]),
			V2: simplify.Vector(t.V[1]),
			V3: simplify.Vector(t.V[2]),
		}
	}
	mesh := simplify.Simplify(simplify.NewMesh(in), factor)
	out := make([]Triangle3, 0, len(mesh.Triangles))
	for _, t := range mesh.Triangles {
		tri := Triangle3{V: [3]r3.Vec{r3.Vec(t.V1), r3.Vec(t.V2), r3.Vec(t.V3)}}
		if tri.cross() == (r3.Vec{}) {
			continue
		}
		out = append(out, tri)
	}
	return &sliceRenderer{tris: out}, nil
}

// sliceRenderer serves triangles from memory.
type sliceRenderer struct {
	tris []Triangle3
}

func (s *sliceRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if len(s.tris) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, s.tris)
	s.tris = s.tris[n:]
	return n, nil
}
