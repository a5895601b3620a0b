package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer produces the triangles of a mesh. ReadTriangles follows io.Reader
// semantics: it fills dst and returns io.EOF once the mesh is exhausted.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertices are ordered counter-clockwise
// when viewed from outside the solid.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	return r3.Unit(t.cross())
}

func (t Triangle3) cross() r3.Vec {
	return r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
}
