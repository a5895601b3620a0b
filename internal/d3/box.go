package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// Equals test the equality of 3d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Extend returns a box enclosing two 3d boxes.
func (a Box) Extend(b Box) Box {
	return Box{
		Min: MinElem(a.Min, b.Min),
		Max: MaxElem(a.Max, b.Max),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Enlarge returns a new 3d box enlarged by a size vector.
func (a Box) Enlarge(v r3.Vec) Box {
	v = r3.Scale(0.5, v)
	return Box{Min: r3.Sub(a.Min, v), Max: r3.Add(a.Max, v)}
}

// Vertices returns the 8 corners of the box. Bit 2 of the index selects
// max X, bit 1 max Y and bit 0 max Z.
func (a Box) Vertices() Set {
	v := make(Set, 8)
	for i := range v {
		c := a.Min
		if i&4 != 0 {
			c.X = a.Max.X
		}
		if i&2 != 0 {
			c.Y = a.Max.Y
		}
		if i&1 != 0 {
			c.Z = a.Max.Z
		}
		v[i] = c
	}
	return v
}
