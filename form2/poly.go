package form2

import (
	"github.com/winksaville/cubes/form2/must2"
	"github.com/winksaville/cubes/internal/d2"
	"github.com/winksaville/cubes/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) (s sdf.SDF2, err error) {
	defer catch(&err)
	return must2.Polygon(vertex), err
}

// Contours returns an SDF2 from several closed loops combined
// with the non-zero winding rule.
func Contours(loops [][]r2.Vec) (s sdf.SDF2, err error) {
	defer catch(&err)
	return must2.Contours(loops), err
}

// Nagon return the vertices of a N sided regular polygon.
func Nagon(n int, radius float64) (s d2.Set, err error) {
	defer catch(&err)
	return must2.Nagon(n, radius), err
}
