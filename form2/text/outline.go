package text

import (
	"github.com/winksaville/cubes/form2"
	"github.com/winksaville/cubes/sdf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// curveSteps is the number of line segments each quadratic or cubic
// bezier is flattened into.
const curveSteps = 8

// Outline returns the closed contours of s laid out on a baseline at y=0,
// starting at x=0, with y pointing up. One em measures size model units.
func Outline(f *Font, s string, size float64) ([][]r2.Vec, error) {
	var buf sfnt.Buffer
	scale := size / fixedToFloat64(f.upem)
	var (
		contours [][]r2.Vec
		pen      float64
	)
	for _, r := range s {
		segs, adv, err := f.glyph(&buf, r)
		if err != nil {
			return nil, err
		}
		pt := func(p fixed.Point26_6) r2.Vec {
			return r2.Vec{
				X: (pen + fixedToFloat64(p.X)) * scale,
				Y: -fixedToFloat64(p.Y) * scale,
			}
		}
		var cur []r2.Vec
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				contours = appendContour(contours, cur)
				cur = []r2.Vec{pt(seg.Args[0])}
			case sfnt.SegmentOpLineTo:
				cur = append(cur, pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				cur = quadTo(cur, pt(seg.Args[0]), pt(seg.Args[1]))
			case sfnt.SegmentOpCubeTo:
				cur = cubeTo(cur, pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
			}
		}
		contours = appendContour(contours, cur)
		pen += adv
	}
	if len(contours) == 0 {
		return nil, ErrNoOutline
	}
	return contours, nil
}

// SDF returns the planar signed distance function of s rendered with f.
// See Outline for the layout.
func SDF(f *Font, s string, size float64) (sdf.SDF2, error) {
	contours, err := Outline(f, s, size)
	if err != nil {
		return nil, err
	}
	return form2.Contours(contours)
}

// appendContour adds c to contours if it encloses an area.
func appendContour(contours [][]r2.Vec, c []r2.Vec) [][]r2.Vec {
	if len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	if len(c) < 3 {
		return contours
	}
	return append(contours, c)
}

func quadTo(c []r2.Vec, ctrl, to r2.Vec) []r2.Vec {
	from := c[len(c)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		c = append(c, r2.Add(r2.Add(r2.Scale(u*u, from), r2.Scale(2*u*t, ctrl)), r2.Scale(t*t, to)))
	}
	return c
}

func cubeTo(c []r2.Vec, ctrl0, ctrl1, to r2.Vec) []r2.Vec {
	from := c[len(c)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		p := r2.Scale(u*u*u, from)
		p = r2.Add(p, r2.Scale(3*u*u*t, ctrl0))
		p = r2.Add(p, r2.Scale(3*u*t*t, ctrl1))
		c = append(c, r2.Add(p, r2.Scale(t*t*t, to)))
	}
	return c
}
