package part

import (
	"fmt"
	"math"

	"github.com/winksaville/cubes/csg"
	"gonum.org/v1/gonum/spatial/r3"
)

// LabelText formats diameter scaled by scale, truncated towards zero and
// right aligned in width columns.
func LabelText(diameter, scale float64, width int) string {
	v := diameter * scale
	// Sweep diameters accumulate representation error, 0.003 may scale
	// to 2.9999999999999996.
	if r := math.Round(v); math.Abs(v-r) < 1e-9*math.Max(1, math.Abs(v)) {
		v = r
	}
	return fmt.Sprintf("%*d", width, int64(v))
}

// Label returns the extruded label for a bore of diameter on a cube of
// side L. The label stands on the y=0 face, centred on x and z, with its
// depth running along -y and SinkFraction of it buried in the cube.
func (b *Builder) Label(diameter, L float64) (csg.Solid, error) {
	e := b.Engine
	p := b.Policy
	f, err := b.font()
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}
	s := LabelText(diameter, p.LabelScale, p.LabelWidth)
	flat, err := e.Text(f, s, p.LabelSize)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", s, err)
	}
	bb, err := e.Bounds(flat)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", s, err)
	}
	// Padding spaces have no outline, move the ink to the origin.
	flat, err = e.Translate(flat, r3.Vec{X: -bb.Min.X, Y: -bb.Min.Y})
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", s, err)
	}
	ext := bb.Extents()
	b.logger().Info("label", "text", s, "ex", ext.X, "ey", ext.Y)

	label, err := e.Extrude(flat, p.LabelDepth)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", s, err)
	}
	// Text x stays on x, text y goes up z and depth goes out along -y.
	if label, err = e.Rotate(label, 90, 0, 0); err != nil {
		return nil, fmt.Errorf("label %q: %w", s, err)
	}
	return e.Translate(label, r3.Vec{
		X: L/2 - ext.X/2,
		Y: p.SinkFraction * p.LabelDepth,
		Z: L/2 - ext.Y/2,
	})
}
