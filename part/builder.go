package part

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/winksaville/cubes/csg"
	"github.com/winksaville/cubes/form2/text"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder turns a Spec into a solid using Engine.
// A Builder is safe for concurrent use if its Engine is.
type Builder struct {
	Engine csg.Engine
	// Font used for labels. Nil selects text.Default.
	Font   *text.Font
	Policy Policy
	// Logger for diagnostics. Nil selects log.Default.
	Logger *log.Logger
}

// NewBuilder returns a Builder with DefaultPolicy.
func NewBuilder(e csg.Engine) *Builder {
	return &Builder{Engine: e, Policy: DefaultPolicy()}
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

func (b *Builder) font() (*text.Font, error) {
	if b.Font != nil {
		return b.Font, nil
	}
	return text.Default()
}

// Build returns the solid described by spec. The cube occupies [0,L] on
// every axis and the bore runs along z through the centre of the z faces.
func (b *Builder) Build(spec Spec) (csg.Solid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	e := b.Engine
	L := spec.SideLength
	part, err := e.Cube(L)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	if !spec.HasBore() {
		b.logger().Debug("plain cube", "side", L)
		return part, nil
	}
	axis := r3.Vec{X: L / 2, Y: L / 2}
	if spec.WallThickness > 0 {
		outer, err := b.cylinder(spec.TubeDiameter+spec.WallThickness, L, spec.Segments, axis)
		if err != nil {
			return nil, fmt.Errorf("outer tube: %w", err)
		}
		if part, err = e.Union(part, outer); err != nil {
			return nil, fmt.Errorf("outer tube: %w", err)
		}
	}
	d := spec.TubeDiameter
	if m := b.Policy.Material; m != nil {
		d = m.InternalDimScale(d)
		b.logger().Debug("material compensated bore", "nominal", spec.TubeDiameter, "modeled", d)
	}
	bore, err := b.cylinder(d, L, spec.Segments, axis)
	if err != nil {
		return nil, fmt.Errorf("bore: %w", err)
	}
	if !spec.EmitLabel {
		return e.Difference(part, bore)
	}
	label, err := b.Label(spec.TubeDiameter, L)
	if err != nil {
		return nil, err
	}
	switch b.Policy.Order {
	case BoreThenLabel:
		if part, err = e.Difference(part, bore); err != nil {
			return nil, err
		}
		return e.Union(part, label)
	default:
		if part, err = e.Union(part, label); err != nil {
			return nil, err
		}
		return e.Difference(part, bore)
	}
}

// cylinder returns a cylinder of the given diameter standing on z=0 with
// its axis moved to axis.
func (b *Builder) cylinder(diameter, height float64, segments int, axis r3.Vec) (csg.Solid, error) {
	c, err := b.Engine.Cylinder(diameter/2, height, segments)
	if err != nil {
		return nil, err
	}
	return b.Engine.Translate(c, axis)
}
