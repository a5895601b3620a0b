package part

import (
	"fmt"

	"github.com/winksaville/cubes/helpers/matter"
)

// BoreOrder selects when the bore is carved relative to the label union.
type BoreOrder int

const (
	// LabelThenBore unions the label first and carves the bore last.
	LabelThenBore BoreOrder = iota
	// BoreThenLabel carves the bore first and unions the label last.
	BoreThenLabel
)

func (o BoreOrder) String() string {
	switch o {
	case LabelThenBore:
		return "label-first"
	case BoreThenLabel:
		return "bore-first"
	}
	return fmt.Sprintf("BoreOrder(%d)", int(o))
}

// ParseBoreOrder parses the names returned by BoreOrder.String.
func ParseBoreOrder(s string) (BoreOrder, error) {
	switch s {
	case "label-first", "":
		return LabelThenBore, nil
	case "bore-first":
		return BoreThenLabel, nil
	}
	return 0, fmt.Errorf("%w: unknown order %q, want label-first or bore-first", ErrInvalidSpec, s)
}

// Policy holds the construction heuristics of a Builder.
type Policy struct {
	// SinkFraction of LabelDepth the label is embedded into the face.
	// Zero places the label flush on the face.
	SinkFraction float64
	Order        BoreOrder
	// LabelDepth is the extrusion depth of the label.
	LabelDepth float64
	// LabelSize is the nominal text size; one em.
	LabelSize float64
	// LabelScale converts a diameter into label units.
	LabelScale float64
	// LabelWidth is the minimum width of the label text, space padded.
	LabelWidth int
	// Material, when set, enlarges the modeled bore to compensate for
	// printing. Names and labels keep the nominal diameter.
	Material matter.Material
}

// DefaultPolicy returns the sunk label, label-first policy.
// Diameters in metres are labelled in millimetres.
func DefaultPolicy() Policy {
	return Policy{
		SinkFraction: 0.1,
		Order:        LabelThenBore,
		LabelDepth:   0.1,
		LabelSize:    4.5,
		LabelScale:   1000,
		LabelWidth:   3,
	}
}
