// Package matter compensates part dimensions for the behaviour of
// printing materials. Dimensions are in millimetres.
package matter

import (
	"fmt"
	"sort"
	"strings"
)

// Material adjusts nominal dimensions so printed parts come out at size.
type Material interface {
	// InternalDimScale returns the dimension to model so that an internal
	// feature, such as a hole of diameter real, prints at its nominal size.
	InternalDimScale(real float64) float64
}

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG shrinks less than PLA but strings more into holes.
	PETG = ViscousMaterial{shrink: 0.1e-2, pullShrink: .5}
)

var byName = map[string]Material{
	"pla":  PLA,
	"petg": PETG,
}

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}

// Lookup returns the material registered under name. The name "none" or
// an empty name returns a nil Material.
func Lookup(name string) (Material, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	m, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown material %q, want one of none, %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the registered material names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
