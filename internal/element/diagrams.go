package element

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/goframe/internal/poly"
)

// Component selects one diagram along a beam, in local axes.
type Component int

const (
	N  Component = iota // axial force, tension positive
	Vy                  // shear along y
	Vz                  // shear along z
	T                   // torque
	My                  // bending moment about y
	Mz                  // bending moment about z
	DX                  // displacement along x
	DY                  // displacement along y
	DZ                  // displacement along z
	RX                  // twist
	RY                  // rotation about y
	RZ                  // rotation about z
	NumComponents
)

var componentNames = [NumComponents]string{"N", "Vy", "Vz", "T", "My", "Mz", "dx", "dy", "dz", "rx", "ry", "rz"}

func (c Component) String() string {
	if c < 0 || c >= NumComponents {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent reads a component name, ignoring case.
func ParseComponent(s string) (Component, error) {
	for i, n := range componentNames {
		if strings.EqualFold(s, n) {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("unknown diagram component %q (use one of %s)", s, strings.Join(componentNames[:], ", "))
}

// planeComponents maps a bending plane to its shear, moment, deflection
// and rotation diagrams.
var planeComponents = [2][4]Component{
	planeXY: {Vy, Mz, DY, RZ},
	planeXZ: {Vz, My, DZ, RY},
}

// Diagrams holds one function per component over [0, L] of a beam.
type Diagrams [NumComponents]*poly.Function

// NewDiagrams returns zero diagrams over [0, length].
func NewDiagrams(length float64) *Diagrams {
	var d Diagrams
	for i := range d {
		d[i] = poly.Constant(0, length, 0)
	}
	return &d
}

// Add accumulates k·src into d.
func (d *Diagrams) Add(src *Diagrams, k float64) error {
	for i := range d {
		if err := d[i].AddFunction(src[i], k); err != nil {
			return fmt.Errorf("%s: %w", Component(i), err)
		}
	}
	return nil
}

// Compact merges identical neighbouring segments in every diagram.
func (d *Diagrams) Compact() error {
	for i := range d {
		if err := d[i].Compact(nil); err != nil {
			return err
		}
	}
	return nil
}

// addShifted adds the local function f, defined over a sub-element, to the
// beam function dst at offset shift.
func addShifted(dst, f *poly.Function, shift, k float64) error {
	for _, s := range f.Segments {
		if err := dst.AddPoly(s.Start, s.End, s.Coef.Scale(k), shift); err != nil {
			return err
		}
	}
	return nil
}
