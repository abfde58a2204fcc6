// Package section computes the cross-section properties a frame element
// needs: area, second moments about the local axes and torsion constant.
//
// Local axes follow the beam convention: x runs along the member, y is the
// horizontal section axis and z the vertical one. Iy is the second moment
// about y (bending in the x-z plane), Iz the one about z.
package section

import "fmt"

// Properties holds the stiffness-relevant properties of a section.
type Properties struct {
	Area float64 // A
	Iy   float64 // second moment about local y
	Iz   float64 // second moment about local z
	J    float64 // Saint-Venant torsion constant
}

// Lerp returns the linear interpolation between p and q at t in [0, 1].
func (p Properties) Lerp(q Properties, t float64) Properties {
	return Properties{
		Area: p.Area + (q.Area-p.Area)*t,
		Iy:   p.Iy + (q.Iy-p.Iy)*t,
		Iz:   p.Iz + (q.Iz-p.Iz)*t,
		J:    p.J + (q.J-p.J)*t,
	}
}

// Section is a cross-section whose properties may vary along the member.
// t is the relative position along the member, from 0 at the start to 1
// at the end. Uniform sections ignore it.
type Section interface {
	At(t float64) Properties
	Uniform() bool
	Kind() string
	Validate() error
}

// Point represents a 2D coordinate in the section plane
type Point struct {
	X float64 `json:"x" yaml:"x"` // along local y
	Y float64 `json:"y" yaml:"y"` // along local z
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func positive(kind string, values map[string]float64) error {
	for _, name := range []string{"b", "h", "d", "area", "iy", "iz", "j"} {
		if v, ok := values[name]; ok && !(v > 0) {
			return invalid("%s section: %s must be positive, got %g", kind, name, v)
		}
	}
	return nil
}
