package section

import "math"

// Rectangular is a solid B×H rectangle, B along local y and H along local z.
type Rectangular struct {
	B float64
	H float64
}

func (r Rectangular) Kind() string  { return "rectangular" }
func (r Rectangular) Uniform() bool { return true }

func (r Rectangular) Validate() error {
	return positive(r.Kind(), map[string]float64{"b": r.B, "h": r.H})
}

func (r Rectangular) At(float64) Properties {
	return Properties{
		Area: r.B * r.H,
		Iy:   r.B * r.H * r.H * r.H / 12,
		Iz:   r.H * r.B * r.B * r.B / 12,
		J:    rectangleTorsion(r.B, r.H),
	}
}

// rectangleTorsion returns the Saint-Venant constant of a solid rectangle
// using Roark's series approximation.
func rectangleTorsion(b, h float64) float64 {
	a, t := math.Max(b, h), math.Min(b, h)
	r := t / a
	return a * t * t * t * (1.0/3 - 0.21*r*(1-r*r*r*r/12))
}

// Circular is a solid circle of diameter D.
type Circular struct {
	D float64
}

func (c Circular) Kind() string  { return "circular" }
func (c Circular) Uniform() bool { return true }

func (c Circular) Validate() error {
	return positive(c.Kind(), map[string]float64{"d": c.D})
}

func (c Circular) At(float64) Properties {
	d2 := c.D * c.D
	i := math.Pi * d2 * d2 / 64
	return Properties{Area: math.Pi * d2 / 4, Iy: i, Iz: i, J: 2 * i}
}

// Generic is a section given directly by its properties.
type Generic struct {
	Props Properties
}

func (g Generic) Kind() string          { return "generic" }
func (g Generic) Uniform() bool         { return true }
func (g Generic) At(float64) Properties { return g.Props }

func (g Generic) Validate() error {
	return positive(g.Kind(), map[string]float64{
		"area": g.Props.Area, "iy": g.Props.Iy, "iz": g.Props.Iz, "j": g.Props.J,
	})
}

// Tapered varies linearly from one section at the start of the member to
// another at the end.
type Tapered struct {
	From Section
	To   Section
}

func (t Tapered) Kind() string  { return "tapered" }
func (t Tapered) Uniform() bool { return false }

func (t Tapered) Validate() error {
	if t.From == nil || t.To == nil {
		return invalid("tapered section needs both end sections")
	}
	if err := t.From.Validate(); err != nil {
		return err
	}
	return t.To.Validate()
}

func (t Tapered) At(x float64) Properties {
	x = math.Max(0, math.Min(1, x))
	return t.From.At(x).Lerp(t.To.At(x), x)
}
