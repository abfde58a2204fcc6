package poly

import (
	"fmt"
	"math"
	"sort"
)

// Derivative returns df/dx with the same segment boundaries.
func (f *Function) Derivative() *Function {
	d := &Function{Segments: make([]Segment, len(f.Segments))}
	for i, s := range f.Segments {
		d.Segments[i] = Segment{Start: s.Start, End: s.End, Coef: s.Coef.Derivative()}
	}
	return d
}

// Antiderivative returns the continuous primitive of f that is zero at the
// start of the domain. Segments of degree 6 cannot be integrated.
func (f *Function) Antiderivative() (*Function, error) {
	out := &Function{Segments: make([]Segment, len(f.Segments))}
	acc := 0.0
	for i, s := range f.Segments {
		if s.Coef[NumCoef-1] != 0 {
			return nil, fmt.Errorf("%w: degree 6 segment on [%g, %g) cannot be integrated",
				ErrInvalidArgument, s.Start, s.End)
		}
		var c Coef
		for k := 0; k < NumCoef-1; k++ {
			c[k+1] = s.Coef[k] / float64(k+1)
		}
		c[0] = acc - c.Eval(s.Start)
		out.Segments[i] = Segment{Start: s.Start, End: s.End, Coef: c}
		acc = c.Eval(s.End)
	}
	return out, nil
}

// Integral returns the integral of f over [lo, hi] clipped to the domain.
func (f *Function) Integral(lo, hi float64) float64 {
	total := 0.0
	for _, s := range f.Segments {
		a, b := math.Max(lo, s.Start), math.Min(hi, s.End)
		if b <= a {
			continue
		}
		var c Coef
		for k := 0; k < NumCoef-1; k++ {
			c[k+1] = s.Coef[k] / float64(k+1)
		}
		total += c.Eval(b) - c.Eval(a) + s.Coef[NumCoef-1]*(math.Pow(b, 7)-math.Pow(a, 7))/7
	}
	return total
}

// CharacteristicPoints returns the abscissas needed to draw f faithfully:
// boundaries, local extrema and zero crossings inside segments.
func (f *Function) CharacteristicPoints() []float64 {
	xs := f.Boundaries()
	for _, s := range f.Segments {
		if s.Coef.Degree() >= 2 {
			d := s.Coef.Derivative()
			xs = append(xs, signChanges(d.Eval, s.Start, s.End)...)
		}
		if s.Coef.Degree() >= 1 {
			xs = append(xs, signChanges(s.Eval, s.Start, s.End)...)
		}
	}
	sort.Float64s(xs)
	out := xs[:0]
	for _, x := range xs {
		if len(out) > 0 && Equal(out[len(out)-1], x) {
			continue
		}
		out = append(out, x)
	}
	return out
}

// signChanges samples fn on [lo, hi] and refines every bracketed sign change
// with findZero. Sampled exact zeros are kept as they are.
func signChanges(fn func(float64) float64, lo, hi float64) []float64 {
	var out []float64
	prevX, prevY := lo, fn(lo)
	for k := 1; k <= samplesPerRange; k++ {
		x := lo + (hi-lo)*float64(k)/samplesPerRange
		if k == samplesPerRange {
			x = hi
		}
		y := fn(x)
		switch {
		case prevY*y < 0:
			out = append(out, findZero(fn, prevX, x)...)
		case y == 0:
			out = append(out, x)
		}
		prevX, prevY = x, y
	}
	return out
}

// Extremum is a value of a function together with the abscissa and the
// side, as taken by Eval, it was read at.
type Extremum struct {
	X     float64
	Value float64
	Side  int
}

// Extrema returns the minimum and maximum of f. Both sides of every
// boundary are considered.
func (f *Function) Extrema() (lo, hi Extremum, ok bool) {
	if f.Empty() {
		return Extremum{}, Extremum{}, false
	}
	lo.Value, hi.Value = math.Inf(1), math.Inf(-1)
	for _, x := range f.CharacteristicPoints() {
		for _, side := range []int{-1, 1} {
			v := f.Eval(x, side)
			if math.IsNaN(v) {
				continue
			}
			if v < lo.Value {
				lo = Extremum{X: x, Value: v, Side: side}
			}
			if v > hi.Value {
				hi = Extremum{X: x, Value: v, Side: side}
			}
		}
	}
	return lo, hi, true
}
