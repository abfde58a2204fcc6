// Package poly implements piecewise polynomial functions of one variable.
//
// A Function is an ordered, gap-free list of Segments. Each segment holds up to
// seven coefficients (degree 0..6) valid on the half-open range [Start, End).
// Every internal force, rotation and deflection diagram of a beam is stored as
// a Function, and load-case combinations are built with the same algebra.
package poly

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// NumCoef is the number of coefficients of a segment (degree 6 polynomial).
const NumCoef = 7

// Comparison tolerances for abscissas and coefficients.
const (
	RelTol = 1e-10
	AbsTol = 1e-12
)

var (
	// ErrInvalidRange is returned when a segment range has start > end.
	ErrInvalidRange = errors.New("poly: invalid range")
	// ErrInvalidArgument is returned for malformed parameters.
	ErrInvalidArgument = errors.New("poly: invalid argument")
)

// Coef holds the coefficients of c0 + c1·x + ... + c6·x⁶.
type Coef [NumCoef]float64

// Equal reports whether a and b are equal within the package tolerance.
func Equal(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, AbsTol, RelTol)
}

// Segment is one polynomial piece of a Function.
type Segment struct {
	Start float64
	End   float64
	Coef  Coef
}

// Eval evaluates the segment polynomial at x, ignoring the segment range.
func (s Segment) Eval(x float64) float64 {
	return s.Coef.Eval(x)
}

// Eval evaluates the polynomial at x (Horner scheme).
func (c Coef) Eval(x float64) float64 {
	v := 0.0
	for k := NumCoef - 1; k >= 0; k-- {
		v = v*x + c[k]
	}
	return v
}

// Degree returns the index of the highest non-zero coefficient, or -1 for the
// zero polynomial.
func (c Coef) Degree() int {
	for k := NumCoef - 1; k >= 0; k-- {
		if c[k] != 0 {
			return k
		}
	}
	return -1
}

// Scale returns c multiplied by k.
func (c Coef) Scale(k float64) Coef {
	for i := range c {
		c[i] *= k
	}
	return c
}

// Add returns the element-wise sum of c and o.
func (c Coef) Add(o Coef) Coef {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// EqualCoef reports whether every coefficient of c and o is equal within tolerance.
func (c Coef) EqualCoef(o Coef) bool {
	for i := range c {
		if !Equal(c[i], o[i]) {
			return false
		}
	}
	return true
}

// Derivative returns the coefficients of dc/dx.
func (c Coef) Derivative() Coef {
	var d Coef
	for k := 1; k < NumCoef; k++ {
		d[k-1] = float64(k) * c[k]
	}
	return d
}

var binomial = func() [NumCoef][NumCoef]float64 {
	var b [NumCoef][NumCoef]float64
	for n := 0; n < NumCoef; n++ {
		b[n][0] = 1
		for k := 1; k <= n; k++ {
			b[n][k] = b[n-1][k-1]
			if k < n {
				b[n][k] += b[n-1][k]
			}
		}
	}
	return b
}()

// Shift returns the coefficients of p(x - h) where p has coefficients c.
func (c Coef) Shift(h float64) Coef {
	if h == 0 {
		return c
	}
	var out Coef
	for k := 0; k < NumCoef; k++ {
		if c[k] == 0 {
			continue
		}
		pw := 1.0
		for j := k; j >= 0; j-- {
			out[j] += c[k] * binomial[k][j] * pw
			pw *= -h
		}
	}
	return out
}

// Linear returns the coefficients of c0 + c1·x.
func Linear(c0, c1 float64) Coef {
	return Coef{c0, c1}
}

func nan() float64 { return math.NaN() }
