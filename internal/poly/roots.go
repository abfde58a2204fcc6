package poly

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	maxRefine    = 60
	maxBisection = 200
)

// FindZero returns up to two roots of f on [lo, hi].
//
// A quadratic through f(lo), f(mid) and f(hi) gives the first estimates.
// Each estimate is refined by re-fitting on a shrinking interval. Once the
// error stops shrinking, bisection on the sign of f takes over.
// Roots closer than the tolerance collapse into one.
func (f *Function) FindZero(lo, hi float64) ([]float64, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: lo %g > hi %g", ErrInvalidRange, lo, hi)
	}
	return findZero(f.evaluator(lo, hi), lo, hi), nil
}

// evaluator returns the polynomial of the single segment covering [lo, hi]
// when there is one, so that evaluation near boundaries stays smooth.
func (f *Function) evaluator(lo, hi float64) func(float64) float64 {
	i := f.SegmentAt((lo + hi) / 2)
	if i >= 0 {
		s := f.Segments[i]
		if (lo >= s.Start || Equal(lo, s.Start)) && (hi <= s.End || Equal(hi, s.End)) {
			return s.Eval
		}
	}
	return func(x float64) float64 { return f.Eval(x, 0) }
}

func findZero(fn func(float64) float64, lo, hi float64) []float64 {
	if Equal(lo, hi) {
		if fn(lo) == 0 {
			return []float64{lo}
		}
		return nil
	}
	mid := (lo + hi) / 2
	y0, y1, y2 := fn(lo), fn(mid), fn(hi)
	scale := math.Max(math.Abs(y0), math.Max(math.Abs(y1), math.Abs(y2)))
	if scale == 0 {
		return nil
	}

	guesses := quadraticRoots(lo, hi, y0, y1, y2)
	if len(guesses) == 0 && y0*y2 < 0 {
		guesses = []float64{lo - y0*(hi-lo)/(y2-y0)}
	}

	var roots []float64
	for _, g := range guesses {
		r, ok := refine(fn, lo, hi, g, scale)
		if !ok {
			continue
		}
		roots = appendRoot(roots, r, hi-lo)
	}
	sort.Float64s(roots)
	return roots
}

func appendRoot(roots []float64, r, width float64) []float64 {
	for _, x := range roots {
		if scalar.EqualWithinAbsOrRel(x, r, 1e-9*width, RelTol) {
			return roots
		}
	}
	return append(roots, r)
}

// quadraticRoots returns the roots inside [a, b] of the parabola through
// (a, ya), ((a+b)/2, ym) and (b, yb).
func quadraticRoots(a, b, ya, ym, yb float64) []float64 {
	d := (b - a) / 2
	m := a + d
	A := (ya - 2*ym + yb) / (2 * d * d)
	B := (yb - ya) / (2 * d)
	C := ym

	var ts []float64
	if math.Abs(A)*d*d <= 1e-14*(math.Abs(B)*d+math.Abs(C)) {
		if B == 0 {
			return nil
		}
		ts = []float64{-C / B}
	} else {
		disc := B*B - 4*A*C
		if disc < 0 {
			return nil
		}
		q := -(B + math.Copysign(math.Sqrt(disc), B)) / 2
		if q == 0 {
			ts = []float64{0}
		} else {
			ts = []float64{q / A, C / q}
		}
	}

	var xs []float64
	for _, t := range ts {
		x := m + t
		switch {
		case x >= a && x <= b:
			xs = append(xs, x)
		case Equal(x, a):
			xs = append(xs, a)
		case Equal(x, b):
			xs = append(xs, b)
		}
	}
	return xs
}

func refine(fn func(float64) float64, lo, hi, x, scale float64) (float64, bool) {
	tol := 1e-12 * math.Max(1, math.Abs(hi-lo))
	h := (hi - lo) / 4
	err := math.Abs(fn(x))

	// Successive quadratic re-fitting on a shrinking interval.
	for i := 0; i < maxRefine && err > 0 && h > tol; i++ {
		a, b := math.Max(lo, x-h), math.Min(hi, x+h)
		cands := quadraticRoots(a, b, fn(a), fn((a+b)/2), fn(b))
		if len(cands) == 0 {
			break
		}
		next := cands[0]
		for _, c := range cands[1:] {
			if math.Abs(c-x) < math.Abs(next-x) {
				next = c
			}
		}
		nextErr := math.Abs(fn(next))
		if nextErr >= err {
			break
		}
		x, err = next, nextErr
		h /= 2
	}
	if err == 0 || h <= tol {
		return x, true
	}

	// Bisection fallback on a bracket around x.
	for w := h; w <= 2*(hi-lo); w *= 2 {
		a, b := math.Max(lo, x-w), math.Min(hi, x+w)
		fa, fb := fn(a), fn(b)
		if fa == 0 {
			return a, true
		}
		if fb == 0 {
			return b, true
		}
		if fa*fb < 0 {
			return bisect(fn, a, b, fa, tol), true
		}
		if a == lo && b == hi {
			break
		}
	}
	// Tangent root without a sign change.
	if err <= 1e-8*scale {
		return x, true
	}
	return 0, false
}

func bisect(fn func(float64) float64, a, b, fa, tol float64) float64 {
	for i := 0; i < maxBisection && b-a > tol; i++ {
		m := (a + b) / 2
		fm := fn(m)
		if fm == 0 {
			return m
		}
		if (fa < 0) == (fm < 0) {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return (a + b) / 2
}
