package poly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAt_Idempotent(t *testing.T) {
	f := Constant(0, 4, 2)

	f.SplitAt(1.5)
	once := f.Boundaries()
	f.SplitAt(1.5)

	assert.Equal(t, once, f.Boundaries())
	assert.Equal(t, []float64{0, 1.5, 4}, once)
	assert.Equal(t, 2.0, f.Eval(1.0, 0))
	assert.Equal(t, 2.0, f.Eval(3.0, 0))
}

func TestSplitAt_OutsideDomain(t *testing.T) {
	f := Constant(1, 2, 5)

	f.SplitAt(0)
	f.SplitAt(3)

	require.Equal(t, []float64{0, 1, 2, 3}, f.Boundaries())
	assert.Equal(t, 0.0, f.Eval(0.5, 0))
	assert.Equal(t, 5.0, f.Eval(1.5, 0))
	assert.Equal(t, 0.0, f.Eval(2.5, 0))
}

func TestSplitAt_EmptyFunction(t *testing.T) {
	f := New()
	f.SplitAt(1)
	assert.True(t, f.Empty())
}

func TestAddPoly_Shift(t *testing.T) {
	f := New()
	// x² on [0, 1] moved to [2, 3]
	require.NoError(t, f.AddPoly(0, 1, Coef{0, 0, 1}, 2))

	start, end, ok := f.Domain()
	require.True(t, ok)
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 3.0, end)
	assert.InDelta(t, 0.25, f.Eval(2.5, 0), 1e-12)
	assert.InDelta(t, 1.0, f.Eval(3, -1), 1e-12)
}

func TestAddPoly_Overlap(t *testing.T) {
	f := Constant(0, 10, 1)
	require.NoError(t, f.AddPoly(2, 4, Linear(0, 1), 0))

	assert.Equal(t, []float64{0, 2, 4, 10}, f.Boundaries())
	assert.InDelta(t, 1.0, f.Eval(1, 0), 1e-12)
	assert.InDelta(t, 4.0, f.Eval(3, 0), 1e-12)
	assert.InDelta(t, 5.0, f.Eval(4, -1), 1e-12)
	assert.InDelta(t, 1.0, f.Eval(4, 1), 1e-12)
}

func TestAddPoly_DegenerateAndInvalid(t *testing.T) {
	f := Constant(0, 1, 1)

	require.NoError(t, f.AddPoly(0.5, 0.5, Coef{3}, 0))
	assert.Equal(t, 1, f.Len())

	err := f.AddPoly(1, 0, Coef{3}, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestAddFunction_Restores(t *testing.T) {
	f := Constant(0, 3, 1)
	require.NoError(t, f.AddPoly(1, 3, Coef{0, 2, -1}, 0))
	g := New()
	require.NoError(t, g.AddPoly(0.5, 2.5, Coef{1, 0, 0, 1}, 0))

	before := f.Clone()
	require.NoError(t, f.AddFunction(g, 1))
	require.NoError(t, f.AddFunction(g, -1))

	for _, x := range []float64{0.1, 0.5, 0.9, 1.2, 2.0, 2.49, 2.7, 2.99} {
		assert.InDelta(t, before.Eval(x, 0), f.Eval(x, 0), 1e-9, "x=%g", x)
	}
	require.NoError(t, f.Compact(nil))
	assert.Equal(t, before.Boundaries(), f.Boundaries())
}

func TestAddFunction_Self(t *testing.T) {
	f := Constant(0, 1, 2)
	require.NoError(t, f.AddFunction(f, 1))
	assert.InDelta(t, 4.0, f.Eval(0.5, 0), 1e-12)
}

func TestCompact_FixedPoint(t *testing.T) {
	f := Constant(0, 1, 1)
	require.NoError(t, f.AddPoly(1, 2, Coef{1}, 0))
	require.NoError(t, f.AddPoly(2, 3, Coef{2}, 0))
	require.NoError(t, f.AddPoly(3, 4, Coef{2}, 0))
	f.SplitAt(0.5)

	require.NoError(t, f.Compact(nil))
	once := f.Boundaries()
	assert.Equal(t, []float64{0, 2, 4}, once)

	require.NoError(t, f.Compact(nil))
	assert.Equal(t, once, f.Boundaries())
}

func TestCompact_WithIndex(t *testing.T) {
	f := Constant(0, 2, 1)
	f.SplitAt(1)
	idx := &Function{Segments: []Segment{
		{Start: 0, End: 1, Coef: Coef{0}},
		{Start: 1, End: 2, Coef: Coef{1}},
	}}

	require.NoError(t, f.Compact(idx))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 2, idx.Len())

	err := f.Compact(New())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEval_Sides(t *testing.T) {
	f := Constant(0, 1, 1)
	require.NoError(t, f.AddPoly(1, 2, Coef{5}, 0))

	assert.Equal(t, 1.0, f.Eval(1, -1))
	assert.Equal(t, 5.0, f.Eval(1, 1))
	assert.Equal(t, 1.0, f.Eval(1, 0))

	assert.True(t, math.IsNaN(f.Eval(0, -1)))
	assert.Equal(t, 1.0, f.Eval(0, 0))
	assert.True(t, math.IsNaN(f.Eval(2, 1)))
	assert.Equal(t, 5.0, f.Eval(2, 0))

	assert.True(t, math.IsNaN(f.Eval(-1, 0)))
	assert.True(t, math.IsNaN(f.Eval(3, 0)))
	assert.True(t, math.IsNaN(New().Eval(0, 0)))
}

func TestShift_Binomial(t *testing.T) {
	c := Coef{1, -2, 0, 3}
	s := c.Shift(1.5)
	for _, x := range []float64{-1, 0, 0.7, 2, 4} {
		assert.InDelta(t, c.Eval(x-1.5), s.Eval(x), 1e-9)
	}
}

func TestAntiderivative(t *testing.T) {
	f := Constant(0, 1, 2)
	require.NoError(t, f.AddPoly(1, 3, Coef{0, 1}, 0))

	F, err := f.Antiderivative()
	require.NoError(t, err)

	assert.InDelta(t, 0.0, F.Eval(0, 0), 1e-12)
	assert.InDelta(t, 2.0, F.Eval(1, -1), 1e-12)
	assert.InDelta(t, 2.0, F.Eval(1, 1), 1e-12)
	// 2 + ∫1..3 x dx = 2 + 4
	assert.InDelta(t, 6.0, F.Eval(3, 0), 1e-12)
	assert.InDelta(t, 6.0, f.Integral(0, 3), 1e-12)
	assert.InDelta(t, 1.28125, f.Integral(0.5, 1.25), 1e-12)

	f6 := &Function{Segments: []Segment{{Start: 0, End: 1, Coef: Coef{0, 0, 0, 0, 0, 0, 1}}}}
	_, err = f6.Antiderivative()
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDerivative(t *testing.T) {
	f := &Function{Segments: []Segment{{Start: 0, End: 2, Coef: Coef{1, 2, 3}}}}
	d := f.Derivative()
	assert.InDelta(t, 2+6*1.5, d.Eval(1.5, 0), 1e-12)
}

func TestCharacteristicPointsAndExtrema(t *testing.T) {
	// -(x-1)² + 1 on [0, 3]: max 1 at x=1, zeros at 0 and 2, min -3 at 3.
	f := &Function{Segments: []Segment{{Start: 0, End: 3, Coef: Coef{0, 2, -1}}}}

	pts := f.CharacteristicPoints()
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3}, pts, 1e-9)

	lo, hi, ok := f.Extrema()
	require.True(t, ok)
	assert.InDelta(t, 3.0, lo.X, 1e-9)
	assert.InDelta(t, -3.0, lo.Value, 1e-9)
	assert.Equal(t, -1, lo.Side)
	assert.InDelta(t, 1.0, hi.X, 1e-9)
	assert.InDelta(t, 1.0, hi.Value, 1e-9)
}

func TestCharacteristicPoints_QuarticThreeExtrema(t *testing.T) {
	// x(x-1)(x-2)(x-3): extrema at (3±√5)/2 and 1.5.
	f := &Function{Segments: []Segment{{Start: 0, End: 3, Coef: Coef{0, -6, 11, -6, 1}}}}

	r := math.Sqrt(5) / 2
	pts := f.CharacteristicPoints()
	assert.InDeltaSlice(t, []float64{0, 1.5 - r, 1, 1.5, 2, 1.5 + r, 3}, pts, 1e-9)

	lo, hi, ok := f.Extrema()
	require.True(t, ok)
	// Both minima equal -1; either may be reported.
	assert.InDelta(t, r, math.Abs(lo.X-1.5), 1e-9)
	assert.InDelta(t, -1.0, lo.Value, 1e-9)
	assert.InDelta(t, 1.5, hi.X, 1e-9)
	assert.InDelta(t, 0.5625, hi.Value, 1e-9)
}
