package poly

import (
	"fmt"
	"slices"
	"strings"
)

// Function is a sorted, contiguous sequence of segments.
//
// Invariants: Segments[i].End == Segments[i+1].Start and no segment has zero
// length. The zero value is an empty function.
type Function struct {
	Segments []Segment
}

// New returns an empty function.
func New() *Function {
	return &Function{}
}

// Constant returns a function holding the value v on [start, end).
func Constant(start, end, v float64) *Function {
	return &Function{Segments: []Segment{{Start: start, End: end, Coef: Coef{v}}}}
}

// Len returns the number of segments.
func (f *Function) Len() int {
	return len(f.Segments)
}

// Empty reports whether the function has no segment.
func (f *Function) Empty() bool {
	return len(f.Segments) == 0
}

// Clone returns a deep copy of f.
func (f *Function) Clone() *Function {
	return &Function{Segments: slices.Clone(f.Segments)}
}

// Domain returns the abscissa range covered by f. ok is false for an empty function.
func (f *Function) Domain() (start, end float64, ok bool) {
	if len(f.Segments) == 0 {
		return 0, 0, false
	}
	return f.Segments[0].Start, f.Segments[len(f.Segments)-1].End, true
}

// Boundaries returns every segment boundary, domain ends included.
func (f *Function) Boundaries() []float64 {
	if len(f.Segments) == 0 {
		return nil
	}
	xs := make([]float64, 0, len(f.Segments)+1)
	for _, s := range f.Segments {
		xs = append(xs, s.Start)
	}
	return append(xs, f.Segments[len(f.Segments)-1].End)
}

// SplitAt inserts a boundary at x.
//
// It is a no-op when x already matches a boundary. When x lies before or
// after the domain, a zero segment is added to reach it.
func (f *Function) SplitAt(x float64) {
	n := len(f.Segments)
	if n == 0 {
		return
	}
	first, last := f.Segments[0], f.Segments[n-1]
	if Equal(x, first.Start) || Equal(x, last.End) {
		return
	}
	if x < first.Start {
		f.Segments = slices.Insert(f.Segments, 0, Segment{Start: x, End: first.Start})
		return
	}
	if x > last.End {
		f.Segments = append(f.Segments, Segment{Start: last.End, End: x})
		return
	}
	for i := range f.Segments {
		s := f.Segments[i]
		if Equal(x, s.End) {
			return
		}
		if x < s.End {
			right := s
			right.Start = x
			f.Segments[i].End = x
			f.Segments = slices.Insert(f.Segments, i+1, right)
			return
		}
	}
}

// AddPoly adds the polynomial coef, expressed for abscissas in [start, end],
// to f on [start+shift, end+shift].
func (f *Function) AddPoly(start, end float64, coef Coef, shift float64) error {
	if Equal(start, end) {
		return nil
	}
	if start > end {
		return fmt.Errorf("%w: start %g > end %g", ErrInvalidRange, start, end)
	}
	c := coef.Shift(shift)
	lo, hi := start+shift, end+shift

	if len(f.Segments) == 0 {
		f.Segments = []Segment{{Start: lo, End: hi, Coef: c}}
		return nil
	}

	f.SplitAt(lo)
	f.SplitAt(hi)
	for i := range f.Segments {
		s := &f.Segments[i]
		m := (s.Start + s.End) / 2
		if m > lo && m < hi {
			s.Coef = s.Coef.Add(c)
		}
	}
	return nil
}

// AddFunction adds k·src to f.
func (f *Function) AddFunction(src *Function, k float64) error {
	segs := slices.Clone(src.Segments)
	for _, s := range segs {
		if err := f.AddPoly(s.Start, s.End, s.Coef.Scale(k), 0); err != nil {
			return err
		}
	}
	return nil
}

// Scale multiplies every coefficient of f by k.
func (f *Function) Scale(k float64) {
	for i := range f.Segments {
		f.Segments[i].Coef = f.Segments[i].Coef.Scale(k)
	}
}

// Compact merges adjacent segments whose coefficients are equal.
//
// When index is non-nil it must have the same segments as f; a boundary is
// then removed only when both functions agree on both sides.
func (f *Function) Compact(index *Function) error {
	if index != nil && len(index.Segments) != len(f.Segments) {
		return fmt.Errorf("%w: index has %d segments, function has %d",
			ErrInvalidArgument, len(index.Segments), len(f.Segments))
	}
	if len(f.Segments) < 2 {
		return nil
	}

	out := f.Segments[:1]
	var idx []Segment
	if index != nil {
		idx = index.Segments[:1]
	}
	for i := 1; i < len(f.Segments); i++ {
		s := f.Segments[i]
		last := &out[len(out)-1]
		merge := last.Coef.EqualCoef(s.Coef)
		if merge && index != nil {
			merge = idx[len(idx)-1].Coef.EqualCoef(index.Segments[i].Coef)
		}
		if merge {
			last.End = s.End
			if index != nil {
				idx[len(idx)-1].End = index.Segments[i].End
			}
			continue
		}
		out = append(out, s)
		if index != nil {
			idx = append(idx, index.Segments[i])
		}
	}
	f.Segments = out
	if index != nil {
		index.Segments = idx
	}
	return nil
}

// SegmentAt returns the index of the segment containing x, preferring the
// segment that starts at x on a boundary. It returns -1 outside the domain.
func (f *Function) SegmentAt(x float64) int {
	n := len(f.Segments)
	for i, s := range f.Segments {
		if x >= s.Start && x < s.End {
			return i
		}
	}
	if n > 0 && Equal(x, f.Segments[n-1].End) {
		return n - 1
	}
	return -1
}

// Eval returns f(x).
//
// side selects the value on a boundary: -1 takes the segment ending at x,
// +1 the segment starting at x, and 0 behaves like -1 but falls back to the
// other side at the domain ends instead of returning NaN. Outside the domain
// the result is NaN.
func (f *Function) Eval(x float64, side int) float64 {
	n := len(f.Segments)
	if n == 0 {
		return nan()
	}
	for i, s := range f.Segments {
		if Equal(x, s.Start) {
			switch {
			case side > 0:
				return s.Eval(x)
			case i > 0:
				return f.Segments[i-1].Eval(x)
			case side == 0:
				return s.Eval(x)
			default:
				return nan()
			}
		}
		if Equal(x, s.End) {
			if side <= 0 {
				return s.Eval(x)
			}
			if i+1 < n {
				return f.Segments[i+1].Eval(x)
			}
			return nan()
		}
		if x > s.Start && x < s.End {
			return s.Eval(x)
		}
	}
	return nan()
}

// String lists the segments, one per line.
func (f *Function) String() string {
	var sb strings.Builder
	for _, s := range f.Segments {
		fmt.Fprintf(&sb, "[%g, %g): %v\n", s.Start, s.End, s.Coef)
	}
	return sb.String()
}
