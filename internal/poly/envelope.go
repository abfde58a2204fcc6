package poly

import (
	"fmt"
	"math"
)

// samplesPerRange is the number of sub-intervals scanned for sign changes
// when folding a function into an envelope.
const samplesPerRange = 10

// Envelope holds the pointwise maximum and minimum of a set of functions.
// MaxIndex and MinIndex are constant-per-segment functions giving the
// position, in the input slice, of the governing function.
type Envelope struct {
	Max      *Function
	Min      *Function
	MaxIndex *Function
	MinIndex *Function
}

// NewEnvelope folds fns one at a time into upper and lower envelopes.
func NewEnvelope(fns []*Function) (*Envelope, error) {
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: no function to envelope", ErrInvalidArgument)
	}
	for i, f := range fns {
		if f == nil {
			return nil, fmt.Errorf("%w: function %d is nil", ErrInvalidArgument, i)
		}
	}

	env := &Envelope{
		Max:      fns[0].Clone(),
		Min:      fns[0].Clone(),
		MaxIndex: indexFunction(fns[0], 0),
		MinIndex: indexFunction(fns[0], 0),
	}
	for i := 1; i < len(fns); i++ {
		if err := fold(env.Max, env.MaxIndex, fns[i], i, 1); err != nil {
			return nil, err
		}
		if err := fold(env.Min, env.MinIndex, fns[i], i, -1); err != nil {
			return nil, err
		}
	}
	if err := env.Max.Compact(env.MaxIndex); err != nil {
		return nil, err
	}
	if err := env.Min.Compact(env.MinIndex); err != nil {
		return nil, err
	}
	return env, nil
}

// IndexAt returns the governing function index at x, read on the given
// side as with Eval, or -1 outside the domain.
func IndexAt(index *Function, x float64, side int) int {
	v := index.Eval(x, side)
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Round(v))
}

func indexFunction(f *Function, i int) *Function {
	idx := &Function{Segments: make([]Segment, len(f.Segments))}
	for k, s := range f.Segments {
		idx.Segments[k] = Segment{Start: s.Start, End: s.End, Coef: Coef{float64(i)}}
	}
	return idx
}

// fold overwrites run with cur wherever sense·(cur - run) > 0.
func fold(run, index, cur *Function, i int, sense float64) error {
	delta := cur.Clone()
	if err := delta.AddFunction(run, -1); err != nil {
		return err
	}
	if sense < 0 {
		delta.Scale(-1)
	}

	for _, s := range delta.Segments {
		cuts := []float64{s.Start}
		for _, r := range signChanges(s.Eval, s.Start, s.End) {
			cuts = appendCut(cuts, r, s.End)
		}
		cuts = append(cuts, s.End)

		for k := 0; k+1 < len(cuts); k++ {
			a, b := cuts[k], cuts[k+1]
			if Equal(a, b) {
				continue
			}
			if s.Eval((a+b)/2) > 0 {
				overwrite(run, index, cur, a, b, i)
			}
		}
	}
	return nil
}

func appendCut(cuts []float64, r, end float64) []float64 {
	last := cuts[len(cuts)-1]
	if r <= last || Equal(r, last) || Equal(r, end) {
		return cuts
	}
	return append(cuts, r)
}

func overwrite(run, index, cur *Function, a, b float64, i int) {
	run.SplitAt(a)
	run.SplitAt(b)
	index.SplitAt(a)
	index.SplitAt(b)
	for k := range run.Segments {
		seg := &run.Segments[k]
		m := (seg.Start + seg.End) / 2
		if m <= a || m >= b {
			continue
		}
		var c Coef
		if j := cur.SegmentAt(m); j >= 0 {
			c = cur.Segments[j].Coef
		}
		seg.Coef = c
	}
	for k := range index.Segments {
		seg := &index.Segments[k]
		m := (seg.Start + seg.End) / 2
		if m > a && m < b {
			seg.Coef = Coef{float64(i)}
		}
	}
}
