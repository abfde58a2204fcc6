package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/alexiusacademia/goframe/internal/element"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/poly"
)

// Query is the spread of one nodal value over a list of ponderations.
// MinIndex and MaxIndex give the governing ponderation, or -1.
type Query struct {
	Min, Max           float64
	MinIndex, MaxIndex int
	Text               string
}

// Reaction returns the min and max of a support reaction over ponds.
func (a *Analysis) Reaction(node model.NodeID, dof int, ponds []model.Ponderation) (Query, error) {
	return a.query(node, dof, ponds, func(r *Result) []float64 { return r.Reactions })
}

// Displacement returns the min and max of a nodal displacement over ponds.
func (a *Analysis) Displacement(node model.NodeID, dof int, ponds []model.Ponderation) (Query, error) {
	return a.query(node, dof, ponds, func(r *Result) []float64 { return r.Displacements })
}

func (a *Analysis) query(node model.NodeID, dof int, ponds []model.Ponderation, values func(*Result) []float64) (Query, error) {
	if len(ponds) == 0 {
		return Query{MinIndex: -1, MaxIndex: -1, Text: "0"}, nil
	}
	maps, err := a.Maps()
	if err != nil {
		return Query{}, err
	}
	idx, err := maps.CompleteIndex(node, dof)
	if err != nil {
		return Query{}, err
	}

	q := Query{Min: math.Inf(1), Max: math.Inf(-1), MinIndex: -1, MaxIndex: -1}
	for k, p := range ponds {
		v := 0.0
		for _, t := range p.Terms {
			c, err := a.model.Coefficient(t)
			if err != nil {
				return Query{}, err
			}
			r, err := a.Solve(t.Action)
			if err != nil {
				return Query{}, err
			}
			v += c * values(r)[idx]
		}
		if v < q.Min {
			q.Min, q.MinIndex = v, k
		}
		if v > q.Max {
			q.Max, q.MaxIndex = v, k
		}
	}
	q.Text = a.format(q.Min, q.Max)
	return q, nil
}

func (a *Analysis) format(lo, hi float64) string {
	tol := a.opts.Tolerance
	if scalar.EqualWithinAbsOrRel(lo, hi, tol, tol) {
		return fmt.Sprintf("%.6g", hi)
	}
	return fmt.Sprintf("%.6g/%.6g", lo, hi)
}

// Diagram returns a component diagram of a beam combined over one
// ponderation.
func (a *Analysis) Diagram(beam model.BeamID, c element.Component, pond model.Ponderation) (*poly.Function, error) {
	if c < 0 || c >= element.NumComponents {
		return nil, fmt.Errorf("%w: component %d", model.ErrInvalidArgument, int(c))
	}
	eb, err := a.Beam(beam)
	if err != nil {
		return nil, err
	}
	f := poly.Constant(0, eb.Length, 0)
	for _, t := range pond.Terms {
		k, err := a.model.Coefficient(t)
		if err != nil {
			return nil, err
		}
		r, err := a.Solve(t.Action)
		if err != nil {
			return nil, err
		}
		if err := f.AddFunction(r.Diagrams[beam][c], k); err != nil {
			return nil, err
		}
	}
	if err := f.Compact(nil); err != nil {
		return nil, err
	}
	return f, nil
}

// Envelope returns the upper and lower envelopes of a component diagram
// over ponds. The index functions refer to positions in ponds.
func (a *Analysis) Envelope(beam model.BeamID, c element.Component, ponds []model.Ponderation) (*poly.Envelope, error) {
	if len(ponds) == 0 {
		return nil, fmt.Errorf("%w: no ponderation", model.ErrInvalidArgument)
	}
	fns := make([]*poly.Function, len(ponds))
	for i, p := range ponds {
		f, err := a.Diagram(beam, c, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		fns[i] = f
	}
	return poly.NewEnvelope(fns)
}
