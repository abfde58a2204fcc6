package element

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/poly"
)

// DisplacementFunc returns the global displacement of a node.
type DisplacementFunc func(model.NodeID) ([model.NumDOF]float64, error)

// AddState adds to d the diagrams produced by the nodal displacements of
// the beam, each sub-element being deformed by its end displacements only.
func (b *Beam) AddState(d *Diagrams, disp DisplacementFunc) error {
	for _, s := range b.Subs {
		var ug [12]float64
		for k, n := range s.Nodes {
			u, err := disp(n)
			if err != nil {
				return err
			}
			copy(ug[k*model.NumDOF:], u[:])
		}
		for c, f := range s.stateDiagrams(s.ToLocal(ug)) {
			if err := addShifted(d[c], f, s.Start, 1); err != nil {
				return fmt.Errorf("%s: %w", Component(c), err)
			}
		}
	}
	return nil
}

// stateDiagrams returns the local diagrams of a sub-element for local end
// displacements u.
func (s *SubElement) stateDiagrams(u [12]float64) [NumComponents]*poly.Function {
	var out [NumComponents]*poly.Function
	l := s.Length
	single := func(c poly.Coef) *poly.Function {
		return &poly.Function{Segments: []poly.Segment{{Start: 0, End: l, Coef: c}}}
	}

	out[N] = single(poly.Coef{(u[6] - u[0]) / s.Axial})
	out[DX] = single(poly.Linear(u[0], (u[6]-u[0])/l))
	out[T] = single(poly.Coef{(u[9] - u[3]) / s.Torsion})
	out[RX] = single(poly.Linear(u[3], (u[9]-u[3])/l))

	for p, pl := range planes {
		ma, mb, v := s.planeState(p, u)
		d1, d2 := u[pl.d[0]], u[pl.d[1]]
		ei := s.EI(p, l/2)

		// Bending deflection with zero end values, then the chord.
		c2 := ma / (2 * ei)
		c3 := (mb - ma) / (6 * l * ei)
		chord := (d2-d1)/l - (c2*l + c3*l*l)
		deflection := poly.Coef{d1, chord, c2, c3}

		comps := planeComponents[p]
		out[comps[0]] = single(poly.Coef{v})
		out[comps[1]] = single(poly.Linear(ma, (mb-ma)/l))
		out[comps[2]] = single(deflection)
		out[comps[3]] = single(deflection.Derivative().Scale(pl.sign))
	}
	return out
}
