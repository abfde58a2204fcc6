package element

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/poly"
)

// NodalForce is a force and moment on a node, in global axes.
type NodalForce struct {
	Node model.NodeID
	F    [model.NumDOF]float64
}

// Reduction is the effect of one beam load with every node held fixed:
// the equivalent nodal forces and the internal diagrams of the beam.
type Reduction struct {
	Nodal    []NodalForce
	Diagrams *Diagrams
}

// segmentLoad is a load restricted to one sub-element, in local axes.
// A point load has x1 == x2; a distributed one carries F per unit length.
type segmentLoad struct {
	point  bool
	x1, x2 float64
	f      [model.NumDOF]float64
}

// Reduce converts a point or distributed load into equivalent nodal forces
// and fixed-node diagrams.
func (b *Beam) Reduce(l model.Load) (*Reduction, error) {
	red := &Reduction{Diagrams: NewDiagrams(b.Length)}
	switch l := l.(type) {
	case model.PointLoad:
		if l.Beam != b.ID {
			return nil, fmt.Errorf("%w: load on beam %d reduced by beam %d", model.ErrInvalidArgument, l.Beam, b.ID)
		}
		if l.Position < 0 || l.Position > b.Length*(1+1e-12) {
			return nil, fmt.Errorf("%w: point load at %g outside beam %d", model.ErrInvalidArgument, l.Position, b.ID)
		}
		s := b.Subs[b.subAt(l.Position)]
		x := math.Max(0, math.Min(s.Length, l.Position-s.Start))
		if err := red.add(s, segmentLoad{point: true, x1: x, x2: x, f: b.localLoad(l.F, l.Local)}); err != nil {
			return nil, err
		}

	case model.DistributedLoad:
		if l.Beam != b.ID {
			return nil, fmt.Errorf("%w: load on beam %d reduced by beam %d", model.ErrInvalidArgument, l.Beam, b.ID)
		}
		lo, hi := l.A, b.Length-l.B
		if lo < 0 || l.B < 0 || hi < lo {
			return nil, fmt.Errorf("%w: distributed load range [%g, %g] on beam %d", model.ErrInvalidArgument, lo, hi, b.ID)
		}
		f := b.localLoad(l.F, l.Local)
		for j := b.subAt(lo); j < len(b.Subs); j++ {
			s := b.Subs[j]
			if s.Start >= hi {
				break
			}
			x1 := math.Max(lo, s.Start) - s.Start
			x2 := math.Min(hi, s.Start+s.Length) - s.Start
			if x2-x1 <= 1e-12*s.Length {
				continue
			}
			if err := red.add(s, segmentLoad{x1: x1, x2: x2, f: f}); err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("%w: %T is not a beam load", model.ErrInvalidArgument, l)
	}
	return red, nil
}

// subAt returns the sub-element containing distance x from the beam start.
func (b *Beam) subAt(x float64) int {
	for j, s := range b.Subs {
		if x <= s.Start+s.Length {
			return j
		}
	}
	return len(b.Subs) - 1
}

func (b *Beam) localLoad(f [model.NumDOF]float64, local bool) [model.NumDOF]float64 {
	if local {
		return f
	}
	force := b.LocalVector([3]float64{f[0], f[1], f[2]})
	moment := b.LocalVector([3]float64{f[3], f[4], f[5]})
	return [model.NumDOF]float64{force[0], force[1], force[2], moment[0], moment[1], moment[2]}
}

func (r *Reduction) add(s *SubElement, ld segmentLoad) error {
	fe, diagrams, err := s.fixedEnd(ld)
	if err != nil {
		return err
	}
	g := s.ToGlobal(fe)
	var start, end NodalForce
	start.Node, end.Node = s.Nodes[0], s.Nodes[1]
	for k := 0; k < model.NumDOF; k++ {
		start.F[k] = -g[k]
		end.F[k] = -g[k+model.NumDOF]
	}
	r.Nodal = append(r.Nodal, start, end)

	for c, f := range diagrams {
		if f == nil {
			continue
		}
		if err := addShifted(r.Diagrams[c], f, s.Start, 1); err != nil {
			return fmt.Errorf("%s: %w", Component(c), err)
		}
	}
	return nil
}

// fixedEnd returns the local forces the fixed nodes exert on the
// sub-element under ld, with the matching diagrams over [0, l].
func (s *SubElement) fixedEnd(ld segmentLoad) ([12]float64, [NumComponents]*poly.Function, error) {
	var fe [12]float64
	var out [NumComponents]*poly.Function

	fa, fb, n, dx, err := s.lineFixedEnd(ld, ld.f[0], s.axialFlex, s.Axial, s.E*s.Props.Area)
	if err != nil {
		return fe, out, err
	}
	fe[0], fe[6], out[N], out[DX] = fa, fb, n, dx

	ta, tb, t, rx, err := s.lineFixedEnd(ld, ld.f[3], s.torsionFlex, s.Torsion, s.G*s.Props.J)
	if err != nil {
		return fe, out, err
	}
	fe[3], fe[9], out[T], out[RX] = ta, tb, t, rx

	for p, pl := range planes {
		q := ld.f[pl.d[0]]
		c := pl.sign * ld.f[pl.s[0]]
		if q == 0 && c == 0 {
			continue
		}
		ends, fns, err := s.planeFixedEnd(p, ld, q, c)
		if err != nil {
			return fe, out, err
		}
		fe[pl.d[0]], fe[pl.s[0]] = ends[0], pl.sign*ends[1]
		fe[pl.d[1]], fe[pl.s[1]] = ends[2], pl.sign*ends[3]
		for k, comp := range planeComponents[p] {
			out[comp] = fns[k]
		}
		out[planeComponents[p][3]].Scale(pl.sign)
	}
	return fe, out, nil
}

// lineFixedEnd handles the axial and torsional parts: both ends share the
// load in proportion to the flexibility of the opposite side.
func (s *SubElement) lineFixedEnd(ld segmentLoad, p float64, flex func(lo, hi float64) float64,
	total, rigidity float64) (fa, fb float64, force, disp *poly.Function, err error) {
	if p == 0 {
		return 0, 0, nil, nil, nil
	}
	l := s.Length
	share := func(x float64) float64 { return flex(x, l) / total }

	force = poly.Constant(0, l, 0)
	var resultant float64
	if ld.point {
		resultant = p
		fa = -p * share(ld.x1)
		err = force.AddPoly(ld.x1, l, poly.Coef{-p}, 0)
	} else {
		resultant = p * (ld.x2 - ld.x1)
		fa = -s.integral(func(x float64) float64 { return p * share(x) }, ld.x1, ld.x2)
		err = force.AddPoly(ld.x1, ld.x2, poly.Coef{p * ld.x1, -p}, 0)
		if err == nil {
			err = force.AddPoly(ld.x2, l, poly.Coef{-resultant}, 0)
		}
	}
	if err != nil {
		return 0, 0, nil, nil, err
	}
	fb = -resultant - fa
	if err := force.AddPoly(0, l, poly.Coef{-fa}, 0); err != nil {
		return 0, 0, nil, nil, err
	}

	disp, err = force.Antiderivative()
	if err != nil {
		return 0, 0, nil, nil, err
	}
	disp.Scale(1 / rigidity)
	return fa, fb, force, disp, nil
}

// planeFixedEnd handles one bending plane for a transverse force q and a
// couple c, both per unit length when distributed. It returns the end
// forces (d1, s1, d2, s2) and the shear, moment, deflection and slope.
func (s *SubElement) planeFixedEnd(p int, ld segmentLoad, q, c float64) ([4]float64, [4]*poly.Function, error) {
	var ends [4]float64
	var fns [4]*poly.Function
	l := s.Length

	// Simply supported moment, sagging positive.
	iso := poly.Constant(0, l, 0)
	var resultant float64
	var err error
	if ld.point {
		x0 := ld.x1
		resultant = q
		err = iso.AddPoly(x0, l, poly.Coef{-q*x0 - c, q}, 0)
	} else {
		x1, x2 := ld.x1, ld.x2
		w := x2 - x1
		resultant = q * w
		err = iso.AddPoly(x1, x2, poly.Coef{q*x1*x1/2 + c*x1, -q*x1 - c, q / 2}, 0)
		if err == nil {
			err = iso.AddPoly(x2, l, poly.Coef{-q*w*(x1+x2)/2 - c*w, q * w}, 0)
		}
	}
	if err != nil {
		return ends, fns, err
	}
	ra := -iso.Eval(l, -1) / l
	if err := iso.AddPoly(0, l, poly.Coef{0, ra}, 0); err != nil {
		return ends, fns, err
	}

	// End rotations of the simply supported member, by virtual work.
	var phiA, phiB float64
	for _, seg := range iso.Segments {
		phiA += s.integral(func(x float64) float64 { return seg.Eval(x) * (1 - x/l) / s.EI(p, x) }, seg.Start, seg.End)
		phiB += s.integral(func(x float64) float64 { return seg.Eval(x) * (x / l) / s.EI(p, x) }, seg.Start, seg.End)
	}
	ma, mb := s.Moments(p, -phiA, -phiB)

	moment := iso
	if err := moment.AddPoly(0, l, poly.Coef{ma, (mb - ma) / l}, 0); err != nil {
		return ends, fns, err
	}
	shear := moment.Derivative()

	fd1 := ra + (mb-ma)/l
	ends = [4]float64{fd1, -ma, -(fd1 + resultant), mb}

	deflection, slope, err := deflect(moment, s.EI(p, l/2), l)
	if err != nil {
		return ends, fns, err
	}
	fns = [4]*poly.Function{shear, moment, deflection, slope}
	return ends, fns, nil
}

// deflect integrates M/EI twice with zero deflection at both ends.
func deflect(moment *poly.Function, ei, l float64) (deflection, slope *poly.Function, err error) {
	kappa := moment.Clone()
	kappa.Scale(1 / ei)
	slope, err = kappa.Antiderivative()
	if err != nil {
		return nil, nil, err
	}
	deflection, err = slope.Antiderivative()
	if err != nil {
		return nil, nil, err
	}
	chord := deflection.Eval(l, -1) / l
	if err := deflection.AddPoly(0, l, poly.Coef{0, -chord}, 0); err != nil {
		return nil, nil, err
	}
	if err := slope.AddPoly(0, l, poly.Coef{-chord}, 0); err != nil {
		return nil, nil, err
	}
	return deflection, slope, nil
}
