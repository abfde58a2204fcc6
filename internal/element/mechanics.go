package element

import "math"

// plane describes where a bending plane sits in the 12 local DOF.
// Slopes are dv/dx in x-y and dw/dx in x-z, so the x-z slope is -θy.
type plane struct {
	d    [2]int // transverse displacement at start and end
	s    [2]int // rotation at start and end
	sign float64
}

var planes = [2]plane{
	planeXY: {d: [2]int{1, 7}, s: [2]int{5, 11}, sign: 1},
	planeXZ: {d: [2]int{2, 8}, s: [2]int{4, 10}, sign: -1},
}

// Moments returns the end moments of a plane for generalized end rotations
// ra and rb, solving
//
//	(a+ka)·Ma + b·Mb = ra
//	b·Ma + (c+kb)·Mb = rb
//
// where ka and kb are the release flexibilities. An infinite flexibility
// is a hinge: its moment is zero and the other end follows from a single
// relation. Moments are positive when they sag the member.
func (s *SubElement) Moments(p int, ra, rb float64) (ma, mb float64) {
	f := s.Flex[p]
	ka, kb := s.Release[p][0], s.Release[p][1]
	hingeA, hingeB := math.IsInf(ka, 1), math.IsInf(kb, 1)
	switch {
	case hingeA && hingeB:
		return 0, 0
	case hingeA:
		return 0, rb / (f.C + kb)
	case hingeB:
		return ra / (f.A + ka), 0
	}
	fa, fc := f.A+ka, f.C+kb
	det := fa*fc - f.B*f.B
	return (fc*ra - f.B*rb) / det, (fa*rb - f.B*ra) / det
}

// EndForces returns the forces the nodes exert on the sub-element for
// local end displacements u.
func (s *SubElement) EndForces(u [12]float64) [12]float64 {
	var f [12]float64

	n := (u[6] - u[0]) / s.Axial
	f[0], f[6] = -n, n

	t := (u[9] - u[3]) / s.Torsion
	f[3], f[9] = -t, t

	for p, pl := range planes {
		ma, mb, v := s.planeState(p, u)
		f[pl.d[0]] += v
		f[pl.d[1]] -= v
		f[pl.s[0]] += pl.sign * -ma
		f[pl.s[1]] += pl.sign * mb
	}
	return f
}

// planeState returns the end moments and the constant shear produced in a
// plane by end displacements u.
func (s *SubElement) planeState(p int, u [12]float64) (ma, mb, v float64) {
	pl := planes[p]
	l := s.Length
	d1, d2 := u[pl.d[0]], u[pl.d[1]]
	s1, s2 := pl.sign*u[pl.s[0]], pl.sign*u[pl.s[1]]
	chord := (d2 - d1) / l
	ma, mb = s.Moments(p, -(s1 - chord), s2-chord)
	return ma, mb, (mb - ma) / l
}
