// Package element turns model beams into 3D frame sub-elements: geometry,
// rotation, flexibility integrals and 12×12 stiffness matrices. It also
// reduces beam loads to equivalent nodal forces and builds the internal
// force and deformation diagrams along each beam.
//
// Local DOF order is ux, uy, uz, θx, θy, θz at the start node followed by
// the same six at the end node. Bending in the x-y plane uses Iz and the
// releases about z; bending in the x-z plane uses Iy and the releases
// about y.
package element

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/section"
)

// ErrDegenerate is returned for zero-length beams or sub-elements.
var ErrDegenerate = errors.New("element: degenerate geometry")

const (
	// Gauss-Legendre points; exact for the polynomial integrands of
	// uniform sections.
	quadPoints        = 8
	quadPointsTapered = 24
)

// Bending planes.
const (
	planeXY = iota // v, θz, Iz
	planeXZ        // w, θy, Iy
)

// Flexibility holds the end-rotation flexibility coefficients of one
// bending plane: a=∫(1-x/l)²/EI, b=∫(x/l)(1-x/l)/EI, c=∫(x/l)²/EI.
type Flexibility struct {
	A, B, C float64
}

// SubElement is the part of a beam between two consecutive nodes.
type SubElement struct {
	Index  int
	Nodes  [2]model.NodeID
	Start  float64 // distance from the beam start
	Length float64

	E, G float64

	// Mid-length properties, used for deformation diagrams.
	Props section.Properties

	Axial   float64 // ∫dx/EA
	Torsion float64 // ∫dx/GJ
	Flex    [2]Flexibility
	// Release flexibilities per plane, at the start and end.
	Release [2][2]float64

	Local  *mat.Dense // 12×12, local axes
	Global *mat.Dense // 12×12, global axes

	rotation   *mat.Dense
	sec        section.Section
	beamLength float64
}

// Beam is a model beam split at its on-beam nodes.
type Beam struct {
	ID       model.BeamID
	Length   float64
	Rotation *mat.Dense // rows are the local axes in global coordinates
	Subs     []*SubElement
}

// Build computes the sub-elements of a beam.
func Build(m *model.Model, id model.BeamID) (*Beam, error) {
	b, err := m.Beam(id)
	if err != nil {
		return nil, err
	}
	pa, err := m.Position(b.Start)
	if err != nil {
		return nil, err
	}
	pb, err := m.Position(b.End)
	if err != nil {
		return nil, err
	}
	dir := r3.Sub(pb, pa)
	length := r3.Norm(dir)
	if length == 0 {
		return nil, fmt.Errorf("%w: beam %d has zero length", ErrDegenerate, id)
	}
	interior, err := m.InteriorNodes(id)
	if err != nil {
		return nil, err
	}

	nodes := make([]model.NodeID, 0, len(interior)+2)
	dist := make([]float64, 0, len(interior)+2)
	nodes = append(nodes, b.Start)
	dist = append(dist, 0)
	for _, nid := range interior {
		n, err := m.Node(nid)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, nid)
		dist = append(dist, n.Placement.(model.OnBeam).Position*length)
	}
	nodes = append(nodes, b.End)
	dist = append(dist, length)

	eb := &Beam{ID: id, Length: length, Rotation: Rotation(dir, b.Angle)}
	for k := 0; k+1 < len(nodes); k++ {
		l := dist[k+1] - dist[k]
		if !(l > 1e-12*length) {
			return nil, fmt.Errorf("%w: nodes %d and %d coincide on beam %d", ErrDegenerate, nodes[k], nodes[k+1], id)
		}
		s := &SubElement{
			Index:      k,
			Nodes:      [2]model.NodeID{nodes[k], nodes[k+1]},
			Start:      dist[k],
			Length:     l,
			E:          b.Material.E,
			G:          b.Material.G(),
			rotation:   eb.Rotation,
			sec:        b.Section,
			beamLength: length,
		}
		if k == 0 {
			s.Release[planeXY][0] = b.ReleaseStart.Z.Flexibility()
			s.Release[planeXZ][0] = b.ReleaseStart.Y.Flexibility()
		}
		if k+2 == len(nodes) {
			s.Release[planeXY][1] = b.ReleaseEnd.Z.Flexibility()
			s.Release[planeXZ][1] = b.ReleaseEnd.Y.Flexibility()
		}
		s.integrate()
		s.stiffness()
		eb.Subs = append(eb.Subs, s)
	}
	return eb, nil
}

// Rotation returns the 3×3 matrix whose rows are the local axes of a
// member along dir, rolled by angle degrees about its axis. The local y
// axis is horizontal for non-vertical members; vertical members take the
// global Y axis.
func Rotation(dir r3.Vec, angle float64) *mat.Dense {
	x := r3.Unit(dir)
	var y r3.Vec
	if math.Hypot(x.X, x.Y) < 1e-9 {
		y = r3.Vec{Y: 1}
	} else {
		y = r3.Unit(r3.Cross(r3.Vec{Z: 1}, x))
	}
	z := r3.Cross(x, y)

	if angle != 0 {
		sin, cos := math.Sincos(angle * math.Pi / 180)
		y, z = r3.Add(r3.Scale(cos, y), r3.Scale(sin, z)), r3.Add(r3.Scale(-sin, y), r3.Scale(cos, z))
	}
	return mat.NewDense(3, 3, []float64{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	})
}

// PropsAt returns the section properties at local abscissa x.
func (s *SubElement) PropsAt(x float64) section.Properties {
	return s.sec.At((s.Start + x) / s.beamLength)
}

func (s *SubElement) points() int {
	if s.sec.Uniform() {
		return quadPoints
	}
	return quadPointsTapered
}

// integral returns ∫ f over [lo, hi] of the sub-element.
func (s *SubElement) integral(f func(x float64) float64, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return quad.Fixed(f, lo, hi, s.points(), quad.Legendre{}, 0)
}

// EI returns the bending stiffness of a plane at local abscissa x.
func (s *SubElement) EI(plane int, x float64) float64 {
	p := s.PropsAt(x)
	if plane == planeXY {
		return s.E * p.Iz
	}
	return s.E * p.Iy
}

func (s *SubElement) integrate() {
	l := s.Length
	s.Props = s.PropsAt(l / 2)
	s.Axial = s.axialFlex(0, l)
	s.Torsion = s.torsionFlex(0, l)
	for p := range s.Flex {
		s.Flex[p] = Flexibility{
			A: s.integral(func(x float64) float64 { r := 1 - x/l; return r * r / s.EI(p, x) }, 0, l),
			B: s.integral(func(x float64) float64 { r := x / l; return r * (1 - r) / s.EI(p, x) }, 0, l),
			C: s.integral(func(x float64) float64 { r := x / l; return r * r / s.EI(p, x) }, 0, l),
		}
	}
}

// axialFlex returns ∫dx/EA over [lo, hi].
func (s *SubElement) axialFlex(lo, hi float64) float64 {
	return s.integral(func(x float64) float64 { return 1 / (s.E * s.PropsAt(x).Area) }, lo, hi)
}

// torsionFlex returns ∫dx/GJ over [lo, hi].
func (s *SubElement) torsionFlex(lo, hi float64) float64 {
	return s.integral(func(x float64) float64 { return 1 / (s.G * s.PropsAt(x).J) }, lo, hi)
}

// stiffness builds the local matrix column by column from the end forces
// of unit displacements, then rotates it to global axes.
func (s *SubElement) stiffness() {
	s.Local = mat.NewDense(12, 12, nil)
	for j := 0; j < 12; j++ {
		var u [12]float64
		u[j] = 1
		f := s.EndForces(u)
		for i := 0; i < 12; i++ {
			s.Local.Set(i, j, f[i])
		}
	}

	t := s.transformation()
	var tmp mat.Dense
	tmp.Mul(t.T(), s.Local)
	s.Global = mat.NewDense(12, 12, nil)
	s.Global.Mul(&tmp, t)
}

func (s *SubElement) transformation() *mat.Dense {
	t := mat.NewDense(12, 12, nil)
	for blk := 0; blk < 4; blk++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				t.Set(3*blk+i, 3*blk+j, s.rotation.At(i, j))
			}
		}
	}
	return t
}

// ToGlobal rotates a local 12-vector to global axes.
func (s *SubElement) ToGlobal(v [12]float64) [12]float64 {
	return rotate(s.rotation, v, true)
}

// ToLocal rotates a global 12-vector to local axes.
func (s *SubElement) ToLocal(v [12]float64) [12]float64 {
	return rotate(s.rotation, v, false)
}

func rotate(r *mat.Dense, v [12]float64, transpose bool) [12]float64 {
	var m mat.Matrix = r
	if transpose {
		m = r.T()
	}
	var out [12]float64
	for blk := 0; blk < 4; blk++ {
		var y mat.VecDense
		y.MulVec(m, mat.NewVecDense(3, []float64{v[3*blk], v[3*blk+1], v[3*blk+2]}))
		for i := 0; i < 3; i++ {
			out[3*blk+i] = y.AtVec(i)
		}
	}
	return out
}

// LocalVector rotates a global force or moment triple into the beam axes.
func (b *Beam) LocalVector(g [3]float64) [3]float64 {
	var y mat.VecDense
	y.MulVec(b.Rotation, mat.NewVecDense(3, g[:]))
	return [3]float64{y.AtVec(0), y.AtVec(1), y.AtVec(2)}
}
