package model

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/section"
)

// Material is a linear-elastic isotropic material.
type Material struct {
	Name string
	E    float64 // Young's modulus
	Nu   float64 // Poisson's ratio
}

// G returns the shear modulus.
func (m Material) G() float64 { return nscp.ShearModulus(m.E, m.Nu) }

// Validate checks the elastic constants.
func (m Material) Validate() error {
	if !(m.E > 0) {
		return fmt.Errorf("%w: material %q: E must be positive", ErrInvalidArgument, m.Name)
	}
	if m.Nu <= -1 || m.Nu >= 0.5 {
		return fmt.Errorf("%w: material %q: Poisson's ratio %g outside (-1, 0.5)", ErrInvalidArgument, m.Name, m.Nu)
	}
	return nil
}

// Steel returns structural steel with NSCP constants (MPa).
func Steel() Material { return Material{Name: "steel", E: nscp.Es, Nu: nscp.NuSteel} }

// Concrete returns normal-weight concrete of strength fc (MPa).
func Concrete(fc float64) Material {
	return Material{Name: fmt.Sprintf("concrete f'c=%g", fc), E: nscp.Ec(fc), Nu: nscp.NuConcrete}
}

// ReleaseKind is the connection type between a beam end and its node.
type ReleaseKind int

const (
	Rigid ReleaseKind = iota
	Hinge
	Spring
)

func (k ReleaseKind) String() string {
	switch k {
	case Rigid:
		return "rigid"
	case Hinge:
		return "hinge"
	case Spring:
		return "spring"
	}
	return fmt.Sprintf("ReleaseKind(%d)", int(k))
}

// Release describes the rotational connection about one bending axis.
type Release struct {
	Kind      ReleaseKind
	Stiffness float64 // rotational stiffness of a Spring
}

// Flexibility returns the rotational flexibility: 0 when rigid, +Inf for
// a hinge and 1/k for a spring.
func (r Release) Flexibility() float64 {
	switch r.Kind {
	case Hinge:
		return math.Inf(1)
	case Spring:
		return 1 / r.Stiffness
	}
	return 0
}

// EndRelease holds the releases about the local y and z axes at one end.
type EndRelease struct {
	Y Release
	Z Release
}

// Beam is a straight member between two nodes.
type Beam struct {
	ID       BeamID
	Start    NodeID
	End      NodeID
	Section  section.Section
	Material Material

	// Angle rolls the section about the beam axis, in degrees.
	Angle float64

	ReleaseStart EndRelease
	ReleaseEnd   EndRelease
}

// AddBeam adds a beam between two existing nodes.
func (m *Model) AddBeam(start, end NodeID, sec section.Section, mat Material) (BeamID, error) {
	b := Beam{Start: start, End: end, Section: sec, Material: mat}
	if err := m.checkBeam(b); err != nil {
		return 0, err
	}
	b.ID = m.nextBeam
	m.nextBeam++
	m.beamIndex[b.ID] = len(m.beams)
	m.beams = append(m.beams, b)
	m.touch()
	return b.ID, nil
}

// UpdateBeam replaces the properties of an existing beam, keeping its id.
func (m *Model) UpdateBeam(b Beam) error {
	i, ok := m.beamIndex[b.ID]
	if !ok {
		return notFound("beam", int(b.ID))
	}
	if err := m.checkBeam(b); err != nil {
		return err
	}
	m.beams[i] = b
	m.touch()
	return nil
}

func (m *Model) checkBeam(b Beam) error {
	for _, id := range []NodeID{b.Start, b.End} {
		if _, ok := m.nodeIndex[id]; !ok {
			return notFound("node", int(id))
		}
	}
	if b.Start == b.End {
		return fmt.Errorf("%w: beam starts and ends at node %d", ErrInvalidArgument, b.Start)
	}
	if b.Section == nil {
		return fmt.Errorf("%w: beam has no section", ErrInvalidArgument)
	}
	if err := b.Section.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := b.Material.Validate(); err != nil {
		return err
	}
	for _, r := range []Release{b.ReleaseStart.Y, b.ReleaseStart.Z, b.ReleaseEnd.Y, b.ReleaseEnd.Z} {
		if r.Kind == Spring && !(r.Stiffness > 0) {
			return fmt.Errorf("%w: spring release needs a positive stiffness", ErrInvalidArgument)
		}
	}
	return nil
}

// SetRelease sets the releases at the start (atEnd false) or end of a beam.
func (m *Model) SetRelease(id BeamID, atEnd bool, r EndRelease) error {
	b, err := m.Beam(id)
	if err != nil {
		return err
	}
	if atEnd {
		b.ReleaseEnd = r
	} else {
		b.ReleaseStart = r
	}
	return m.UpdateBeam(b)
}

// RemoveBeam deletes a beam that carries no on-beam node and no load.
func (m *Model) RemoveBeam(id BeamID) error {
	i, ok := m.beamIndex[id]
	if !ok {
		return notFound("beam", int(id))
	}
	for _, n := range m.nodes {
		if ob, ok := n.Placement.(OnBeam); ok && ob.Beam == id {
			return fmt.Errorf("%w: node %d lies on beam %d", ErrInUse, n.ID, id)
		}
	}
	for _, a := range m.actions {
		for _, l := range a.Loads {
			if beamOf(l) == id {
				return fmt.Errorf("%w: beam %d is loaded by action %q", ErrInUse, id, a.Name)
			}
		}
	}

	m.beams = slices.Delete(m.beams, i, i+1)
	clear(m.beamIndex)
	for k, b := range m.beams {
		m.beamIndex[b.ID] = k
	}
	m.touch()
	return nil
}

// Beam returns a copy of the beam with the given id.
func (m *Model) Beam(id BeamID) (Beam, error) {
	i, ok := m.beamIndex[id]
	if !ok {
		return Beam{}, notFound("beam", int(id))
	}
	return m.beams[i], nil
}

// Beams returns the beams in insertion order.
func (m *Model) Beams() []Beam { return slices.Clone(m.beams) }

// Length returns the beam length.
func (m *Model) Length(id BeamID) (float64, error) {
	b, err := m.Beam(id)
	if err != nil {
		return 0, err
	}
	a, err := m.Position(b.Start)
	if err != nil {
		return 0, err
	}
	c, err := m.Position(b.End)
	if err != nil {
		return 0, err
	}
	return r3.Norm(r3.Sub(c, a)), nil
}

// InteriorNodes returns the on-beam nodes of a beam sorted by position.
func (m *Model) InteriorNodes(id BeamID) ([]NodeID, error) {
	if _, ok := m.beamIndex[id]; !ok {
		return nil, notFound("beam", int(id))
	}
	type onBeam struct {
		id  NodeID
		pos float64
	}
	var list []onBeam
	for _, n := range m.nodes {
		if ob, ok := n.Placement.(OnBeam); ok && ob.Beam == id {
			list = append(list, onBeam{n.ID, ob.Position})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].pos < list[j].pos })

	ids := make([]NodeID, len(list))
	for i, e := range list {
		ids[i] = e.id
	}
	return ids, nil
}

// Discretization returns the number of interior nodes of a beam.
func (m *Model) Discretization(id BeamID) (int, error) {
	ids, err := m.InteriorNodes(id)
	return len(ids), err
}
