package model

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// DOF names, in node order.
const (
	Ux = iota
	Uy
	Uz
	Rx
	Ry
	Rz
	NumDOF
)

// DOFNames are the labels of the six nodal degrees of freedom.
var DOFNames = [NumDOF]string{"Ux", "Uy", "Uz", "Rx", "Ry", "Rz"}

// ParseDOF accepts a DOF label, in any case, or its index.
func ParseDOF(s string) (int, error) {
	for i, n := range DOFNames {
		if strings.EqualFold(s, n) || s == fmt.Sprint(i) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown dof %q", ErrInvalidArgument, s)
}

// Placement locates a node. It is either Free or OnBeam.
type Placement interface {
	placement()
}

// Free places a node at absolute coordinates, or at an offset from another
// node when Relative is set.
type Free struct {
	X, Y, Z  float64
	Relative *NodeID
}

// OnBeam places a node on a beam at a relative position strictly between
// 0 (start) and 1 (end). Such nodes split the beam into sub-elements.
type OnBeam struct {
	Beam     BeamID
	Position float64
}

func (Free) placement()   {}
func (OnBeam) placement() {}

// Support restrains nodal DOF; true means fixed.
type Support [NumDOF]bool

// Fixed is a fully restrained support.
var Fixed = Support{true, true, true, true, true, true}

// Pinned restrains the three translations.
var Pinned = Support{true, true, true, false, false, false}

// Node is a structural node.
type Node struct {
	ID        NodeID
	Placement Placement
	Support   *Support
}

// AddNode adds a node and returns its id.
func (m *Model) AddNode(p Placement) (NodeID, error) {
	if err := m.checkPlacement(p); err != nil {
		return 0, err
	}
	id := m.nextNode
	m.nextNode++
	m.nodeIndex[id] = len(m.nodes)
	m.nodes = append(m.nodes, Node{ID: id, Placement: p})
	m.touch()
	return id, nil
}

// MoveNode replaces the placement of a node.
func (m *Model) MoveNode(id NodeID, p Placement) error {
	i, ok := m.nodeIndex[id]
	if !ok {
		return notFound("node", int(id))
	}
	if err := m.checkPlacement(p); err != nil {
		return err
	}
	if ob, ok := p.(OnBeam); ok {
		b, _ := m.Beam(ob.Beam)
		if b.Start == id || b.End == id {
			return fmt.Errorf("%w: node %d cannot lie on its own beam %d", ErrCyclicReference, id, ob.Beam)
		}
	}
	m.nodes[i].Placement = p
	m.touch()
	return nil
}

// SetSupport sets or clears (nil) the support of a node.
func (m *Model) SetSupport(id NodeID, s *Support) error {
	i, ok := m.nodeIndex[id]
	if !ok {
		return notFound("node", int(id))
	}
	if s != nil {
		c := *s
		s = &c
	}
	m.nodes[i].Support = s
	m.touch()
	return nil
}

// RemoveNode deletes a node that nothing references.
func (m *Model) RemoveNode(id NodeID) error {
	i, ok := m.nodeIndex[id]
	if !ok {
		return notFound("node", int(id))
	}
	for _, n := range m.nodes {
		if f, ok := n.Placement.(Free); ok && f.Relative != nil && *f.Relative == id {
			return fmt.Errorf("%w: node %d is the reference of node %d", ErrInUse, id, n.ID)
		}
	}
	for _, b := range m.beams {
		if b.Start == id || b.End == id {
			return fmt.Errorf("%w: node %d ends beam %d", ErrInUse, id, b.ID)
		}
	}
	for _, a := range m.actions {
		for _, l := range a.Loads {
			if nl, ok := l.(NodalLoad); ok && nl.Node == id {
				return fmt.Errorf("%w: node %d is loaded by action %q", ErrInUse, id, a.Name)
			}
		}
	}

	m.nodes = slices.Delete(m.nodes, i, i+1)
	m.reindexNodes()
	m.touch()
	return nil
}

func (m *Model) reindexNodes() {
	clear(m.nodeIndex)
	for i, n := range m.nodes {
		m.nodeIndex[n.ID] = i
	}
}

// Node returns a copy of the node with the given id.
func (m *Model) Node(id NodeID) (Node, error) {
	i, ok := m.nodeIndex[id]
	if !ok {
		return Node{}, notFound("node", int(id))
	}
	return m.nodes[i], nil
}

// Nodes returns the nodes in insertion order.
func (m *Model) Nodes() []Node { return slices.Clone(m.nodes) }

// NumNodes returns the node count.
func (m *Model) NumNodes() int { return len(m.nodes) }

func (m *Model) checkPlacement(p Placement) error {
	switch p := p.(type) {
	case Free:
		if p.Relative != nil {
			if _, ok := m.nodeIndex[*p.Relative]; !ok {
				return notFound("reference node", int(*p.Relative))
			}
		}
	case OnBeam:
		if _, ok := m.beamIndex[p.Beam]; !ok {
			return notFound("beam", int(p.Beam))
		}
		if !(p.Position > 0 && p.Position < 1) {
			return fmt.Errorf("%w: position %g on beam %d is outside (0, 1)", ErrInvalidArgument, p.Position, p.Beam)
		}
	case nil:
		return fmt.Errorf("%w: nil placement", ErrInvalidArgument)
	default:
		return fmt.Errorf("%w: unknown placement %T", ErrInvalidArgument, p)
	}
	return nil
}

// Position resolves the absolute coordinates of a node, following relative
// and on-beam references.
func (m *Model) Position(id NodeID) (r3.Vec, error) {
	return m.position(id, make(map[NodeID]bool))
}

func (m *Model) position(id NodeID, visiting map[NodeID]bool) (r3.Vec, error) {
	if visiting[id] {
		return r3.Vec{}, fmt.Errorf("%w: node %d", ErrCyclicReference, id)
	}
	n, err := m.Node(id)
	if err != nil {
		return r3.Vec{}, err
	}
	visiting[id] = true
	defer delete(visiting, id)

	switch p := n.Placement.(type) {
	case Free:
		v := r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
		if p.Relative == nil {
			return v, nil
		}
		ref, err := m.position(*p.Relative, visiting)
		if err != nil {
			return r3.Vec{}, err
		}
		return r3.Add(ref, v), nil
	case OnBeam:
		b, err := m.Beam(p.Beam)
		if err != nil {
			return r3.Vec{}, err
		}
		a, err := m.position(b.Start, visiting)
		if err != nil {
			return r3.Vec{}, err
		}
		c, err := m.position(b.End, visiting)
		if err != nil {
			return r3.Vec{}, err
		}
		return r3.Add(a, r3.Scale(p.Position, r3.Sub(c, a))), nil
	}
	return r3.Vec{}, fmt.Errorf("%w: unknown placement %T of node %d", ErrInvalidArgument, n.Placement, id)
}
