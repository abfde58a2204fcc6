package model

import (
	"fmt"
	"slices"

	"github.com/alexiusacademia/goframe/internal/nscp"
)

// Load is one of NodalLoad, PointLoad or DistributedLoad.
type Load interface {
	load()
}

// NodalLoad applies forces and moments, in global axes, to a node.
// F holds Fx, Fy, Fz, Mx, My, Mz.
type NodalLoad struct {
	Node NodeID
	F    [NumDOF]float64
}

// PointLoad applies a concentrated force and moment on a beam at Position,
// a distance from the beam start.
type PointLoad struct {
	Beam     BeamID
	Position float64
	Local    bool
	F        [NumDOF]float64
}

// DistributedLoad applies a uniform load per unit length over a beam,
// starting A after the beam start and stopping B before its end.
type DistributedLoad struct {
	Beam  BeamID
	A     float64
	B     float64
	Local bool
	F     [NumDOF]float64
}

func (NodalLoad) load()       {}
func (PointLoad) load()       {}
func (DistributedLoad) load() {}

func beamOf(l Load) BeamID {
	switch l := l.(type) {
	case PointLoad:
		return l.Beam
	case DistributedLoad:
		return l.Beam
	}
	return 0
}

// Action is a named load case.
type Action struct {
	ID       ActionID
	Name     string
	Category string     // NSCP load category, e.g. "D" or "L"
	Psi      [3]float64 // ψ0, ψ1, ψ2 combination coefficients
	Loads    []Load
}

// AddAction creates an empty load case.
func (m *Model) AddAction(name, category string, psi [3]float64) (ActionID, error) {
	if category != "" && !nscp.ValidCategory(category) {
		return 0, fmt.Errorf("%w: unknown load category %q", ErrInvalidArgument, category)
	}
	id := m.nextAction
	m.nextAction++
	m.actionIndex[id] = len(m.actions)
	m.actions = append(m.actions, Action{ID: id, Name: name, Category: category, Psi: psi})
	m.touch()
	return id, nil
}

// RemoveAction deletes a load case with its loads.
func (m *Model) RemoveAction(id ActionID) error {
	i, ok := m.actionIndex[id]
	if !ok {
		return notFound("action", int(id))
	}
	m.actions = slices.Delete(m.actions, i, i+1)
	clear(m.actionIndex)
	for k, a := range m.actions {
		m.actionIndex[a.ID] = k
	}
	m.touch()
	return nil
}

// Action returns a copy of the action with the given id.
func (m *Model) Action(id ActionID) (Action, error) {
	i, ok := m.actionIndex[id]
	if !ok {
		return Action{}, notFound("action", int(id))
	}
	a := m.actions[i]
	a.Loads = slices.Clone(a.Loads)
	return a, nil
}

// Actions returns the actions in insertion order.
func (m *Model) Actions() []Action {
	out := make([]Action, len(m.actions))
	for i, a := range m.actions {
		a.Loads = slices.Clone(a.Loads)
		out[i] = a
	}
	return out
}

// AddLoad appends a load to an action.
func (m *Model) AddLoad(id ActionID, l Load) error {
	i, ok := m.actionIndex[id]
	if !ok {
		return notFound("action", int(id))
	}
	if err := m.checkLoad(l); err != nil {
		return err
	}
	m.actions[i].Loads = append(m.actions[i].Loads, l)
	m.touch()
	return nil
}

// RemoveLoad deletes the k-th load of an action.
func (m *Model) RemoveLoad(id ActionID, k int) error {
	i, ok := m.actionIndex[id]
	if !ok {
		return notFound("action", int(id))
	}
	if k < 0 || k >= len(m.actions[i].Loads) {
		return fmt.Errorf("%w: action %d has no load %d", ErrInvalidArgument, id, k)
	}
	m.actions[i].Loads = slices.Delete(m.actions[i].Loads, k, k+1)
	m.touch()
	return nil
}

func (m *Model) checkLoad(l Load) error {
	switch l := l.(type) {
	case NodalLoad:
		if _, ok := m.nodeIndex[l.Node]; !ok {
			return notFound("node", int(l.Node))
		}
	case PointLoad:
		length, err := m.Length(l.Beam)
		if err != nil {
			return err
		}
		if l.Position < 0 || l.Position > length {
			return fmt.Errorf("%w: point load at %g outside beam %d of length %g",
				ErrInvalidArgument, l.Position, l.Beam, length)
		}
	case DistributedLoad:
		length, err := m.Length(l.Beam)
		if err != nil {
			return err
		}
		if l.A < 0 || l.B < 0 || l.A+l.B > length {
			return fmt.Errorf("%w: distributed load range a=%g b=%g does not fit beam %d of length %g",
				ErrInvalidArgument, l.A, l.B, l.Beam, length)
		}
	case nil:
		return fmt.Errorf("%w: nil load", ErrInvalidArgument)
	default:
		return fmt.Errorf("%w: unknown load %T", ErrInvalidArgument, l)
	}
	return nil
}
