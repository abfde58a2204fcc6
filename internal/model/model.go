// Package model holds the structural model of a 3D frame: nodes, supports,
// beams with their releases, actions and loads. Entities are kept in
// insertion order and addressed by stable integer ids.
//
// Every mutation bumps the model revision. Analysis caches compare it to
// decide when everything they hold must be thrown away.
package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("model: invalid argument")
	ErrNotFound        = errors.New("model: not found")
	ErrCyclicReference = errors.New("model: cyclic position reference")
	ErrInUse           = errors.New("model: entity still referenced")
)

type (
	NodeID   int
	BeamID   int
	ActionID int
)

// Model is a frame structure. It is not safe for concurrent use; callers
// serialize edits and analyses.
type Model struct {
	nodes     []Node
	nodeIndex map[NodeID]int
	nextNode  NodeID

	beams     []Beam
	beamIndex map[BeamID]int
	nextBeam  BeamID

	actions     []Action
	actionIndex map[ActionID]int
	nextAction  ActionID

	revision uint64
}

// New returns an empty model.
func New() *Model {
	return &Model{
		nodeIndex:   make(map[NodeID]int),
		beamIndex:   make(map[BeamID]int),
		actionIndex: make(map[ActionID]int),
		nextNode:    1,
		nextBeam:    1,
		nextAction:  1,
	}
}

// Revision changes on every mutation.
func (m *Model) Revision() uint64 { return m.revision }

func (m *Model) touch() { m.revision++ }

func notFound(kind string, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
}
