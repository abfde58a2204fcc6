package model

import "fmt"

// Restrained marks a DOF that has no row in the partial matrix.
const Restrained = -1

// DOFMaps numbers the degrees of freedom of every node. Complete indices
// cover all 6·n DOF; partial indices only cover unrestrained ones and form
// the contiguous range [0, Free).
type DOFMaps struct {
	Nodes    []NodeID
	Index    map[NodeID]int
	Complete [][NumDOF]int
	Partial  [][NumDOF]int
	Free     int
	Total    int
}

// DOFMaps numbers the DOF in node insertion order.
func (m *Model) DOFMaps() *DOFMaps {
	d := &DOFMaps{
		Nodes:    make([]NodeID, len(m.nodes)),
		Index:    make(map[NodeID]int, len(m.nodes)),
		Complete: make([][NumDOF]int, len(m.nodes)),
		Partial:  make([][NumDOF]int, len(m.nodes)),
	}
	for i, n := range m.nodes {
		d.Nodes[i] = n.ID
		d.Index[n.ID] = i
		for k := 0; k < NumDOF; k++ {
			d.Complete[i][k] = d.Total
			d.Total++
			if n.Support == nil || !n.Support[k] {
				d.Partial[i][k] = d.Free
				d.Free++
			} else {
				d.Partial[i][k] = Restrained
			}
		}
	}
	return d
}

// CompleteIndex returns the complete-matrix row of a node DOF.
func (d *DOFMaps) CompleteIndex(id NodeID, dof int) (int, error) {
	i, err := d.node(id, dof)
	if err != nil {
		return 0, err
	}
	return d.Complete[i][dof], nil
}

// PartialIndex returns the partial-matrix row of a node DOF, or Restrained.
func (d *DOFMaps) PartialIndex(id NodeID, dof int) (int, error) {
	i, err := d.node(id, dof)
	if err != nil {
		return 0, err
	}
	return d.Partial[i][dof], nil
}

func (d *DOFMaps) node(id NodeID, dof int) (int, error) {
	if dof < 0 || dof >= NumDOF {
		return 0, fmt.Errorf("%w: dof %d", ErrInvalidArgument, dof)
	}
	i, ok := d.Index[id]
	if !ok {
		return 0, notFound("node", int(id))
	}
	return i, nil
}
