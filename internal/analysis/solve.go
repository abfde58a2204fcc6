package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/goframe/internal/element"
	"github.com/alexiusacademia/goframe/internal/logger"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/sparse"
)

// Result is the solution of one action. Displacements and Reactions are
// indexed by node_index*6+dof, in the order of the DOF maps.
type Result struct {
	Action        model.ActionID
	Displacements []float64
	Reactions     []float64
	Residual      float64
	Diagrams      map[model.BeamID]*element.Diagrams

	maps *model.DOFMaps
}

// Displacement returns one nodal displacement.
func (r *Result) Displacement(node model.NodeID, dof int) (float64, error) {
	i, err := r.maps.CompleteIndex(node, dof)
	if err != nil {
		return 0, err
	}
	return r.Displacements[i], nil
}

// Reaction returns one support reaction, zero on a free DOF.
func (r *Result) Reaction(node model.NodeID, dof int) (float64, error) {
	i, err := r.maps.CompleteIndex(node, dof)
	if err != nil {
		return 0, err
	}
	return r.Reactions[i], nil
}

// ExpandToComplete scatters a partial solution into a complete vector,
// writing 0 for restrained DOF.
func ExpandToComplete(partial []float64, maps *model.DOFMaps) ([]float64, error) {
	if len(partial) != maps.Free {
		return nil, fmt.Errorf("%w: partial vector has %d entries, %d free DOF",
			model.ErrInvalidArgument, len(partial), maps.Free)
	}
	out := make([]float64, maps.Total)
	for i := range maps.Nodes {
		for d := 0; d < model.NumDOF; d++ {
			if p := maps.Partial[i][d]; p != model.Restrained {
				out[maps.Complete[i][d]] = partial[p]
			}
		}
	}
	return out, nil
}

// Solve returns the result of an action, solving it on first use.
func (a *Analysis) Solve(id model.ActionID) (*Result, error) {
	if err := a.prepare(); err != nil {
		return nil, err
	}
	if r, ok := a.results[id]; ok {
		return r, nil
	}
	act, err := a.model.Action(id)
	if err != nil {
		return nil, err
	}
	logger.Section(fmt.Sprintf("Action %d: %s", act.ID, act.Name))

	maps := a.maps
	fc := make([]float64, maps.Total)
	fp := make([]float64, maps.Free)
	diagrams := make(map[model.BeamID]*element.Diagrams, len(a.order))
	for _, bid := range a.order {
		diagrams[bid] = element.NewDiagrams(a.beams[bid].Length)
	}

	for k, l := range act.Loads {
		switch l := l.(type) {
		case model.NodalLoad:
			err = addNodal(fc, fp, maps, l.Node, l.F)
		case model.PointLoad:
			err = a.addBeamLoad(fc, fp, diagrams, l.Beam, l)
		case model.DistributedLoad:
			err = a.addBeamLoad(fc, fp, diagrams, l.Beam, l)
		default:
			err = fmt.Errorf("%w: unknown load %T", model.ErrInvalidArgument, l)
		}
		if err != nil {
			return nil, fmt.Errorf("action %d, load %d: %w", id, k, err)
		}
	}

	x, err := a.factor.Solve(fp)
	if err != nil {
		return nil, err
	}
	residual, err := sparse.Residual(a.partial, x, fp)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	if len(fp) > 0 {
		scale = math.Max(1, floats.Norm(fp, math.Inf(1)))
	}
	logger.Debug("residual %.3g", residual)
	if residual > a.opts.ResidualWarning*scale {
		logger.Warn("action %d: residual %.3g exceeds %.3g", id, residual, a.opts.ResidualWarning*scale)
	}

	u, err := ExpandToComplete(x, maps)
	if err != nil {
		return nil, err
	}
	ku, err := a.complete.MulVec(u)
	if err != nil {
		return nil, err
	}
	reactions := make([]float64, maps.Total)
	for i := range maps.Nodes {
		for d := 0; d < model.NumDOF; d++ {
			if maps.Partial[i][d] == model.Restrained {
				c := maps.Complete[i][d]
				reactions[c] = fc[c] - ku[c]
			}
		}
	}

	displacement := func(n model.NodeID) ([model.NumDOF]float64, error) {
		var out [model.NumDOF]float64
		i, ok := maps.Index[n]
		if !ok {
			return out, fmt.Errorf("%w: node %d", model.ErrNotFound, n)
		}
		copy(out[:], u[maps.Complete[i][0]:])
		return out, nil
	}
	for _, bid := range a.order {
		if err := a.beams[bid].AddState(diagrams[bid], displacement); err != nil {
			return nil, fmt.Errorf("beam %d: %w", bid, err)
		}
		if err := diagrams[bid].Compact(); err != nil {
			return nil, fmt.Errorf("beam %d: %w", bid, err)
		}
	}

	r := &Result{
		Action:        id,
		Displacements: u,
		Reactions:     reactions,
		Residual:      residual,
		Diagrams:      diagrams,
		maps:          maps,
	}
	a.results[id] = r
	return r, nil
}

// addNodal accumulates a global nodal load into both force vectors.
func addNodal(fc, fp []float64, maps *model.DOFMaps, node model.NodeID, f [model.NumDOF]float64) error {
	i, ok := maps.Index[node]
	if !ok {
		return fmt.Errorf("%w: node %d", model.ErrNotFound, node)
	}
	for d, v := range f {
		fc[maps.Complete[i][d]] += v
		if p := maps.Partial[i][d]; p != model.Restrained {
			fp[p] += v
		}
	}
	return nil
}

func (a *Analysis) addBeamLoad(fc, fp []float64, diagrams map[model.BeamID]*element.Diagrams,
	id model.BeamID, l model.Load) error {
	eb, ok := a.beams[id]
	if !ok {
		return fmt.Errorf("%w: beam %d", model.ErrNotFound, id)
	}
	red, err := eb.Reduce(l)
	if err != nil {
		return err
	}
	for _, nf := range red.Nodal {
		if err := addNodal(fc, fp, a.maps, nf.Node, nf.F); err != nil {
			return err
		}
	}
	return diagrams[id].Add(red.Diagrams, 1)
}
