// Package analysis runs the linear-elastic analysis of a model: it
// assembles the global stiffness matrices, factorizes the partial one,
// solves every action on demand and combines the results over
// ponderations.
//
// An Analysis caches everything it computes and compares the model
// revision on each call. Any edit of the model invalidates the whole
// cache; nothing is recomputed partially. An Analysis is not safe for
// concurrent use.
package analysis

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/element"
	"github.com/alexiusacademia/goframe/internal/logger"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/sparse"
)

// Options tunes result reporting.
type Options struct {
	// Tolerance is the relative tolerance under which a query reports a
	// single value instead of a min/max pair.
	Tolerance float64

	// ResidualWarning is the residual, relative to the largest load
	// component, above which a solve logs a warning.
	ResidualWarning float64
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFrom(config.Default())
}

// OptionsFrom reads the analysis section of a configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{Tolerance: cfg.Analysis.Tolerance, ResidualWarning: cfg.Analysis.ResidualWarning}
}

// Analysis is the analysis context of one model.
type Analysis struct {
	model *model.Model
	opts  Options

	assembled  bool
	revision   uint64
	generation int

	maps     *model.DOFMaps
	beams    map[model.BeamID]*element.Beam
	order    []model.BeamID
	complete *sparse.CSR
	partial  *sparse.CSR
	factor   *sparse.Factorization
	results  map[model.ActionID]*Result
}

// New returns an analysis of m. Nothing is computed until needed.
func New(m *model.Model, opts Options) *Analysis {
	return &Analysis{model: m, opts: opts}
}

// Model returns the analysed model.
func (a *Analysis) Model() *model.Model { return a.model }

// Dirty reports whether the cache is missing or stale.
func (a *Analysis) Dirty() bool {
	return !a.assembled || a.revision != a.model.Revision()
}

// Generation counts the assemblies performed so far.
func (a *Analysis) Generation() int { return a.generation }

// Invalidate drops the matrices, the factorization and every cached result.
func (a *Analysis) Invalidate() {
	a.assembled = false
	a.maps = nil
	a.beams = nil
	a.order = nil
	a.complete = nil
	a.partial = nil
	a.factor = nil
	a.results = nil
}

// Maps returns the DOF maps of the current assembly.
func (a *Analysis) Maps() (*model.DOFMaps, error) {
	if err := a.prepare(); err != nil {
		return nil, err
	}
	return a.maps, nil
}

// Beam returns the discretized beam of the current assembly.
func (a *Analysis) Beam(id model.BeamID) (*element.Beam, error) {
	if err := a.prepare(); err != nil {
		return nil, err
	}
	b, ok := a.beams[id]
	if !ok {
		return nil, fmt.Errorf("%w: beam %d", model.ErrNotFound, id)
	}
	return b, nil
}

// Matrices returns the assembled complete and partial stiffness matrices.
func (a *Analysis) Matrices() (complete, partial *sparse.CSR, err error) {
	if a.Dirty() {
		if err := a.Assemble(); err != nil {
			return nil, nil, err
		}
	}
	return a.complete, a.partial, nil
}

// Assemble rebuilds the DOF maps and both global stiffness matrices.
// It invalidates the cache first.
func (a *Analysis) Assemble() error {
	a.Invalidate()
	logger.Section("Assembly")

	maps := a.model.DOFMaps()
	beams := a.model.Beams()
	built := make(map[model.BeamID]*element.Beam, len(beams))
	order := make([]model.BeamID, 0, len(beams))
	subs := 0
	for _, b := range beams {
		eb, err := element.Build(a.model, b.ID)
		if err != nil {
			return fmt.Errorf("beam %d: %w", b.ID, err)
		}
		built[b.ID] = eb
		order = append(order, b.ID)
		subs += len(eb.Subs)
	}

	capacity := 144 * subs
	complete := sparse.NewBuilder(maps.Total, maps.Total, capacity)
	partial := sparse.NewBuilder(maps.Free, maps.Free, capacity)
	for _, id := range order {
		for _, s := range built[id].Subs {
			if err := stream(complete, partial, maps, s); err != nil {
				return fmt.Errorf("beam %d: %w", id, err)
			}
		}
	}

	a.maps = maps
	a.beams = built
	a.order = order
	a.complete = complete.Matrix()
	a.partial = partial.Matrix()
	a.results = make(map[model.ActionID]*Result)
	a.revision = a.model.Revision()
	a.assembled = true
	a.generation++

	logger.Debug("%d nodes, %d beams, %d sub-elements", len(maps.Nodes), len(order), subs)
	logger.Debug("%d DOF, %d free; %d complete and %d partial non-zeros",
		maps.Total, maps.Free, a.complete.NNZ(), a.partial.NNZ())
	return nil
}

// stream appends the 144 global entries of a sub-element to both builders.
func stream(complete, partial *sparse.Builder, maps *model.DOFMaps, s *element.SubElement) error {
	var rows, free [12]int
	for k, n := range s.Nodes {
		i, ok := maps.Index[n]
		if !ok {
			return fmt.Errorf("%w: node %d", model.ErrNotFound, n)
		}
		for d := 0; d < model.NumDOF; d++ {
			rows[k*model.NumDOF+d] = maps.Complete[i][d]
			free[k*model.NumDOF+d] = maps.Partial[i][d]
		}
	}
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			v := s.Global.At(i, j)
			if err := complete.Append(rows[i], rows[j], v); err != nil {
				return err
			}
			if free[i] == model.Restrained || free[j] == model.Restrained {
				continue
			}
			if err := partial.Append(free[i], free[j], v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Factorize factorizes the partial matrix, assembling first if needed.
// A structure with no free DOF gets the trivial factorization.
func (a *Analysis) Factorize() error {
	if a.Dirty() {
		if err := a.Assemble(); err != nil {
			return err
		}
	}
	logger.Section("Factorization")
	sym, err := sparse.Analyze(a.partial)
	if err != nil {
		return err
	}
	f, err := sym.Factorize(a.partial)
	if err != nil {
		return err
	}
	a.factor = f
	logger.Debug("order %d, half-bandwidth %d", sym.Dim(), sym.Bandwidth())
	return nil
}

func (a *Analysis) prepare() error {
	if a.Dirty() {
		if err := a.Assemble(); err != nil {
			return err
		}
	}
	if a.factor == nil {
		return a.Factorize()
	}
	return nil
}
