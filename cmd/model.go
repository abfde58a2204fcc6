package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/goframe/internal/analysis"
	"github.com/alexiusacademia/goframe/internal/logger"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
)

const rule = "───────────────────────────────────────────────────────────────"

// project is a loaded model file with its analysis context.
type project struct {
	path     string
	file     *model.File
	model    *model.Model
	analysis *analysis.Analysis
}

func openProject(path string) (*project, error) {
	logger.Info("loading %s", path)
	m, f, err := model.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return &project{
		path:     path,
		file:     f,
		model:    m,
		analysis: analysis.New(m, analysis.OptionsFrom(cfg)),
	}, nil
}

// ponderations returns one unit ponderation per action for "actions", or
// the ponderations generated from an NSCP table.
func (p *project) ponderations(table string) ([]model.Ponderation, error) {
	if table == "" || table == "actions" {
		ps := p.model.ActionPonderations()
		if len(ps) == 0 {
			return nil, fmt.Errorf("%s defines no action", p.path)
		}
		return ps, nil
	}
	combos, err := nscp.Table(table)
	if err != nil {
		return nil, err
	}
	ps := p.model.Ponderations(combos)
	if len(ps) == 0 {
		return nil, fmt.Errorf("no action of %s has a category used by the %s table", p.path, table)
	}
	return ps, nil
}

// pick selects a ponderation by exact name or by combination id such as
// "U2". An empty name selects the first one.
func pick(ps []model.Ponderation, name string) (model.Ponderation, error) {
	if name == "" {
		return ps[0], nil
	}
	for _, p := range ps {
		if p.Name == name || strings.HasPrefix(p.Name, name+":") {
			return p, nil
		}
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return model.Ponderation{}, fmt.Errorf("unknown load case %q (available: %s)", name, strings.Join(names, "; "))
}

func (p *project) node(fileID int) (model.NodeID, error) {
	return p.file.NodeID(fileID)
}

func (p *project) beam(fileID int) (model.BeamID, error) {
	return p.file.BeamID(fileID)
}
