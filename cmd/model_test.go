package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/model"
)

const cantilever = `
name: cantilever
materials:
  - {name: steel, preset: steel}
sections:
  - {name: box, type: generic, area: 1e4, iy: 1e8, iz: 1e8, j: 2e8}
nodes:
  - {id: 10, support: fixed}
  - {id: 20, x: 3000}
beams:
  - {id: 7, start: 10, end: 20, section: box, material: steel}
actions:
  - name: dead
    category: D
    loads:
      - {type: nodal, node: 20, f: [0, 0, -100, 0, 0, 0]}
  - name: live
    category: L
    loads:
      - {type: nodal, node: 20, f: [0, 0, -200, 0, 0, 0]}
`

func writeProject(t *testing.T) *project {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cantilever.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cantilever), 0o644))
	p, err := openProject(path)
	require.NoError(t, err)
	return p
}

func TestProject_Ponderations(t *testing.T) {
	p := writeProject(t)

	ps, err := p.ponderations("actions")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "dead", ps[0].Name)

	ps, err = p.ponderations("nscp")
	require.NoError(t, err)
	u2, err := pick(ps, "U2")
	require.NoError(t, err)
	assert.Equal(t, "U2: 1.2D + 1.6L + 0.5(Lr or R)", u2.Name)
	require.Len(t, u2.Terms, 2)
	assert.Equal(t, 1.6, u2.Terms[1].Factor)

	_, err = p.ponderations("eurocode")
	require.Error(t, err)
}

func TestPick(t *testing.T) {
	ps := []model.Ponderation{{Name: "U1: 1.4D"}, {Name: "U10: 0.9D"}, {Name: "wind"}}

	got, err := pick(ps, "")
	require.NoError(t, err)
	assert.Equal(t, "U1: 1.4D", got.Name)

	got, err = pick(ps, "U10")
	require.NoError(t, err)
	assert.Equal(t, "U10: 0.9D", got.Name)

	got, err = pick(ps, "wind")
	require.NoError(t, err)
	assert.Equal(t, "wind", got.Name)

	_, err = pick(ps, "U3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wind")
}

func TestProject_FileIDs(t *testing.T) {
	p := writeProject(t)

	tip, err := p.node(20)
	require.NoError(t, err)
	b, err := p.beam(7)
	require.NoError(t, err)

	res, err := p.analysis.Solve(p.model.Actions()[0].ID)
	require.NoError(t, err)
	uz, err := res.Displacement(tip, model.Uz)
	require.NoError(t, err)
	assert.Less(t, uz, 0.0)
	assert.Contains(t, res.Diagrams, b)

	_, err = p.node(99)
	require.Error(t, err)
}
