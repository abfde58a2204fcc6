package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/section"
)

func rect() section.Section { return section.Rectangular{B: 200, H: 400} }

func TestDOFMaps_Contiguous(t *testing.T) {
	m := New()
	supports := []*Support{nil, &Fixed, &Pinned, {false, true, false, true, false, true}, nil}
	for i, s := range supports {
		id, err := m.AddNode(Free{X: float64(i)})
		require.NoError(t, err)
		require.NoError(t, m.SetSupport(id, s))
	}

	d := m.DOFMaps()
	assert.Equal(t, 30, d.Total)
	assert.Equal(t, 6+0+3+3+6, d.Free)

	seenPartial := make(map[int]bool)
	seenComplete := make(map[int]bool)
	for i := range d.Nodes {
		for k := 0; k < NumDOF; k++ {
			assert.Equal(t, i*NumDOF+k, d.Complete[i][k])
			seenComplete[d.Complete[i][k]] = true
			if p := d.Partial[i][k]; p != Restrained {
				assert.False(t, seenPartial[p], "duplicate partial index %d", p)
				seenPartial[p] = true
			}
		}
	}
	for p := 0; p < d.Free; p++ {
		assert.True(t, seenPartial[p], "missing partial index %d", p)
	}
	assert.Len(t, seenComplete, d.Total)

	idx, err := d.PartialIndex(d.Nodes[1], Uz)
	require.NoError(t, err)
	assert.Equal(t, Restrained, idx)

	_, err = d.CompleteIndex(99, Ux)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = d.CompleteIndex(d.Nodes[0], 6)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPosition_RelativeAndOnBeam(t *testing.T) {
	m := New()
	a, err := m.AddNode(Free{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	b, err := m.AddNode(Free{X: 4, Relative: &a})
	require.NoError(t, err)
	beam, err := m.AddBeam(a, b, rect(), Steel())
	require.NoError(t, err)
	c, err := m.AddNode(OnBeam{Beam: beam, Position: 0.25})
	require.NoError(t, err)

	pb, err := m.Position(b)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 5, Y: 2, Z: 3}, pb)

	pc, err := m.Position(c)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, pc.X, 1e-12)

	length, err := m.Length(beam)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, length, 1e-12)

	inner, err := m.InteriorNodes(beam)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{c}, inner)
}

func TestPosition_CycleDetected(t *testing.T) {
	m := New()
	a, _ := m.AddNode(Free{})
	b, _ := m.AddNode(Free{X: 1, Relative: &a})
	require.NoError(t, m.MoveNode(a, Free{X: 1, Relative: &b}))

	_, err := m.Position(b)
	require.ErrorIs(t, err, ErrCyclicReference)

	_, err = m.Position(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOnBeam_OwnBeamRejected(t *testing.T) {
	m := New()
	a, _ := m.AddNode(Free{})
	b, _ := m.AddNode(Free{X: 1})
	beam, err := m.AddBeam(a, b, rect(), Steel())
	require.NoError(t, err)

	err = m.MoveNode(b, OnBeam{Beam: beam, Position: 0.5})
	require.ErrorIs(t, err, ErrCyclicReference)

	_, err = m.AddNode(OnBeam{Beam: beam, Position: 1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRevision_BumpsOnEveryMutation(t *testing.T) {
	m := New()
	rev := m.Revision()
	step := func(err error) {
		t.Helper()
		require.NoError(t, err)
		assert.Greater(t, m.Revision(), rev)
		rev = m.Revision()
	}

	a, err := m.AddNode(Free{})
	step(err)
	b, err := m.AddNode(Free{X: 3})
	step(err)
	step(m.SetSupport(a, &Fixed))
	beam, err := m.AddBeam(a, b, rect(), Steel())
	step(err)
	step(m.SetRelease(beam, true, EndRelease{Y: Release{Kind: Hinge}}))
	act, err := m.AddAction("dead", nscp.Dead, [3]float64{})
	step(err)
	step(m.AddLoad(act, NodalLoad{Node: b, F: [NumDOF]float64{0, 0, -1}}))
	step(m.RemoveLoad(act, 0))
	c, err := m.AddNode(OnBeam{Beam: beam, Position: 0.5})
	step(err)
	step(m.RemoveNode(c))
}

func TestRemove_InUse(t *testing.T) {
	m := New()
	a, _ := m.AddNode(Free{})
	b, _ := m.AddNode(Free{X: 3})
	beam, _ := m.AddBeam(a, b, rect(), Steel())
	c, _ := m.AddNode(OnBeam{Beam: beam, Position: 0.5})
	act, _ := m.AddAction("live", nscp.Live, [3]float64{0.7, 0.5, 0.3})
	require.NoError(t, m.AddLoad(act, NodalLoad{Node: c}))

	require.ErrorIs(t, m.RemoveNode(a), ErrInUse)
	require.ErrorIs(t, m.RemoveNode(c), ErrInUse)
	require.ErrorIs(t, m.RemoveBeam(beam), ErrInUse)

	require.NoError(t, m.RemoveAction(act))
	require.NoError(t, m.RemoveNode(c))
	require.NoError(t, m.RemoveBeam(beam))
	require.NoError(t, m.RemoveNode(b))
	assert.Equal(t, 1, m.NumNodes())
}

func TestAddLoad_Validation(t *testing.T) {
	m := New()
	a, _ := m.AddNode(Free{})
	b, _ := m.AddNode(Free{X: 2})
	beam, _ := m.AddBeam(a, b, rect(), Steel())
	act, _ := m.AddAction("w", nscp.Wind, [3]float64{})

	require.ErrorIs(t, m.AddLoad(act, PointLoad{Beam: beam, Position: 3}), ErrInvalidArgument)
	require.ErrorIs(t, m.AddLoad(act, DistributedLoad{Beam: beam, A: 1.5, B: 1}), ErrInvalidArgument)
	require.ErrorIs(t, m.AddLoad(act, NodalLoad{Node: 9}), ErrNotFound)
	require.ErrorIs(t, m.AddLoad(99, NodalLoad{Node: a}), ErrNotFound)
	require.NoError(t, m.AddLoad(act, DistributedLoad{Beam: beam, A: 0.5, B: 0.5}))

	_, err := m.AddAction("snow", "S", [3]float64{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPonderations(t *testing.T) {
	m := New()
	d, _ := m.AddAction("dead", nscp.Dead, [3]float64{})
	l, _ := m.AddAction("live", nscp.Live, [3]float64{0.7, 0.5, 0.3})
	_, _ = m.AddAction("wind", nscp.Wind, [3]float64{0.6, 0.2, 0})

	ps := m.Ponderations(nscp.SimplifiedCombinations)
	require.Len(t, ps, 2)
	assert.Equal(t, []Term{{Action: d, Factor: 1.4, Psi: PsiNone}}, ps[0].Terms)
	assert.Equal(t, []Term{{Action: d, Factor: 1.2, Psi: PsiNone}, {Action: l, Factor: 1.6, Psi: PsiNone}}, ps[1].Terms)

	assert.Len(t, m.Ponderations(nscp.LoadCombinations), 7)
	assert.Len(t, m.ActionPonderations(), 3)

	c, err := m.Coefficient(Term{Action: l, Factor: 1.5, Psi: 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.05, c, 1e-12)

	_, err = m.Coefficient(Term{Action: l, Factor: 1, Psi: 3})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

const yamlModel = `
name: portal
materials:
  - name: c28
    preset: concrete
    fc: 28
  - name: custom
    e: 30000
    nu: 0.2
sections:
  - name: col
    type: rectangular
    b: 300
    h: 300
  - name: taper
    type: tapered
    from: {type: rectangular, b: 300, h: 600}
    to: {type: rectangular, b: 300, h: 400}
nodes:
  - {id: 1, support: fixed}
  - {id: 2, z: 3000}
  - {id: 5, beam: 2, position: 0.5}
  - {id: 3, x: 6000, relative_to: 2}
  - {id: 4, x: 6000, support: "111000"}
beams:
  - {id: 1, start: 1, end: 2, section: col, material: c28}
  - {id: 2, start: 2, end: 3, section: taper, material: custom, release: {end_y: hinge, end_z: "spring:1e9"}}
  - {id: 3, start: 4, end: 3, section: col, material: c28, angle: 90}
actions:
  - name: dead
    category: D
    loads:
      - {type: distributed, beam: 2, f: [0, 0, -10, 0, 0, 0]}
      - {type: nodal, node: 5, f: [5000, 0, 0, 0, 0, 0]}
  - name: live
    category: L
    psi: [0.7, 0.5, 0.3]
    loads:
      - {type: point, beam: 2, position: 1500, local: true, f: [0, 0, -20000, 0, 0, 0]}
`

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlModel), 0o644))

	m, f, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "portal", f.Name)
	assert.Equal(t, 5, m.NumNodes())
	assert.Len(t, m.Beams(), 3)
	assert.Len(t, m.Actions(), 2)

	b2, err := m.Beam(2)
	require.NoError(t, err)
	assert.Equal(t, Hinge, b2.ReleaseEnd.Y.Kind)
	assert.Equal(t, Spring, b2.ReleaseEnd.Z.Kind)
	assert.Equal(t, 1e-9, b2.ReleaseEnd.Z.Flexibility())
	assert.False(t, b2.Section.Uniform())
	assert.InDelta(t, nscp.Ec(28), m.Beams()[0].Material.E, 1e-9)

	p3, err := m.Position(NodeID(3))
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 6000, Z: 3000}, p3)

	inner, err := m.InteriorNodes(2)
	require.NoError(t, err)
	require.Len(t, inner, 1)
	mid, err := f.NodeID(5)
	require.NoError(t, err)
	assert.Equal(t, inner[0], mid)
	assert.Equal(t, 5, f.FileNodeID(mid))
	_, err = f.NodeID(9)
	require.ErrorIs(t, err, ErrNotFound)
	b3, err := f.BeamID(3)
	require.NoError(t, err)
	assert.Equal(t, BeamID(3), b3)

	// Round trip through JSON.
	jsonPath := filepath.Join(t.TempDir(), "portal.json")
	require.NoError(t, SaveToFile(jsonPath, f))
	m2, _, err := LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, m.DOFMaps().Free, m2.DOFMaps().Free)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown section": `{"materials":[{"name":"s","preset":"steel"}],"nodes":[{"id":1},{"id":2,"x":1}],"beams":[{"id":1,"start":1,"end":2,"section":"x","material":"s"}]}`,
		"bad support":     `{"nodes":[{"id":1,"support":"11"}]}`,
		"unknown load":    `{"nodes":[{"id":1}],"actions":[{"name":"a","loads":[{"type":"thermal"}]}]}`,
		"duplicate node":  `{"nodes":[{"id":1},{"id":1}]}`,
		"bad release":     `{"materials":[{"name":"s","preset":"steel"}],"sections":[{"name":"c","type":"circular","d":10}],"nodes":[{"id":1},{"id":2,"x":1}],"beams":[{"id":1,"start":1,"end":2,"section":"c","material":"s","release":{"start_y":"spring:-1"}}]}`,
		"orphan on-beam":  `{"nodes":[{"id":1,"beam":7,"position":0.5}]}`,
		"zero node id":    `{"nodes":[{"id":0}]}`,
		"zero beam id":    `{"materials":[{"name":"s","preset":"steel"}],"sections":[{"name":"c","type":"circular","d":10}],"nodes":[{"id":1},{"id":2,"x":1}],"beams":[{"id":0,"start":1,"end":2,"section":"c","material":"s"}]}`,
		"circular nodes":  `{"nodes":[{"id":1,"relative_to":2},{"id":2,"relative_to":1}]}`,
		"unknown end":     `{"materials":[{"name":"s","preset":"steel"}],"sections":[{"name":"c","type":"circular","d":10}],"nodes":[{"id":1}],"beams":[{"id":1,"start":1,"end":9,"section":"c","material":"s"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "m.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, _, err := LoadFromFile(path)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

const secondaryBeam = `
materials:
  - {name: steel, preset: steel}
sections:
  - {name: c, type: circular, d: 100}
nodes:
  - {id: 5, z: 1000, relative_to: 3}
  - {id: 1, support: fixed}
  - {id: 3, beam: 1, position: 0.5}
  - {id: 2, x: 6000, support: fixed}
  - {id: 4, x: 3000, y: 4000, support: fixed}
beams:
  - {id: 2, start: 3, end: 4, section: c, material: steel}
  - {id: 1, start: 1, end: 2, section: c, material: steel}
`

func TestLoadFromFile_BeamFramingIntoOnBeamNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(secondaryBeam), 0o644))

	m, f, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, m.NumNodes())
	assert.Len(t, m.Beams(), 2)

	mid, err := f.NodeID(3)
	require.NoError(t, err)
	p, err := m.Position(mid)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 3000}, p)

	primary, err := f.BeamID(1)
	require.NoError(t, err)
	inner, err := m.InteriorNodes(primary)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{mid}, inner)

	secondary, err := f.BeamID(2)
	require.NoError(t, err)
	b, err := m.Beam(secondary)
	require.NoError(t, err)
	assert.Equal(t, mid, b.Start)

	top, err := f.NodeID(5)
	require.NoError(t, err)
	p, err = m.Position(top)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 3000, Z: 1000}, p)
}
