package section

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangular(t *testing.T) {
	p := Rectangular{B: 300, H: 500}.At(0)

	assert.InDelta(t, 150000.0, p.Area, 1e-9)
	assert.InDelta(t, 300*math.Pow(500, 3)/12, p.Iy, 1e-3)
	assert.InDelta(t, 500*math.Pow(300, 3)/12, p.Iz, 1e-3)
	// b/a = 0.6 gives J ≈ 0.2 a b³ for a solid rectangle.
	assert.InDelta(t, 500*math.Pow(300, 3)*(1.0/3-0.21*0.6*(1-math.Pow(0.6, 4)/12)), p.J, 1e-3)
}

func TestCircular(t *testing.T) {
	p := Circular{D: 2}.At(0.5)
	assert.InDelta(t, math.Pi, p.Area, 1e-12)
	assert.InDelta(t, math.Pi/4, p.Iy, 1e-12)
	assert.InDelta(t, math.Pi/4, p.Iz, 1e-12)
	assert.InDelta(t, math.Pi/2, p.J, 1e-12)
}

func TestPolygon_MatchesRectangle(t *testing.T) {
	// Clockwise and offset from the origin.
	poly := Polygon{Vertices: []Point{
		{X: 100, Y: 50}, {X: 100, Y: 550}, {X: 400, Y: 550}, {X: 400, Y: 50},
	}}
	require.NoError(t, poly.Validate())

	g := poly.Geometry()
	rect := Rectangular{B: 300, H: 500}.At(0)
	assert.InDelta(t, rect.Area, g.Area, 1e-6)
	assert.InDelta(t, rect.Iy, g.Iy, 1e-3)
	assert.InDelta(t, rect.Iz, g.Iz, 1e-3)
	assert.InDelta(t, 250.0, g.CentroidX, 1e-9)
	assert.InDelta(t, 300.0, g.CentroidY, 1e-9)
	assert.Equal(t, 300.0, g.Width)
	assert.Equal(t, 500.0, g.Height)
	assert.Greater(t, g.J, 0.0)
}

func TestPolygon_TSection(t *testing.T) {
	// Flange 600×100 over a 200×400 web.
	poly := Polygon{Vertices: []Point{
		{X: 200, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 400}, {X: 600, Y: 400},
		{X: 600, Y: 500}, {X: 0, Y: 500}, {X: 0, Y: 400}, {X: 200, Y: 400},
	}, Torsion: 1e9}
	g := poly.Geometry()

	aw, af := 200.0*400, 600.0*100
	yc := (aw*200 + af*450) / (aw + af)
	iy := 200*math.Pow(400, 3)/12 + aw*math.Pow(200-yc, 2) +
		600*math.Pow(100, 3)/12 + af*math.Pow(450-yc, 2)

	assert.InDelta(t, aw+af, g.Area, 1e-6)
	assert.InDelta(t, yc, g.CentroidY, 1e-9)
	assert.InDelta(t, iy, g.Iy, 1e-2)
	assert.Equal(t, 1e9, g.J)
}

func TestPolygon_Invalid(t *testing.T) {
	err := Polygon{Vertices: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	err = Polygon{Vertices: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}.Validate()
	require.Error(t, err)
}

func TestTapered(t *testing.T) {
	tp := Tapered{From: Rectangular{B: 300, H: 400}, To: Rectangular{B: 300, H: 600}}
	require.NoError(t, tp.Validate())
	assert.False(t, tp.Uniform())

	start, end := tp.At(0), tp.At(1)
	assert.InDelta(t, Rectangular{B: 300, H: 400}.At(0).Iy, start.Iy, 1e-6)
	assert.InDelta(t, Rectangular{B: 300, H: 600}.At(0).Iy, end.Iy, 1e-6)
	assert.InDelta(t, (start.Area+end.Area)/2, tp.At(0.5).Area, 1e-9)

	require.Error(t, Tapered{From: Circular{D: 1}}.Validate())
}

func TestSpec_Build(t *testing.T) {
	sec, err := (&Spec{Type: "rectangular", B: 200, H: 300}).Build()
	require.NoError(t, err)
	assert.Equal(t, "rectangular", sec.Kind())

	sec, err = (&Spec{
		Type: "tapered",
		From: &Spec{Type: "circle", D: 1},
		To:   &Spec{Type: "generic", Area: 1, Iy: 2, Iz: 3, J: 4},
	}).Build()
	require.NoError(t, err)
	assert.Equal(t, "tapered", sec.Kind())
	assert.InDelta(t, 4.0, sec.At(1).J, 1e-12)

	_, err = (&Spec{Type: "rectangular", B: 200}).Build()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "h must be positive")

	_, err = (&Spec{Type: "hexagon"}).Build()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tee.yaml")
	body := `type: polygon
vertices:
  - {x: 0, y: 0}
  - {x: 300, y: 0}
  - {x: 300, y: 500}
  - {x: 0, y: 500}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	spec, sec, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "polygon", spec.Type)
	assert.InDelta(t, 150000.0, sec.At(0).Area, 1e-6)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"type":"circle"}`), 0o644))
	_, _, err = LoadFromFile(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
