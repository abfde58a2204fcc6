package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/goframe/internal/poly"
)

// ImageOptions describes an exported chart. Width and Height are in inches.
type ImageOptions struct {
	Title   string
	XLabel  string
	YLabel  string
	Width   float64
	Height  float64
	Samples int
}

var palette = []color.Color{
	color.RGBA{R: 0, G: 0, B: 139, A: 255},
	color.RGBA{R: 200, G: 0, B: 0, A: 255},
	color.RGBA{R: 0, G: 120, B: 0, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
}

// Export draws the series to filename. The format follows the extension
// (.png, .svg or .pdf); any other extension gets ".png" appended.
func Export(series []Series, opts ImageOptions, filename string) error {
	if len(series) == 0 {
		return ErrEmpty
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	var start, end float64
	for i, s := range series {
		pts, err := Points(s.F, opts.Samples)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = palette[i%len(palette)]
		p.Add(line)
		if len(series) > 1 {
			p.Legend.Add(s.Name, line)
		}
		start, end = pts[0].X, pts[len(pts)-1].X
	}

	// Beam axis.
	axis, err := plotter.NewLine(plotter.XYs{{X: start, Y: 0}, {X: end, Y: 0}})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 96}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(axis)

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	width, height := vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// Points samples f for drawing: n evenly spaced points merged with its
// characteristic points. A discontinuity contributes both of its values.
func Points(f *poly.Function, n int) (plotter.XYs, error) {
	start, end, ok := f.Domain()
	if !ok {
		return nil, ErrEmpty
	}
	n = max(n, 2)
	xs := f.CharacteristicPoints()
	for i := 0; i < n; i++ {
		xs = append(xs, start+(end-start)*float64(i)/float64(n-1))
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	pts := make(plotter.XYs, 0, len(xs)+len(f.Segments))
	for _, x := range xs {
		left, right := f.Eval(x, -1), f.Eval(x, 1)
		switch {
		case x == start || math.IsNaN(left):
			pts = append(pts, plotter.XY{X: x, Y: right})
		case x == end || math.IsNaN(right) || poly.Equal(left, right):
			pts = append(pts, plotter.XY{X: x, Y: left})
		default:
			pts = append(pts, plotter.XY{X: x, Y: left}, plotter.XY{X: x, Y: right})
		}
	}
	return pts, nil
}
