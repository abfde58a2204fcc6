// Package diagram renders beam diagrams: terminal charts through
// asciigraph and image files through gonum/plot.
package diagram

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/goframe/internal/poly"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("diagram: empty function")

// Series is one function drawn along a beam.
type Series struct {
	Name string
	F    *poly.Function
}

// ASCIIOptions sizes a terminal chart, in characters.
type ASCIIOptions struct {
	Width   int
	Height  int
	Caption string
}

// ASCII draws one or more series sampled at Width evenly spaced points.
func ASCII(series []Series, opts ASCIIOptions) (string, error) {
	if len(series) == 0 {
		return "", ErrEmpty
	}
	width := max(opts.Width, 2)
	data := make([][]float64, len(series))
	for i, s := range series {
		ys, err := uniform(s.F, width)
		if err != nil {
			return "", fmt.Errorf("%s: %w", s.Name, err)
		}
		data[i] = ys
	}

	options := []asciigraph.Option{
		asciigraph.Height(max(opts.Height, 2)),
		asciigraph.Precision(3),
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}
	if len(series) > 1 {
		colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Blue, asciigraph.Green, asciigraph.Yellow}
		options = append(options, asciigraph.SeriesColors(colors[:min(len(series), len(colors))]...))
	}
	return asciigraph.PlotMany(data, options...), nil
}

// uniform samples f at n evenly spaced points of its domain.
func uniform(f *poly.Function, n int) ([]float64, error) {
	start, end, ok := f.Domain()
	if !ok {
		return nil, ErrEmpty
	}
	ys := make([]float64, n)
	for i := range ys {
		x := start + (end-start)*float64(i)/float64(n-1)
		ys[i] = f.Eval(x, 0)
	}
	return ys, nil
}

// Box frames a title and lines of text.
func Box(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4

	border := strings.Repeat("═", width)
	pad := func(s string) string {
		return s + strings.Repeat(" ", width-4-utf8.RuneCountInString(s))
	}
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(title))
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(line))
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)
	return sb.String()
}

// Extremes lists the minimum and maximum of f with their abscissas.
func Extremes(f *poly.Function) []string {
	lo, hi, ok := f.Extrema()
	if !ok {
		return nil
	}
	return []string{
		fmt.Sprintf("max %12.5g at x = %.4g", clean(hi.Value), hi.X),
		fmt.Sprintf("min %12.5g at x = %.4g", clean(lo.Value), lo.X),
	}
}

// clean removes negative zeros.
func clean(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
