package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/section"
)

var sectionCmd = &cobra.Command{
	Use:   "section <file>",
	Short: "Geometric properties of a cross-section",
	Long: `Compute the properties used by the frame analysis (area, second
moments of area and torsion constant) of a section defined in a JSON
or YAML file, using the same syntax as the sections of a model file.

Section types: rectangular (b, h), circular (d), generic (area, iy,
iz, j), polygon (vertices, optional j) and tapered (from, to).

Example JSON file structure:
{
  "type": "polygon",
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 300, "y": 0},
    {"x": 300, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": 0, "y": 500}
  ]
}`,
	Args: cobra.ExactArgs(1),
	Run:  runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}

func runSection(cmd *cobra.Command, args []string) {
	spec, sec, err := section.LoadFromFile(args[0])
	if err != nil {
		fmt.Printf("Error loading section: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                  CROSS-SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Type: %s\n", sec.Kind())
	fmt.Println()

	if poly, ok := sec.(section.Polygon); ok {
		g := poly.Geometry()
		fmt.Println("SECTION GEOMETRY:")
		fmt.Println(rule)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Width:\t%.4g\n", g.Width)
		fmt.Fprintf(w, "  Height:\t%.4g\n", g.Height)
		fmt.Fprintf(w, "  Centroid:\t(%.4g, %.4g)\n", g.CentroidX, g.CentroidY)
		fmt.Fprintf(w, "  Vertices:\t%d points\n", len(spec.Vertices))
		w.Flush()
		fmt.Println()
	}

	stations := []float64{0}
	if !sec.Uniform() {
		stations = []float64{0, 0.5, 1}
	}
	fmt.Println("PROPERTIES:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  t\tArea\tIy\tIz\tJ\t\n")
	for _, t := range stations {
		p := sec.At(t)
		fmt.Fprintf(w, "  %.2g\t%.5g\t%.5g\t%.5g\t%.5g\t\n", t, p.Area, p.Iy, p.Iz, p.J)
	}
	w.Flush()
	fmt.Println()
}
