package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/element"
)

var (
	diagramBeam      int
	diagramComponent string
	diagramCombos    string
	diagramCase      string
	diagramExport    string
	diagramNoASCII   bool
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <model>",
	Short: "Internal force or deformation diagram of a beam",
	Long: `Print a diagram along a beam for one load case: its extreme values,
its characteristic points and an ASCII chart. The diagram can also be
exported as an image.

Components (local axes):
  N, Vy, Vz, T, My, Mz  - axial force, shears, torque, bending moments
  dx, dy, dz            - displacements
  rx, ry, rz            - rotations

Examples:
  goframe diagram portal.yaml --beam 2 --component Mz --case dead
  goframe diagram portal.yaml --beam 2 -k My --combos nscp --case U2 -o my.png`,
	Args: cobra.ExactArgs(1),
	Run:  runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().IntVarP(&diagramBeam, "beam", "b", 0, "Beam id from the model file [required]")
	diagramCmd.Flags().StringVarP(&diagramComponent, "component", "k", "Mz", "Diagram component")
	diagramCmd.Flags().StringVarP(&diagramCombos, "combos", "c", "actions", "Load cases: actions, nscp or simplified")
	diagramCmd.Flags().StringVar(&diagramCase, "case", "", "Action name or combination id such as U2 (default: first)")
	diagramCmd.Flags().StringVarP(&diagramExport, "output", "o", "", "Export diagram to file (png, svg, pdf)")
	diagramCmd.Flags().BoolVar(&diagramNoASCII, "no-ascii", false, "Do not draw the ASCII chart")
	diagramCmd.MarkFlagRequired("beam")
}

func runDiagram(cmd *cobra.Command, args []string) {
	p, err := openProject(args[0])
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}
	beam, err := p.beam(diagramBeam)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	comp, err := element.ParseComponent(diagramComponent)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	ponds, err := p.ponderations(diagramCombos)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	pond, err := pick(ponds, diagramCase)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	f, err := p.analysis.Diagram(beam, comp, pond)
	if err != nil {
		fmt.Printf("Error analyzing model: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          BEAM %d: %s DIAGRAM\n", diagramBeam, comp)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Load case: %s\n", pond.Name)
	fmt.Println()

	fmt.Print(diagram.Box(fmt.Sprintf("%s extremes", comp), diagram.Extremes(f)))
	fmt.Println()

	fmt.Println("CHARACTERISTIC POINTS:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  x\tleft\tright\t\n")
	for _, x := range f.CharacteristicPoints() {
		fmt.Fprintf(w, "  %.5g\t%.5g\t%.5g\t\n", x, f.Eval(x, -1), f.Eval(x, 1))
	}
	w.Flush()
	fmt.Println()

	if !diagramNoASCII {
		out, err := diagram.ASCII([]diagram.Series{{Name: comp.String(), F: f}}, diagram.ASCIIOptions{
			Width:   cfg.Diagram.ASCIIWidth,
			Height:  cfg.Diagram.ASCIIHeight,
			Caption: fmt.Sprintf("%s along beam %d (%s)", comp, diagramBeam, pond.Name),
		})
		if err != nil {
			fmt.Printf("Error drawing diagram: %v\n", err)
			return
		}
		fmt.Println(out)
		fmt.Println()
	}

	if diagramExport != "" {
		err := diagram.Export([]diagram.Series{{Name: comp.String(), F: f}}, diagram.ImageOptions{
			Title:   fmt.Sprintf("Beam %d: %s (%s)", diagramBeam, comp, pond.Name),
			XLabel:  "x",
			YLabel:  comp.String(),
			Width:   cfg.Diagram.Width,
			Height:  cfg.Diagram.Height,
			Samples: cfg.Diagram.Samples,
		}, diagramExport)
		if err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
			return
		}
		fmt.Printf("  Diagram exported to %s\n", diagramExport)
		fmt.Println()
	}
}
