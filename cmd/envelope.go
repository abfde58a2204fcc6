package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/element"
	"github.com/alexiusacademia/goframe/internal/poly"
)

var (
	envelopeBeam      int
	envelopeComponent string
	envelopeCombos    string
	envelopeExport    string
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope <model>",
	Short: "Max/min envelope of a beam diagram over load combinations",
	Long: `Combine a beam diagram over every load case and print the upper and
lower envelopes, with the load case that governs each extreme.

Examples:
  goframe envelope portal.yaml --beam 2 --component Mz --combos nscp
  goframe envelope portal.yaml -b 1 -k N -c simplified -o n.svg`,
	Args: cobra.ExactArgs(1),
	Run:  runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeCmd.Flags().IntVarP(&envelopeBeam, "beam", "b", 0, "Beam id from the model file [required]")
	envelopeCmd.Flags().StringVarP(&envelopeComponent, "component", "k", "Mz", "Diagram component")
	envelopeCmd.Flags().StringVarP(&envelopeCombos, "combos", "c", "nscp", "Load cases: actions, nscp or simplified")
	envelopeCmd.Flags().StringVarP(&envelopeExport, "output", "o", "", "Export envelope to file (png, svg, pdf)")
	envelopeCmd.MarkFlagRequired("beam")
}

func runEnvelope(cmd *cobra.Command, args []string) {
	p, err := openProject(args[0])
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}
	beam, err := p.beam(envelopeBeam)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	comp, err := element.ParseComponent(envelopeComponent)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	ponds, err := p.ponderations(envelopeCombos)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	env, err := p.analysis.Envelope(beam, comp, ponds)
	if err != nil {
		fmt.Printf("Error analyzing model: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          BEAM %d: %s ENVELOPE\n", envelopeBeam, comp)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Load cases: %d (%s)\n", len(ponds), envelopeCombos)
	fmt.Println()

	governing := func(index *poly.Function, e poly.Extremum) string {
		if i := poly.IndexAt(index, e.X, e.Side); i >= 0 && i < len(ponds) {
			return ponds[i].Name
		}
		return "-"
	}
	_, hi, _ := env.Max.Extrema()
	lo, _, _ := env.Min.Extrema()
	fmt.Print(diagram.Box(fmt.Sprintf("%s envelope", comp), []string{
		fmt.Sprintf("max %12.5g at x = %.4g", hi.Value, hi.X),
		fmt.Sprintf("    governed by %s", governing(env.MaxIndex, hi)),
		fmt.Sprintf("min %12.5g at x = %.4g", lo.Value, lo.X),
		fmt.Sprintf("    governed by %s", governing(env.MinIndex, lo)),
	}))
	fmt.Println()

	series := []diagram.Series{{Name: "max", F: env.Max}, {Name: "min", F: env.Min}}
	out, err := diagram.ASCII(series, diagram.ASCIIOptions{
		Width:   cfg.Diagram.ASCIIWidth,
		Height:  cfg.Diagram.ASCIIHeight,
		Caption: fmt.Sprintf("%s envelope along beam %d", comp, envelopeBeam),
	})
	if err != nil {
		fmt.Printf("Error drawing envelope: %v\n", err)
		return
	}
	fmt.Println(out)
	fmt.Println()

	if envelopeExport != "" {
		err := diagram.Export(series, diagram.ImageOptions{
			Title:   fmt.Sprintf("Beam %d: %s envelope", envelopeBeam, comp),
			XLabel:  "x",
			YLabel:  comp.String(),
			Width:   cfg.Diagram.Width,
			Height:  cfg.Diagram.Height,
			Samples: cfg.Diagram.Samples,
		}, envelopeExport)
		if err != nil {
			fmt.Printf("Error exporting envelope: %v\n", err)
			return
		}
		fmt.Printf("  Envelope exported to %s\n", envelopeExport)
		fmt.Println()
	}
}
