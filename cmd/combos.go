package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/nscp"
)

var combosTable string

var combosCmd = &cobra.Command{
	Use:   "combos [model]",
	Short: "List NSCP load combinations and the load cases they generate",
	Long: `List the NSCP 2015 load combinations of a table. Given a model file,
also list the weighted load cases built from the category of each action.

Load categories:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  goframe combos
  goframe combos portal.yaml --table simplified`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringVarP(&combosTable, "table", "t", "nscp", "Combination table: nscp or simplified")
}

func runCombos(cmd *cobra.Command, args []string) {
	combinations, err := nscp.Table(combosTable)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\t")
	for _, c := range nscp.Categories {
		fmt.Fprintf(w, "%s\t", c)
	}
	fmt.Fprintln(w)
	for _, combo := range combinations {
		fmt.Fprintf(w, "  %s\t%s\t", combo.ID, combo.Description)
		for _, c := range nscp.Categories {
			fmt.Fprintf(w, "%.2g\t", combo.Factor(c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	if len(args) == 0 {
		return
	}
	p, err := openProject(args[0])
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}

	fmt.Println("ACTIONS:")
	fmt.Println(rule)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Action\tCategory\tLoads\n")
	for _, a := range p.model.Actions() {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", a.Name, a.Category, len(a.Loads))
	}
	w.Flush()
	fmt.Println()

	ponds, err := p.ponderations(combosTable)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("LOAD CASES:")
	fmt.Println(rule)
	for _, pond := range ponds {
		terms := make([]string, 0, len(pond.Terms))
		for _, t := range pond.Terms {
			a, err := p.model.Action(t.Action)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			k, err := p.model.Coefficient(t)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			terms = append(terms, fmt.Sprintf("%.2g·%s", k, a.Name))
		}
		fmt.Printf("  %s\n      = %s\n", pond.Name, strings.Join(terms, " + "))
	}
	fmt.Println()
}
