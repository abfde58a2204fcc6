package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/model"
)

var solveAction string

var solveCmd = &cobra.Command{
	Use:   "solve <model>",
	Short: "Solve every action of a model",
	Long: `Assemble and solve a frame model, then print the nodal
displacements and support reactions of each action.

Reactions are the forces transmitted to the supports.

Examples:
  goframe solve portal.yaml
  goframe solve portal.json --action dead`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveAction, "action", "a", "", "Only solve the named action")
}

func runSolve(cmd *cobra.Command, args []string) {
	p, err := openProject(args[0])
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}

	actions := p.model.Actions()
	if len(actions) == 0 {
		fmt.Println("Error: the model defines no action.")
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                 LINEAR-ELASTIC FRAME ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if p.file.Name != "" {
		fmt.Printf("  Model: %s\n", p.file.Name)
	}
	if p.file.Description != "" {
		fmt.Printf("  Description: %s\n", p.file.Description)
	}
	maps, err := p.analysis.Maps()
	if err != nil {
		fmt.Printf("Error analyzing model: %v\n", err)
		return
	}
	fmt.Printf("  Nodes: %d   Beams: %d   DOF: %d (%d free)\n",
		p.model.NumNodes(), len(p.model.Beams()), maps.Total, maps.Free)
	fmt.Println()

	found := false
	for _, act := range actions {
		if solveAction != "" && act.Name != solveAction {
			continue
		}
		found = true
		r, err := p.analysis.Solve(act.ID)
		if err != nil {
			fmt.Printf("Error solving action %q: %v\n", act.Name, err)
			return
		}

		fmt.Printf("ACTION: %s", act.Name)
		if act.Category != "" {
			fmt.Printf(" (%s)", act.Category)
		}
		fmt.Println()
		fmt.Println(rule)

		fmt.Println("  Displacements:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		printHeader(w)
		for i, id := range maps.Nodes {
			printRow(w, p.file.FileNodeID(id), r.Displacements[i*model.NumDOF:(i+1)*model.NumDOF])
		}
		w.Flush()
		fmt.Println()

		fmt.Println("  Reactions:")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		printHeader(w)
		for i, id := range maps.Nodes {
			n, err := p.model.Node(id)
			if err != nil || n.Support == nil {
				continue
			}
			printRow(w, p.file.FileNodeID(id), r.Reactions[i*model.NumDOF:(i+1)*model.NumDOF])
		}
		w.Flush()
		fmt.Println()
		fmt.Printf("  Residual: %.3g\n", r.Residual)
		fmt.Println()
	}
	if !found {
		fmt.Printf("Error: no action named %q.\n", solveAction)
	}
}

func printHeader(w *tabwriter.Writer) {
	fmt.Fprint(w, "  Node\t")
	for _, n := range model.DOFNames {
		fmt.Fprintf(w, "%s\t", n)
	}
	fmt.Fprintln(w)
}

func printRow(w *tabwriter.Writer, id int, values []float64) {
	fmt.Fprintf(w, "  %d\t", id)
	for _, v := range values {
		if v == 0 {
			v = 0 // drop the sign of -0
		}
		fmt.Fprintf(w, "%.5g\t", v)
	}
	fmt.Fprintln(w)
}
