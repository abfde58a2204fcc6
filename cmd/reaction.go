package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/analysis"
	"github.com/alexiusacademia/goframe/internal/model"
)

var (
	queryNode   int
	queryDOF    string
	queryCombos string
)

var reactionCmd = &cobra.Command{
	Use:   "reaction <model>",
	Short: "Min/max support reaction over load combinations",
	Long: `Compute a support reaction for every load case and report the
governing minimum and maximum.

Load cases are the actions themselves (--combos actions) or the
combinations of an NSCP 2015 table built from each action category
(--combos nscp or --combos simplified).

Examples:
  goframe reaction portal.yaml --node 1 --dof uz
  goframe reaction portal.yaml --node 1 --dof ry --combos nscp`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runQuery(args[0], "REACTION", (*analysis.Analysis).Reaction)
	},
}

var displacementCmd = &cobra.Command{
	Use:   "displacement <model>",
	Short: "Min/max nodal displacement over load combinations",
	Long: `Compute a nodal displacement for every load case and report the
governing minimum and maximum.

Examples:
  goframe displacement portal.yaml --node 3 --dof uz --combos simplified`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runQuery(args[0], "DISPLACEMENT", (*analysis.Analysis).Displacement)
	},
}

func init() {
	for _, c := range []*cobra.Command{reactionCmd, displacementCmd} {
		rootCmd.AddCommand(c)
		c.Flags().IntVarP(&queryNode, "node", "n", 0, "Node id from the model file [required]")
		c.Flags().StringVarP(&queryDOF, "dof", "d", "", "Degree of freedom: ux, uy, uz, rx, ry or rz [required]")
		c.Flags().StringVarP(&queryCombos, "combos", "c", "actions", "Load cases: actions, nscp or simplified")
		c.MarkFlagRequired("node")
		c.MarkFlagRequired("dof")
	}
}

type queryFunc func(*analysis.Analysis, model.NodeID, int, []model.Ponderation) (analysis.Query, error)

func runQuery(path, title string, query queryFunc) {
	p, err := openProject(path)
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}
	node, err := p.node(queryNode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	dof, err := model.ParseDOF(queryDOF)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	ponds, err := p.ponderations(queryCombos)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	q, err := query(p.analysis, node, dof, ponds)
	if err != nil {
		fmt.Printf("Error analyzing model: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          %s AT NODE %d, %s\n", title, queryNode, model.DOFNames[dof])
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD CASES:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tLoad case\tValue\n")
	fmt.Fprintf(w, "  ─\t─────────\t─────\n")
	for i, pond := range ponds {
		single, err := query(p.analysis, node, dof, ponds[i:i+1])
		if err != nil {
			fmt.Printf("Error analyzing model: %v\n", err)
			return
		}
		marker := ""
		switch i {
		case q.MaxIndex:
			marker = " ← MAX"
		case q.MinIndex:
			marker = " ← MIN"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s%s\n", i+1, pond.Name, single.Text, marker)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("RESULT:")
	fmt.Println(rule)
	fmt.Printf("  Min: %.6g (%s)\n", q.Min, ponds[q.MinIndex].Name)
	fmt.Printf("  Max: %.6g (%s)\n", q.Max, ponds[q.MaxIndex].Name)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  %s = %s  \n", model.DOFNames[dof], q.Text)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
}
