package cmd

import (
	"fmt"

	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/spf13/cobra"
)

// navigatorsCmd represents the navigators command
var navigatorsCmd = &cobra.Command{
	Use:   "navigators",
	Short: "List the available finders and queues",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Finders:")
		for _, name := range path.FinderNames() {
			marker := ""
			if path.IsHeuristic(name) {
				marker = " (heuristic, uses the priority queue)"
			}
			if name == cfg.Search.Navigator {
				marker += " [default]"
			}
			fmt.Fprintf(out, "  %s%s\n", name, marker)
		}
		fmt.Fprintln(out, "Queues:")
		for _, kind := range queue.Kinds() {
			fmt.Fprintf(out, "  %s\n", kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(navigatorsCmd)
}
