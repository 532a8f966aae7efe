package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCommand creates the stats command for graph summaries.
func (c *CLI) statsCommand() *cobra.Command {
	var entrypoints []string

	cmd := &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print graph statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Build(cmd.Context(), c.buildOptions(args[0], entrypoints))
			if err != nil {
				return fmt.Errorf("build explorer: %w", err)
			}

			s := result.Stats
			fmt.Println(StyleTitle.Render("Graph"))
			fmt.Printf("  nodes        %s\n", StyleNumber.Render(fmt.Sprint(s.NodeCount)))
			fmt.Printf("  edges        %s\n", StyleNumber.Render(fmt.Sprint(s.EdgeCount)))
			fmt.Printf("  entrypoints  %s\n", StyleNumber.Render(fmt.Sprint(s.Entrypoints)))
			if s.DroppedEdges > 0 {
				fmt.Printf("  dropped      %s %s\n",
					StyleWarning.Render(fmt.Sprint(s.DroppedEdges)),
					StyleDim.Render("(edges with unknown endpoints)"))
			}

			fmt.Println(StyleTitle.Render("Entrypoints"))
			for _, id := range result.Model.Entrypoints() {
				out, in := result.Index.Degree(id)
				fmt.Printf("%s%s  %s\n", iconEntrypoint, StyleValue.Render(id),
					StyleDim.Render(fmt.Sprintf("↓%d ↑%d", out, in)))
			}

			fmt.Println(StyleDim.Render(fmt.Sprintf("load %v · index %v", s.LoadTime, s.IndexTime)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable, disables pattern matching)")

	return cmd
}
