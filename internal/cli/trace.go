package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// traceCommand creates the trace command for ancestry lookups.
func (c *CLI) traceCommand() *cobra.Command {
	var entrypoints []string

	cmd := &cobra.Command{
		Use:   "trace [graph.json] [node]",
		Short: "Trace a node's ancestry back to the entrypoints",
		Long: `Trace a node's ancestry back to the entrypoints.

The trace walks backward along incoming edges and prints every node lying
on some path from an entrypoint down to the given node. Diamond-shaped
ancestries include every contributing branch. A node with no path to any
entrypoint prints only itself.`,
		Args: cobra.ExactArgs(2),
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

			id := args[1]
			if !result.Model.Has(id) {
				return fmt.Errorf("unknown node: %s", id)
			}

			path := result.Explorer.TraceToEntrypoints(id)

			fmt.Println(StyleTitle.Render(fmt.Sprintf("Ancestry of %s", id)))
			for _, p := range path {
				icon := iconNode
				style := StyleValue
				switch {
				case result.Model.IsEntrypoint(p):
					icon = iconEntrypoint
					style = StyleSuccess
				case p == id:
					style = StyleWarning
				}
				fmt.Printf("%s%s\n", icon, style.Render(p))
			}
			fmt.Println(StyleDim.Render(fmt.Sprintf("%d nodes on path", len(path))))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable, disables pattern matching)")

	return cmd
}
