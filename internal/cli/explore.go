package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCommand creates the explore command for interactive exploration.
func (c *CLI) exploreCommand() *cobra.Command {
	var entrypoints []string

	cmd := &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Explore a graph interactively in the terminal",
		Long: `Explore a graph interactively in the terminal.

The explorer starts with only the entrypoint nodes visible. Move the cursor
over a node and expand it to reveal its neighbors, collapse it to hide it
again (stranded nodes are pruned automatically), or trace its ancestry back
to the entrypoints.

Entrypoints come from the --entrypoint flags, the config file, or the
default naming patterns, in that order of precedence.`,
		Args: cobra.ExactArgs(1),
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

			program := tea.NewProgram(NewExplorerModel(result), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable, disables pattern matching)")

	return cmd
}
