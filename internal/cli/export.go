package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/pkg/pipeline"
)

// exportCommand creates the export command for writing visible subgraphs.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format      string
		output      string
		full        bool
		expand      []string
		entrypoints []string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Export the visible subgraph as DOT, SVG, or JSON",
		Long: `Export the visible subgraph as DOT, SVG, or JSON.

By default only the entrypoints are visible. Use --expand to reveal the
neighborhoods of specific nodes first, or --full to export the entire
graph. Layout is delegated to Graphviz; the engine emits no coordinates.

SVG artifacts are cached per (graph, visible set) in the local cache dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !pipeline.ValidFormats[format] {
				return fmt.Errorf("unsupported format: %s (want dot, svg, or json)", format)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Build(cmd.Context(), c.buildOptions(args[0], entrypoints))
			if err != nil {
				return fmt.Errorf("build explorer: %w", err)
			}

			if full {
				result.Explorer.ShowAll()
			}
			for _, id := range expand {
				if !result.Explorer.IsVisible(id) {
					return fmt.Errorf("cannot expand hidden node: %s", id)
				}
				result.Explorer.Expand(id)
			}

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s...", format))
			spinner.Start()
			artifact, cacheHit, err := runner.Export(cmd.Context(), result, format, nil)
			if err != nil {
				spinner.StopWithError("Export failed")
				return err
			}
			spinner.Stop()

			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + "." + format
			}
			if err := os.WriteFile(output, artifact, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			source := "computed"
			if cacheHit {
				source = "cached"
			}
			stats := result.Explorer.Stats()
			fmt.Printf("%s %s (%s, %d/%d nodes visible)\n",
				StyleSuccess.Render("✓"), StyleValue.Render(output), source, stats.Visible, stats.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: graph path with format extension)")
	cmd.Flags().BoolVar(&full, "full", false, "export the entire graph, not just the entrypoints")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "expand this node before exporting (repeatable, in order)")
	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable, disables pattern matching)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
