package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/pkg/pipeline"
	"github.com/matzehuels/graphlens/pkg/store"
)

// viewCommand creates the view command group for saved explorations.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Manage saved exploration views",
		Long: `Manage saved exploration views.

A view is a named snapshot of the visible-node set for a specific graph.
Views are keyed by graph content, so renaming the file does not detach
saved views but editing the graph does.`,
	}

	cmd.AddCommand(c.viewSaveCommand())
	cmd.AddCommand(c.viewListCommand())
	cmd.AddCommand(c.viewDeleteCommand())

	return cmd
}

func (c *CLI) viewSaveCommand() *cobra.Command {
	var (
		expand      []string
		full        bool
		entrypoints []string
	)

	cmd := &cobra.Command{
		Use:   "save [graph.json] [name]",
		Short: "Save a view of the graph",
		Long: `Save a view of the graph.

The visible set starts at the entrypoints; --expand reveals neighborhoods
before the snapshot is taken, --full includes every node.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.buildForViews(cmd.Context(), args[0], entrypoints)
			if err != nil {
				return err
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

			views, err := c.newViewStore(cmd.Context())
			if err != nil {
				return err
			}
			defer views.Close(cmd.Context())

			v, err := store.NewView(args[1], result.GraphHash, result.Explorer.VisibleIDs())
			if err != nil {
				return err
			}
			if err := views.Save(cmd.Context(), v); err != nil {
				return err
			}

			fmt.Printf("%s saved view %s (%d nodes)\n",
				StyleSuccess.Render("✓"), StyleValue.Render(v.Name), len(v.Visible))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&expand, "expand", nil, "expand this node before saving (repeatable, in order)")
	cmd.Flags().BoolVar(&full, "full", false, "save the entire graph as visible")
	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable)")

	return cmd
}

func (c *CLI) viewListCommand() *cobra.Command {
	var entrypoints []string

	cmd := &cobra.Command{
		Use:   "list [graph.json]",
		Short: "List saved views for a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.buildForViews(cmd.Context(), args[0], entrypoints)
			if err != nil {
				return err
			}

			views, err := c.newViewStore(cmd.Context())
			if err != nil {
				return err
			}
			defer views.Close(cmd.Context())

			all, err := views.List(cmd.Context(), result.GraphHash)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println(StyleDim.Render("no saved views for this graph"))
				return nil
			}

			fmt.Println(StyleTitle.Render("Saved views"))
			for _, v := range all {
				fmt.Printf("%s%s  %s\n",
					iconNode,
					StyleValue.Render(v.Name),
					StyleDim.Render(fmt.Sprintf("%d nodes · %s", len(v.Visible), v.CreatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable)")

	return cmd
}

func (c *CLI) viewDeleteCommand() *cobra.Command {
	var entrypoints []string

	cmd := &cobra.Command{
		Use:   "delete [graph.json] [name]",
		Short: "Delete a saved view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.buildForViews(cmd.Context(), args[0], entrypoints)
			if err != nil {
				return err
			}

			views, err := c.newViewStore(cmd.Context())
			if err != nil {
				return err
			}
			defer views.Close(cmd.Context())

			if err := views.Delete(cmd.Context(), result.GraphHash, args[1]); err != nil {
				return err
			}
			fmt.Printf("%s deleted view %s\n", StyleSuccess.Render("✓"), StyleValue.Render(args[1]))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable)")

	return cmd
}

// buildForViews builds a pipeline result without artifact caching.
func (c *CLI) buildForViews(ctx context.Context, graphPath string, entrypoints []string) (*pipeline.Result, error) {
	runner, err := c.newRunner(true)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	result, err := runner.Build(ctx, c.buildOptions(graphPath, entrypoints))
	if err != nil {
		return nil, fmt.Errorf("build explorer: %w", err)
	}
	return result, nil
}

// newViewStore creates the configured view backend.
func (c *CLI) newViewStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Views.Backend {
	case "", "file":
		return store.NewFileStore(c.Config.Views.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Config.Views.Mongo.URI,
			Database:   c.Config.Views.Mongo.Database,
			Collection: c.Config.Views.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown view backend: %s", c.Config.Views.Backend)
	}
}
