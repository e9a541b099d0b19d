package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute an orthogonal layout from a tree document",
		Long: `Compute an orthogonal layout from a tree document.

The layout command takes a tree.json file of person records and computes the
positioned diagram: one row per generation, synthetic junction points between
parent couples and their children, and orthogonal edge paths. The output is a
layout.json file that can be rendered to SVG/PNG/PDF using 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.baseOptions()
			mergeLayoutFlags(cmd, &base, opts)
			base.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], base, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the engine option flags shared by layout, render,
// and inspect.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.HorizontalSpacing, "hspace", 0, "minimum horizontal gap between nodes")
	cmd.Flags().Float64Var(&opts.VerticalSpacing, "vspace", 0, "vertical gap between generation rows")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "node box width")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "node box height")
	cmd.Flags().Float64Var(&opts.SpouseGap, "spouse-gap", 0, "gap between adjacent spouses")
	cmd.Flags().StringVar(&opts.ChildOrder, "child-order", "", "child ordering: input (default), birthdate")
	cmd.Flags().BoolVar(&opts.ShowGenerationLabels, "labels", false, "emit generation row labels")
}

// mergeLayoutFlags copies flag values that were explicitly set onto base,
// so flags override the config file without erasing it.
func mergeLayoutFlags(cmd *cobra.Command, base *pipeline.Options, flagged pipeline.Options) {
	if cmd.Flags().Changed("hspace") {
		base.HorizontalSpacing = flagged.HorizontalSpacing
	}
	if cmd.Flags().Changed("vspace") {
		base.VerticalSpacing = flagged.VerticalSpacing
	}
	if cmd.Flags().Changed("node-width") {
		base.NodeWidth = flagged.NodeWidth
	}
	if cmd.Flags().Changed("node-height") {
		base.NodeHeight = flagged.NodeHeight
	}
	if cmd.Flags().Changed("spouse-gap") {
		base.SpouseGap = flagged.SpouseGap
	}
	if cmd.Flags().Changed("child-order") {
		base.ChildOrder = flagged.ChildOrder
	}
	if cmd.Flags().Changed("labels") {
		base.ShowGenerationLabels = flagged.ShowGenerationLabels
	}
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	t, err := graph.ReadTreeFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, ".layout.json")
	if err := graph.WriteLayoutFile(l, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(len(t.Persons), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "pedigraph render "+input)

	return nil
}
