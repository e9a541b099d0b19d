package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a tree document to SVG, PNG, PDF, or JSON",
		Long: `Render a tree document to one or more artifact formats.

The render command runs the full pipeline: layout computation followed by
artifact generation. SVG is the native format; PNG and PDF conversion require
rsvg-convert on PATH; JSON emits the layout document itself.

Both stages are cached locally, keyed by the tree content and the options
that affect output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.baseOptions()
			mergeLayoutFlags(cmd, &base, opts)
			if cmd.Flags().Changed("format") || len(base.Formats) == 0 {
				base.Formats = parseFormats(formatsStr)
			}
			if cmd.Flags().Changed("scale") {
				base.Scale = opts.Scale
			}
			if cmd.Flags().Changed("junction-dots") {
				base.JunctionDots = opts.JunctionDots
			}
			if cmd.Flags().Changed("row-labels") {
				base.RowLabels = opts.RowLabels
			}
			base.Refresh = refresh
			if err := pipeline.ValidateFormats(base.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], base, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.JunctionDots, "junction-dots", false, "draw a dot at each junction point")
	cmd.Flags().BoolVar(&opts.RowLabels, "row-labels", false, "draw generation row labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender loads the tree, executes the pipeline, and writes each artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	t, err := graph.ReadTreeFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := artifactPath(output, input, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.PersonCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	return nil
}

// artifactPath derives the output path for one rendered format. With a single
// format the output flag is used verbatim; with several it acts as a base
// path and the format extension is appended.
func artifactPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
