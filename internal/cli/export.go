package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/render"
)

// exportCommand creates the export command for Graphviz node-link output.
// Unlike render, export does not use the orthogonal layout engine: Graphviz
// computes its own node placement, which is useful as a structural check on
// a tree document.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export [tree.json]",
		Short: "Export a tree as Graphviz DOT or a node-link SVG",
		Long: `Export a tree document as a node-link diagram.

Parent-child relations become directed edges, spouse relations dashed
undirected ones. With -f dot the raw DOT source is written; with -f svg
(default) the embedded Graphviz engine renders it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %q (must be 'dot' or 'svg')", format)
			}
			return c.runExport(cmd.Context(), args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include birth and death dates in labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output, format string, detailed bool) error {
	t, err := graph.ReadTreeFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	dot := render.ToDOT(t, render.DOTOptions{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		p := newProgress(c.Logger)
		data, err = render.RenderDOTSVG(dot)
		if err != nil {
			return fmt.Errorf("render node-link SVG: %w", err)
		}
		p.done(fmt.Sprintf("Rendered node-link view of %d persons", len(t.Persons)))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, "."+format)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Export complete")
	printFile(out)
	return nil
}
