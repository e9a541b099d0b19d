package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

// DOTOptions configures node-link export.
type DOTOptions struct {
	// Detailed includes birth and death dates in node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts a tree document to Graphviz DOT format for node-link
// visualization. Parent-child relations become directed edges; spouse
// relations become dashed undirected edges that do not constrain ranking.
// The resulting DOT string can be rendered with [RenderDOTSVG].
func ToDOT(t graph.Tree, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range t.Persons {
		p := &t.Persons[i]
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.ID, dotLabel(p, opts.Detailed))
	}

	buf.WriteString("\n")
	for i := range t.Persons {
		p := &t.Persons[i]
		for _, parent := range p.Parents {
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, p.ID)
		}
	}

	// Spouse pairs are symmetric in the input; emit each once.
	seen := make(map[[2]string]bool)
	for i := range t.Persons {
		p := &t.Persons[i]
		for _, spouse := range p.Spouses {
			key := [2]string{p.ID, spouse}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", p.ID, spouse)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(p *graph.Person, detailed bool) string {
	label := p.DisplayName()
	if !detailed {
		return label
	}

	var parts []string
	if p.BirthDate != "" {
		parts = append(parts, "* "+p.BirthDate)
	}
	if p.DeathDate != "" {
		parts = append(parts, "+ "+p.DeathDate)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "  ")
}

// RenderDOTSVG renders a DOT graph to SVG using the embedded Graphviz
// engine. Returns SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element so the frame
// starts at the origin and width/height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
