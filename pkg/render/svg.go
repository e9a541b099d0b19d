package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

// margin frames the diagram so strokes at the bounding box are not clipped.
const margin = 24.0

const svgCSS = `
    .person { fill: #ffffff; stroke: #37474f; stroke-width: 1.5; rx: 6; }
    .person.root { stroke-width: 2.5; }
    .person-name { font: 13px sans-serif; fill: #263238; text-anchor: middle; }
    .person-dates { font: 10px sans-serif; fill: #78909c; text-anchor: middle; }
    .row-label { font: italic 11px sans-serif; fill: #b0bec5; }
    .junction { fill: #546e7a; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	junctionDots bool
	rowLabels    bool
}

// WithJunctionDots draws a small dot at every junction.
func WithJunctionDots() SVGOption {
	return func(r *svgRenderer) { r.junctionDots = true }
}

// WithRowLabels draws generation labels regardless of the layout's per-row
// visibility flags.
func WithRowLabels() SVGOption {
	return func(r *svgRenderer) { r.rowLabels = true }
}

// RenderSVG draws a layout document as a standalone SVG. The output is a
// faithful sink: every coordinate comes from the layout, so identical
// layouts render to identical bytes.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	w := l.Width + 2*margin
	h := l.Height + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	fmt.Fprintf(&buf, "  <g transform=\"translate(%.1f,%.1f)\">\n", margin, margin)

	renderRowLabels(&buf, l, r.rowLabels)
	renderEdges(&buf, l)
	renderNodes(&buf, l)
	if r.junctionDots {
		renderJunctions(&buf, l)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRowLabels(buf *bytes.Buffer, l graph.Layout, force bool) {
	for _, row := range l.Rows {
		if !row.ShowLabel && !force {
			continue
		}
		fmt.Fprintf(buf, "    <text class=\"row-label\" x=\"0\" y=\"%.1f\">%s</text>\n",
			row.Y-6, escape(row.Label))
	}
}

// Edges draw first so node boxes cover the connector ends.
func renderEdges(buf *bytes.Buffer, l graph.Layout) {
	for _, e := range l.Edges {
		points := make([]string, len(e.Points))
		for i, p := range e.Points {
			points[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
		}
		fmt.Fprintf(buf, "    <polyline id=%q points=%q fill=\"none\" stroke=%q stroke-width=\"%.1f\"",
			escape(e.ID), strings.Join(points, " "), escape(e.Stroke), e.StrokeWidth)
		if e.Dash != "" {
			fmt.Fprintf(buf, " stroke-dasharray=%q", escape(e.Dash))
		}
		buf.WriteString("/>\n")
	}
}

func renderNodes(buf *bytes.Buffer, l graph.Layout) {
	for _, n := range l.Nodes {
		class := "person"
		if n.Root {
			class = "person root"
		}
		fmt.Fprintf(buf, "    <rect id=%q class=%q x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"6\"/>\n",
			escape("node-"+n.ID), class, n.X, n.Y, n.Width, n.Height)

		name := n.Name
		if name == "" {
			name = n.ID
		}
		cx := n.X + n.Width/2

		if dates := formatDates(n); dates != "" {
			fmt.Fprintf(buf, "    <text class=\"person-name\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
				cx, n.Y+n.Height/2-2, escape(name))
			fmt.Fprintf(buf, "    <text class=\"person-dates\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
				cx, n.Y+n.Height/2+12, escape(dates))
		} else {
			fmt.Fprintf(buf, "    <text class=\"person-name\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
				cx, n.Y+n.Height/2+4, escape(name))
		}
	}
}

func renderJunctions(buf *bytes.Buffer, l graph.Layout) {
	for _, j := range l.Junctions {
		fmt.Fprintf(buf, "    <circle id=%q class=\"junction\" cx=\"%.1f\" cy=\"%.1f\" r=\"3\"/>\n",
			escape(j.ID), j.X, j.Y)
	}
}

// formatDates renders the life span line, e.g. "1867-11-07 – 1934-07-04".
// Either date may be absent.
func formatDates(n graph.LayoutNode) string {
	switch {
	case n.BirthDate == "" && n.DeathDate == "":
		return ""
	case n.DeathDate == "":
		return "* " + n.BirthDate
	case n.BirthDate == "":
		return "+ " + n.DeathDate
	default:
		return n.BirthDate + " - " + n.DeathDate
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
