// Package render turns computed layouts into visual artifacts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms layout
// documents into outputs. It provides:
//
//   - Native orthogonal SVG rendering of computed layouts
//   - Graphviz DOT export for node-link views of the raw tree
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Orthogonal SVG
//
// [RenderSVG] draws a [graph.Layout] exactly as computed: person boxes on
// generation rows, junction dots between rows, and the engine's axis-aligned
// polylines. The renderer adds nothing geometric; it is a faithful sink for
// the layout document.
//
//	svg := render.RenderSVG(l, render.WithJunctionDots())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Export
//
// [ToDOT] exports the raw tree as a Graphviz digraph for use with external
// tooling, and [RenderDOTSVG] rasterizes a DOT string through the embedded
// Graphviz engine. Unlike the orthogonal renderer, Graphviz computes its own
// positions; use it for structural inspection, not for the canonical diagram.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
package render
