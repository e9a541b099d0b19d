// Package pkg provides the core libraries for pedigraph family-tree layout.
//
// # Overview
//
// Pedigraph turns genealogical person records into deterministic orthogonal
// diagrams: one row per generation, spouses adjacent, synthetic junction
// points between parent couples and their children, and axis-aligned edge
// paths. The pkg directory is organized into five areas:
//
//  1. [tree] / [layout] - The engine (graph building, generation assignment,
//     family units, positioning, junctions, edge routing)
//  2. [graph] - Serialization types for tree and layout documents
//  3. [render] / [pipeline] - Artifact generation and cached orchestration
//  4. [cache] / [store] - Infrastructure (layout cache, tree persistence)
//  5. [errors] / [observability] / [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through pedigraph:
//
//	tree.json (person records)
//	         ↓
//	    [tree] package (adjacency indexes + validation)
//	         ↓
//	    [layout] package (generations → units → positions → junctions → edges)
//	         ↓
//	    [render] package (SVG, PNG, PDF, JSON, DOT)
//
// # Quick Start
//
// Compute a layout and render it:
//
//	import (
//	    "github.com/pedigraph/pedigraph/pkg/graph"
//	    "github.com/pedigraph/pedigraph/pkg/layout"
//	    "github.com/pedigraph/pedigraph/pkg/render"
//	)
//
//	// 1. Load a tree document
//	t, _ := graph.ReadTreeFile("family.json")
//
//	// 2. Compute the layout (pure and deterministic)
//	res, _ := layout.Compute(t.ToEngine(), layout.Options{})
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(graph.FromResult(res))
//
// # Main Packages
//
// [tree] - Person records with parent and spouse relations, adjacency
// indexes, reference-closure validation, and cycle detection. Forests of
// disconnected trees are supported.
//
// [layout] - The layout engine. Generation assignment by relaxation with
// spouse realignment, family units keyed by parent sets, depth-first
// subtree packing, junction synthesis, and orthogonal edge routing. The
// engine holds no state across calls and performs no I/O.
//
// [graph] - Serialization types for tree and layout documents with
// deterministic marshalling; json and bson tags for the API and the Mongo
// store.
//
// [render] - Output sinks: the native orthogonal SVG renderer, rsvg-based
// PDF/PNG conversion, JSON passthrough, and Graphviz DOT export of the
// node-link view.
//
// [pipeline] - Layout → render orchestration with per-stage caching, used
// by both CLI and API.
//
// [cache] - Cache interface with file, null, and Redis backends; content
// hash keying so identical inputs share entries.
//
// [store] - TreeStore interface with in-memory and MongoDB implementations.
//
// [tree]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/tree
// [layout]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/layout
// [graph]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/graph
// [render]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/store
// [errors]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/pedigraph/pedigraph/pkg/buildinfo
package pkg
