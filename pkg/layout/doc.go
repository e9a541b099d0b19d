// Package layout implements the orthogonal family-tree layout engine: the
// pure function turning persons and relationships into a deterministic 2D
// diagram of generation rows, positioned nodes, synthetic junctions, and
// right-angle edges.
//
// # Pipeline
//
// [Compute] runs six stages over a validated [tree.Graph]:
//
//  1. Generation assignment - multi-source Kahn relaxation (roots at 0,
//     child = max(parents)+1) followed by spouse reconciliation to a fixed
//     point (the higher generation wins; the lower spouse's subtree shifts).
//  2. Family-unit resolution - children grouped by their order-independent
//     parent-set key, ordered by the configured tiebreak.
//  3. Position planning - depth-first subtree packing with couple blocks
//     centered over their children's span.
//  4. Junction synthesis - one merge node per unit, between the rows.
//  5. Edge routing - spouse, parent-child, and distribution polylines.
//  6. Row assembly - one [Row] per generation level.
//
// # Contract
//
// Compute never mutates its input, holds no state between calls, and is
// deterministic: identical input and options produce identical output.
// Invalid input (dangling references, parent-child cycles, out-of-range
// options) aborts the whole computation; no partial layout is ever returned.
//
// # Performance
//
// Generation assignment and unit resolution are O(V+E); position planning is
// O(V) over the forest plus the sort cost of the child-order tiebreak. The
// engine is synchronous and allocation-bound; very large trees should be
// computed off any latency-sensitive path by the caller.
package layout
