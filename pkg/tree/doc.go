// Package tree models the input side of the family-tree layout engine: person
// records with parent and spouse references, and the validated adjacency
// graph built from them.
//
// # Building a Graph
//
// [Build] takes a flat sequence of [Person] records and produces a [Graph]
// with three indexes: parent→children, child→parents, and the normalized
// spouse-pair set. Every reference must resolve to a supplied person and the
// parent-child relation must be acyclic; Build fails otherwise and the layout
// engine never sees invalid data.
//
//	g, err := tree.Build([]tree.Person{
//	    {ID: "ada"},
//	    {ID: "alan", SpouseIDs: []string{"ada"}},
//	    {ID: "grace", ParentIDs: []string{"ada", "alan"}},
//	})
//
// # Determinism
//
// All adjacency lists preserve input order and spouse pairs are normalized to
// the earlier person in input order, so any traversal over a Graph is
// deterministic for identical input. This is what makes layout output
// byte-for-byte reproducible.
package tree
