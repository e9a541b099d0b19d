// Package graph defines the serialization formats shared by the CLI, API,
// storage, and cache layers: [Tree] for family-tree input and [Layout] for
// computed diagrams.
//
// Both formats are plain JSON documents with stable field names and carry
// bson tags for document storage. Conversion to and from the engine types is
// lossless and order-preserving, so a layout serialized twice from the same
// input is byte-identical.
//
//	t, err := graph.ReadTreeFile("family.json")
//	res, err := layout.Compute(t.ToEngine(), layout.Options{})
//	out := graph.FromResult(res)
//	err = graph.WriteLayoutFile(out, "family.layout.json")
package graph
