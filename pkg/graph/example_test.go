package graph_test

import (
	"fmt"
	"log"

	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/layout"
)

// Demonstrates the full import → layout → export pipeline.
func Example() {
	t, err := graph.UnmarshalTree([]byte(`{
	  "persons": [
	    {"id": "marie", "spouses": ["pierre"]},
	    {"id": "pierre", "spouses": ["marie"]},
	    {"id": "irene", "parents": ["marie", "pierre"]}
	  ]
	}`))
	if err != nil {
		log.Fatal(err)
	}

	res, err := layout.Compute(t.ToEngine(), layout.Options{})
	if err != nil {
		log.Fatal(err)
	}

	out := graph.FromResult(res)
	fmt.Printf("nodes=%d junctions=%d edges=%d rows=%d\n",
		len(out.Nodes), len(out.Junctions), len(out.Edges), len(out.Rows))
	// Output: nodes=3 junctions=1 edges=4 rows=2
}
