package layout

import (
	stderrors "errors"
	"fmt"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/tree"
)

// Compute converts a sequence of persons into a complete orthogonal layout:
// positioned nodes, per-unit junctions, routed edges, and generation rows.
//
// Compute is pure. It never mutates its inputs, performs no I/O, holds no
// state across calls, and produces byte-identical output for identical
// input - identical coordinates, ordering, and ids. It is safe to call
// concurrently from independent goroutines.
//
// On any validation failure - an unresolved reference, a cyclic parent-child
// relation, or an out-of-range option - Compute aborts and returns a
// structured error; it never returns a partial layout. Error codes:
//
//   - [errors.ErrCodeInvalidOptions] for configuration errors
//   - [errors.ErrCodeOrphanReference] for unresolved parent/spouse references
//   - [errors.ErrCodeCycleDetected] for cyclic parent-child data
//   - [errors.ErrCodeInvalidTree] for other malformed input
func Compute(persons []tree.Person, opts Options) (*Result, error) {
	o, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	g, err := tree.Build(persons)
	if err != nil {
		return nil, wrapTreeError(err)
	}
	if g.Count() == 0 {
		return &Result{}, nil
	}

	gens, err := assignGenerations(g)
	if err != nil {
		return nil, err
	}

	units := resolveUnits(g, o.ChildOrder)
	xs := planPositions(g, units, o)

	nodes := make([]Node, 0, g.Count())
	byID := make(map[string]Node, g.Count())
	maxGen := 0
	for _, id := range g.PersonIDs() {
		p, _ := g.Person(id)
		gen := gens[id]
		if gen > maxGen {
			maxGen = gen
		}
		n := Node{
			ID:         id,
			Person:     p,
			Generation: gen,
			X:          xs[id],
			Y:          o.rowY(gen),
			Width:      o.NodeWidth,
			Height:     o.NodeHeight,
			UnitID:     units.unitOfChild[id],
			Root:       g.IsRoot(id),
		}
		nodes = append(nodes, n)
		byID[id] = n
	}

	junctions := synthesizeJunctions(units, byID, o)
	edges := routeEdges(units, byID, junctions, o)

	rows := make([]Row, 0, maxGen+1)
	for level := 0; level <= maxGen; level++ {
		rows = append(rows, Row{
			Level:     level,
			Y:         o.rowY(level),
			Height:    o.NodeHeight,
			Label:     fmt.Sprintf("Generation %d", level),
			ShowLabel: o.ShowGenerationLabels,
		})
	}

	return &Result{
		Nodes:     nodes,
		Junctions: junctions,
		Edges:     edges,
		Rows:      rows,
	}, nil
}

// wrapTreeError maps the tree package's sentinel errors onto the structured
// error taxonomy surfaced to callers.
func wrapTreeError(err error) error {
	switch {
	case stderrors.Is(err, tree.ErrUnknownParent), stderrors.Is(err, tree.ErrUnknownSpouse):
		return errors.Wrap(errors.ErrCodeOrphanReference, err, "relationship references an unknown person")
	case stderrors.Is(err, tree.ErrTreeHasCycle):
		return errors.Wrap(errors.ErrCodeCycleDetected, err, "parent-child relation is cyclic")
	default:
		return errors.Wrap(errors.ErrCodeInvalidTree, err, "invalid tree input")
	}
}
