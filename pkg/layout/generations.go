package layout

import (
	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/tree"
)

// assignGenerations computes an integer generation for every person.
//
// The base pass is a multi-source topological traversal (Kahn's algorithm)
// over the parent-child relation: every person with no parents is a root
// seeded at generation 0 (each tree of a forest seeds independently), and
// every other person lands at one plus the maximum of its parents'
// generations.
//
// A second pass reconciles spouse pairs: spouses must share a generation, so
// whenever a pair differs the lower spouse is raised to match and the raise
// is propagated to its descendants through an explicit worklist (child
// generation is restored to max(parent generations)+1 wherever the raise
// left it behind). Raising may create new mismatches with other spouses, so
// reconciliation repeats to a fixed point.
//
// Generations only ever increase during reconciliation, and the parent-child
// relation is acyclic, so the fixed point exists unless the spouse relation
// contradicts ancestry (a person married to their own descendant). That
// pathological case is cut off after len(persons)+1 rounds and reported as a
// cycle error rather than looping forever.
func assignGenerations(g *tree.Graph) (map[string]int, error) {
	gens := baseGenerations(g)

	maxRounds := g.Count() + 1
	for round := 0; ; round++ {
		if round >= maxRounds {
			return nil, errors.New(errors.ErrCodeCycleDetected,
				"spouse generations do not converge; spouse relation contradicts ancestry")
		}
		changed := false
		for _, pair := range g.Pairs() {
			ga, gb := gens[pair.A], gens[pair.B]
			if ga == gb {
				continue
			}
			if ga < gb {
				raise(g, gens, pair.A, gb-ga)
			} else {
				raise(g, gens, pair.B, ga-gb)
			}
			changed = true
		}
		if !changed {
			return gens, nil
		}
	}
}

// baseGenerations runs the Kahn relaxation. Every person is eventually
// dequeued because the graph is validated acyclic before the engine runs.
func baseGenerations(g *tree.Graph) map[string]int {
	gens := make(map[string]int, g.Count())
	inDegree := make(map[string]int, g.Count())
	queue := make([]string, 0, g.Count())

	for _, id := range g.PersonIDs() {
		degree := len(g.Parents(id))
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if gen := gens[curr] + 1; gen > gens[child] {
				gens[child] = gen
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return gens
}

// raise shifts a person down by delta generations and relaxes the subtree
// below: each descendant is pulled down to max(parent generations)+1 if the
// shift left it above that line. Descendants whose generation was already
// determined by a higher parent stay put.
func raise(g *tree.Graph, gens map[string]int, id string, delta int) {
	gens[id] += delta

	queue := append([]string(nil), g.Children(id)...)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		want := 0
		for _, parent := range g.Parents(curr) {
			if gen := gens[parent] + 1; gen > want {
				want = gen
			}
		}
		if gens[curr] >= want {
			continue
		}
		gens[curr] = want
		queue = append(queue, g.Children(curr)...)
	}
}
