package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPersonID is returned by [Build] when a person has an empty
	// identifier. All persons must have non-empty identifiers.
	ErrInvalidPersonID = errors.New("person ID must not be empty")

	// ErrDuplicatePersonID is returned by [Build] when two persons share the
	// same identifier. Person IDs must be unique within one tree.
	ErrDuplicatePersonID = errors.New("duplicate person ID")

	// ErrTooManyParents is returned by [Build] when a person lists more than
	// two parent identifiers.
	ErrTooManyParents = errors.New("person has more than two parents")

	// ErrUnknownParent is returned by [Build] when a parent reference does
	// not resolve to a supplied person.
	ErrUnknownParent = errors.New("unknown parent reference")

	// ErrUnknownSpouse is returned by [Build] when a spouse reference does
	// not resolve to a supplied person.
	ErrUnknownSpouse = errors.New("unknown spouse reference")

	// ErrSelfReference is returned by [Build] when a person lists themselves
	// as their own parent or spouse.
	ErrSelfReference = errors.New("person references itself")

	// ErrTreeHasCycle is returned by [Build] when the parent-child relation
	// contains a cycle. Cycles are detected using depth-first search with
	// white/gray/black coloring.
	ErrTreeHasCycle = errors.New("parent-child relation contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to persons.
// The layout engine treats it as opaque display data.
type Metadata map[string]any

// Person is one input record for the layout engine: an identifier, up to two
// parent identifiers, any number of spouse identifiers, and display
// attributes the engine carries through untouched.
//
// The zero value is not usable - ID must be set before passing to [Build].
type Person struct {
	ID        string   // Unique identifier
	Name      string   // Display name (opaque to the engine)
	BirthDate string   // ISO-8601 date, optional (used for child ordering)
	DeathDate string   // ISO-8601 date, optional
	ParentIDs []string // 0-2 parent identifiers
	SpouseIDs []string // 0-n spouse identifiers
	Meta      Metadata // Arbitrary display metadata
}

// SpousePair is a normalized spouse relation: (a,b) and (b,a) collapse to a
// single pair. A is always the person appearing earlier in input order, which
// keeps pair iteration deterministic.
type SpousePair struct {
	A, B string
}

// Graph is the validated adjacency view over a set of persons: parent to
// children, child to parents, and the normalized spouse-pair set.
//
// A Graph is immutable once built and safe for concurrent reads. Build it
// with [Build], which validates the reference closure and rejects cyclic
// parent-child data.
type Graph struct {
	persons  map[string]Person
	order    []string
	children map[string][]string
	parents  map[string][]string
	spouses  map[string][]string
	pairs    []SpousePair
}

// Build validates a sequence of persons and constructs the adjacency view.
//
// Validation covers:
//   - non-empty, unique person identifiers
//   - at most two parents per person
//   - every parent and spouse reference resolving to a supplied person
//     (ErrUnknownParent / ErrUnknownSpouse otherwise)
//   - no self references
//   - an acyclic parent-child relation (ErrTreeHasCycle otherwise)
//
// The input slice is not retained or mutated; persons are copied into the
// graph. Adjacency lists preserve input order, so traversals over the graph
// are deterministic for identical input.
func Build(persons []Person) (*Graph, error) {
	g := &Graph{
		persons:  make(map[string]Person, len(persons)),
		order:    make([]string, 0, len(persons)),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		spouses:  make(map[string][]string),
	}

	index := make(map[string]int, len(persons))
	for i, p := range persons {
		if p.ID == "" {
			return nil, fmt.Errorf("person %d: %w", i, ErrInvalidPersonID)
		}
		if _, exists := g.persons[p.ID]; exists {
			return nil, fmt.Errorf("person %q: %w", p.ID, ErrDuplicatePersonID)
		}
		g.persons[p.ID] = p
		g.order = append(g.order, p.ID)
		index[p.ID] = i
	}

	seenPair := make(map[[2]string]bool)
	for _, id := range g.order {
		p := g.persons[id]

		if len(p.ParentIDs) > 2 {
			return nil, fmt.Errorf("person %q: %w", id, ErrTooManyParents)
		}
		for _, parentID := range p.ParentIDs {
			if parentID == id {
				return nil, fmt.Errorf("person %q listed as own parent: %w", id, ErrSelfReference)
			}
			if _, ok := g.persons[parentID]; !ok {
				return nil, fmt.Errorf("person %q references parent %q: %w", id, parentID, ErrUnknownParent)
			}
			g.parents[id] = append(g.parents[id], parentID)
			g.children[parentID] = append(g.children[parentID], id)
		}

		for _, spouseID := range p.SpouseIDs {
			if spouseID == id {
				return nil, fmt.Errorf("person %q listed as own spouse: %w", id, ErrSelfReference)
			}
			if _, ok := g.persons[spouseID]; !ok {
				return nil, fmt.Errorf("person %q references spouse %q: %w", id, spouseID, ErrUnknownSpouse)
			}
			a, b := id, spouseID
			if index[b] < index[a] {
				a, b = b, a
			}
			key := [2]string{a, b}
			if seenPair[key] {
				continue
			}
			seenPair[key] = true
			g.pairs = append(g.pairs, SpousePair{A: a, B: b})
			g.spouses[a] = append(g.spouses[a], b)
			g.spouses[b] = append(g.spouses[b], a)
		}
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// detectCycles walks the parent-child relation depth-first.
// Traversal order follows input order so error reporting is deterministic.
func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.persons))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.children[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrTreeHasCycle
			}
		}
	}
	return nil
}

// Person returns the person with the given ID and true, or the zero Person
// and false if not found. The returned value is a copy.
func (g *Graph) Person(id string) (Person, bool) {
	p, ok := g.persons[id]
	return p, ok
}

// PersonIDs returns all person identifiers in input order.
// The returned slice should not be modified.
func (g *Graph) PersonIDs() []string { return g.order }

// Count returns the number of persons in the graph.
func (g *Graph) Count() int { return len(g.persons) }

// Children returns the IDs of persons that list this person as a parent,
// in input order. Returns nil if the person has no children or doesn't exist.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.children[id] }

// Parents returns the IDs of this person's parents (0-2), in the order they
// were listed. Returns nil if the person has no parents or doesn't exist.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.parents[id] }

// Spouses returns the IDs of this person's spouses, deduplicated, in input
// order. Returns nil if the person has no spouses or doesn't exist.
// The returned slice should not be modified.
func (g *Graph) Spouses(id string) []string { return g.spouses[id] }

// Pairs returns the normalized spouse-pair set in deterministic order.
// The returned slice should not be modified.
func (g *Graph) Pairs() []SpousePair { return g.pairs }

// IsRoot reports whether the person exists and has no recorded parents.
// Roots seed generation 0; a forest can have many roots.
func (g *Graph) IsRoot(id string) bool {
	_, ok := g.persons[id]
	return ok && len(g.parents[id]) == 0
}

// Roots returns the IDs of all persons with no recorded parents, in input
// order. Returns nil for an empty graph.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}
