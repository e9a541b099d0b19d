package layout

import (
	"testing"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/tree"
)

func buildGraph(t *testing.T, persons []tree.Person) *tree.Graph {
	t.Helper()
	g, err := tree.Build(persons)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestAssignGenerations_Relaxation(t *testing.T) {
	tests := []struct {
		name    string
		persons []tree.Person
		want    map[string]int
	}{
		{
			name:    "SinglePerson",
			persons: []tree.Person{{ID: "a"}},
			want:    map[string]int{"a": 0},
		},
		{
			name: "Chain",
			persons: []tree.Person{
				{ID: "a"},
				{ID: "b", ParentIDs: []string{"a"}},
				{ID: "c", ParentIDs: []string{"b"}},
			},
			want: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name: "MaxParentWins",
			// d's parents live in different generations; d lands below the
			// deeper one.
			persons: []tree.Person{
				{ID: "a"},
				{ID: "b", ParentIDs: []string{"a"}},
				{ID: "c"},
				{ID: "d", ParentIDs: []string{"b", "c"}},
			},
			want: map[string]int{"a": 0, "b": 1, "c": 0, "d": 2},
		},
		{
			name: "ForestSeedsEachRootAtZero",
			persons: []tree.Person{
				{ID: "a"},
				{ID: "a1", ParentIDs: []string{"a"}},
				{ID: "b"},
			},
			want: map[string]int{"a": 0, "a1": 1, "b": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gens, err := assignGenerations(buildGraph(t, tt.persons))
			if err != nil {
				t.Fatalf("assignGenerations() error = %v", err)
			}
			for id, want := range tt.want {
				if gens[id] != want {
					t.Errorf("gens[%s] = %d, want %d", id, gens[id], want)
				}
			}
		})
	}
}

func TestAssignGenerations_SpouseRaise(t *testing.T) {
	g := buildGraph(t, []tree.Person{
		{ID: "r"},
		{ID: "x", ParentIDs: []string{"r"}},
		{ID: "y", ParentIDs: []string{"x"}, SpouseIDs: []string{"s"}},
		{ID: "s", SpouseIDs: []string{"y"}},
		{ID: "z", ParentIDs: []string{"s"}},
	})

	gens, err := assignGenerations(g)
	if err != nil {
		t.Fatalf("assignGenerations() error = %v", err)
	}

	if gens["s"] != gens["y"] {
		t.Errorf("spouses diverge: s=%d y=%d", gens["s"], gens["y"])
	}
	// The raise propagates: z shifts by the same delta as its parent.
	if gens["z"] != gens["s"]+1 {
		t.Errorf("gens[z] = %d, want %d", gens["z"], gens["s"]+1)
	}
}

func TestAssignGenerations_ChainedRaises(t *testing.T) {
	// Raising s to match y creates a second mismatch with s's spouse t;
	// reconciliation must reach the transitive fixed point.
	g := buildGraph(t, []tree.Person{
		{ID: "r"},
		{ID: "x", ParentIDs: []string{"r"}},
		{ID: "y", ParentIDs: []string{"x"}, SpouseIDs: []string{"s"}},
		{ID: "t", SpouseIDs: []string{"s"}},
		{ID: "s", SpouseIDs: []string{"y", "t"}},
	})

	gens, err := assignGenerations(g)
	if err != nil {
		t.Fatalf("assignGenerations() error = %v", err)
	}
	if gens["s"] != 2 || gens["t"] != 2 {
		t.Errorf("gens[s]=%d gens[t]=%d, want 2/2", gens["s"], gens["t"])
	}
}

func TestAssignGenerations_SpouseOfDescendantDoesNotConverge(t *testing.T) {
	// a married to their own child: every raise of a re-raises b, so no
	// fixed point exists. Must fail cleanly, not spin.
	g := buildGraph(t, []tree.Person{
		{ID: "a", SpouseIDs: []string{"b"}},
		{ID: "b", ParentIDs: []string{"a"}, SpouseIDs: []string{"a"}},
	})

	_, err := assignGenerations(g)
	if got := errors.GetCode(err); got != errors.ErrCodeCycleDetected {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeCycleDetected)
	}
}

func TestAssignGenerations_ChildNeverAboveParent(t *testing.T) {
	gens, err := assignGenerations(buildGraph(t, threeGenerationFixture()))
	if err != nil {
		t.Fatalf("assignGenerations() error = %v", err)
	}

	g := buildGraph(t, threeGenerationFixture())
	for _, id := range g.PersonIDs() {
		for _, parent := range g.Parents(id) {
			if gens[id] <= gens[parent] {
				t.Errorf("gens[%s]=%d not below parent %s=%d", id, gens[id], parent, gens[parent])
			}
		}
	}
}
