package layout

import (
	"reflect"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/tree"
)

func mustCompute(t *testing.T, persons []tree.Person) *Result {
	t.Helper()
	res, err := Compute(persons, Options{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return res
}

func mustNode(t *testing.T, res *Result, id string) Node {
	t.Helper()
	n, ok := res.Node(id)
	if !ok {
		t.Fatalf("node %q missing from result", id)
	}
	return n
}

func countEdges(res *Result, kind EdgeKind) int {
	n := 0
	for _, e := range res.Edges {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestCompute_Empty(t *testing.T) {
	res := mustCompute(t, nil)
	if len(res.Nodes) != 0 || len(res.Junctions) != 0 || len(res.Edges) != 0 || len(res.Rows) != 0 {
		t.Errorf("empty input produced non-empty layout: %+v", res)
	}
}

func TestCompute_SingleParentFanOut(t *testing.T) {
	res := mustCompute(t, []tree.Person{
		{ID: "r"},
		{ID: "c1", ParentIDs: []string{"r"}},
		{ID: "c2", ParentIDs: []string{"r"}},
	})

	if got := mustNode(t, res, "r").Generation; got != 0 {
		t.Errorf("r generation = %d, want 0", got)
	}
	for _, id := range []string{"c1", "c2"} {
		if got := mustNode(t, res, id).Generation; got != 1 {
			t.Errorf("%s generation = %d, want 1", id, got)
		}
	}

	if len(res.Junctions) != 1 {
		t.Fatalf("junctions = %d, want 1", len(res.Junctions))
	}
	j := res.Junctions[0]
	if j.ParentIDs != [2]string{"r", ""} {
		t.Errorf("junction parents = %v, want [r]", j.ParentIDs)
	}
	if want := mustNode(t, res, "r").CenterX(); j.X != want {
		t.Errorf("junction X = %v, want parent center %v", j.X, want)
	}

	if got := countEdges(res, EdgeSpouse); got != 0 {
		t.Errorf("spouse edges = %d, want 0", got)
	}
	if got := countEdges(res, EdgeParentChild); got != 1 {
		t.Errorf("parent-child edges = %d, want 1", got)
	}
	if got := countEdges(res, EdgeDistribution); got != 2 {
		t.Errorf("distribution edges = %d, want 2", got)
	}
}

func TestCompute_CoupleWithChildren(t *testing.T) {
	res := mustCompute(t, []tree.Person{
		{ID: "a", SpouseIDs: []string{"b"}},
		{ID: "b", SpouseIDs: []string{"a"}},
		{ID: "c1", ParentIDs: []string{"a", "b"}},
		{ID: "c2", ParentIDs: []string{"a", "b"}},
		{ID: "c3", ParentIDs: []string{"a", "b"}},
	})

	a, b := mustNode(t, res, "a"), mustNode(t, res, "b")
	if a.Generation != 0 || b.Generation != 0 {
		t.Errorf("spouse generations = %d/%d, want 0/0", a.Generation, b.Generation)
	}
	if gap := b.X - (a.X + a.Width); gap != DefaultSpouseGap {
		t.Errorf("spouse gap = %v, want %v", gap, DefaultSpouseGap)
	}

	if len(res.Junctions) != 1 {
		t.Fatalf("junctions = %d, want 1", len(res.Junctions))
	}
	j := res.Junctions[0]
	if want := (a.CenterX() + b.CenterX()) / 2; j.X != want {
		t.Errorf("junction X = %v, want couple midpoint %v", j.X, want)
	}
	if want := DefaultNodeHeight + DefaultVerticalSpacing/2; j.Y != want {
		t.Errorf("junction Y = %v, want %v", j.Y, want)
	}
	if !reflect.DeepEqual(j.ChildIDs, []string{"c1", "c2", "c3"}) {
		t.Errorf("junction children = %v, want [c1 c2 c3]", j.ChildIDs)
	}

	if got := countEdges(res, EdgeSpouse); got != 1 {
		t.Errorf("spouse edges = %d, want 1", got)
	}
	if got := countEdges(res, EdgeParentChild); got != 2 {
		t.Errorf("parent-child edges = %d, want 2", got)
	}
	if got := countEdges(res, EdgeDistribution); got != 3 {
		t.Errorf("distribution edges = %d, want 3", got)
	}
}

func TestCompute_RemarriageGetsOneUnitPerPartner(t *testing.T) {
	res := mustCompute(t, []tree.Person{
		{ID: "p", SpouseIDs: []string{"s1", "s2"}},
		{ID: "s1", SpouseIDs: []string{"p"}},
		{ID: "s2", SpouseIDs: []string{"p"}},
		{ID: "k1", ParentIDs: []string{"p", "s1"}},
		{ID: "k2", ParentIDs: []string{"p", "s2"}},
	})

	if len(res.Junctions) != 2 {
		t.Fatalf("junctions = %d, want 2 (one per marriage)", len(res.Junctions))
	}
	for _, j := range res.Junctions {
		if j.ParentIDs[0] != "p" {
			t.Errorf("junction %s primary parent = %q, want p", j.ID, j.ParentIDs[0])
		}
	}
	if got := countEdges(res, EdgeSpouse); got != 2 {
		t.Errorf("spouse edges = %d, want 2", got)
	}

	// The shared parent is positioned exactly once.
	seen := map[string]int{}
	for _, n := range res.Nodes {
		seen[n.ID]++
	}
	if seen["p"] != 1 {
		t.Errorf("p appears %d times, want 1", seen["p"])
	}

	k1, k2 := mustNode(t, res, "k1"), mustNode(t, res, "k2")
	if k1.UnitID == k2.UnitID {
		t.Errorf("k1 and k2 share unit %q, want distinct units", k1.UnitID)
	}
}

func TestCompute_SpouseGenerationRealignment(t *testing.T) {
	// s starts as a root but marries y, who is two generations down; s and
	// s's descendants must shift to match.
	res := mustCompute(t, []tree.Person{
		{ID: "r"},
		{ID: "x", ParentIDs: []string{"r"}},
		{ID: "y", ParentIDs: []string{"x"}, SpouseIDs: []string{"s"}},
		{ID: "s", SpouseIDs: []string{"y"}},
		{ID: "z", ParentIDs: []string{"s"}},
	})

	want := map[string]int{"r": 0, "x": 1, "y": 2, "s": 2, "z": 3}
	for id, gen := range want {
		if got := mustNode(t, res, id).Generation; got != gen {
			t.Errorf("%s generation = %d, want %d", id, got, gen)
		}
	}
	if len(res.Rows) != 4 {
		t.Errorf("rows = %d, want 4", len(res.Rows))
	}
}

func TestCompute_OrphanReferenceAbortsWholeLayout(t *testing.T) {
	tests := []struct {
		name    string
		persons []tree.Person
	}{
		{
			name: "UnknownParent",
			persons: []tree.Person{
				{ID: "a"},
				{ID: "b", ParentIDs: []string{"ghost"}},
			},
		},
		{
			name: "UnknownSpouse",
			persons: []tree.Person{
				{ID: "a", SpouseIDs: []string{"ghost"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.persons, Options{})
			if res != nil {
				t.Errorf("Compute() returned partial layout %+v, want nil", res)
			}
			if got := errors.GetCode(err); got != errors.ErrCodeOrphanReference {
				t.Errorf("error code = %q, want %q", got, errors.ErrCodeOrphanReference)
			}
		})
	}
}

func TestCompute_CycleCode(t *testing.T) {
	res, err := Compute([]tree.Person{
		{ID: "a", ParentIDs: []string{"b"}},
		{ID: "b", ParentIDs: []string{"a"}},
	}, Options{})
	if res != nil {
		t.Errorf("Compute() returned partial layout, want nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeCycleDetected {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeCycleDetected)
	}
}

// threeGenerationFixture covers couples, an in-marrying spouse, and a forest
// root, exercising most planner paths at once.
func threeGenerationFixture() []tree.Person {
	return []tree.Person{
		{ID: "g1", SpouseIDs: []string{"g2"}},
		{ID: "g2", SpouseIDs: []string{"g1"}},
		{ID: "p1", ParentIDs: []string{"g1", "g2"}, SpouseIDs: []string{"q1"}},
		{ID: "p2", ParentIDs: []string{"g1", "g2"}, SpouseIDs: []string{"q2"}},
		{ID: "q1", SpouseIDs: []string{"p1"}},
		{ID: "q2", SpouseIDs: []string{"p2"}},
		{ID: "k1", ParentIDs: []string{"p1", "q1"}},
		{ID: "k2", ParentIDs: []string{"p1", "q1"}},
		{ID: "k3", ParentIDs: []string{"p2", "q2"}},
	}
}

func TestCompute_NoHorizontalOverlap(t *testing.T) {
	res := mustCompute(t, threeGenerationFixture())

	byRow := map[int][]Node{}
	for _, n := range res.Nodes {
		byRow[n.Generation] = append(byRow[n.Generation], n)
	}
	for gen, nodes := range byRow {
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				if a.X < b.X+b.Width && b.X < a.X+a.Width {
					t.Errorf("row %d: nodes %s and %s overlap (%v..%v vs %v..%v)",
						gen, a.ID, b.ID, a.X, a.X+a.Width, b.X, b.X+b.Width)
				}
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	first := mustCompute(t, threeGenerationFixture())
	second := mustCompute(t, threeGenerationFixture())
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different layouts")
	}
}

func TestCompute_ReferencesResolve(t *testing.T) {
	res := mustCompute(t, threeGenerationFixture())

	nodeIDs := map[string]bool{}
	for _, n := range res.Nodes {
		nodeIDs[n.ID] = true
	}
	junctionIDs := map[string]bool{}
	for _, j := range res.Junctions {
		junctionIDs[j.ID] = true
		for _, pid := range j.ParentIDs {
			if pid != "" && !nodeIDs[pid] {
				t.Errorf("junction %s references unknown parent %q", j.ID, pid)
			}
		}
		for _, cid := range j.ChildIDs {
			if !nodeIDs[cid] {
				t.Errorf("junction %s references unknown child %q", j.ID, cid)
			}
		}
	}

	for _, e := range res.Edges {
		if !nodeIDs[e.From] && !junctionIDs[e.From] {
			t.Errorf("edge %s: From %q resolves to nothing", e.ID, e.From)
		}
		if !nodeIDs[e.To] && !junctionIDs[e.To] {
			t.Errorf("edge %s: To %q resolves to nothing", e.ID, e.To)
		}
		if len(e.Points) < 2 {
			t.Errorf("edge %s has %d points, want >= 2", e.ID, len(e.Points))
		}
		for i := 1; i < len(e.Points); i++ {
			a, b := e.Points[i-1], e.Points[i]
			if a.X != b.X && a.Y != b.Y {
				t.Errorf("edge %s: segment %d is not axis-aligned (%v -> %v)", e.ID, i, a, b)
			}
		}
	}
}

func TestCompute_Rows(t *testing.T) {
	res := mustCompute(t, threeGenerationFixture())

	if len(res.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(res.Rows))
	}
	for i, row := range res.Rows {
		if row.Level != i {
			t.Errorf("rows[%d].Level = %d, want %d", i, row.Level, i)
		}
		if want := float64(i) * (DefaultNodeHeight + DefaultVerticalSpacing); row.Y != want {
			t.Errorf("rows[%d].Y = %v, want %v", i, row.Y, want)
		}
		if row.ShowLabel {
			t.Errorf("rows[%d].ShowLabel = true, want false by default", i)
		}
	}
	if got := res.Rows[2].Label; got != "Generation 2" {
		t.Errorf("rows[2].Label = %q, want %q", got, "Generation 2")
	}
}

func TestCompute_ForestLaysOutAllTrees(t *testing.T) {
	res := mustCompute(t, []tree.Person{
		{ID: "a"},
		{ID: "a1", ParentIDs: []string{"a"}},
		{ID: "b"},
		{ID: "b1", ParentIDs: []string{"b"}},
	})

	if got := mustNode(t, res, "b").Generation; got != 0 {
		t.Errorf("second root generation = %d, want 0", got)
	}
	if len(res.Junctions) != 2 {
		t.Errorf("junctions = %d, want 2", len(res.Junctions))
	}

	// Trees are packed left to right with at least the horizontal gap.
	aRight := mustNode(t, res, "a1").X + DefaultNodeWidth
	bTree := []float64{mustNode(t, res, "b").X, mustNode(t, res, "b1").X}
	for _, x := range bTree {
		if x < aRight+DefaultHorizontalSpacing {
			t.Errorf("second tree at %v intrudes into first tree ending at %v", x, aRight)
		}
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	persons := threeGenerationFixture()
	snapshot := make([]tree.Person, len(persons))
	copy(snapshot, persons)

	mustCompute(t, persons)

	if !reflect.DeepEqual(persons, snapshot) {
		t.Error("Compute mutated its input")
	}
}
