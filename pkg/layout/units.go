package layout

import (
	"sort"
	"strings"

	"github.com/pedigraph/pedigraph/pkg/tree"
)

// FamilyUnit groups the children sharing one parent or parent pair. The key
// is order-independent (sorted parent ids), so the unit of (a,b) and (b,a)
// is the same unit. A person appears as a parent in one unit per distinct
// partner; remarriage therefore yields multiple units referencing the same
// parent by id.
type FamilyUnit struct {
	Key       string    // Sorted parent ids joined with "+"; unique per unit
	ParentIDs [2]string // [primary, secondary]; secondary is "" for single-parent units
	ChildIDs  []string  // Children in resolved order (at least one)
}

// unitIndex is the resolved family-unit view used by the planner and
// synthesizer. Units are ordered by first appearance of a child in the
// input, which keeps all downstream output deterministic.
type unitIndex struct {
	units       []*FamilyUnit
	byKey       map[string]*FamilyUnit
	byParent    map[string][]*FamilyUnit // parent id -> units in creation order
	unitOfChild map[string]string        // child id -> unit key
}

// unitKey builds the order-independent parent-set key.
func unitKey(parents []string) string {
	sorted := append([]string(nil), parents...)
	sort.Strings(sorted)
	return strings.Join(sorted, "+")
}

// resolveUnits groups every person with parents under the unit for their
// parent-set key. Units with zero children are never created: a unit exists
// only because at least one child named its parents.
//
// Children are ordered by the configured tiebreak: input order by default,
// or birth date when ChildOrderBirthDate is selected (children without a
// birth date keep input order and sort after dated siblings).
func resolveUnits(g *tree.Graph, order ChildOrder) *unitIndex {
	idx := &unitIndex{
		byKey:       make(map[string]*FamilyUnit),
		byParent:    make(map[string][]*FamilyUnit),
		unitOfChild: make(map[string]string),
	}

	inputPos := make(map[string]int, g.Count())
	for i, id := range g.PersonIDs() {
		inputPos[id] = i
	}

	for _, id := range g.PersonIDs() {
		parents := g.Parents(id)
		if len(parents) == 0 {
			continue
		}
		key := unitKey(parents)
		unit, ok := idx.byKey[key]
		if !ok {
			unit = &FamilyUnit{Key: key, ParentIDs: parentTuple(parents, inputPos)}
			idx.byKey[key] = unit
			idx.units = append(idx.units, unit)
			for _, p := range uniqueParents(parents) {
				idx.byParent[p] = append(idx.byParent[p], unit)
			}
		}
		unit.ChildIDs = append(unit.ChildIDs, id)
		idx.unitOfChild[id] = key
	}

	if order == ChildOrderBirthDate {
		for _, unit := range idx.units {
			sortByBirthDate(g, unit.ChildIDs, inputPos)
		}
	}

	return idx
}

// parentTuple orders the unit's parents by input position: the primary
// parent is the one supplied earlier. Single-parent units leave the second
// slot empty.
func parentTuple(parents []string, inputPos map[string]int) [2]string {
	unique := uniqueParents(parents)
	if len(unique) == 1 {
		return [2]string{unique[0], ""}
	}
	a, b := unique[0], unique[1]
	if inputPos[b] < inputPos[a] {
		a, b = b, a
	}
	return [2]string{a, b}
}

func uniqueParents(parents []string) []string {
	if len(parents) == 2 && parents[0] == parents[1] {
		return parents[:1]
	}
	return parents
}

// sortByBirthDate stable-sorts children by ISO-8601 birth date. Lexicographic
// comparison is correct for ISO dates; empty dates sort last.
func sortByBirthDate(g *tree.Graph, children []string, inputPos map[string]int) {
	sort.SliceStable(children, func(i, j int) bool {
		pi, _ := g.Person(children[i])
		pj, _ := g.Person(children[j])
		switch {
		case pi.BirthDate == "" && pj.BirthDate == "":
			return inputPos[children[i]] < inputPos[children[j]]
		case pi.BirthDate == "":
			return false
		case pj.BirthDate == "":
			return true
		case pi.BirthDate != pj.BirthDate:
			return pi.BirthDate < pj.BirthDate
		default:
			return inputPos[children[i]] < inputPos[children[j]]
		}
	})
}
