package graph

import (
	"github.com/pedigraph/pedigraph/pkg/layout"
	"github.com/pedigraph/pedigraph/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Edge kinds in serialized layouts. Mirrors layout.EdgeKind.String().
const (
	EdgeKindSpouse       = "spouse"
	EdgeKindParentChild  = "parent-child"
	EdgeKindDistribution = "distribution"
)

// =============================================================================
// Tree - Family Tree Input Format
// =============================================================================

// Tree is the canonical serialization format for family-tree input.
// Used for API requests, storage, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → layout → export → re-import produces identical results.
type Tree struct {
	ID      string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string   `json:"name,omitempty" bson:"name,omitempty"`
	Persons []Person `json:"persons" bson:"persons"`
}

// Person is one serialized person record. Parents and Spouses hold person
// ids; the engine validates the reference closure on import.
type Person struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	BirthDate string         `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate string         `json:"death_date,omitempty" bson:"death_date,omitempty"`
	Parents   []string       `json:"parents,omitempty" bson:"parents,omitempty"`
	Spouses   []string       `json:"spouses,omitempty" bson:"spouses,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (p *Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// =============================================================================
// Tree ↔ Engine Conversion
// =============================================================================

// ToEngine converts the serialized tree into engine input records,
// preserving input order.
func (t Tree) ToEngine() []tree.Person {
	if len(t.Persons) == 0 {
		return nil
	}
	persons := make([]tree.Person, len(t.Persons))
	for i, p := range t.Persons {
		persons[i] = tree.Person{
			ID:        p.ID,
			Name:      p.Name,
			BirthDate: p.BirthDate,
			DeathDate: p.DeathDate,
			ParentIDs: append([]string(nil), p.Parents...),
			SpouseIDs: append([]string(nil), p.Spouses...),
			Meta:      copyMeta(p.Meta),
		}
	}
	return persons
}

// FromEngine wraps engine input records in the serialization format.
func FromEngine(persons []tree.Person) Tree {
	t := Tree{Persons: make([]Person, len(persons))}
	for i, p := range persons {
		t.Persons[i] = Person{
			ID:        p.ID,
			Name:      p.Name,
			BirthDate: p.BirthDate,
			DeathDate: p.DeathDate,
			Parents:   append([]string(nil), p.ParentIDs...),
			Spouses:   append([]string(nil), p.SpouseIDs...),
			Meta:      copyMeta(p.Meta),
		}
	}
	return t
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// =============================================================================
// Layout - Computed Diagram Format
// =============================================================================

// Layout is the serialization format for computed layouts: the positioned
// nodes, junctions, routed edges, and generation rows of one diagram, plus
// the overall frame dimensions.
type Layout struct {
	TreeID string  `json:"tree_id,omitempty" bson:"tree_id,omitempty"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Nodes     []LayoutNode     `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Junctions []LayoutJunction `json:"junctions,omitempty" bson:"junctions,omitempty"`
	Edges     []LayoutEdge     `json:"edges,omitempty" bson:"edges,omitempty"`
	Rows      []LayoutRow      `json:"rows,omitempty" bson:"rows,omitempty"`
}

// LayoutNode is one positioned person box.
type LayoutNode struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	BirthDate  string  `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate  string  `json:"death_date,omitempty" bson:"death_date,omitempty"`
	Generation int     `json:"generation" bson:"generation"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	UnitID     string  `json:"unit_id,omitempty" bson:"unit_id,omitempty"`
	Root       bool    `json:"root,omitempty" bson:"root,omitempty"`
}

// LayoutJunction is one synthetic merge point.
type LayoutJunction struct {
	ID       string   `json:"id" bson:"id"`
	UnitID   string   `json:"unit_id" bson:"unit_id"`
	X        float64  `json:"x" bson:"x"`
	Y        float64  `json:"y" bson:"y"`
	Parents  []string `json:"parents" bson:"parents"`
	Children []string `json:"children" bson:"children"`
}

// LayoutEdge is one orthogonal connector as an ordered polyline.
type LayoutEdge struct {
	ID          string  `json:"id" bson:"id"`
	Kind        string  `json:"kind" bson:"kind"`
	From        string  `json:"from" bson:"from"`
	To          string  `json:"to" bson:"to"`
	Points      []Point `json:"points" bson:"points"`
	Stroke      string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty" bson:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty" bson:"dash,omitempty"`
}

// Point is one polyline coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// LayoutRow is one generation row.
type LayoutRow struct {
	Level     int     `json:"level" bson:"level"`
	Y         float64 `json:"y" bson:"y"`
	Height    float64 `json:"height" bson:"height"`
	Label     string  `json:"label,omitempty" bson:"label,omitempty"`
	ShowLabel bool    `json:"show_label,omitempty" bson:"show_label,omitempty"`
}

// =============================================================================
// Engine Result → Layout Conversion
// =============================================================================

// FromResult converts an engine result to its serialization format. The
// engine's ordering is preserved, so identical results serialize to
// identical bytes. Frame dimensions are the bounding box of all nodes and
// edge points.
func FromResult(res *layout.Result) Layout {
	out := Layout{
		Nodes:     make([]LayoutNode, len(res.Nodes)),
		Junctions: make([]LayoutJunction, len(res.Junctions)),
		Edges:     make([]LayoutEdge, len(res.Edges)),
		Rows:      make([]LayoutRow, len(res.Rows)),
	}

	for i, n := range res.Nodes {
		out.Nodes[i] = LayoutNode{
			ID:         n.ID,
			Name:       n.Person.Name,
			BirthDate:  n.Person.BirthDate,
			DeathDate:  n.Person.DeathDate,
			Generation: n.Generation,
			X:          n.X,
			Y:          n.Y,
			Width:      n.Width,
			Height:     n.Height,
			UnitID:     n.UnitID,
			Root:       n.Root,
		}
		out.grow(n.X+n.Width, n.Y+n.Height)
	}

	for i, j := range res.Junctions {
		parents := make([]string, 0, 2)
		for _, pid := range j.ParentIDs {
			if pid != "" {
				parents = append(parents, pid)
			}
		}
		out.Junctions[i] = LayoutJunction{
			ID:       j.ID,
			UnitID:   j.UnitID,
			X:        j.X,
			Y:        j.Y,
			Parents:  parents,
			Children: append([]string(nil), j.ChildIDs...),
		}
	}

	for i, e := range res.Edges {
		points := make([]Point, len(e.Points))
		for k, p := range e.Points {
			points[k] = Point{X: p.X, Y: p.Y}
			out.grow(p.X, p.Y)
		}
		out.Edges[i] = LayoutEdge{
			ID:          e.ID,
			Kind:        e.Kind.String(),
			From:        e.From,
			To:          e.To,
			Points:      points,
			Stroke:      e.Style.Stroke,
			StrokeWidth: e.Style.StrokeWidth,
			Dash:        e.Style.Dash,
		}
	}

	for i, r := range res.Rows {
		out.Rows[i] = LayoutRow{
			Level:     r.Level,
			Y:         r.Y,
			Height:    r.Height,
			Label:     r.Label,
			ShowLabel: r.ShowLabel,
		}
	}

	return out
}

func (l *Layout) grow(x, y float64) {
	if x > l.Width {
		l.Width = x
	}
	if y > l.Height {
		l.Height = y
	}
}
