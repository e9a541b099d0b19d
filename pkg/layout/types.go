package layout

import "github.com/pedigraph/pedigraph/pkg/tree"

// Point is a coordinate in layout units.
type Point struct {
	X, Y float64
}

// Node is one positioned person box. Coordinates are top-left anchored; the
// generation determines the row and therefore the Y coordinate.
type Node struct {
	ID         string      // Person identifier
	Person     tree.Person // The input record, carried through untouched
	Generation int         // Row index, 0 = root row
	X, Y       float64     // Top-left corner
	Width      float64
	Height     float64
	UnitID     string // Family unit this person belongs to as a child ("" for roots)
	Root       bool   // True when the person has no recorded parents
}

// CenterX returns the horizontal center of the node box.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node box.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Junction is the synthetic merge point of one family unit: the parents'
// edges converge here before fanning out to the children. Junctions are not
// persons; renderers typically draw them as a small dot or nothing at all.
type Junction struct {
	ID        string    // Deterministic identifier derived from the unit key
	UnitID    string    // Owning family unit
	X, Y      float64   // Midpoint of the parents, between the two rows
	ParentIDs [2]string // The unit's parent tuple; second slot empty for single-parent units
	ChildIDs  []string  // The unit's children in resolved order
}

// EdgeKind tags the closed set of edge variants. Rendering code can switch
// exhaustively on it.
type EdgeKind uint8

const (
	// EdgeSpouse is the horizontal segment connecting the two parents of a
	// family unit. Single-parent units have no spouse edge.
	EdgeSpouse EdgeKind = iota

	// EdgeParentChild runs from one parent down to the unit's junction.
	EdgeParentChild

	// EdgeDistribution runs from a junction down to one child.
	EdgeDistribution
)

// String returns the serialization name of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeSpouse:
		return "spouse"
	case EdgeParentChild:
		return "parent-child"
	case EdgeDistribution:
		return "distribution"
	default:
		return "unknown"
	}
}

// Style is the deterministic stroke styling of an edge, derived from its
// kind. No per-call randomness.
type Style struct {
	Stroke      string  // CSS color
	StrokeWidth float64 // Stroke width in layout units
	Dash        string  // SVG dash pattern, empty for solid
}

// Edge is one orthogonal connector. Points is an ordered polyline of
// axis-aligned segments: a renderer can draw it directly without further
// geometric reasoning.
type Edge struct {
	ID     string   // Deterministic identifier
	Kind   EdgeKind // spouse / parent-child / distribution
	From   string   // Source person or junction ID
	To     string   // Target person or junction ID
	Points []Point  // Orthogonal polyline, at least two points
	Style  Style
}

// Row describes one generation row.
type Row struct {
	Level     int     // Generation index, 0 = roots
	Y         float64 // Top y-coordinate of the row
	Height    float64 // Row height (node height)
	Label     string  // Display label, e.g. "Generation 3"
	ShowLabel bool    // Mirrors Options.ShowGenerationLabels
}

// Result is the complete output of one layout computation. All slices are
// ordered deterministically; computing the same input twice yields identical
// results. The Result is a value: the engine holds no reference to it after
// returning.
type Result struct {
	Nodes     []Node
	Junctions []Junction
	Edges     []Edge
	Rows      []Row
}

// Node looks up a positioned node by person ID.
func (r *Result) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Junction looks up a junction by ID.
func (r *Result) Junction(id string) (Junction, bool) {
	for _, j := range r.Junctions {
		if j.ID == id {
			return j, true
		}
	}
	return Junction{}, false
}
