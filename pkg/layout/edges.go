package layout

// Edge styling is fixed per kind; renderers may override but the engine's
// output never varies between calls.
var edgeStyles = map[EdgeKind]Style{
	EdgeSpouse:       {Stroke: "#8e24aa", StrokeWidth: 2},
	EdgeParentChild:  {Stroke: "#546e7a", StrokeWidth: 1.5},
	EdgeDistribution: {Stroke: "#546e7a", StrokeWidth: 1.5},
}

// StyleFor returns the deterministic style for an edge kind.
func StyleFor(kind EdgeKind) Style { return edgeStyles[kind] }

// routeEdges emits the orthogonal connectors for every family unit:
//
//   - one spouse edge between the two parents' centers (two-parent units only)
//   - one parent-child edge per parent, dropping from the parent's bottom
//     edge to the unit's junction
//   - one distribution edge per child, from the junction down to the child's
//     top edge
//
// Every path is an axis-aligned polyline; renderers draw it as-is.
func routeEdges(units *unitIndex, nodes map[string]Node, junctions []Junction, opts Options) []Edge {
	jByUnit := make(map[string]Junction, len(junctions))
	for _, j := range junctions {
		jByUnit[j.UnitID] = j
	}

	var edges []Edge
	for _, u := range units.units {
		j := jByUnit[u.Key]

		if u.ParentIDs[1] != "" {
			a, b := nodes[u.ParentIDs[0]], nodes[u.ParentIDs[1]]
			edges = append(edges, Edge{
				ID:   "spouse:" + u.Key,
				Kind: EdgeSpouse,
				From: a.ID,
				To:   b.ID,
				Points: []Point{
					{X: a.CenterX(), Y: a.CenterY()},
					{X: b.CenterX(), Y: b.CenterY()},
				},
				Style: StyleFor(EdgeSpouse),
			})
		}

		for _, pid := range u.ParentIDs {
			if pid == "" {
				continue
			}
			parent := nodes[pid]
			edges = append(edges, Edge{
				ID:   "parent:" + u.Key + ":" + pid,
				Kind: EdgeParentChild,
				From: pid,
				To:   j.ID,
				Points: []Point{
					{X: parent.CenterX(), Y: parent.Y + parent.Height},
					{X: parent.CenterX(), Y: j.Y},
					{X: j.X, Y: j.Y},
				},
				Style: StyleFor(EdgeParentChild),
			})
		}

		for _, cid := range u.ChildIDs {
			child := nodes[cid]
			edges = append(edges, Edge{
				ID:   "dist:" + u.Key + ":" + cid,
				Kind: EdgeDistribution,
				From: j.ID,
				To:   cid,
				Points: []Point{
					{X: j.X, Y: j.Y},
					{X: child.CenterX(), Y: j.Y},
					{X: child.CenterX(), Y: child.Y},
				},
				Style: StyleFor(EdgeDistribution),
			})
		}
	}
	return edges
}
