package layout

// junctionID derives the deterministic junction identifier for a unit key.
func junctionID(unitKey string) string { return "jct:" + unitKey }

// synthesizeJunctions creates exactly one junction per family unit: the
// merge point where the parents' edges converge before fanning out to the
// children. The junction sits at the horizontal midpoint of the unit's
// parent(s) and at the vertical midpoint of the gap between the parent row
// and the child row.
func synthesizeJunctions(units *unitIndex, nodes map[string]Node, opts Options) []Junction {
	junctions := make([]Junction, 0, len(units.units))
	for _, u := range units.units {
		primary := nodes[u.ParentIDs[0]]

		x := primary.CenterX()
		parentGen := primary.Generation
		if u.ParentIDs[1] != "" {
			secondary := nodes[u.ParentIDs[1]]
			x = (primary.CenterX() + secondary.CenterX()) / 2
			if secondary.Generation > parentGen {
				parentGen = secondary.Generation
			}
		}

		junctions = append(junctions, Junction{
			ID:        junctionID(u.Key),
			UnitID:    u.Key,
			X:         x,
			Y:         opts.rowY(parentGen) + opts.NodeHeight + opts.VerticalSpacing/2,
			ParentIDs: u.ParentIDs,
			ChildIDs:  append([]string(nil), u.ChildIDs...),
		})
	}
	return junctions
}
