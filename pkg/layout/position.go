package layout

import "github.com/pedigraph/pedigraph/pkg/tree"

// planner assigns a left x-coordinate to every person. It walks the forest
// depth-first from the root couples: each family unit's children are packed
// left-to-right with the configured minimum gap, then the couple block is
// centered over the midpoint of the children's span. Spouses sit adjacent
// inside the couple block and the block is treated as one unit for all
// centering.
//
// A person who parents several units (remarriage) is positioned exactly
// once, at their first-laid unit; later units reference them by id.
type planner struct {
	g     *tree.Graph
	units *unitIndex
	opts  Options

	x      map[string]float64
	placed map[string]bool
	order  []string // placement order, used to shift whole subtrees
}

// planPositions returns the left x-coordinate for every person.
func planPositions(g *tree.Graph, units *unitIndex, opts Options) map[string]float64 {
	p := &planner{
		g:      g,
		units:  units,
		opts:   opts,
		x:      make(map[string]float64, g.Count()),
		placed: make(map[string]bool, g.Count()),
	}

	cursor := 0.0
	for _, id := range g.PersonIDs() {
		if p.placed[id] || !g.IsRoot(id) {
			continue
		}
		if w := p.layoutSubtree(id, cursor); w > 0 {
			cursor += w + opts.HorizontalSpacing
		}
	}

	// Children whose parents were all absorbed into other couple blocks are
	// not reachable from any root couple; lay out whatever remains.
	for _, id := range g.PersonIDs() {
		if p.placed[id] {
			continue
		}
		if w := p.layoutSubtree(id, cursor); w > 0 {
			cursor += w + opts.HorizontalSpacing
		}
	}

	return p.x
}

// layoutSubtree places the person, their couple partners, and every
// descendant unit beneath them, starting at left edge x. Returns the width
// consumed, or 0 if the person was already placed.
func (p *planner) layoutSubtree(id string, x float64) float64 {
	if p.placed[id] {
		return 0
	}

	units := p.units.byParent[id]
	if len(units) == 0 {
		p.place(id, x)
		return p.opts.NodeWidth
	}

	// Children of all units first, packed left-to-right. Units keep their
	// creation order, so each marriage's children stay contiguous.
	mark := len(p.order)
	childX := x
	laid := 0
	for _, u := range units {
		for _, c := range u.ChildIDs {
			if p.placed[c] {
				continue
			}
			if w := p.layoutSubtree(c, childX); w > 0 {
				childX += w + p.opts.HorizontalSpacing
				laid++
			}
		}
	}
	childSpan := 0.0
	if laid > 0 {
		childSpan = childX - p.opts.HorizontalSpacing - x
	}

	members := p.coupleMembers(id, units)
	coupleW := float64(len(members))*p.opts.NodeWidth + float64(len(members)-1)*p.opts.SpouseGap

	blockW := childSpan
	if coupleW > blockW {
		blockW = coupleW
	}

	// A couple wider than its children pushes the children inward so the
	// block stays centered.
	if childSpan > 0 && childSpan < blockW {
		p.shift(mark, (blockW-childSpan)/2)
	}

	coupleLeft := x + (blockW-coupleW)/2
	for i, m := range members {
		p.place(m, coupleLeft+float64(i)*(p.opts.NodeWidth+p.opts.SpouseGap))
	}

	return blockW
}

// coupleMembers collects the person and their not-yet-placed partners across
// all their units, in unit order. A partner already placed in another block
// stays where it is and is referenced by id only.
func (p *planner) coupleMembers(id string, units []*FamilyUnit) []string {
	members := []string{id}
	seen := map[string]bool{id: true}
	for _, u := range units {
		for _, pid := range u.ParentIDs {
			if pid == "" || seen[pid] || p.placed[pid] {
				continue
			}
			seen[pid] = true
			members = append(members, pid)
		}
	}
	return members
}

func (p *planner) place(id string, x float64) {
	p.x[id] = x
	p.placed[id] = true
	p.order = append(p.order, id)
}

// shift moves every person placed since the given mark by dx.
func (p *planner) shift(mark int, dx float64) {
	for _, id := range p.order[mark:] {
		p.x[id] += dx
	}
}
