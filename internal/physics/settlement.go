// Package physics implements the two settlement passes that restore
// §3's position-binding invariants after a wave of actions has run:
// binding (propagate parent position down the containment/weld trees)
// and translation (advance root entities by their velocity).
package physics

import (
	"sort"

	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// ApplyBinding overwrites the position of every contained or welded
// entity from its parent, processing the forest roots-first so a
// multi-level chain settles in a single pass (§4.2).
func ApplyBinding(w models.World) models.World {
	out := w.Clone()
	depth := make(map[string]int, len(out.Entities))

	var depthOf func(id string) int
	depthOf = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		e := out.EntityByID(id)
		if e == nil {
			depth[id] = 0
			return 0
		}
		parentID := e.ParentID
		if parentID == nil {
			parentID = e.WeldParentID
		}
		if parentID == nil {
			depth[id] = 0
			return 0
		}
		d := depthOf(*parentID) + 1
		depth[id] = d
		return d
	}

	ids := out.SortedEntityIDs()
	for _, id := range ids {
		depthOf(id)
	}
	sort.SliceStable(ids, func(i, j int) bool { return depth[ids[i]] < depth[ids[j]] })

	for _, id := range ids {
		e := out.EntityByID(id)
		if e == nil {
			continue
		}
		if e.ParentID != nil {
			parent := out.EntityByID(*e.ParentID)
			if parent != nil {
				e.Position = parent.Position
			}
		} else if e.WeldParentID != nil {
			parent := out.EntityByID(*e.WeldParentID)
			if parent != nil && e.RelativeOffset != nil {
				e.Position = fp.AddVector(parent.Position, *e.RelativeOffset)
			}
		}
	}
	return out
}

// ApplyTranslation advances every root entity's position by its
// velocity. Contained and welded entities are left untouched here —
// their position comes from the next ApplyBinding pass (§4.2).
func ApplyTranslation(w models.World) models.World {
	out := w.Clone()
	for i := range out.Entities {
		e := &out.Entities[i]
		if e.IsRoot() {
			e.Position = fp.AddVector(e.Position, e.Velocity)
		}
	}
	return out
}
