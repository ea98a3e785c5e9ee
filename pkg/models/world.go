package models

import "sort"

// World is the complete simulation state for one game at one tick
// boundary. Insertion order of Entities/Celestials is arbitrary.
// ApplyBinding walks entities in ID order; translation and zoom
// classification update each entity from its own fields (and the
// celestials) only, so their result does not depend on entity order.
type World struct {
	Tick       uint64      `json:"tick"`
	Seed       string      `json:"seed"`
	Systems    []StarSystem `json:"systems"`
	Celestials []Celestial `json:"celestials"`
	Entities   []Entity    `json:"entities"`
}

// Clone returns a deep copy of the world, satisfying P2 (purity):
// resolver functions operate on a Clone and never alias the caller's
// slices or pointer fields.
func (w World) Clone() World {
	out := World{
		Tick: w.Tick,
		Seed: w.Seed,
	}
	out.Systems = append(out.Systems, w.Systems...)
	out.Celestials = append(out.Celestials, w.Celestials...)
	out.Entities = make([]Entity, len(w.Entities))
	for i, e := range w.Entities {
		out.Entities[i] = e.Clone()
	}
	return out
}

// SortedEntityIDs returns every entity ID in lexicographic ascending
// order — the canonical iteration order required throughout resolution.
func (w World) SortedEntityIDs() []string {
	ids := make([]string, len(w.Entities))
	for i, e := range w.Entities {
		ids[i] = e.ID
	}
	sort.Strings(ids)
	return ids
}

// EntityByID returns a pointer into w.Entities for in-place mutation, or
// nil if no entity with that ID exists. Callers that need isolation
// must clone first.
func (w *World) EntityByID(id string) *Entity {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			return &w.Entities[i]
		}
	}
	return nil
}

// CelestialByID returns the celestial with the given ID, or nil.
func (w *World) CelestialByID(id string) *Celestial {
	for i := range w.Celestials {
		if w.Celestials[i].ID == id {
			return &w.Celestials[i]
		}
	}
	return nil
}

// Children returns the IDs of every entity directly contained by or
// welded under parentID, sorted ascending.
func (w World) Children(parentID string) []string {
	var ids []string
	for _, e := range w.Entities {
		if (e.ParentID != nil && *e.ParentID == parentID) ||
			(e.WeldParentID != nil && *e.WeldParentID == parentID) {
			ids = append(ids, e.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// ApplyUpdates field-merges every Patch onto its target entity and
// appends every Spawn as a new entity, against a clone of w. An update
// naming an entity id that no longer exists is silently dropped — a
// handler that raced a since-removed entity produces no effect, never
// a panic (§7's "no exception propagates" contract).
func (w World) ApplyUpdates(updates []EntityUpdate) World {
	out := w.Clone()
	for _, u := range updates {
		switch {
		case u.Patch != nil:
			if e := out.EntityByID(u.Patch.ID); e != nil {
				*e = u.Patch.Apply(*e)
			}
		case u.Spawn != nil:
			out.Entities = append(out.Entities, u.Spawn.Clone())
		}
	}
	return out
}
