package models

import "github.com/darkhorsekelly/mesh/internal/fp"

// EntityUpdate is the closed output of every action handler: either a
// field-merge Patch onto an existing entity, or a Spawn introducing a
// brand-new one. Handlers never overload a Patch's ID with an unknown
// value to signal a spawn — EXTRACT's minerals path builds a Spawn
// explicitly, per the spec's spawn-semantics design note.
type EntityUpdate struct {
	Patch *Patch `json:"patch,omitempty"`
	Spawn *Entity `json:"spawn,omitempty"`
}

// Patch is a partial set of field changes keyed to an existing entity
// ID. Nil pointer fields mean "leave unchanged"; Fields.* pointer
// members follow the same convention.
type Patch struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// Fields enumerates every mutable Entity field a handler may touch.
// Pointer-typed members distinguish "not touched" (nil) from
// "explicitly set to the zero value".
type Fields struct {
	Position      *fp.Vec2   `json:"position,omitempty"`
	Velocity      *fp.Vec2   `json:"velocity,omitempty"`
	Heading       *fp.Scalar `json:"heading,omitempty"`
	Thrust        *fp.Scalar `json:"thrust,omitempty"`
	Mass          *fp.Scalar `json:"mass,omitempty"`
	Volume        *fp.Scalar `json:"volume,omitempty"`
	FuelMass      *fp.Scalar `json:"fuelMass,omitempty"`
	VolatilesMass *fp.Scalar `json:"volatilesMass,omitempty"`
	AirlockSealed *bool      `json:"airlockSealed,omitempty"`

	ParentID       *string   `json:"parentId,omitempty"`
	ClearParent    bool      `json:"clearParent,omitempty"`
	WeldParentID   *string   `json:"weldParentId,omitempty"`
	ClearWeld      bool      `json:"clearWeld,omitempty"`
	RelativeOffset *fp.Vec2  `json:"relativeOffset,omitempty"`
	ZoomStateVal   *ZoomState `json:"zoomState,omitempty"`
}

// Apply field-merges p's changes onto a clone of e and returns the
// result, leaving e untouched.
func (p Patch) Apply(e Entity) Entity {
	out := e.Clone()
	f := p.Fields
	if f.Position != nil {
		out.Position = *f.Position
	}
	if f.Velocity != nil {
		out.Velocity = *f.Velocity
	}
	if f.Heading != nil {
		out.Heading = *f.Heading
	}
	if f.Thrust != nil {
		out.Thrust = *f.Thrust
	}
	if f.Mass != nil {
		out.Mass = *f.Mass
	}
	if f.Volume != nil {
		out.Volume = *f.Volume
	}
	if f.FuelMass != nil {
		out.FuelMass = *f.FuelMass
	}
	if f.VolatilesMass != nil {
		out.VolatilesMass = *f.VolatilesMass
	}
	if f.AirlockSealed != nil {
		out.AirlockSealed = *f.AirlockSealed
	}
	if f.ClearParent {
		out.ParentID = nil
	} else if f.ParentID != nil {
		id := *f.ParentID
		out.ParentID = &id
	}
	if f.ClearWeld {
		out.WeldParentID = nil
		out.RelativeOffset = nil
	} else {
		if f.WeldParentID != nil {
			id := *f.WeldParentID
			out.WeldParentID = &id
		}
		if f.RelativeOffset != nil {
			off := *f.RelativeOffset
			out.RelativeOffset = &off
		}
	}
	if f.ZoomStateVal != nil {
		out.ZoomStateVal = *f.ZoomStateVal
	}
	return out
}

// IsEmpty reports whether an update set carries no changes — handlers
// use this as the ValidationFail signal (§7): an empty slice means the
// validator rejected the action.
func IsEmpty(updates []EntityUpdate) bool { return len(updates) == 0 }
