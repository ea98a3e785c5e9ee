// Package models is the shared data model between the resolver,
// transport, and persistence layers. Every numeric field is a plain
// int64 fixed-point scalar (see internal/fp) so it serializes to JSON
// as an integer, never a decimal, and deserializes without a
// translation step — the same convention the teacher's pkg/models
// package uses for satoshi-denominated fields.
package models

import "github.com/darkhorsekelly/mesh/internal/fp"

// EntityKind discriminates the movable, non-celestial object variants.
type EntityKind string

const (
	KindGeneric      EntityKind = "Generic"
	KindCorporate    EntityKind = "Corporate"
	KindPlatform     EntityKind = "Platform"
	KindResourceWell EntityKind = "ResourceWell"
	KindMineralStore EntityKind = "MineralStore"
)

// ZoomState is the environmental classification driven by distance to
// the nearest celestial.
type ZoomState string

const (
	ZoomSpace   ZoomState = "SPACE"
	ZoomOrbit   ZoomState = "ORBIT"
	ZoomSurface ZoomState = "SURFACE"
)

// Entity is a movable, non-celestial world object: ships, stations,
// mineral stores, and the like. Fields are exported with JSON tags so
// the same struct serializes directly onto the wire and into snapshot
// storage.
type Entity struct {
	ID       string     `json:"id"`
	Kind     EntityKind `json:"kind"`
	PlayerID string     `json:"playerId,omitempty"`

	Position fp.Vec2  `json:"position"`
	Velocity fp.Vec2  `json:"velocity"`
	Heading  fp.Scalar `json:"heading"`
	Thrust   fp.Scalar `json:"thrust"`

	Mass           fp.Scalar `json:"mass"`
	Volume         fp.Scalar `json:"volume"`
	FuelMass       fp.Scalar `json:"fuelMass"`
	VolatilesMass  fp.Scalar `json:"volatilesMass"`
	Reach          fp.Scalar `json:"reach"`
	AirlockSealed  bool      `json:"airlockSealed"`
	OpticLevel     int       `json:"opticLevel"`

	ParentID *string `json:"parentId,omitempty"`

	IsContainer     bool      `json:"isContainer"`
	ContainerVolume fp.Scalar `json:"containerVolume"`
	InOpacity       fp.Scalar `json:"inOpacity"`

	WeldParentID   *string  `json:"weldParentId,omitempty"`
	RelativeOffset *fp.Vec2 `json:"relativeOffset,omitempty"`

	OrbitTargetID *string   `json:"orbitTargetId,omitempty"`
	ZoomStateVal  ZoomState `json:"zoomState"`
}

// Clone returns a deep copy so handlers and settlement passes never
// share mutable state with the caller's world snapshot — required for
// P2 (resolveTick must not mutate its inputs).
func (e Entity) Clone() Entity {
	clone := e
	if e.ParentID != nil {
		id := *e.ParentID
		clone.ParentID = &id
	}
	if e.WeldParentID != nil {
		id := *e.WeldParentID
		clone.WeldParentID = &id
	}
	if e.RelativeOffset != nil {
		off := *e.RelativeOffset
		clone.RelativeOffset = &off
	}
	if e.OrbitTargetID != nil {
		id := *e.OrbitTargetID
		clone.OrbitTargetID = &id
	}
	return clone
}

// IsRoot reports whether e is neither contained nor welded — the only
// entities translation (position += velocity) applies to directly.
func (e Entity) IsRoot() bool {
	return e.ParentID == nil && e.WeldParentID == nil
}

// IsContained reports whether e shares position with a container parent.
func (e Entity) IsContained() bool {
	return e.ParentID != nil
}

// IsWelded reports whether e is rigidly offset from a weld parent.
func (e Entity) IsWelded() bool {
	return e.WeldParentID != nil
}
