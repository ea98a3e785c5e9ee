package models

import "github.com/darkhorsekelly/mesh/internal/fp"

// ActionKind is one member of the closed action catalogue. The set is
// stable: adding a new kind is a breaking wire-format change.
type ActionKind string

const (
	ActionThrust          ActionKind = "THRUST"
	ActionManeuver        ActionKind = "MANEUVER"
	ActionTransport       ActionKind = "TRANSPORT"
	ActionLaunch          ActionKind = "LAUNCH"
	ActionExtract         ActionKind = "EXTRACT"
	ActionRefine          ActionKind = "REFINE"
	ActionManufacture     ActionKind = "MANUFACTURE"
	ActionWeld            ActionKind = "WELD"
	ActionUnweld          ActionKind = "UNWELD"
	ActionMod             ActionKind = "MOD"
	ActionCommit          ActionKind = "COMMIT"
	ActionSealAirlock     ActionKind = "SEAL_AIRLOCK"
	ActionUnsealAirlock   ActionKind = "UNSEAL_AIRLOCK"
	ActionLoad            ActionKind = "LOAD"
	ActionUnload          ActionKind = "UNLOAD"
	ActionVectorLock      ActionKind = "VECTOR_LOCK"
	ActionMoveScanner     ActionKind = "MOVE_SCANNER"
	ActionScan            ActionKind = "SCAN"
	ActionTransferRes     ActionKind = "TRANSFER_RESOURCE"
	ActionEncounter       ActionKind = "ENCOUNTER"
)

// ExtractResource distinguishes EXTRACT's two payload shapes.
type ExtractResource string

const (
	ExtractVolatiles ExtractResource = "VOLATILES"
	ExtractMinerals  ExtractResource = "MINERALS"
)

// Action is a single queued player intent. Kind-specific payload fields
// are all present on the struct (rather than behind a map[string]any)
// per the "dynamic input maps -> typed payloads" design note: the
// transport layer decodes once at the boundary, and every field below
// is already typed by the time a handler sees it.
type Action struct {
	ID         string     `json:"id"`
	Kind       ActionKind `json:"kind"`
	EntityID   string     `json:"entityId"`
	PlayerID   string     `json:"playerId,omitempty"`
	OrderIndex int        `json:"orderIndex"`
	TargetIDs  []string   `json:"targetIds,omitempty"`

	// THRUST
	Magnitude fp.Scalar `json:"magnitude,omitempty"`
	Direction *fp.Vec2  `json:"direction,omitempty"`

	// LOAD
	ContentIDs  []string `json:"contentIds,omitempty"`
	ContainerID string   `json:"containerId,omitempty"`

	// UNLOAD
	NewPositions []fp.Vec2 `json:"newPositions,omitempty"`

	// REFINE
	VolatilesAmount fp.Scalar `json:"volatilesAmount,omitempty"`

	// EXTRACT
	Resource            ExtractResource `json:"resource,omitempty"`
	ExtractRate         fp.Scalar       `json:"extractRate,omitempty"`
	MineralTargetPos    *fp.Vec2        `json:"mineralTargetPosition,omitempty"`
}

// TouchedEntityIDs lists the actor plus every entity id named in the
// action payload. Entities a handler derives from world state (UNLOAD's
// container, UNWELD's weld parent, LOAD's existing children) are not
// included; the conflict resolver adds those from
// handlers.ResolveTargets when it builds its action-overlap graph (§4.3).
func (a Action) TouchedEntityIDs() []string {
	ids := []string{a.EntityID}
	ids = append(ids, a.TargetIDs...)
	ids = append(ids, a.ContentIDs...)
	if a.ContainerID != "" {
		ids = append(ids, a.ContainerID)
	}
	return ids
}
