package handlers

import (
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// weightedVelocity computes the momentum-conserving combined velocity
// of actor plus targets: (m_actor*v_actor + Σ m_t*v_t) / Σm. A
// zero-total-mass system (possible only with malformed data) settles
// to rest rather than dividing by zero, matching fp.Div's total
// division semantics.
func weightedVelocity(actor models.Entity, targets []models.Entity) fp.Vec2 {
	totalMass := actor.Mass
	momentum := fp.ScaleVector(actor.Velocity, actor.Mass)
	for _, t := range targets {
		totalMass = fp.Add(totalMass, t.Mass)
		momentum = fp.AddVector(momentum, fp.ScaleVector(t.Velocity, t.Mass))
	}
	return fp.Vec2{
		X: fp.Div(momentum.X, totalMass),
		Y: fp.Div(momentum.Y, totalMass),
	}
}

// ValidateWeld implements §4.1.4: the actor must be sealed and not
// itself welded to something else, and every target must be a
// different, non-celestial, in-reach, not-already-welded entity.
func ValidateWeld(actor models.Entity, targets []models.Entity, action models.Action) bool {
	if !actor.AirlockSealed || actor.IsWelded() {
		return false
	}
	if len(action.TargetIDs) == 0 {
		return false
	}
	for _, id := range action.TargetIDs {
		target, ok := findByID(targets, id)
		if !ok {
			return false
		}
		if target.ID == actor.ID {
			return false
		}
		if target.IsWelded() {
			return false
		}
		if !fp.WithinReach(actor.Position, target.Position, actor.Reach) {
			return false
		}
	}
	return true
}

// ExecuteWeld rigidly attaches every target to the actor, fixing each
// target's offset at the weld moment and redistributing momentum
// across the new assembly.
func ExecuteWeld(actor models.Entity, targets []models.Entity, action models.Action, _ TickContext) []models.EntityUpdate {
	welded := make([]models.Entity, 0, len(action.TargetIDs))
	var massAdded fp.Scalar
	for _, id := range action.TargetIDs {
		t, ok := findByID(targets, id)
		if !ok {
			continue
		}
		welded = append(welded, t)
		massAdded = fp.Add(massAdded, t.Mass)
	}

	combinedVelocity := weightedVelocity(actor, welded)
	actorID := actor.ID

	updates := make([]models.EntityUpdate, 0, len(welded)+1)
	for _, t := range welded {
		offset := fp.SubVector(t.Position, actor.Position)
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID: t.ID,
			Fields: models.Fields{
				WeldParentID:   &actorID,
				RelativeOffset: &offset,
				Velocity:       &combinedVelocity,
			},
		}})
	}

	newMass := fp.Add(actor.Mass, massAdded)
	updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
		ID: actor.ID,
		Fields: models.Fields{
			Mass:     &newMass,
			Velocity: &combinedVelocity,
		},
	}})
	return updates
}

// WeldSpec pairs ValidateWeld/ExecuteWeld for the dispatcher.
var WeldSpec = Spec{Validate: ValidateWeld, Execute: ExecuteWeld}

// ValidateUnweld requires every target to currently be welded, and the
// actor to either be that weld parent or within reach of the target.
func ValidateUnweld(actor models.Entity, targets []models.Entity, action models.Action) bool {
	if len(action.TargetIDs) == 0 {
		return false
	}
	for _, id := range action.TargetIDs {
		target, ok := findByID(targets, id)
		if !ok || target.WeldParentID == nil {
			return false
		}
		if actor.ID != *target.WeldParentID && !fp.WithinReach(actor.Position, target.Position, actor.Reach) {
			return false
		}
	}
	return true
}

// ExecuteUnweld detaches every target from its current weld parent.
// Sub-assemblies hanging off a detached target are untouched: only the
// target's own weldParentId/relativeOffset are cleared, and only the
// immediate parent's mass shrinks.
func ExecuteUnweld(_ models.Entity, targets []models.Entity, action models.Action, _ TickContext) []models.EntityUpdate {
	massRemoved := map[string]fp.Scalar{}
	updates := make([]models.EntityUpdate, 0, len(action.TargetIDs)+1)

	for _, id := range action.TargetIDs {
		target, ok := findByID(targets, id)
		if !ok {
			continue
		}
		parent, ok := findByID(targets, *target.WeldParentID)
		if !ok {
			continue
		}
		vel := parent.Velocity
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID: target.ID,
			Fields: models.Fields{
				ClearWeld: true,
				Velocity:  &vel,
			},
		}})
		massRemoved[parent.ID] = fp.Add(massRemoved[parent.ID], target.Mass)
	}

	for parentID, removed := range massRemoved {
		parent, _ := findByID(targets, parentID)
		newMass := fp.Sub(parent.Mass, removed)
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID:     parentID,
			Fields: models.Fields{Mass: &newMass},
		}})
	}
	return updates
}

// UnweldSpec pairs ValidateUnweld/ExecuteUnweld for the dispatcher.
var UnweldSpec = Spec{Validate: ValidateUnweld, Execute: ExecuteUnweld}
