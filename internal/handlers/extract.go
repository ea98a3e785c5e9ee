package handlers

import (
	"fmt"

	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// ValidateExtract requires a positive rate, at least one in-reach
// origin, and a resource-appropriate payload: MINERALS needs a target
// position for the spawned store.
func ValidateExtract(actor models.Entity, targets []models.Entity, action models.Action) bool {
	if action.ExtractRate <= 0 || len(action.TargetIDs) == 0 {
		return false
	}
	if action.Resource == models.ExtractMinerals && action.MineralTargetPos == nil {
		return false
	}
	if action.Resource != models.ExtractVolatiles && action.Resource != models.ExtractMinerals {
		return false
	}
	for _, id := range action.TargetIDs {
		origin, ok := findByID(targets, id)
		if !ok {
			return false
		}
		if !fp.WithinReach(actor.Position, origin.Position, actor.Reach) {
			return false
		}
		if action.Resource == models.ExtractVolatiles && origin.VolatilesMass <= 0 {
			return false
		}
		if action.Resource == models.ExtractMinerals && origin.Mass <= 0 {
			return false
		}
	}
	return true
}

// ExecuteExtract drains each in-reach origin at action.ExtractRate.
// VOLATILES transfers directly into the actor's tanks; MINERALS instead
// spawns a new MineralStore per origin, per §4.1.8.
func ExecuteExtract(actor models.Entity, targets []models.Entity, action models.Action, ctx TickContext) []models.EntityUpdate {
	var updates []models.EntityUpdate

	switch action.Resource {
	case models.ExtractVolatiles:
		var totalExtracted fp.Scalar
		for _, id := range action.TargetIDs {
			origin, ok := findByID(targets, id)
			if !ok {
				continue
			}
			extracted := fp.Min(action.ExtractRate, origin.VolatilesMass)
			newOriginVolatiles := fp.Sub(origin.VolatilesMass, extracted)
			updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
				ID:     origin.ID,
				Fields: models.Fields{VolatilesMass: &newOriginVolatiles},
			}})
			totalExtracted = fp.Add(totalExtracted, extracted)
		}
		newActorVolatiles := fp.Add(actor.VolatilesMass, totalExtracted)
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID:     actor.ID,
			Fields: models.Fields{VolatilesMass: &newActorVolatiles},
		}})

	case models.ExtractMinerals:
		for i, id := range action.TargetIDs {
			origin, ok := findByID(targets, id)
			if !ok {
				continue
			}
			extracted := fp.Min(action.ExtractRate, origin.Mass)
			newOriginMass := fp.Sub(origin.Mass, extracted)
			updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
				ID:     origin.ID,
				Fields: models.Fields{Mass: &newOriginMass},
			}})

			spawn := models.Entity{
				ID:       fmt.Sprintf("mineral-store-%d-%d", ctx.Tick, i),
				Kind:     models.KindMineralStore,
				Position: *action.MineralTargetPos,
				Velocity: fp.Vec2{},
				Mass:     extracted,
				Volume:   extracted,
			}
			updates = append(updates, models.EntityUpdate{Spawn: &spawn})
		}
	}

	return updates
}

// ExtractSpec pairs ValidateExtract/ExecuteExtract for the dispatcher.
var ExtractSpec = Spec{Validate: ValidateExtract, Execute: ExecuteExtract}
