package handlers

import (
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// ValidateRefine requires the actor to be carrying volatiles and the
// request amount to be positive.
func ValidateRefine(actor models.Entity, _ []models.Entity, action models.Action) bool {
	return actor.VolatilesMass > 0 && action.VolatilesAmount > 0
}

// ExecuteRefine converts volatiles into fuel at RefineEfficiency,
// capping the batch at RefineMaxBatch and at whatever volatiles the
// actor actually carries. The efficiency loss is shed as mass (§4.1.7).
func ExecuteRefine(actor models.Entity, _ []models.Entity, action models.Action, ctx TickContext) []models.EntityUpdate {
	maxBatch := fp.Scalar(ctx.Tunables.RefineMaxBatch)
	efficiency := fp.Scalar(ctx.Tunables.RefineEfficiency)

	effective := fp.Min(action.VolatilesAmount, fp.Min(maxBatch, actor.VolatilesMass))
	fuel := fp.Mul(effective, efficiency)
	waste := fp.Sub(effective, fuel)

	newVolatiles := fp.Sub(actor.VolatilesMass, effective)
	newFuel := fp.Add(actor.FuelMass, fuel)
	newMass := fp.Sub(actor.Mass, waste)

	return []models.EntityUpdate{{Patch: &models.Patch{
		ID: actor.ID,
		Fields: models.Fields{
			VolatilesMass: &newVolatiles,
			FuelMass:      &newFuel,
			Mass:          &newMass,
		},
	}}}
}

// RefineSpec pairs ValidateRefine/ExecuteRefine for the dispatcher.
var RefineSpec = Spec{Validate: ValidateRefine, Execute: ExecuteRefine}
