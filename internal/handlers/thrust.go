package handlers

import (
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// MinimumFuelThreshold gates THRUST's capability check. Validators take
// no TickContext (spec.md §4.1's validator signature is ctx-free), so
// unlike the handler-side tunables in internal/config this floor is a
// fixed constant rather than hot-reloadable.
const MinimumFuelThreshold fp.Scalar = 0

// ValidateThrust checks fuel capability and a positive magnitude, per
// spec.md §4.1.1.
func ValidateThrust(actor models.Entity, _ []models.Entity, action models.Action) bool {
	return actor.FuelMass > MinimumFuelThreshold && action.Magnitude > 0
}

// ExecuteThrust clamps thrust to the per-tick cap and the fuel-starve
// limit, applies the resulting delta-v, and burns fuel/mass.
func ExecuteThrust(actor models.Entity, _ []models.Entity, action models.Action, ctx TickContext) []models.EntityUpdate {
	maxPerTick := fp.Scalar(ctx.Tunables.MaxThrustPerTick)
	burnRate := fp.Scalar(ctx.Tunables.FuelBurnRate)
	massLoss := fp.Scalar(ctx.Tunables.MassPropulsionLoss)

	clamped := fp.Clamp(action.Magnitude, 0, maxPerTick)
	fuelCapacity := fp.Mul(actor.FuelMass, burnRate)
	effective := fp.Min(clamped, fuelCapacity)

	var deltaV fp.Vec2
	if action.Direction != nil && !action.Direction.IsZero() {
		deltaV = fp.ScaleVector(*action.Direction, effective)
	} else {
		deltaV = fp.HeadingToVector(actor.Heading, effective)
	}

	newVelocity := fp.AddVector(actor.Velocity, deltaV)
	newFuel := fp.Sub(actor.FuelMass, fp.Mul(effective, burnRate))
	newMass := fp.Sub(actor.Mass, fp.Mul(effective, massLoss))

	return []models.EntityUpdate{{Patch: &models.Patch{
		ID: actor.ID,
		Fields: models.Fields{
			Velocity: &newVelocity,
			FuelMass: &newFuel,
			Mass:     &newMass,
			Thrust:   &effective,
		},
	}}}
}

// ThrustSpec pairs ValidateThrust/ExecuteThrust for the dispatcher.
var ThrustSpec = Spec{Validate: ValidateThrust, Execute: ExecuteThrust}
