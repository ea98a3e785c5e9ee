package handlers

import "github.com/darkhorsekelly/mesh/pkg/models"

// ValidateSealAirlock requires the airlock to currently be open.
func ValidateSealAirlock(actor models.Entity, _ []models.Entity, _ models.Action) bool {
	return !actor.AirlockSealed
}

// ExecuteSealAirlock flips the seal state closed.
func ExecuteSealAirlock(actor models.Entity, _ []models.Entity, _ models.Action, _ TickContext) []models.EntityUpdate {
	sealed := true
	return []models.EntityUpdate{{Patch: &models.Patch{
		ID:     actor.ID,
		Fields: models.Fields{AirlockSealed: &sealed},
	}}}
}

// SealAirlockSpec pairs ValidateSealAirlock/ExecuteSealAirlock.
var SealAirlockSpec = Spec{Validate: ValidateSealAirlock, Execute: ExecuteSealAirlock}

// ValidateUnsealAirlock requires the airlock to currently be sealed.
func ValidateUnsealAirlock(actor models.Entity, _ []models.Entity, _ models.Action) bool {
	return actor.AirlockSealed
}

// ExecuteUnsealAirlock flips the seal state open.
func ExecuteUnsealAirlock(actor models.Entity, _ []models.Entity, _ models.Action, _ TickContext) []models.EntityUpdate {
	sealed := false
	return []models.EntityUpdate{{Patch: &models.Patch{
		ID:     actor.ID,
		Fields: models.Fields{AirlockSealed: &sealed},
	}}}
}

// UnsealAirlockSpec pairs ValidateUnsealAirlock/ExecuteUnsealAirlock.
var UnsealAirlockSpec = Spec{Validate: ValidateUnsealAirlock, Execute: ExecuteUnsealAirlock}
