package handlers

import "github.com/darkhorsekelly/mesh/pkg/models"

// registry maps the closed action catalogue onto its validator/handler
// pair. Every ActionKind must appear here, even one routed to
// UnimplementedSpec, so Dispatch never has to guess at an unknown kind.
var registry = map[models.ActionKind]Spec{
	models.ActionThrust:        ThrustSpec,
	models.ActionLoad:          LoadSpec,
	models.ActionUnload:        UnloadSpec,
	models.ActionWeld:          WeldSpec,
	models.ActionUnweld:        UnweldSpec,
	models.ActionSealAirlock:   SealAirlockSpec,
	models.ActionUnsealAirlock: UnsealAirlockSpec,
	models.ActionRefine:        RefineSpec,
	models.ActionExtract:       ExtractSpec,

	models.ActionManeuver:    UnimplementedSpec,
	models.ActionTransport:   UnimplementedSpec,
	models.ActionLaunch:      UnimplementedSpec,
	models.ActionManufacture: UnimplementedSpec,
	models.ActionMod:         UnimplementedSpec,
	models.ActionCommit:      UnimplementedSpec,
	models.ActionVectorLock:  UnimplementedSpec,
	models.ActionMoveScanner: UnimplementedSpec,
	models.ActionScan:        UnimplementedSpec,
	models.ActionTransferRes: UnimplementedSpec,
	models.ActionEncounter:   UnimplementedSpec,
}

// Lookup returns the Spec registered for kind and whether it was found.
// An unregistered kind is a transport-layer bug (the catalogue is
// closed), not a resolver-level validation failure.
func Lookup(kind models.ActionKind) (Spec, bool) {
	s, ok := registry[kind]
	return s, ok
}

// ResolveTargets gathers every entity a handler needs to see beyond the
// actor itself, given the current world snapshot. Each action kind
// reads a different shape out of the action payload and, for a few
// kinds, needs entities the payload never names directly (LOAD's
// existing container children, UNWELD's weld parents) so validators
// stay free of world access per their (actor, targets, action) -> bool
// contract.
func ResolveTargets(world *models.World, action models.Action) []models.Entity {
	seen := map[string]bool{}
	var out []models.Entity
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		if e := world.EntityByID(id); e != nil {
			seen[id] = true
			out = append(out, *e)
		}
	}

	switch action.Kind {
	case models.ActionLoad:
		add(action.ContainerID)
		for _, id := range action.ContentIDs {
			add(id)
		}
		for _, id := range world.Children(action.ContainerID) {
			add(id)
		}
	case models.ActionUnload:
		for _, id := range action.ContentIDs {
			add(id)
			if c := world.EntityByID(id); c != nil && c.ParentID != nil {
				add(*c.ParentID)
			}
		}
	case models.ActionWeld:
		for _, id := range action.TargetIDs {
			add(id)
		}
	case models.ActionUnweld:
		for _, id := range action.TargetIDs {
			add(id)
			if t := world.EntityByID(id); t != nil && t.WeldParentID != nil {
				add(*t.WeldParentID)
			}
		}
	case models.ActionExtract:
		for _, id := range action.TargetIDs {
			add(id)
		}
	default:
		for _, id := range action.TargetIDs {
			add(id)
		}
	}

	return out
}

// Dispatch resolves an action's targets, looks up the actor, and runs
// the registered Spec. It returns nil (no updates) for an unknown
// actor, an unknown kind, or a validation failure — the three cases
// §7 treats identically as ValidationFail.
func Dispatch(world *models.World, action models.Action, ctx TickContext) []models.EntityUpdate {
	actorPtr := world.EntityByID(action.EntityID)
	if actorPtr == nil {
		return nil
	}
	spec, ok := Lookup(action.Kind)
	if !ok {
		return nil
	}
	targets := ResolveTargets(world, action)
	return spec.Run(*actorPtr, targets, action, ctx)
}
