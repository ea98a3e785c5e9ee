// Package draft implements the draft projector (§4.5): the same
// resolver pipeline as internal/tick, run without advancing the tick
// counter or applying the final translation, so a client can preview
// the outcome of its pending actions before committing them.
package draft

import (
	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/internal/tick"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// ActionFlags reports the extra conflict-analysis signals the draft
// projector exposes beyond the committed tick resolver: whether a
// referenced target moved since wave 0, and whether the actor's reach
// to that target may have been invalidated by the shift.
type ActionFlags struct {
	ActionID         string
	TargetShifted    bool
	ReachInvalidated bool
}

// Result is the projected outcome: the would-be next state (minus
// final translation and tick increment) plus the underlying tick
// metrics and the additional per-action conflict-analysis flags.
type Result struct {
	State       models.World
	Metrics     tick.Metrics
	ActionFlags []ActionFlags
}

// Project runs the resolver pipeline with SkipFinalTranslation and no
// tick increment, then annotates each action with whether its targets
// shifted position or its actor's reach may no longer cover them,
// compared against the state at wave 0.
func Project(state models.World, actions []models.Action, tunables config.Tunables) Result {
	initial := state.Clone()

	nextState, metrics := tick.Resolve(state, actions, tunables, tick.Options{
		SkipFinalTranslation: true,
		SkipTickIncrement:    true,
	})

	flags := make([]ActionFlags, 0, len(actions))
	for _, a := range actions {
		flags = append(flags, analyzeAction(initial, nextState, a))
	}

	return Result{State: nextState, Metrics: metrics, ActionFlags: flags}
}

func analyzeAction(before, after models.World, a models.Action) ActionFlags {
	flag := ActionFlags{ActionID: a.ID}

	actorBefore := before.EntityByID(a.EntityID)
	actorAfter := after.EntityByID(a.EntityID)

	for _, id := range a.TouchedEntityIDs() {
		if id == a.EntityID {
			continue
		}
		targetBefore := before.EntityByID(id)
		targetAfter := after.EntityByID(id)
		if targetBefore == nil || targetAfter == nil {
			continue
		}
		if targetBefore.Position != targetAfter.Position {
			flag.TargetShifted = true
		}
		if actorBefore != nil && actorAfter != nil {
			reachSq := fp.Mul(actorBefore.Reach, actorBefore.Reach)
			distAfter := fp.DistanceSquared(actorAfter.Position, targetAfter.Position)
			if distAfter > reachSq {
				flag.ReachInvalidated = true
			}
		}
	}
	return flag
}
