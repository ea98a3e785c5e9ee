// Package handlers implements the per-action-kind validator/handler
// pairs described in spec.md §4.1. Every handler is a pure function of
// its explicit arguments: it reads no clock, no randomness, and no
// package-level state, and it never mutates the Entity values it is
// given.
package handlers

import (
	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// TickContext exposes the current tick number, a read-only view of the
// world, and the tunable constants a handler needs — without handlers
// ever reaching for a global.
type TickContext struct {
	Tick     uint64
	World    *models.World
	Tunables config.Tunables
}

// EntityByID is a read-only lookup into the context's world snapshot.
func (c TickContext) EntityByID(id string) (models.Entity, bool) {
	for _, e := range c.World.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entity{}, false
}

// Validator checks that actor/targets/action satisfy an action kind's
// capability and state preconditions.
type Validator func(actor models.Entity, targets []models.Entity, action models.Action) bool

// Handler computes the updates an action produces. It MUST call its
// Validator first (enforced by Dispatch, not by convention) and must
// never be invoked directly by callers that skip validation.
type Handler func(actor models.Entity, targets []models.Entity, action models.Action, ctx TickContext) []models.EntityUpdate

// Spec pairs a Validator and Handler for one action kind, enforcing the
// "handler calls its validator first" rule at a single choke point
// (§4.1) rather than trusting every handler implementation to remember.
type Spec struct {
	Validate Validator
	Execute  Handler
}

// Run validates then executes, returning an empty update slice whenever
// validation fails. This is the only path through which a handler's
// Execute function should ever be invoked.
func (s Spec) Run(actor models.Entity, targets []models.Entity, action models.Action, ctx TickContext) []models.EntityUpdate {
	if !s.Validate(actor, targets, action) {
		return nil
	}
	return s.Execute(actor, targets, action, ctx)
}
