package handlers

import (
	"testing"

	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

func TestValidateExtractRequiresResourceAppropriatePayload(t *testing.T) {
	actor := models.Entity{ID: "miner", Reach: fp.FromInt(100)}
	origin := models.Entity{ID: "well", VolatilesMass: fp.FromInt(10)}

	volatiles := models.Action{ExtractRate: fp.FromInt(1), TargetIDs: []string{"well"}, Resource: models.ExtractVolatiles}
	if !ValidateExtract(actor, []models.Entity{origin}, volatiles) {
		t.Errorf("expected VOLATILES extract to validate against an origin carrying volatiles")
	}

	mineralsNoTarget := models.Action{ExtractRate: fp.FromInt(1), TargetIDs: []string{"well"}, Resource: models.ExtractMinerals}
	if ValidateExtract(actor, []models.Entity{{ID: "well", Mass: fp.FromInt(10)}}, mineralsNoTarget) {
		t.Errorf("expected MINERALS extract to require a mineralTargetPosition")
	}
}

func TestExecuteExtractVolatilesDrainsIntoActor(t *testing.T) {
	actor := models.Entity{ID: "miner", VolatilesMass: 0}
	origin := models.Entity{ID: "well", VolatilesMass: fp.FromInt(5)}
	action := models.Action{ExtractRate: fp.FromInt(3), TargetIDs: []string{"well"}, Resource: models.ExtractVolatiles}

	updates := ExecuteExtract(actor, []models.Entity{origin}, action, TickContext{Tick: 1})
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates (origin drain + actor gain), got %d", len(updates))
	}
	originPatch := updates[0].Patch
	actorPatch := updates[1].Patch
	if *originPatch.Fields.VolatilesMass != fp.FromInt(2) {
		t.Errorf("origin volatilesMass = %d, want %d", *originPatch.Fields.VolatilesMass, fp.FromInt(2))
	}
	if *actorPatch.Fields.VolatilesMass != fp.FromInt(3) {
		t.Errorf("actor volatilesMass = %d, want %d", *actorPatch.Fields.VolatilesMass, fp.FromInt(3))
	}
}

func TestExecuteExtractMineralsSpawnsStore(t *testing.T) {
	actor := models.Entity{ID: "miner"}
	origin := models.Entity{ID: "asteroid", Mass: fp.FromInt(100)}
	targetPos := fp.Vec2{X: fp.FromInt(50), Y: fp.FromInt(50)}
	action := models.Action{
		ExtractRate:      fp.FromInt(10),
		TargetIDs:        []string{"asteroid"},
		Resource:         models.ExtractMinerals,
		MineralTargetPos: &targetPos,
	}

	updates := ExecuteExtract(actor, []models.Entity{origin}, action, TickContext{Tick: 7})
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates (origin shrink + spawn), got %d", len(updates))
	}
	if updates[0].Patch == nil || *updates[0].Patch.Fields.Mass != fp.FromInt(90) {
		t.Errorf("expected asteroid mass reduced to %d", fp.FromInt(90))
	}
	if updates[1].Spawn == nil {
		t.Fatalf("expected a Spawn update for the mineral store")
	}
	spawn := updates[1].Spawn
	if spawn.Kind != models.KindMineralStore {
		t.Errorf("spawn kind = %q, want MineralStore", spawn.Kind)
	}
	if spawn.Position != targetPos {
		t.Errorf("spawn position = %+v, want %+v", spawn.Position, targetPos)
	}
	if spawn.Mass != fp.FromInt(10) {
		t.Errorf("spawn mass = %d, want %d", spawn.Mass, fp.FromInt(10))
	}
}
