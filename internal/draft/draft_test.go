package draft

import (
	"testing"

	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// A THRUST-only preview must not advance the tick counter or move the
// actor along its new velocity — only the committed resolver does that.
func TestProjectDoesNotAdvanceTickOrApplyFinalTranslation(t *testing.T) {
	world := models.World{Tick: 7, Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(100), Mass: fp.FromInt(1000)},
	}}
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(50)},
	}

	result := Project(world, actions, config.Defaults())

	if result.State.Tick != 7 {
		t.Errorf("tick = %d, want unchanged 7", result.State.Tick)
	}
	ship := result.State.EntityByID("ship")
	if ship.Velocity.X != fp.FromInt(50) {
		t.Errorf("expected the preview to still compute the resulting velocity, got %d", ship.Velocity.X)
	}
	if ship.Position.X != 0 {
		t.Errorf("expected no final translation in a draft, got position.X = %d", ship.Position.X)
	}
}

// A target that moved during the wave it was resolved in — here, a
// crate UNLOADed to a new position in wave 0 — must be flagged as
// shifted for any later action that still references it, and the
// shift can invalidate the referencing actor's reach.
func TestProjectFlagsShiftedTargetAndInvalidatedReach(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", IsContainer: true, ContainerVolume: fp.FromInt(10), Mass: fp.FromInt(100), Reach: fp.FromInt(100)},
		{ID: "crate", ParentID: strPtr("ship"), Volume: fp.FromInt(5), Mass: fp.FromInt(5)},
		{ID: "ship2", IsContainer: true, ContainerVolume: fp.FromInt(10), Mass: fp.FromInt(100), Reach: fp.FromInt(10)},
	}}
	dropPos := fp.Vec2{X: fp.FromInt(50)}
	actions := []models.Action{
		{ID: "unload", Kind: models.ActionUnload, EntityID: "ship", ContentIDs: []string{"crate"}, NewPositions: []fp.Vec2{dropPos}, OrderIndex: 0},
		{ID: "load", Kind: models.ActionLoad, EntityID: "ship2", ContainerID: "ship2", ContentIDs: []string{"crate"}, OrderIndex: 1},
	}

	result := Project(world, actions, config.Defaults())

	var loadFlags *ActionFlags
	for i := range result.ActionFlags {
		if result.ActionFlags[i].ActionID == "load" {
			loadFlags = &result.ActionFlags[i]
		}
	}
	if loadFlags == nil {
		t.Fatalf("expected a flag entry for the load action")
	}
	if !loadFlags.TargetShifted {
		t.Errorf("expected TargetShifted for a crate that moved mid-wave")
	}
	if !loadFlags.ReachInvalidated {
		t.Errorf("expected ReachInvalidated: ship2's reach (%d) can't cover the crate's new distance", world.Entities[2].Reach)
	}
}

// An action untouched by any conflicting wave reports no flags at all.
func TestProjectLeavesUnaffectedActionsUnflagged(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(100), Mass: fp.FromInt(1000)},
	}}
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(50)},
	}

	result := Project(world, actions, config.Defaults())
	if len(result.ActionFlags) != 1 {
		t.Fatalf("expected one flag entry, got %d", len(result.ActionFlags))
	}
	if result.ActionFlags[0].TargetShifted || result.ActionFlags[0].ReachInvalidated {
		t.Errorf("THRUST touches no targets beyond its own actor; expected no flags, got %+v", result.ActionFlags[0])
	}
}

// Project must not mutate the world it was handed.
func TestProjectIsPureOnInput(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(100), Mass: fp.FromInt(1000)},
	}}
	before := world.Clone()
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(50)},
	}

	_ = Project(world, actions, config.Defaults())

	got := world.EntityByID("ship")
	want := before.EntityByID("ship")
	if got.Velocity != want.Velocity || got.FuelMass != want.FuelMass {
		t.Errorf("Project mutated its input world: got %+v, want unchanged %+v", got, want)
	}
}

func strPtr(s string) *string { return &s }
