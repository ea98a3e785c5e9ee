package tick

import (
	"testing"

	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// S1: a single THRUST action on an otherwise-idle ship moves it by
// exactly its resulting velocity on the tick's translation pass, and
// the tick counter advances by one.
func TestScenarioPureThrust(t *testing.T) {
	world := models.World{Tick: 0, Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(100), Mass: fp.FromInt(1000), Position: fp.Vec2{}, Heading: 0},
	}}
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(50)},
	}

	next, _ := Resolve(world, actions, config.Defaults(), Options{})

	ship := next.EntityByID("ship")
	if ship == nil {
		t.Fatal("ship missing after resolve")
	}
	if ship.Velocity.X != fp.FromInt(50) {
		t.Errorf("velocity.X = %d, want %d", ship.Velocity.X, fp.FromInt(50))
	}
	if ship.Position.X != fp.FromInt(50) {
		t.Errorf("position.X after translation = %d, want %d", ship.Position.X, fp.FromInt(50))
	}
	if next.Tick != 1 {
		t.Errorf("tick = %d, want 1", next.Tick)
	}
}

// S2: welding two ships combines their momentum, and a subsequent
// THRUST on the weld parent moves the whole rigid assembly together.
func TestScenarioWeldThenThrust(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "a", AirlockSealed: true, Mass: fp.FromInt(10), FuelMass: fp.FromInt(100), Reach: fp.FromInt(100), Position: fp.Vec2{}},
		{ID: "b", Mass: fp.FromInt(10), Position: fp.Vec2{X: fp.FromInt(2)}},
	}}
	actions := []models.Action{
		{ID: "weld", Kind: models.ActionWeld, EntityID: "a", TargetIDs: []string{"b"}, OrderIndex: 0},
		{ID: "thrust", Kind: models.ActionThrust, EntityID: "a", Magnitude: fp.FromInt(10), OrderIndex: 1},
	}

	next, _ := Resolve(world, actions, config.Defaults(), Options{})

	a := next.EntityByID("a")
	b := next.EntityByID("b")
	if b.WeldParentID == nil || *b.WeldParentID != "a" {
		t.Fatalf("expected b welded to a")
	}
	// b must still sit at its fixed relative offset from a after
	// translation moves the assembly.
	wantOffset := fp.FromInt(2)
	if fp.Sub(b.Position.X, a.Position.X) != wantOffset {
		t.Errorf("b's offset from a after translation = %d, want %d", fp.Sub(b.Position.X, a.Position.X), wantOffset)
	}
	if a.Velocity.X == 0 {
		t.Errorf("expected the assembly to carry nonzero velocity after THRUST")
	}
}

// S3: loading a crate into a ship's hold, moving the ship, then
// unloading the crate frees it with the ship's velocity at the moment
// of separation, resting one tick's drift past its requested drop
// position.
func TestScenarioLoadMoveUnload(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", IsContainer: true, ContainerVolume: fp.FromInt(10), Mass: fp.FromInt(100), Reach: fp.FromInt(100), FuelMass: fp.FromInt(100)},
		{ID: "crate", Volume: fp.FromInt(5), Mass: fp.FromInt(5)},
	}}
	dropPos := fp.Vec2{X: fp.FromInt(99)}
	actions := []models.Action{
		{ID: "load", Kind: models.ActionLoad, EntityID: "ship", ContainerID: "ship", ContentIDs: []string{"crate"}, OrderIndex: 0},
		{ID: "thrust", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(20), OrderIndex: 1},
	}

	mid, _ := Resolve(world, actions, config.Defaults(), Options{})
	shipVelocityAtSeparation := mid.EntityByID("ship").Velocity

	unload := []models.Action{
		{ID: "unload", Kind: models.ActionUnload, EntityID: "ship", ContentIDs: []string{"crate"}, NewPositions: []fp.Vec2{dropPos}},
	}
	final, _ := Resolve(mid, unload, config.Defaults(), Options{})

	crate := final.EntityByID("crate")
	if crate.ParentID != nil {
		t.Errorf("expected crate to be free-floating after UNLOAD")
	}
	// Unload happens mid-tick; the same tick's final translation pass
	// then carries the now-root crate forward by the velocity it just
	// inherited, so its resting position is the drop point plus that
	// one tick's drift, not the drop point itself.
	wantPos := fp.AddVector(dropPos, shipVelocityAtSeparation)
	if crate.Position != wantPos {
		t.Errorf("crate position = %+v, want %+v (drop point plus post-separation drift)", crate.Position, wantPos)
	}
	if crate.Velocity != shipVelocityAtSeparation {
		t.Errorf("expected crate to inherit ship velocity at separation: crate=%+v ship-at-separation=%+v", crate.Velocity, shipVelocityAtSeparation)
	}
}

// S4: two players racing to LOAD the same crate into a container that
// doesn't exist both fail under every ordering, which the cluster
// resolver must flag as a stalemate rather than silently picking one.
func TestScenarioStalemateVoidsAllActionsInCluster(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "crate", Volume: fp.FromInt(1)},
		{ID: "ship1"},
		{ID: "ship2"},
	}}
	actions := []models.Action{
		{ID: "act-1", Kind: models.ActionLoad, EntityID: "ship1", PlayerID: "p1", ContainerID: "nowhere", ContentIDs: []string{"crate"}},
		{ID: "act-2", Kind: models.ActionLoad, EntityID: "ship2", PlayerID: "p2", ContainerID: "nowhere", ContentIDs: []string{"crate"}},
	}

	next, metrics := Resolve(world, actions, config.Defaults(), Options{})

	crate := next.EntityByID("crate")
	if crate.ParentID != nil {
		t.Errorf("expected the stalemated crate to remain unparented")
	}

	foundStalemate := false
	for _, w := range metrics.Waves {
		for _, c := range w.Clusters {
			if c.IsStalemate {
				foundStalemate = true
			}
		}
	}
	if !foundStalemate {
		t.Errorf("expected tick metrics to record a stalemate cluster")
	}
}

// S5: a sub-assembly welded two levels deep survives its parent
// unwelding from the root — only the direct relationship is severed.
func TestScenarioSubAssemblyPreservedAcrossUnweld(t *testing.T) {
	aID, bID := "a", "b"
	offsetAB := fp.Vec2{X: fp.FromInt(1)}
	offsetBC := fp.Vec2{X: fp.FromInt(1)}
	world := models.World{Entities: []models.Entity{
		{ID: aID, AirlockSealed: true, Mass: fp.FromInt(10), Reach: fp.FromInt(100)},
		{ID: bID, WeldParentID: &aID, RelativeOffset: &offsetAB, Mass: fp.FromInt(10), Reach: fp.FromInt(100)},
		{ID: "c", WeldParentID: &bID, RelativeOffset: &offsetBC, Mass: fp.FromInt(5)},
	}}
	actions := []models.Action{
		{ID: "unweld", Kind: models.ActionUnweld, EntityID: aID, TargetIDs: []string{bID}},
	}

	next, _ := Resolve(world, actions, config.Defaults(), Options{})

	b := next.EntityByID(bID)
	c := next.EntityByID("c")
	if b.WeldParentID != nil {
		t.Errorf("expected b detached from a")
	}
	if c.WeldParentID == nil || *c.WeldParentID != bID {
		t.Errorf("expected c to remain welded to b, a sub-assembly relationship unweld never touches")
	}
}

// S6: REFINE converts volatiles into fuel at RefineEfficiency and sheds
// the inefficiency as lost mass rather than materializing it anywhere.
func TestScenarioRefineMassBalance(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "refinery", VolatilesMass: fp.FromInt(100), FuelMass: 0, Mass: fp.FromInt(1000)},
	}}
	actions := []models.Action{
		{ID: "refine", Kind: models.ActionRefine, EntityID: "refinery", VolatilesAmount: fp.FromInt(100)},
	}

	tunables := config.Defaults()
	effective := fp.FromInt(100)
	fuel := fp.Mul(effective, fp.Scalar(tunables.RefineEfficiency))
	waste := fp.Sub(effective, fuel)

	next, _ := Resolve(world, actions, tunables, Options{})
	after := next.EntityByID("refinery")

	if after.VolatilesMass != 0 {
		t.Errorf("volatiles after refine = %d, want 0 (fully consumed)", after.VolatilesMass)
	}
	if after.FuelMass != fuel {
		t.Errorf("fuel after refine = %d, want %d", after.FuelMass, fuel)
	}
	wantMass := fp.Sub(fp.FromInt(1000), waste)
	if after.Mass != wantMass {
		t.Errorf("mass after refine = %d, want %d (shed %d waste)", after.Mass, wantMass, waste)
	}
}

// P2 (purity): Resolve must not mutate the World or Actions it is given.
func TestResolveDoesNotMutateInputs(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(10), Mass: fp.FromInt(100)},
	}}
	before := world.Clone()
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(5)},
	}

	_, _ = Resolve(world, actions, config.Defaults(), Options{})

	got := world.EntityByID("ship")
	want := before.EntityByID("ship")
	if got.Velocity != want.Velocity || got.FuelMass != want.FuelMass {
		t.Errorf("Resolve mutated its input world: got %+v, want unchanged %+v", got, want)
	}
}

// P1 (determinism): identical inputs produce identical outputs, even
// when permutation search is involved.
func TestResolveIsDeterministic(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(10), Mass: fp.FromInt(100)},
	}}
	actions := []models.Action{
		{ID: "a1", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(5)},
	}

	a, _ := Resolve(world, actions, config.Defaults(), Options{})
	b, _ := Resolve(world, actions, config.Defaults(), Options{})

	shipA := a.EntityByID("ship")
	shipB := b.EntityByID("ship")
	if *shipA != *shipB {
		t.Errorf("Resolve is not deterministic: %+v != %+v", shipA, shipB)
	}
}

// P3 (tick monotonicity): Tick always advances by exactly one unless
// explicitly suppressed for a preview.
func TestResolveTickMonotonicity(t *testing.T) {
	world := models.World{Tick: 41}
	next, _ := Resolve(world, nil, config.Defaults(), Options{})
	if next.Tick != 42 {
		t.Errorf("tick = %d, want 42", next.Tick)
	}

	preview, _ := Resolve(world, nil, config.Defaults(), Options{SkipTickIncrement: true})
	if preview.Tick != 41 {
		t.Errorf("expected SkipTickIncrement to leave tick unchanged, got %d", preview.Tick)
	}
}
