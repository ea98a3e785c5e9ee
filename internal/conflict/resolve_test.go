package conflict

import (
	"testing"

	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

func TestResolveWaveIndependentClustersBothSucceed(t *testing.T) {
	world := models.World{Entities: []models.Entity{
		{ID: "a", FuelMass: fp.FromInt(10), Mass: fp.FromInt(100)},
		{ID: "b", FuelMass: fp.FromInt(10), Mass: fp.FromInt(100)},
	}}
	actions := []models.Action{
		{ID: "act-a", Kind: models.ActionThrust, EntityID: "a", Magnitude: fp.FromInt(5)},
		{ID: "act-b", Kind: models.ActionThrust, EntityID: "b", Magnitude: fp.FromInt(5)},
	}

	result := ResolveWave(world, actions, 1, config.Defaults())
	if len(result.Clusters) != 2 {
		t.Fatalf("expected 2 independent clusters, got %d", len(result.Clusters))
	}
	if len(result.ExecutedActionIDs) != 2 {
		t.Errorf("expected both unrelated THRUST actions to execute, got %v", result.ExecutedActionIDs)
	}
}

func TestResolveClusterDetectsStalemateWhenNoOrderingSucceeds(t *testing.T) {
	// Two different players both try to LOAD the same crate into
	// containers it can't validly enter (container missing from targets
	// so every ordering fails validation); neither action can ever
	// succeed regardless of order, and two distinct players are involved.
	world := models.World{Entities: []models.Entity{
		{ID: "crate", Volume: fp.FromInt(1)},
		{ID: "ship1"},
		{ID: "ship2"},
	}}
	actions := []models.Action{
		{ID: "act-1", Kind: models.ActionLoad, EntityID: "ship1", PlayerID: "p1", ContainerID: "missing-container", ContentIDs: []string{"crate"}},
		{ID: "act-2", Kind: models.ActionLoad, EntityID: "ship2", PlayerID: "p2", ContainerID: "missing-container", ContentIDs: []string{"crate"}},
	}

	cr, nextState := resolveCluster(world, actions, 1, config.Defaults())
	if !cr.IsStalemate {
		t.Fatalf("expected a stalemate when every ordering yields zero successes across 2 players, got %+v", cr)
	}
	if len(cr.VoidedActionIDs) != 2 {
		t.Errorf("expected both actions voided, got %v", cr.VoidedActionIDs)
	}
	if nextState.Tick != world.Tick {
		t.Errorf("expected stalemate to leave state unchanged")
	}
}

func TestResolveClusterSingleFailingActionIsNotAStalemate(t *testing.T) {
	// A single player's own impossible action should just fail
	// (zero successes) without being flagged a stalemate — stalemate
	// requires >=2 distinct contributing players.
	world := models.World{Entities: []models.Entity{
		{ID: "ship1"},
	}}
	actions := []models.Action{
		{ID: "act-1", Kind: models.ActionLoad, EntityID: "ship1", PlayerID: "p1", ContainerID: "missing", ContentIDs: []string{"nothing"}},
	}

	cr, _ := resolveCluster(world, actions, 1, config.Defaults())
	if cr.IsStalemate {
		t.Errorf("expected a single-player failing action to not be flagged a stalemate")
	}
	if cr.SuccessCount != 0 {
		t.Errorf("expected zero successes, got %d", cr.SuccessCount)
	}
}

func TestResolveClusterPrefersFullPermutationOverHeuristicWithinThreshold(t *testing.T) {
	// Actor has only enough fuel for one THRUST; two THRUST actions on
	// the same actor conflict over fuel. Whichever runs first succeeds,
	// the second finds zero fuel left and fails. The resolver must pick
	// the ordering that maximizes successes (both orderings here tie at
	// 1 success, so the lexicographic action-id tiebreak decides).
	world := models.World{Entities: []models.Entity{
		{ID: "ship", FuelMass: fp.FromInt(1), Mass: fp.FromInt(100)},
	}}
	actions := []models.Action{
		{ID: "zzz", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(1)},
		{ID: "aaa", Kind: models.ActionThrust, EntityID: "ship", Magnitude: fp.FromInt(1)},
	}

	cr, _ := resolveCluster(world, actions, 1, config.Defaults())
	if cr.SuccessCount != 1 {
		t.Fatalf("expected exactly one THRUST to succeed when fuel only covers one, got %d", cr.SuccessCount)
	}
	if len(cr.ExecutedIDs) != 1 || cr.ExecutedIDs[0] != "aaa" {
		t.Errorf("expected the lexicographically-first action id to win the tiebreak, got %v", cr.ExecutedIDs)
	}
}

func TestTotalSquaredDisplacementIgnoresUnmovedEntities(t *testing.T) {
	before := models.World{Entities: []models.Entity{
		{ID: "a", Position: fp.Vec2{X: 0, Y: 0}},
		{ID: "b", Position: fp.Vec2{X: fp.FromInt(1), Y: 0}},
	}}
	after := models.World{Entities: []models.Entity{
		{ID: "a", Position: fp.Vec2{X: 0, Y: 0}},
		{ID: "b", Position: fp.Vec2{X: fp.FromInt(4), Y: 0}},
	}}
	got := totalSquaredDisplacement(before, after)
	want := fp.DistanceSquared(before.Entities[1].Position, after.Entities[1].Position)
	if got != want {
		t.Errorf("displacement = %d, want %d (only b moved)", got, want)
	}
}

func TestPermuteVisitsEveryOrderingOfThree(t *testing.T) {
	seen := map[[3]int]bool{}
	permute(3, func(order []int) bool {
		seen[[3]int{order[0], order[1], order[2]}] = true
		return true
	})
	if len(seen) != 6 {
		t.Errorf("expected 6 permutations of 3 elements, got %d", len(seen))
	}
}
