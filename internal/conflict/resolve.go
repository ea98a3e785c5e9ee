package conflict

import (
	"sort"
	"time"

	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/internal/handlers"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// ClusterResult records one cluster's outcome for the tick's metrics:
// the actions it contained, the order the resolver chose to run them
// in, how many produced updates, and whether it was voided as a
// stalemate or fell back to the heuristic ordering on budget.
type ClusterResult struct {
	ActionIDs       []string
	ChosenOrder     []string
	ExecutedIDs     []string
	SuccessCount    int
	IsStalemate     bool
	VoidedActionIDs []string
	BudgetExceeded  bool
}

// WaveResult is the resolved state after running every cluster in a
// wave, plus the per-cluster metrics and the set of action ids that
// actually produced an update.
type WaveResult struct {
	State             models.World
	Clusters          []ClusterResult
	ExecutedActionIDs []string
}

// ResolveWave groups actions into clusters (§4.3) and resolves each
// independently against the given state, returning the combined
// result. An action's overlap set is its TouchedEntityIDs plus every
// target handlers.ResolveTargets derives from the wave's starting state
// (UNLOAD's container, UNWELD's weld parent, LOAD's existing children),
// so an existing entity touched by one cluster is not touched by
// another within the same wave.
func ResolveWave(state models.World, actions []models.Action, tick uint64, tunables config.Tunables) WaveResult {
	touched := make([][]string, len(actions))
	for i, a := range actions {
		ids := a.TouchedEntityIDs()
		for _, target := range handlers.ResolveTargets(&state, a) {
			ids = append(ids, target.ID)
		}
		touched[i] = ids
	}
	clusters := groupClusters(touched)

	result := WaveResult{State: state}
	for _, members := range clusters {
		clusterActions := make([]models.Action, len(members))
		for i, idx := range members {
			clusterActions[i] = actions[idx]
		}
		cr, nextState := resolveCluster(result.State, clusterActions, tick, tunables)
		result.State = nextState
		result.Clusters = append(result.Clusters, cr)
		result.ExecutedActionIDs = append(result.ExecutedActionIDs, cr.ExecutedIDs...)
	}
	return result
}

// resolveCluster finds the best-scoring ordering of a single cluster's
// actions (exhaustive permutation search up to PermThreshold members,
// heuristic fallback beyond it or on budget exhaustion), applies it,
// and reports the outcome.
func resolveCluster(state models.World, actions []models.Action, tick uint64, tunables config.Tunables) (ClusterResult, models.World) {
	n := len(actions)
	distinctPlayers := map[string]bool{}
	for _, a := range actions {
		if a.PlayerID != "" {
			distinctPlayers[a.PlayerID] = true
		}
	}

	type candidate struct {
		order        []int
		state        models.World
		successIDs   []string
		displacement fp.Scalar
	}

	evaluate := func(order []int) candidate {
		working := state
		var successIDs []string
		for _, idx := range order {
			action := actions[idx]
			ctx := handlers.TickContext{Tick: tick, World: &working, Tunables: tunables}
			updates := handlers.Dispatch(&working, action, ctx)
			if !models.IsEmpty(updates) {
				successIDs = append(successIDs, action.ID)
				working = working.ApplyUpdates(updates)
			}
		}
		return candidate{order: append([]int(nil), order...), state: working, successIDs: successIDs, displacement: totalSquaredDisplacement(state, working)}
	}

	better := func(a, b candidate) bool {
		if len(a.successIDs) != len(b.successIDs) {
			return len(a.successIDs) > len(b.successIDs)
		}
		if a.displacement != b.displacement {
			return a.displacement < b.displacement
		}
		return lexLess(orderIDs(actions, a.order), orderIDs(actions, b.order))
	}

	budgetExceeded := false
	var best candidate
	haveBest := false

	heuristicOrder := heuristicOrdering(actions)

	if n <= tunables.PermThreshold {
		deadline := time.Now().Add(tunables.PermTimeBudget())
		permute(n, func(order []int) bool {
			if time.Now().After(deadline) {
				budgetExceeded = true
				return false
			}
			c := evaluate(order)
			if !haveBest || better(c, best) {
				best = c
				haveBest = true
			}
			return true
		})
		if budgetExceeded {
			best = evaluate(heuristicOrder)
			haveBest = true
		}
	} else {
		best = evaluate(heuristicOrder)
		haveBest = true
	}
	_ = haveBest // best is always populated by one of the branches above

	actionIDs := make([]string, n)
	for i, a := range actions {
		actionIDs[i] = a.ID
	}
	sort.Strings(actionIDs)

	chosenIDs := orderIDs(actions, best.order)

	if len(best.successIDs) == 0 && len(distinctPlayers) >= 2 {
		return ClusterResult{
			ActionIDs:       actionIDs,
			ChosenOrder:     chosenIDs,
			SuccessCount:    0,
			IsStalemate:     true,
			VoidedActionIDs: actionIDs,
			BudgetExceeded:  budgetExceeded,
		}, state
	}

	return ClusterResult{
		ActionIDs:      actionIDs,
		ChosenOrder:    chosenIDs,
		ExecutedIDs:    best.successIDs,
		SuccessCount:   len(best.successIDs),
		BudgetExceeded: budgetExceeded,
	}, best.state
}

func orderIDs(actions []models.Action, order []int) []string {
	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = actions[idx].ID
	}
	return ids
}

func lexLess(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// heuristicOrdering implements §4.3 step 1's fallback: a stable sort
// by (orderIndex, playerId, entityId).
func heuristicOrdering(actions []models.Action) []int {
	order := make([]int, len(actions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := actions[order[i]], actions[order[j]]
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.EntityID < b.EntityID
	})
	return order
}

// totalSquaredDisplacement sums, over every entity whose position
// differs between before and after, the squared distance it moved —
// the scoring tiebreak named in §4.3 step 2(a).
func totalSquaredDisplacement(before, after models.World) fp.Scalar {
	var total fp.Scalar
	for _, e := range after.Entities {
		prev := before.EntityByID(e.ID)
		if prev == nil {
			continue
		}
		if prev.Position == e.Position {
			continue
		}
		total = fp.Add(total, fp.DistanceSquared(prev.Position, e.Position))
	}
	return total
}

// permute calls visit with every permutation of [0,n), in the order
// Heap's algorithm produces them (not lexicographic), stopping early if
// visit returns false.
func permute(n int, visit func(order []int) bool) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	var generate func(k int) bool
	generate = func(k int) bool {
		if k == 1 {
			return visit(order)
		}
		for i := 0; i < k; i++ {
			if !generate(k - 1) {
				return false
			}
			if k%2 == 0 {
				order[i], order[k-1] = order[k-1], order[i]
			} else {
				order[0], order[k-1] = order[k-1], order[0]
			}
		}
		return true
	}
	if n == 0 {
		visit(order)
		return
	}
	generate(n)
}
