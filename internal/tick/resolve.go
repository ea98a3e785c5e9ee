// Package tick implements the wave-based tick resolver (§4.4): it
// groups a tick's actions into waves by orderIndex, resolves each
// wave's conflicts, settles containment/weld bindings between waves,
// and performs the single end-of-tick translation pass.
package tick

import (
	"sort"

	"github.com/darkhorsekelly/mesh/internal/conflict"
	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/physics"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// Metrics reports what happened during resolution: one WaveMetrics per
// wave, in ascending orderIndex order.
type Metrics struct {
	Waves []WaveMetrics
}

// WaveMetrics is one wave's conflict-resolution outcome.
type WaveMetrics struct {
	OrderIndex        int
	Clusters          []conflict.ClusterResult
	ExecutedActionIDs []string
}

// Options tunes a single resolveTick invocation. SkipFinalTranslation
// supports the draft projector (§4.5), which previews outcomes without
// advancing ships along their velocity.
type Options struct {
	SkipFinalTranslation bool
	SkipTickIncrement    bool
}

// Resolve runs one full tick: wave-by-wave conflict resolution with
// binding-only settlement between waves, then (unless skipped) a final
// translation and binding pass, environmental reclassification, and
// the tick counter increment. It is a pure function of its arguments.
func Resolve(state models.World, actions []models.Action, tunables config.Tunables, opts Options) (models.World, Metrics) {
	working := state.Clone()

	waveIndices := map[int][]models.Action{}
	var orderIndices []int
	for _, a := range actions {
		if _, ok := waveIndices[a.OrderIndex]; !ok {
			orderIndices = append(orderIndices, a.OrderIndex)
		}
		waveIndices[a.OrderIndex] = append(waveIndices[a.OrderIndex], a)
	}
	sort.Ints(orderIndices)

	var metrics Metrics
	for _, idx := range orderIndices {
		waveActions := waveIndices[idx]
		waveResult := conflict.ResolveWave(working, waveActions, working.Tick, tunables)
		working = waveResult.State
		working = physics.ApplyBinding(working)

		metrics.Waves = append(metrics.Waves, WaveMetrics{
			OrderIndex:        idx,
			Clusters:          waveResult.Clusters,
			ExecutedActionIDs: waveResult.ExecutedActionIDs,
		})
	}

	if !opts.SkipFinalTranslation {
		working = physics.ApplyTranslation(working)
		working = physics.ApplyBinding(working)
	}

	working = applyEnvironmentalTransitions(working)

	if !opts.SkipTickIncrement {
		working.Tick++
	}

	return working, metrics
}
