package tick

import (
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// orbitBandMultiplier widens a celestial's captureRadius into its
// orbit band: inside captureRadius is SURFACE, inside
// captureRadius*orbitBandMultiplier is ORBIT, beyond that is SPACE.
const orbitBandMultiplier fp.Scalar = 5000 // 5.0 in FP

// applyEnvironmentalTransitions reclassifies every root entity's
// zoomState by distance to the nearest non-wormhole celestial (§4.4
// step 4). Contained and welded entities are skipped: their zoomState
// is left as it was and is not derived from their root's.
func applyEnvironmentalTransitions(w models.World) models.World {
	out := w.Clone()
	for i := range out.Entities {
		e := &out.Entities[i]
		if !e.IsRoot() {
			continue
		}
		e.ZoomStateVal = classifyZoom(e.Position, out.Celestials)
	}
	return out
}

func classifyZoom(pos fp.Vec2, celestials []models.Celestial) models.ZoomState {
	best := models.ZoomSpace
	var bestDist fp.Scalar = -1

	for _, c := range celestials {
		if c.Kind == models.CelestialWormhole {
			continue
		}
		d := fp.DistanceSquared(pos, c.Position)
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		bestDist = d

		captureSq := fp.Mul(c.CaptureRadius, c.CaptureRadius)
		orbitRadius := fp.Mul(c.CaptureRadius, orbitBandMultiplier)
		orbitSq := fp.Mul(orbitRadius, orbitRadius)

		switch {
		case d <= captureSq:
			best = models.ZoomSurface
		case d <= orbitSq:
			best = models.ZoomOrbit
		default:
			best = models.ZoomSpace
		}
	}
	return best
}
