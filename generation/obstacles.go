package generation

import (
	"fmt"

	"roomforge/geom"
)

// fallbackHalfExtent is used for prefabs without a usable bounding box
const fallbackHalfExtent = 0.5

// spawnObstacles places a random number of obstacles from the pool. Each one
// gets its own try budget; an obstacle that never fits is skipped.
func (g *Generator) spawnObstacles() {
	s := g.settings
	count := g.rng.Range(s.ObstacleMin, s.ObstacleMax+1)
	g.stats.ObstaclesRolled = count

	for i := 0; i < count; i++ {
		prefab := g.obstaclePool[g.rng.Range(0, len(g.obstaclePool))]

		half, ok := prefab.SampleExtents()
		if !ok {
			half = geom.V(fallbackHalfExtent, fallbackHalfExtent)
		}
		radius := half.MaxComponent()
		req := g.placementRequest(half)

		for t := 0; t < s.ObstaclePlacementTries; t++ {
			pos := req.Sample(g.rng, g.bounds)

			if req.InSafeZone(pos) {
				continue
			}
			if g.space.OverlapBox(pos, half.Scale(2), s.BlockedMask) {
				continue
			}
			// Keeps every reservation circle disjoint, obstacles included
			if g.ledger.IsReserved(pos, radius) {
				continue
			}

			rotation := 90 * float64(g.rng.Range(0, 4))
			g.instantiate(prefab, pos, rotation)
			g.ledger.Register(pos, radius)
			g.stats.ObstaclesPlaced++
			break
		}
	}

	g.log(fmt.Sprintf("Placed %d obstacles out of %d planned", g.stats.ObstaclesPlaced, count))
}

func (g *Generator) placementRequest(half geom.Vec2) PlacementRequest {
	return PlacementRequest{
		HalfExtents:     half,
		Inset:           g.settings.WallInset,
		Spawn:           g.spawn,
		Exit:            g.exit,
		SpawnSafeRadius: g.settings.SpawnSafeRadius,
		ExitSafeRadius:  g.settings.ExitSafeRadius,
	}
}
