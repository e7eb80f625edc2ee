package generation

import (
	"fmt"

	"roomforge/components"
	"roomforge/geom"
	"roomforge/rules"
)

// spawnPointTries is the rejection-sampling budget for enemies and currency
const spawnPointTries = 80

// PickEnemyCategory makes one weighted draw over square, triangle and star.
// Star weight drops to zero once starsSpawned reaches the rule's cap, and a
// star pick increments starsSpawned. With no usable weight it returns square.
func PickEnemyCategory(rng RandomSource, rule rules.DifficultyRule, starsSpawned *int) components.EnemyCategory {
	squareWeight := rule.SquareWeight
	triangleWeight := rule.TriangleWeight
	starWeight := rule.StarWeight
	if *starsSpawned >= rule.MaxStars {
		starWeight = 0
	}

	total := squareWeight + triangleWeight + starWeight
	if total <= geom.Epsilon {
		return components.EnemySquare
	}

	roll := rng.Value() * total
	if roll < squareWeight {
		return components.EnemySquare
	}
	roll -= squareWeight

	if roll < triangleWeight {
		return components.EnemyTriangle
	}

	*starsSpawned++
	return components.EnemyStar
}

// spawnEnemies places the rule's enemy budget for tier
func (g *Generator) spawnEnemies(rule rules.DifficultyRule) {
	count := g.rng.Range(rule.MinEnemies, rule.MaxEnemies+1)
	g.stats.EnemiesRolled = count

	starsSpawned := 0
	for i := 0; i < count; i++ {
		category := PickEnemyCategory(g.rng, rule, &starsSpawned)
		prefab := g.enemyPrefabs[category]
		if prefab == nil {
			continue
		}

		pos, ok := g.tryFindSpawnPointCircle(g.settings.EnemySpawnRadius)
		if !ok {
			continue
		}
		g.instantiate(prefab, pos, 0)
		g.ledger.Register(pos, g.settings.EnemySpawnRadius)
		g.stats.EnemiesPlaced++
		if category == components.EnemyStar {
			g.stats.StarsPlaced++
		}
	}

	g.log(fmt.Sprintf("Placed %d enemies out of %d planned (%d stars)", g.stats.EnemiesPlaced, count, g.stats.StarsPlaced))
}

// spawnCurrency places the rule's currency budget
func (g *Generator) spawnCurrency(rule rules.DifficultyRule) {
	if g.currencyPrefab == nil {
		return
	}

	count := g.rng.Range(rule.MinCurrency, rule.MaxCurrency+1)
	g.stats.CurrencyRolled = count

	for i := 0; i < count; i++ {
		pos, ok := g.tryFindSpawnPointCircle(g.settings.CurrencySpawnRadius)
		if !ok {
			continue
		}
		g.instantiate(g.currencyPrefab, pos, 0)
		g.ledger.Register(pos, g.settings.CurrencySpawnRadius)
		g.stats.CurrencyPlaced++
	}

	g.log(fmt.Sprintf("Placed %d currency pickups out of %d planned", g.stats.CurrencyPlaced, count))
}

// tryFindSpawnPointCircle rejection-samples a free circle of radius
func (g *Generator) tryFindSpawnPointCircle(radius float64) (geom.Vec2, bool) {
	s := g.settings
	staticMask := s.BlockedMask | s.ObstacleMask | s.WallMask
	req := g.placementRequest(geom.V(radius, radius))

	for tries := 0; tries < spawnPointTries; tries++ {
		candidate := req.Sample(g.rng, g.bounds)

		if req.InSafeZone(candidate) {
			continue
		}
		if g.space.OverlapCircle(candidate, radius, staticMask) {
			continue
		}
		if g.ledger.IsReserved(candidate, radius) {
			continue
		}
		if s.AvoidEnemyOverlap && s.EnemyMask != 0 {
			if g.space.OverlapCircle(candidate, radius, s.EnemyMask) {
				continue
			}
		}

		return candidate, true
	}

	return geom.Vec2{}, false
}
