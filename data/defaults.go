package data

import (
	"roomforge/components"
	"roomforge/geom"
)

// Built-in prefab ids referenced by the default settings
const (
	PrefabWall          = "wall-segment"
	PrefabExit          = "exit-portal"
	PrefabSpawnMarker   = "spawn-marker"
	PrefabSquareEnemy   = "enemy-square"
	PrefabTriangleEnemy = "enemy-triangle"
	PrefabStarEnemy     = "enemy-star"
	PrefabCurrency      = "blop"
	PrefabCrate         = "crate"
	PrefabPillar        = "pillar"
	PrefabLongCrate     = "long-crate"
)

func size(x, y float64) *geom.Vec2 {
	v := geom.V(x, y)
	return &v
}

// DefaultPrefabs returns the built-in prefab set used when no prefab
// directory is configured.
func DefaultPrefabs() *PrefabLibrary {
	lib := NewPrefabLibrary()
	defaults := []*Prefab{
		{ID: PrefabWall, Name: "Wall Segment", Kind: components.KindWall, Layer: "walls", ColliderSize: size(1, 0.2), Color: "#8a8a8a"},
		{ID: PrefabExit, Name: "Exit", Kind: components.KindExit, Layer: "triggers", ColliderSize: size(0.8, 0.8), Color: "#33ccff"},
		{ID: PrefabSpawnMarker, Name: "Player Spawn", Kind: components.KindSpawnMarker, RenderSize: size(0.5, 0.5), Color: "#33ff66"},
		{ID: PrefabSquareEnemy, Name: "Square", Kind: components.KindEnemy, Category: components.EnemySquare, Layer: "enemies", ColliderSize: size(0.8, 0.8), Color: "#ff5555"},
		{ID: PrefabTriangleEnemy, Name: "Triangle", Kind: components.KindEnemy, Category: components.EnemyTriangle, Layer: "enemies", ColliderSize: size(0.8, 0.7), Color: "#ffaa33"},
		{ID: PrefabStarEnemy, Name: "Star", Kind: components.KindEnemy, Category: components.EnemyStar, Layer: "enemies", ColliderSize: size(0.9, 0.9), Color: "#ff33ff"},
		{ID: PrefabCurrency, Name: "Blop", Kind: components.KindCurrency, Layer: "pickups", ColliderSize: size(0.4, 0.4), Color: "#ffee33"},
		{ID: PrefabCrate, Name: "Crate", Kind: components.KindObstacle, Layer: "obstacles", ColliderSize: size(1, 1), Color: "#996633"},
		{ID: PrefabPillar, Name: "Pillar", Kind: components.KindObstacle, Layer: "obstacles", ColliderSize: size(0.6, 0.6), Color: "#777799"},
		{ID: PrefabLongCrate, Name: "Long Crate", Kind: components.KindObstacle, Layer: "obstacles", RenderSize: size(2, 1), Color: "#885522"},
	}
	for _, p := range defaults {
		// Built-ins are known-good; Add only fails on invalid data.
		if err := lib.Add(p); err != nil {
			panic(err)
		}
	}
	return lib
}
