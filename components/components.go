package components

import (
	"strings"

	"roomforge/geom"
)

// ObjectKind classifies a generated object
type ObjectKind string

const (
	KindWall        ObjectKind = "wall"
	KindObstacle    ObjectKind = "obstacle"
	KindEnemy       ObjectKind = "enemy"
	KindCurrency    ObjectKind = "currency"
	KindExit        ObjectKind = "exit"
	KindSpawnMarker ObjectKind = "spawn-marker"
	KindContainer   ObjectKind = "container"
)

// EnemyCategory is the enemy archetype picked by weighted selection
type EnemyCategory string

const (
	EnemySquare   EnemyCategory = "square"
	EnemyTriangle EnemyCategory = "triangle"
	EnemyStar     EnemyCategory = "star"
)

// LayerMask is a bit set of collision layers
type LayerMask uint32

const (
	LayerWalls LayerMask = 1 << iota
	LayerObstacles
	LayerEnemies
	LayerPickups
	LayerTriggers
)

var layerNames = map[string]LayerMask{
	"walls":     LayerWalls,
	"obstacles": LayerObstacles,
	"enemies":   LayerEnemies,
	"pickups":   LayerPickups,
	"triggers":  LayerTriggers,
}

// LayerByName resolves a layer name such as "walls". Unknown or empty names
// resolve to 0 (no layer).
func LayerByName(name string) LayerMask {
	return layerNames[strings.ToLower(strings.TrimSpace(name))]
}

// Has reports whether any bit of other is set in m
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// PositionComponent stores the world position of an instance
type PositionComponent struct {
	X, Y float64
}

// Vec returns the position as a vector
func (p *PositionComponent) Vec() geom.Vec2 {
	return geom.V(p.X, p.Y)
}

// RotationComponent stores rotation around Z in degrees
type RotationComponent struct {
	Degrees float64
}

// ColliderComponent is a world-aligned box collider. HalfExtents already
// account for the instance rotation.
type ColliderComponent struct {
	HalfExtents geom.Vec2
	Layer       LayerMask
}

// KindComponent tags what an instance represents
type KindComponent struct {
	Kind ObjectKind
}

// EnemyComponent marks an enemy instance and its category
type EnemyComponent struct {
	Category EnemyCategory
}

// PrefabRefComponent links an instance back to its prefab
type PrefabRefComponent struct {
	PrefabID string
}

// NameComponent stores the display name for containers and instances
type NameComponent struct {
	Name string
}
