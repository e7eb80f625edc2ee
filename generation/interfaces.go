package generation

import (
	"roomforge/components"
	"roomforge/data"
	"roomforge/ecs"
	"roomforge/geom"
)

// InstanceFactory creates and destroys positioned prefab instances parented
// to a container. These interfaces keep the generator free of any concrete
// scene or physics implementation.
type InstanceFactory interface {
	CreateContainer(name string) ecs.EntityID
	Instantiate(prefab *data.Prefab, pos geom.Vec2, rotationDeg float64, parent ecs.EntityID) ecs.EntityID
	Destroy(id ecs.EntityID)
	DestroyChildren(parent ecs.EntityID) int
}

// SpatialQuery answers "does anything on mask overlap this shape". Box size
// is the full size, not the half-extents.
type SpatialQuery interface {
	OverlapBox(center, size geom.Vec2, mask components.LayerMask) bool
	OverlapCircle(center geom.Vec2, radius float64, mask components.LayerMask) bool
}

// RandomSource is the seedable stream consumed by one generation pass.
// Range is max-exclusive; Value is in [0, 1).
type RandomSource interface {
	Seed(seed int64)
	Range(min, max int) int
	RangeFloat(min, max float64) float64
	Value() float64
}

// ExtentsSampler is anything that can report bounding half-extents
type ExtentsSampler interface {
	SampleExtents() (geom.Vec2, bool)
}
