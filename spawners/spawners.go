package spawners

import (
	"fmt"
	"math"

	"roomforge/components"
	"roomforge/data"
	"roomforge/ecs"
	"roomforge/geom"
)

// Tags applied to generated entities
const (
	TagGenerated = "generated"
	TagContainer = "container"
)

// fallbackHalfExtent is used for colliders of prefabs without usable bounds
const fallbackHalfExtent = 0.5

// EntitySpawner creates and destroys prefab instances in an ECS world
type EntitySpawner struct {
	world      *ecs.World
	logMessage func(string) // Function for logging messages
}

// NewEntitySpawner creates a new entity spawner
func NewEntitySpawner(world *ecs.World, logFunc func(string)) *EntitySpawner {
	return &EntitySpawner{
		world:      world,
		logMessage: logFunc,
	}
}

// World returns the world instances are created in
func (s *EntitySpawner) World() *ecs.World {
	return s.world
}

// CreateContainer creates an empty named entity that generated instances are
// parented to.
func (s *EntitySpawner) CreateContainer(name string) ecs.EntityID {
	container := s.world.CreateEntity()
	s.world.TagEntity(container.ID, TagContainer)
	s.world.AddComponent(container.ID, components.Name, &components.NameComponent{Name: name})
	s.world.AddComponent(container.ID, components.Kind, &components.KindComponent{Kind: components.KindContainer})
	return container.ID
}

// Instantiate creates an instance of prefab at pos, rotated around Z by
// rotationDeg and parented to parent. A nil prefab creates nothing and
// returns ecs.NoEntity.
func (s *EntitySpawner) Instantiate(prefab *data.Prefab, pos geom.Vec2, rotationDeg float64, parent ecs.EntityID) ecs.EntityID {
	if prefab == nil {
		return ecs.NoEntity
	}

	entity := s.world.CreateEntity()
	id := entity.ID

	s.world.AddComponent(id, components.Position, &components.PositionComponent{X: pos.X, Y: pos.Y})
	s.world.AddComponent(id, components.Rotation, &components.RotationComponent{Degrees: rotationDeg})
	s.world.AddComponent(id, components.Kind, &components.KindComponent{Kind: prefab.Kind})
	s.world.AddComponent(id, components.PrefabRef, &components.PrefabRefComponent{PrefabID: prefab.ID})

	name := prefab.Name
	if name == "" {
		name = prefab.ID
	}
	s.world.AddComponent(id, components.Name, &components.NameComponent{Name: name})

	if prefab.Category != "" {
		s.world.AddComponent(id, components.Enemy, &components.EnemyComponent{Category: prefab.Category})
	}

	// Only prefabs on a collision layer take part in overlap queries
	if layer := prefab.LayerMask(); layer != 0 {
		half, ok := prefab.SampleExtents()
		if !ok {
			half = geom.V(fallbackHalfExtent, fallbackHalfExtent)
		}
		s.world.AddComponent(id, components.Collider, &components.ColliderComponent{
			HalfExtents: RotateExtents(half, rotationDeg),
			Layer:       layer,
		})
	}

	s.world.TagEntity(id, TagGenerated)
	s.world.TagEntity(id, string(prefab.Kind))
	s.world.SetParent(id, parent)

	return id
}

// Destroy removes an instance and everything parented to it
func (s *EntitySpawner) Destroy(id ecs.EntityID) {
	if !s.world.Exists(id) {
		return
	}
	s.world.RemoveEntity(id)
}

// DestroyChildren removes every instance parented to parent and reports how
// many direct children were swept.
func (s *EntitySpawner) DestroyChildren(parent ecs.EntityID) int {
	children := s.world.ChildIDs(parent)
	s.world.RemoveChildren(parent)
	if len(children) > 0 && s.logMessage != nil {
		s.logMessage(fmt.Sprintf("Swept %d leftover instances from container %d", len(children), parent))
	}
	return len(children)
}

// RotateExtents returns world-aligned half-extents for a box rotated by a
// multiple of 90 degrees. Other angles are snapped to the nearest quarter turn.
func RotateExtents(half geom.Vec2, rotationDeg float64) geom.Vec2 {
	quarter := int(math.Round(rotationDeg/90)) % 4
	if quarter < 0 {
		quarter += 4
	}
	if quarter%2 == 1 {
		return geom.V(half.Y, half.X)
	}
	return half
}
