// Package physics answers overlap queries against the colliders stored in an
// ECS world. Queries are read-only.
package physics

import (
	"roomforge/components"
	"roomforge/ecs"
	"roomforge/geom"
)

// Space runs box and circle overlap queries over world colliders
type Space struct {
	world *ecs.World
}

// NewSpace creates a query space over world
func NewSpace(world *ecs.World) *Space {
	return &Space{world: world}
}

// OverlapBox reports whether an axis-aligned box of the given full size
// centered at center touches any collider on mask.
func (s *Space) OverlapBox(center, size geom.Vec2, mask components.LayerMask) bool {
	half := size.Scale(0.5)
	return s.any(mask, func(pos, colliderHalf geom.Vec2) bool {
		return geom.BoxesOverlap(center, half, pos, colliderHalf)
	})
}

// OverlapCircle reports whether a circle touches any collider on mask
func (s *Space) OverlapCircle(center geom.Vec2, radius float64, mask components.LayerMask) bool {
	return s.any(mask, func(pos, colliderHalf geom.Vec2) bool {
		return geom.CircleBoxOverlap(center, radius, pos, colliderHalf)
	})
}

// QueryCircle returns the IDs of all colliders on mask touching the circle
func (s *Space) QueryCircle(center geom.Vec2, radius float64, mask components.LayerMask) []ecs.EntityID {
	var hits []ecs.EntityID
	s.each(mask, func(id ecs.EntityID, pos, colliderHalf geom.Vec2) bool {
		if geom.CircleBoxOverlap(center, radius, pos, colliderHalf) {
			hits = append(hits, id)
		}
		return true
	})
	return hits
}

func (s *Space) any(mask components.LayerMask, hit func(pos, half geom.Vec2) bool) bool {
	found := false
	s.each(mask, func(_ ecs.EntityID, pos, half geom.Vec2) bool {
		if hit(pos, half) {
			found = true
			return false
		}
		return true
	})
	return found
}

// each visits colliders on mask until visit returns false
func (s *Space) each(mask components.LayerMask, visit func(id ecs.EntityID, pos, half geom.Vec2) bool) {
	if mask == 0 {
		return
	}
	for _, entity := range s.world.GetEntitiesWithComponent(components.Collider) {
		comp, _ := s.world.GetComponent(entity.ID, components.Collider)
		collider := comp.(*components.ColliderComponent)
		if !collider.Layer.Has(mask) {
			continue
		}

		posComp, ok := s.world.GetComponent(entity.ID, components.Position)
		if !ok {
			continue
		}
		pos := posComp.(*components.PositionComponent).Vec()

		if !visit(entity.ID, pos, collider.HalfExtents) {
			return
		}
	}
}
