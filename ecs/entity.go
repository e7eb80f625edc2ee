package ecs

import "github.com/zyedidia/generic/mapset"

// EntityID is a unique identifier for an entity. IDs are never reused
// within a World.
type EntityID uint64

// NoEntity is the zero ID; no entity ever has it
const NoEntity EntityID = 0

// Entity represents a scene object
type Entity struct {
	ID EntityID
	// Tags can be used for quick identification (e.g., "wall", "enemy")
	Tags mapset.Set[string]
}

// NewEntity creates a new entity with the given ID
func NewEntity(id EntityID) *Entity {
	return &Entity{
		ID:   id,
		Tags: mapset.New[string](),
	}
}

// AddTag adds a tag to the entity
func (e *Entity) AddTag(tag string) {
	e.Tags.Put(tag)
}

// HasTag checks if the entity has a specific tag
func (e *Entity) HasTag(tag string) bool {
	return e.Tags.Has(tag)
}

// RemoveTag removes a tag from the entity
func (e *Entity) RemoveTag(tag string) {
	e.Tags.Remove(tag)
}
