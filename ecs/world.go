package ecs

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ComponentID is a unique identifier for component types
type ComponentID uint

// Component is any component value; components are stored by pointer
type Component any

// ComponentMap stores components by their type ID
type ComponentMap map[ComponentID]Component

// World manages all entities, their components and the parent/child links
// used to group generated objects under a container.
type World struct {
	nextID   uint64
	entities map[EntityID]*Entity
	// Store components as map[EntityID]map[ComponentID]Component
	components map[EntityID]ComponentMap
	// Tag-based entity lookup for quick access
	entityTags map[string]mapset.Set[EntityID]
	// Parent links and the reverse child index
	parents  map[EntityID]EntityID
	children map[EntityID]mapset.Set[EntityID]
	// Event manager for cross-package notifications
	eventManager *EventManager
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		entities:     make(map[EntityID]*Entity),
		components:   make(map[EntityID]ComponentMap),
		entityTags:   make(map[string]mapset.Set[EntityID]),
		parents:      make(map[EntityID]EntityID),
		children:     make(map[EntityID]mapset.Set[EntityID]),
		eventManager: NewEventManager(),
	}
}

// CreateEntity creates a new entity and adds it to the world
func (w *World) CreateEntity() *Entity {
	w.nextID++
	entity := NewEntity(EntityID(w.nextID))
	w.entities[entity.ID] = entity
	w.components[entity.ID] = make(ComponentMap)
	return entity
}

// Exists reports whether the entity is alive
func (w *World) Exists(entityID EntityID) bool {
	_, ok := w.entities[entityID]
	return ok
}

// Count returns the number of live entities
func (w *World) Count() int {
	return len(w.entities)
}

// RemoveEntity removes an entity, its components and, recursively, all of
// its children.
func (w *World) RemoveEntity(entityID EntityID) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	w.RemoveChildren(entityID)

	// Remove entity from tag lookups
	entity.Tags.Each(func(tag string) {
		if set, ok := w.entityTags[tag]; ok {
			set.Remove(entityID)
			if set.Size() == 0 {
				delete(w.entityTags, tag)
			}
		}
	})

	w.detach(entityID)
	delete(w.children, entityID)
	delete(w.components, entityID)
	delete(w.entities, entityID)
}

// RemoveChildren removes every descendant of parentID but keeps the parent
func (w *World) RemoveChildren(parentID EntityID) {
	for _, child := range w.ChildIDs(parentID) {
		w.RemoveEntity(child)
	}
}

// SetParent attaches child under parent. Passing NoEntity detaches the child.
func (w *World) SetParent(childID, parentID EntityID) {
	if !w.Exists(childID) {
		return
	}
	w.detach(childID)
	if parentID == NoEntity || !w.Exists(parentID) {
		return
	}

	w.parents[childID] = parentID
	set, ok := w.children[parentID]
	if !ok {
		set = mapset.New[EntityID]()
		w.children[parentID] = set
	}
	set.Put(childID)
}

// Parent returns the parent of an entity, or NoEntity
func (w *World) Parent(entityID EntityID) EntityID {
	return w.parents[entityID]
}

// ChildIDs returns the direct children of parentID in creation order
func (w *World) ChildIDs(parentID EntityID) []EntityID {
	set, ok := w.children[parentID]
	if !ok {
		return nil
	}
	ids := make([]EntityID, 0, set.Size())
	set.Each(func(id EntityID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) detach(childID EntityID) {
	parentID, ok := w.parents[childID]
	if !ok {
		return
	}
	delete(w.parents, childID)
	if set, ok := w.children[parentID]; ok {
		set.Remove(childID)
		if set.Size() == 0 {
			delete(w.children, parentID)
		}
	}
}

// AddComponent adds a component to an entity
func (w *World) AddComponent(entityID EntityID, componentID ComponentID, component Component) {
	if _, exists := w.entities[entityID]; !exists {
		return
	}

	w.components[entityID][componentID] = component
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entityID EntityID, componentID ComponentID) (Component, bool) {
	if componentMap, exists := w.components[entityID]; exists {
		component, exists := componentMap[componentID]
		return component, exists
	}
	return nil, false
}

// HasComponent checks if an entity has a specific component
func (w *World) HasComponent(entityID EntityID, componentID ComponentID) bool {
	_, ok := w.GetComponent(entityID, componentID)
	return ok
}

// RemoveComponent removes a component from an entity
func (w *World) RemoveComponent(entityID EntityID, componentID ComponentID) {
	if componentMap, exists := w.components[entityID]; exists {
		delete(componentMap, componentID)
	}
}

// TagEntity adds a tag to an entity and updates the tag lookup
func (w *World) TagEntity(entityID EntityID, tag string) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	entity.AddTag(tag)

	set, exists := w.entityTags[tag]
	if !exists {
		set = mapset.New[EntityID]()
		w.entityTags[tag] = set
	}
	set.Put(entityID)
}

// GetEntitiesWithTag returns all entities with a specific tag, ordered by ID
func (w *World) GetEntitiesWithTag(tag string) []*Entity {
	entities := make([]*Entity, 0)

	if tagged, exists := w.entityTags[tag]; exists {
		tagged.Each(func(entityID EntityID) {
			if entity, ok := w.entities[entityID]; ok {
				entities = append(entities, entity)
			}
		})
	}

	sortEntities(entities)
	return entities
}

// GetAllEntities returns a slice of all entities in the world, ordered by ID
func (w *World) GetAllEntities() []*Entity {
	entities := make([]*Entity, 0, len(w.entities))
	for _, entity := range w.entities {
		entities = append(entities, entity)
	}
	sortEntities(entities)
	return entities
}

// GetEntitiesWithComponent returns all entities that have a specific
// component, ordered by ID so callers iterate deterministically.
func (w *World) GetEntitiesWithComponent(componentID ComponentID) []*Entity {
	entities := make([]*Entity, 0)

	for id, componentMap := range w.components {
		if _, hasComponent := componentMap[componentID]; hasComponent {
			if entity, ok := w.entities[id]; ok {
				entities = append(entities, entity)
			}
		}
	}

	sortEntities(entities)
	return entities
}

// GetEntity returns an entity by its ID
func (w *World) GetEntity(entityID EntityID) *Entity {
	return w.entities[entityID]
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent is a convenience method to emit an event
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}

func sortEntities(entities []*Entity) {
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
}
