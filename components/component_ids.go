package components

import (
	"roomforge/ecs"
)

// Define component IDs for generated objects
const (
	Position  ecs.ComponentID = iota
	Rotation                  // Rotation around Z in degrees
	Collider                  // Axis-aligned collider used by spatial queries
	Kind                      // Wall, obstacle, enemy, ...
	Enemy                     // Enemy category
	PrefabRef                 // Prefab the instance was created from
	Name                      // Display name (containers and instances)
)
