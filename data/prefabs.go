package data

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"roomforge/components"
	"roomforge/geom"
)

// Prefab describes a placeable object: what it is, which collision layer it
// occupies and how big it is.
type Prefab struct {
	// Basic info
	ID   string                `json:"id"`   // Unique identifier
	Name string                `json:"name"` // Display name
	Kind components.ObjectKind `json:"kind"` // wall, obstacle, enemy, currency, exit, spawn-marker

	// Collision
	Layer    string                   `json:"layer,omitempty"`    // Collision layer name, empty for no collider
	Category components.EnemyCategory `json:"category,omitempty"` // Enemy category (enemies only)

	// Bounding boxes as full sizes in world units
	ColliderSize *geom.Vec2 `json:"colliderSize,omitempty"`
	RenderSize   *geom.Vec2 `json:"renderSize,omitempty"`

	// Visual appearance for overlays
	Color string `json:"color,omitempty"` // Color in hex format (e.g. "#00FF00")
}

// SampleExtents returns the prefab half-extents, preferring the collider box
// and falling back to the render box. Degenerate boxes are ignored.
func (p *Prefab) SampleExtents() (geom.Vec2, bool) {
	if p == nil {
		return geom.Vec2{}, false
	}
	for _, size := range []*geom.Vec2{p.ColliderSize, p.RenderSize} {
		if size != nil && size.X > geom.Epsilon && size.Y > geom.Epsilon {
			return size.Scale(0.5), true
		}
	}
	return geom.Vec2{}, false
}

// LayerMask resolves the prefab's collision layer
func (p *Prefab) LayerMask() components.LayerMask {
	return components.LayerByName(p.Layer)
}

// RGBA returns the overlay color of the prefab
func (p *Prefab) RGBA() color.RGBA {
	return ParseHexColor(p.Color)
}

// ValidatePrefab ensures that the prefab has all required fields
func ValidatePrefab(p *Prefab) error {
	if p.ID == "" {
		return fmt.Errorf("prefab missing id")
	}
	switch p.Kind {
	case components.KindWall, components.KindObstacle, components.KindCurrency,
		components.KindExit, components.KindSpawnMarker:
	case components.KindEnemy:
		switch p.Category {
		case components.EnemySquare, components.EnemyTriangle, components.EnemyStar:
		default:
			return fmt.Errorf("enemy prefab '%s' has unknown category %q", p.ID, p.Category)
		}
	default:
		return fmt.Errorf("prefab '%s' has unknown kind %q", p.ID, p.Kind)
	}
	if p.Layer != "" && p.LayerMask() == 0 {
		return fmt.Errorf("prefab '%s' has unknown layer %q", p.ID, p.Layer)
	}
	for _, size := range []*geom.Vec2{p.ColliderSize, p.RenderSize} {
		if size != nil && (size.X < 0 || size.Y < 0) {
			return fmt.Errorf("prefab '%s' has a negative size", p.ID)
		}
	}
	return nil
}

// PrefabLibrary manages all prefab definitions
type PrefabLibrary struct {
	Prefabs map[string]*Prefab
}

// NewPrefabLibrary creates an empty library
func NewPrefabLibrary() *PrefabLibrary {
	return &PrefabLibrary{
		Prefabs: make(map[string]*Prefab),
	}
}

// Add validates and registers a prefab, replacing any prefab with the same ID
func (l *PrefabLibrary) Add(p *Prefab) error {
	if err := ValidatePrefab(p); err != nil {
		return err
	}
	l.Prefabs[p.ID] = p
	return nil
}

// LoadFromDirectory loads all JSON prefab files from a directory
func (l *PrefabLibrary) LoadFromDirectory(dirPath string) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read prefab directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		fullPath := filepath.Join(dirPath, file.Name())
		if err := l.LoadFromFile(fullPath); err != nil {
			return fmt.Errorf("failed to load prefab from %s: %w", file.Name(), err)
		}
	}

	return nil
}

// LoadFromFile loads a single prefab from a JSON file
func (l *PrefabLibrary) LoadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var prefab Prefab
	if err := json.Unmarshal(data, &prefab); err != nil {
		return err
	}

	if err := l.Add(&prefab); err != nil {
		return fmt.Errorf("invalid prefab in %s: %w", filePath, err)
	}
	return nil
}

// Get returns a prefab by ID
func (l *PrefabLibrary) Get(id string) (*Prefab, bool) {
	prefab, ok := l.Prefabs[id]
	return prefab, ok
}

// Resolve looks up an optional reference. An empty id is not an error and
// yields nil; an id that names no prefab is.
func (l *PrefabLibrary) Resolve(id string) (*Prefab, error) {
	if id == "" {
		return nil, nil
	}
	prefab, ok := l.Get(id)
	if !ok {
		return nil, fmt.Errorf("no prefab found with id '%s'", id)
	}
	return prefab, nil
}

// IDs returns all prefab ids in sorted order
func (l *PrefabLibrary) IDs() []string {
	ids := make([]string, 0, len(l.Prefabs))
	for id := range l.Prefabs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseHexColor converts a hex string to a color.RGBA
func ParseHexColor(hex string) (c color.RGBA) {
	c.A = 0xff

	if len(hex) < 7 {
		return color.RGBA{255, 255, 255, 255}
	}

	format := "#%02x%02x%02x"
	_, err := fmt.Sscanf(hex, format, &c.R, &c.G, &c.B)
	if err != nil {
		return color.RGBA{255, 255, 255, 255} // Default white on error
	}

	return
}
