// Package overlay holds the pieces shared by the diagnostic views: mapping
// room coordinates to a screen grid and choosing colors and glyphs. Views
// only read generation snapshots; they never touch the generator.
package overlay

import (
	"image/color"
	"math"
	"sort"

	"roomforge/components"
	"roomforge/data"
	"roomforge/generation"
	"roomforge/geom"
)

// Controller is what an interactive view drives
type Controller interface {
	Snapshot() *generation.Snapshot
	Regenerate() error
	Next() error
}

// Projection maps world coordinates to screen coordinates. Screen Y grows
// downward, world Y upward.
type Projection struct {
	worldMin geom.Vec2
	worldMax geom.Vec2
	ScaleX   float64
	ScaleY   float64
	OffsetX  float64
	OffsetY  float64
}

// Fit returns the projection that centers bounds in a width x height screen
// with margin on every side. cellAspect is the height of one screen unit
// divided by its width: 1 for pixels, about 2 for terminal cells.
func Fit(bounds geom.Bounds, width, height, margin int, cellAspect float64) Projection {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	availW := float64(max(1, width-2*margin))
	availH := float64(max(1, height-2*margin))

	size := bounds.Size
	if size.X <= geom.Epsilon || size.Y <= geom.Epsilon {
		size = geom.V(1, 1)
	}

	scale := min(availW/size.X, availH*cellAspect/size.Y)
	p := Projection{
		worldMin: bounds.Min(),
		worldMax: bounds.Max(),
		ScaleX:   scale,
		ScaleY:   scale / cellAspect,
	}
	p.OffsetX = float64(margin) + (availW-size.X*p.ScaleX)/2
	p.OffsetY = float64(margin) + (availH-size.Y*p.ScaleY)/2
	return p
}

// Project maps a world point to screen coordinates
func (p Projection) Project(v geom.Vec2) (x, y float64) {
	x = p.OffsetX + (v.X-p.worldMin.X)*p.ScaleX
	y = p.OffsetY + (p.worldMax.Y-v.Y)*p.ScaleY
	return x, y
}

// Cell maps a world point to the integer grid cell containing it
func (p Projection) Cell(v geom.Vec2) (int, int) {
	x, y := p.Project(v)
	return int(math.Floor(x)), int(math.Floor(y))
}

var kindColors = map[components.ObjectKind]color.RGBA{
	components.KindWall:        {138, 138, 138, 255},
	components.KindObstacle:    {153, 102, 51, 255},
	components.KindEnemy:       {255, 85, 85, 255},
	components.KindCurrency:    {255, 238, 51, 255},
	components.KindExit:        {51, 204, 255, 255},
	components.KindSpawnMarker: {51, 255, 102, 255},
}

// ObjectColor returns the prefab's color when the library knows it, else
// the default color of the object's kind.
func ObjectColor(obj generation.SpawnedObject, prefabs *data.PrefabLibrary) color.RGBA {
	if prefabs != nil {
		if p, ok := prefabs.Get(obj.PrefabID); ok && p.Color != "" {
			return p.RGBA()
		}
	}
	if c, ok := kindColors[obj.Kind]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

// Glyph returns the terminal character for an object
func Glyph(obj generation.SpawnedObject) rune {
	switch obj.Kind {
	case components.KindWall:
		return '#'
	case components.KindObstacle:
		return 'O'
	case components.KindCurrency:
		return '$'
	case components.KindExit:
		return 'E'
	case components.KindSpawnMarker:
		return '@'
	case components.KindEnemy:
		switch obj.Category {
		case components.EnemyTriangle:
			return '^'
		case components.EnemyStar:
			return '*'
		default:
			return 's'
		}
	}
	return '?'
}

// drawOrder puts markers above everything else
var drawOrder = map[components.ObjectKind]int{
	components.KindWall:        0,
	components.KindObstacle:    1,
	components.KindCurrency:    2,
	components.KindEnemy:       3,
	components.KindExit:        4,
	components.KindSpawnMarker: 5,
}

// DrawOrder returns the snapshot objects sorted back to front
func DrawOrder(snap *generation.Snapshot) []generation.SpawnedObject {
	objs := make([]generation.SpawnedObject, len(snap.Objects))
	copy(objs, snap.Objects)
	sort.SliceStable(objs, func(i, j int) bool {
		return drawOrder[objs[i].Kind] < drawOrder[objs[j].Kind]
	})
	return objs
}
