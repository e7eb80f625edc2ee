package generation

import "roomforge/geom"

// Edge names one side of the room
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Opposite returns the edge across the room
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeLeft:
		return EdgeRight
	case EdgeRight:
		return EdgeLeft
	case EdgeTop:
		return EdgeBottom
	default:
		return EdgeTop
	}
}

// SpawnExit is the chosen player spawn and exit with the edges they sit on
type SpawnExit struct {
	Spawn     geom.Vec2
	Exit      geom.Vec2
	SpawnEdge Edge
	ExitEdge  Edge
}

// PickSpawnAndExit places spawn and exit on opposite edges, inset from them.
// The coordinate along the edge is drawn separately for each point.
func PickSpawnAndExit(rng RandomSource, bounds geom.Bounds, inset float64) SpawnExit {
	half := bounds.Extents()
	horizontal := rng.Value() < 0.5

	var out SpawnExit
	if horizontal {
		spawnLeft := rng.Value() < 0.5
		ySpawn := rng.RangeFloat(-half.Y+inset, half.Y-inset)
		yExit := rng.RangeFloat(-half.Y+inset, half.Y-inset)

		left, right := -half.X+inset, half.X-inset
		if spawnLeft {
			out = SpawnExit{Spawn: geom.V(left, ySpawn), Exit: geom.V(right, yExit), SpawnEdge: EdgeLeft}
		} else {
			out = SpawnExit{Spawn: geom.V(right, ySpawn), Exit: geom.V(left, yExit), SpawnEdge: EdgeRight}
		}
	} else {
		spawnBottom := rng.Value() < 0.5
		xSpawn := rng.RangeFloat(-half.X+inset, half.X-inset)
		xExit := rng.RangeFloat(-half.X+inset, half.X-inset)

		bottom, top := -half.Y+inset, half.Y-inset
		if spawnBottom {
			out = SpawnExit{Spawn: geom.V(xSpawn, bottom), Exit: geom.V(xExit, top), SpawnEdge: EdgeBottom}
		} else {
			out = SpawnExit{Spawn: geom.V(xSpawn, top), Exit: geom.V(xExit, bottom), SpawnEdge: EdgeTop}
		}
	}

	out.ExitEdge = out.SpawnEdge.Opposite()
	out.Spawn = bounds.Center.Add(out.Spawn)
	out.Exit = bounds.Center.Add(out.Exit)
	return out
}
