package generation

import "roomforge/geom"

// PlacementRequest carries what obstacle, enemy and currency placement share:
// the object's half-extents, the boundary inset and the safe zones around
// spawn and exit.
type PlacementRequest struct {
	HalfExtents     geom.Vec2
	Inset           float64
	Spawn           geom.Vec2
	Exit            geom.Vec2
	SpawnSafeRadius float64
	ExitSafeRadius  float64
}

// Sample draws a point inside bounds keeping the inset and half-extents off
// the boundary.
func (r PlacementRequest) Sample(rng RandomSource, bounds geom.Bounds) geom.Vec2 {
	return SamplePointInsideBounds(rng, bounds, r.HalfExtents, r.Inset)
}

// InSafeZone reports whether p is too close to the spawn or the exit
func (r PlacementRequest) InSafeZone(p geom.Vec2) bool {
	if geom.Distance(p, r.Spawn) < r.SpawnSafeRadius {
		return true
	}
	return geom.Distance(p, r.Exit) < r.ExitSafeRadius
}

// SamplePointInsideBounds draws x then y uniformly from the shrunken bounds
func SamplePointInsideBounds(rng RandomSource, bounds geom.Bounds, half geom.Vec2, inset float64) geom.Vec2 {
	lo := bounds.Min()
	hi := bounds.Max()

	x := rng.RangeFloat(lo.X+inset+half.X, hi.X-inset-half.X)
	y := rng.RangeFloat(lo.Y+inset+half.Y, hi.Y-inset-half.Y)
	return geom.V(x, y)
}
