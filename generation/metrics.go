package generation

import "roomforge/geom"

// WallMetrics is the length and thickness of one wall segment in world units
type WallMetrics struct {
	SegmentLength float64 `json:"segmentLength"`
	Thickness     float64 `json:"thickness"`
}

// DeriveWallMetrics measures a reference wall: length is the longer side of
// its bounding box and thickness the shorter one. A dimension is only
// reported when the measurement is positive; zero means "keep configured".
func DeriveWallMetrics(sampler ExtentsSampler) WallMetrics {
	var m WallMetrics
	if sampler == nil {
		return m
	}
	half, ok := sampler.SampleExtents()
	if !ok {
		return m
	}

	if length := half.MaxComponent() * 2; length > geom.Epsilon {
		m.SegmentLength = length
	}
	if thickness := half.MinComponent() * 2; thickness > geom.Epsilon {
		m.Thickness = thickness
	}
	return m
}

// EffectiveSegmentLength picks the derived length, then the configured one,
// then max(0.1, cellSize).
func EffectiveSegmentLength(derived, configured, cellSize float64) float64 {
	if derived > geom.Epsilon {
		return derived
	}
	if configured > geom.Epsilon {
		return configured
	}
	return max(0.1, cellSize)
}

// ResolveRoomDimension returns the world dimension if one was set, else the
// cell count (at least one) scaled by cellSize.
func ResolveRoomDimension(world float64, cells int, cellSize float64) float64 {
	if world > geom.Epsilon {
		return world
	}
	return float64(max(1, cells)) * cellSize
}
