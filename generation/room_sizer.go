package generation

import (
	"math"

	"roomforge/config"
	"roomforge/geom"
)

const (
	freeformTries = 50
	segmentTries  = 60
)

// SegmentCounts is the number of wall segments along each axis
type SegmentCounts struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RoomSize is the sizer result. World is zero when the active strategy did
// not set a world size; Segments is zero unless sizing was segment-quantized.
type RoomSize struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	World    geom.Vec2     `json:"world"`
	Segments SegmentCounts `json:"segments"`
}

// SegmentCandidate is one sample of the segment-quantized search
type SegmentCandidate struct {
	Segments SegmentCounts
	Width    int
	Height   int
	World    geom.Vec2
	Penalty  int
}

// AreaPenalty is the distance of area from [minArea, maxArea], zero inside
func AreaPenalty(area, minArea, maxArea int) int {
	if area < minArea {
		return minArea - area
	}
	if area > maxArea {
		return area - maxArea
	}
	return 0
}

// PickRoomSize runs the segment-quantized search when enabled and possible,
// otherwise the free-form search.
func PickRoomSize(rng RandomSource, s config.Settings, segmentLength float64) RoomSize {
	if s.ConstrainToWallSegments {
		if size, ok := PickSegmentSize(rng, s, segmentLength, nil); ok {
			return size
		}
	}
	return PickFreeformSize(rng, s)
}

// PickFreeformSize samples cell dimensions until the area falls inside the
// configured range, falling back to FreeformFallback after 50 misses.
func PickFreeformSize(rng RandomSource, s config.Settings) RoomSize {
	for i := 0; i < freeformTries; i++ {
		w := rng.Range(s.MinWidth, s.MaxWidth+1)
		h := rng.Range(s.MinHeight, s.MaxHeight+1)
		area := w * h
		if area >= s.MinArea && area <= s.MaxArea {
			return cellRoomSize(w, h, s.CellSize)
		}
	}

	w, h := FreeformFallback(s)
	return cellRoomSize(w, h, s.CellSize)
}

// FreeformFallback is the deterministic size used when sampling is exhausted
func FreeformFallback(s config.Settings) (width, height int) {
	width = geom.ClampInt(s.MinWidth, 1, s.MaxWidth)
	height = geom.ClampInt(geom.RoundToInt(float64(s.MinArea)/float64(width)), s.MinHeight, s.MaxHeight)
	return width, height
}

func cellRoomSize(w, h int, cellSize float64) RoomSize {
	return RoomSize{
		Width:  w,
		Height: h,
		World:  geom.V(float64(w)*cellSize, float64(h)*cellSize),
	}
}

// PickSegmentSize samples segment counts and keeps the candidate with the
// lowest area penalty, stopping at the first zero-penalty sample. visit, if
// set, sees every sampled candidate. It reports false when segmentLength is
// too small to quantize against.
func PickSegmentSize(rng RandomSource, s config.Settings, segmentLength float64, visit func(SegmentCandidate)) (RoomSize, bool) {
	if segmentLength <= geom.Epsilon {
		return RoomSize{}, false
	}

	minX := max(1, min(s.MinWallSegmentsX, s.MaxWallSegmentsX))
	maxX := max(minX, max(s.MinWallSegmentsX, s.MaxWallSegmentsX))
	minY := max(1, min(s.MinWallSegmentsY, s.MaxWallSegmentsY))
	maxY := max(minY, max(s.MinWallSegmentsY, s.MaxWallSegmentsY))

	best := segmentCandidate(SegmentCounts{X: minX, Y: minY}, segmentLength, s)
	best.Penalty = math.MaxInt

	for i := 0; i < segmentTries; i++ {
		counts := SegmentCounts{
			X: rng.Range(minX, maxX+1),
			Y: rng.Range(minY, maxY+1),
		}
		c := segmentCandidate(counts, segmentLength, s)
		if visit != nil {
			visit(c)
		}

		if c.Penalty < best.Penalty {
			best = c
		}
		if c.Penalty == 0 {
			break
		}
	}

	return RoomSize{
		Width:    best.Width,
		Height:   best.Height,
		World:    best.World,
		Segments: best.Segments,
	}, true
}

func segmentCandidate(counts SegmentCounts, segmentLength float64, s config.Settings) SegmentCandidate {
	world := geom.V(float64(counts.X)*segmentLength, float64(counts.Y)*segmentLength)
	w := max(1, geom.RoundToInt(world.X/s.CellSize))
	h := max(1, geom.RoundToInt(world.Y/s.CellSize))
	return SegmentCandidate{
		Segments: counts,
		Width:    w,
		Height:   h,
		World:    world,
		Penalty:  AreaPenalty(w*h, s.MinArea, s.MaxArea),
	}
}
