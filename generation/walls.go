package generation

import "roomforge/geom"

// WallPlacement is the pose of one perimeter segment
type WallPlacement struct {
	Position geom.Vec2
	Rotation float64
}

// LayoutPerimeter tiles the four edges of bounds with segments of
// segmentLength. Non-zero counts come from segment-quantized sizing; a zero
// axis is recomputed from the bounds. Top and bottom segments are unrotated,
// left and right ones are turned 90 degrees.
func LayoutPerimeter(bounds geom.Bounds, segmentLength float64, counts SegmentCounts) ([]WallPlacement, SegmentCounts) {
	half := bounds.Extents()
	segmentLength = max(segmentLength, geom.Epsilon)

	countX := counts.X
	if countX <= 0 {
		countX = max(1, geom.RoundToInt(bounds.Size.X/segmentLength))
	}
	countY := counts.Y
	if countY <= 0 {
		countY = max(1, geom.RoundToInt(bounds.Size.Y/segmentLength))
	}

	walls := make([]WallPlacement, 0, 2*(countX+countY))

	// Top/bottom
	for i := 0; i < countX; i++ {
		x := -half.X + (float64(i)+0.5)*segmentLength
		walls = append(walls,
			WallPlacement{Position: bounds.Center.Add(geom.V(x, half.Y))},
			WallPlacement{Position: bounds.Center.Add(geom.V(x, -half.Y))},
		)
	}

	// Left/right
	for i := 0; i < countY; i++ {
		y := -half.Y + (float64(i)+0.5)*segmentLength
		walls = append(walls,
			WallPlacement{Position: bounds.Center.Add(geom.V(half.X, y)), Rotation: 90},
			WallPlacement{Position: bounds.Center.Add(geom.V(-half.X, y)), Rotation: 90},
		)
	}

	return walls, SegmentCounts{X: countX, Y: countY}
}
