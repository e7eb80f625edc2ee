// Package geom holds the small amount of 2D math the room generator needs:
// points, axis-aligned bounds and circle/box overlap tests.
package geom

import "math"

// Epsilon is the tolerance used for "effectively zero" sizes and weights.
const Epsilon = 0.0001

// Vec2 is a point or extent in world units
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// MaxComponent returns the larger of X and Y
func (v Vec2) MaxComponent() float64 {
	return math.Max(v.X, v.Y)
}

// MinComponent returns the smaller of X and Y
func (v Vec2) MinComponent() float64 {
	return math.Min(v.X, v.Y)
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Bounds is an axis-aligned box described by its center and full size.
type Bounds struct {
	Center Vec2 `json:"center"`
	Size   Vec2 `json:"size"`
}

// NewBounds creates bounds from a center and a full size
func NewBounds(center, size Vec2) Bounds {
	return Bounds{Center: center, Size: size}
}

// Extents returns the half size
func (b Bounds) Extents() Vec2 {
	return b.Size.Scale(0.5)
}

// Min returns the lower-left corner
func (b Bounds) Min() Vec2 {
	return b.Center.Sub(b.Extents())
}

// Max returns the upper-right corner
func (b Bounds) Max() Vec2 {
	return b.Center.Add(b.Extents())
}

// Area returns width * height
func (b Bounds) Area() float64 {
	return b.Size.X * b.Size.Y
}

// Contains reports whether p lies inside or on the edge of b
func (b Bounds) Contains(p Vec2) bool {
	min, max := b.Min(), b.Max()
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt limits value to the range [min, max]. When max < min the result is min.
func ClampInt(value, min, max int) int {
	if value > max {
		value = max
	}
	if value < min {
		value = min
	}
	return value
}

// RoundToInt rounds half away from zero
func RoundToInt(v float64) int {
	return int(math.Round(v))
}

// BoxesOverlap reports whether two center/half-extent boxes intersect.
// Touching edges do not count as overlap.
func BoxesOverlap(aCenter, aHalf, bCenter, bHalf Vec2) bool {
	return math.Abs(aCenter.X-bCenter.X) < aHalf.X+bHalf.X &&
		math.Abs(aCenter.Y-bCenter.Y) < aHalf.Y+bHalf.Y
}

// CircleBoxOverlap reports whether a circle intersects a center/half-extent box.
func CircleBoxOverlap(c Vec2, radius float64, boxCenter, boxHalf Vec2) bool {
	min := boxCenter.Sub(boxHalf)
	max := boxCenter.Add(boxHalf)
	closestX := Clamp(c.X, min.X, max.X)
	closestY := Clamp(c.Y, min.Y, max.Y)
	dx := c.X - closestX
	dy := c.Y - closestY
	return dx*dx+dy*dy < radius*radius
}

// CirclesOverlap reports whether two circles intersect (distance < ra + rb).
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return Distance(a, b) < ra+rb
}
