// Package random wraps a seedable math/rand source with the range draws the
// generator consumes. A Stream is owned by one generation session and must not
// be shared with unrelated code while a pass is running.
package random

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Stream is a seedable pseudo-random stream
type Stream struct {
	rng  *rand.Rand
	seed int64
}

// New creates a stream seeded with seed
func New(seed int64) *Stream {
	s := &Stream{}
	s.Seed(seed)
	return s
}

// NewFromClock creates a stream seeded from the wall clock
func NewFromClock() *Stream {
	return New(time.Now().UnixNano())
}

// Seed resets the stream to a reproducible state
func (s *Stream) Seed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// SeedValue returns the seed last passed to Seed
func (s *Stream) SeedValue() int64 {
	return s.seed
}

// Range returns an int in [min, max). When max <= min it returns min.
func (s *Stream) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min)
}

// RangeFloat returns a float between min and max. An inverted range is
// sampled the same way, so the result always lies between the two values.
func (s *Stream) RangeFloat(min, max float64) float64 {
	return min + (max-min)*s.rng.Float64()
}

// Value returns a float in [0, 1)
func (s *Stream) Value() float64 {
	return s.rng.Float64()
}

// DeterministicSeedValue hashes a root seed and a label into a non-zero seed.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}
