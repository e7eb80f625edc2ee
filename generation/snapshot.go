package generation

import (
	"encoding/json"
	"fmt"

	"roomforge/components"
	"roomforge/ecs"
	"roomforge/geom"
)

// EventRoomGenerated is emitted after every completed pass
const EventRoomGenerated ecs.EventType = "room_generated"

// RoomGeneratedEvent carries the snapshot of the pass that just finished
type RoomGeneratedEvent struct {
	Snapshot *Snapshot
}

// Type returns the event type
func (e RoomGeneratedEvent) Type() ecs.EventType {
	return EventRoomGenerated
}

// SpawnedObject records one instance created during a pass
type SpawnedObject struct {
	ID       ecs.EntityID             `json:"id"`
	Kind     components.ObjectKind    `json:"kind"`
	PrefabID string                   `json:"prefab"`
	Position geom.Vec2                `json:"position"`
	Rotation float64                  `json:"rotation,omitempty"`
	Category components.EnemyCategory `json:"category,omitempty"`
}

// PassStats counts what each stage rolled and actually placed
type PassStats struct {
	Walls           int `json:"walls"`
	ObstaclesRolled int `json:"obstaclesRolled"`
	ObstaclesPlaced int `json:"obstaclesPlaced"`
	EnemiesRolled   int `json:"enemiesRolled"`
	EnemiesPlaced   int `json:"enemiesPlaced"`
	StarsPlaced     int `json:"starsPlaced"`
	CurrencyRolled  int `json:"currencyRolled"`
	CurrencyPlaced  int `json:"currencyPlaced"`
}

// Snapshot is a read-only copy of the public outputs of one pass
type Snapshot struct {
	Tier         int             `json:"tier"`
	MaxTier      int             `json:"maxTier"`
	Seed         int64           `json:"seed"`
	Seeded       bool            `json:"seeded"`
	Bounds       geom.Bounds     `json:"bounds"`
	Size         RoomSize        `json:"size"`
	Spawn        geom.Vec2       `json:"spawn"`
	Exit         geom.Vec2       `json:"exit"`
	SpawnEdge    Edge            `json:"spawnEdge"`
	ExitEdge     Edge            `json:"exitEdge"`
	Wall         WallMetrics     `json:"wall"`
	Segments     SegmentCounts   `json:"segments"`
	Reservations []Reservation   `json:"reservations"`
	Objects      []SpawnedObject `json:"objects"`
	Stats        PassStats       `json:"stats"`
}

// CountKind returns how many objects of kind the snapshot holds
func (s *Snapshot) CountKind(kind components.ObjectKind) int {
	n := 0
	for _, o := range s.Objects {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// MarshalIndent renders the snapshot as indented JSON
func (s *Snapshot) MarshalIndent() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return out, nil
}

// DecodeSnapshot parses a snapshot produced by MarshalIndent or json.Marshal
func DecodeSnapshot(raw []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}
