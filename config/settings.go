package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roomforge/components"
	"roomforge/data"
	"roomforge/geom"
)

// Settings is the full generator configuration. It is data only; the
// generator never mutates it.
type Settings struct {
	// Room center in world units
	Origin geom.Vec2 `yaml:"origin"`

	// Room size (cells)
	MinWidth  int `yaml:"minWidth"`
	MaxWidth  int `yaml:"maxWidth"`
	MinHeight int `yaml:"minHeight"`
	MaxHeight int `yaml:"maxHeight"`

	// Room area constraint (cells^2)
	MinArea int `yaml:"minArea"`
	MaxArea int `yaml:"maxArea"`

	CellSize float64 `yaml:"cellSize"`

	// Wall metrics, optionally re-derived from the wall prefab extents
	WallSegmentLength     float64 `yaml:"wallSegmentLength"`
	WallThickness         float64 `yaml:"wallThickness"`
	AutoDeriveWallMetrics bool    `yaml:"autoDeriveWallMetrics"`

	// Segment-quantized sizing
	ConstrainToWallSegments bool `yaml:"constrainToWallSegments"`
	MinWallSegmentsX        int  `yaml:"minWallSegmentsX"`
	MaxWallSegmentsX        int  `yaml:"maxWallSegmentsX"`
	MinWallSegmentsY        int  `yaml:"minWallSegmentsY"`
	MaxWallSegmentsY        int  `yaml:"maxWallSegmentsY"`

	// Interior obstacles
	SpawnInteriorObstacles bool     `yaml:"spawnInteriorObstacles"`
	ObstaclePrefabs        []string `yaml:"obstaclePrefabs"`
	ObstacleMin            int      `yaml:"obstacleMin"`
	ObstacleMax            int      `yaml:"obstacleMax"`
	ObstaclePlacementTries int      `yaml:"obstaclePlacementTries"`

	// Spacing / safety
	WallInset       float64 `yaml:"wallInset"`
	SpawnSafeRadius float64 `yaml:"spawnSafeRadius"`
	ExitSafeRadius  float64 `yaml:"exitSafeRadius"`

	// Spawn collision radii
	EnemySpawnRadius    float64 `yaml:"enemySpawnRadius"`
	CurrencySpawnRadius float64 `yaml:"currencySpawnRadius"`

	// Keep enemies apart
	AvoidEnemyOverlap bool `yaml:"avoidEnemyOverlap"`

	// Collision layers
	BlockedMask  components.LayerMask `yaml:"blockedMask"`
	ObstacleMask components.LayerMask `yaml:"obstacleMask"`
	WallMask     components.LayerMask `yaml:"wallMask"`
	EnemyMask    components.LayerMask `yaml:"enemyMask"`

	// Prefab references; empty means "not configured"
	WallPrefab          string `yaml:"wallPrefab"`
	ExitPrefab          string `yaml:"exitPrefab"`
	SpawnMarkerPrefab   string `yaml:"spawnMarkerPrefab"`
	SquareEnemyPrefab   string `yaml:"squareEnemyPrefab"`
	TriangleEnemyPrefab string `yaml:"triangleEnemyPrefab"`
	StarEnemyPrefab     string `yaml:"starEnemyPrefab"`
	CurrencyPrefab      string `yaml:"currencyPrefab"`
}

// Default returns the reference configuration
func Default() Settings {
	return Settings{
		MinWidth:  18,
		MaxWidth:  34,
		MinHeight: 12,
		MaxHeight: 26,

		MinArea: 220,
		MaxArea: 650,

		CellSize: 1,

		WallSegmentLength:     1,
		WallThickness:         0.2,
		AutoDeriveWallMetrics: true,

		ConstrainToWallSegments: true,
		MinWallSegmentsX:        8,
		MaxWallSegmentsX:        12,
		MinWallSegmentsY:        8,
		MaxWallSegmentsY:        12,

		SpawnInteriorObstacles: true,
		ObstaclePrefabs:        []string{data.PrefabCrate, data.PrefabPillar, data.PrefabLongCrate},
		ObstacleMin:            0,
		ObstacleMax:            6,
		ObstaclePlacementTries: 40,

		WallInset:       0.6,
		SpawnSafeRadius: 3,
		ExitSafeRadius:  3,

		EnemySpawnRadius:    0.45,
		CurrencySpawnRadius: 0.2,

		AvoidEnemyOverlap: true,

		BlockedMask:  components.LayerWalls | components.LayerObstacles,
		ObstacleMask: components.LayerObstacles,
		WallMask:     components.LayerWalls,
		EnemyMask:    components.LayerEnemies,

		WallPrefab:          data.PrefabWall,
		ExitPrefab:          data.PrefabExit,
		SpawnMarkerPrefab:   data.PrefabSpawnMarker,
		SquareEnemyPrefab:   data.PrefabSquareEnemy,
		TriangleEnemyPrefab: data.PrefabTriangleEnemy,
		StarEnemyPrefab:     data.PrefabStarEnemy,
		CurrencyPrefab:      data.PrefabCurrency,
	}
}

// Load reads a YAML settings file on top of Default and normalizes it
func Load(filePath string) (Settings, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML settings document on top of Default
func Parse(raw []byte) (Settings, error) {
	settings := Default()
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings.Normalized(), nil
}

// Validate rejects values that cannot be normalized into something sane
func (s Settings) Validate() error {
	if s.CellSize < 0 {
		return fmt.Errorf("cellSize must be >= 0, got %g", s.CellSize)
	}
	radii := []struct {
		name  string
		value float64
	}{
		{"wallInset", s.WallInset},
		{"spawnSafeRadius", s.SpawnSafeRadius},
		{"exitSafeRadius", s.ExitSafeRadius},
		{"enemySpawnRadius", s.EnemySpawnRadius},
		{"currencySpawnRadius", s.CurrencySpawnRadius},
	}
	for _, r := range radii {
		if r.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %g", r.name, r.value)
		}
	}
	return nil
}

// Normalized returns a copy with inverted ranges swapped and counts clamped
func (s Settings) Normalized() Settings {
	n := s
	n.MinWidth, n.MaxWidth = orderedInts(n.MinWidth, n.MaxWidth)
	n.MinHeight, n.MaxHeight = orderedInts(n.MinHeight, n.MaxHeight)
	n.MinArea, n.MaxArea = orderedInts(n.MinArea, n.MaxArea)
	n.ObstacleMin, n.ObstacleMax = orderedInts(max(0, n.ObstacleMin), max(0, n.ObstacleMax))

	if n.CellSize <= 0 {
		n.CellSize = 1
	}
	if n.ObstaclePlacementTries < 0 {
		n.ObstaclePlacementTries = 0
	}
	n.ObstaclePrefabs = append([]string(nil), s.ObstaclePrefabs...)
	return n
}

func orderedInts(a, b int) (int, int) {
	if b < a {
		return b, a
	}
	return a, b
}
