package generation

import (
	"errors"
	"fmt"

	"roomforge/components"
	"roomforge/config"
	"roomforge/data"
	"roomforge/ecs"
	"roomforge/geom"
	"roomforge/rules"
)

// ContainerName is the name of the entity every generated instance is parented to
const ContainerName = "Generated Room"

// Deps are the collaborators a Generator is built from
type Deps struct {
	Rules   *rules.Table
	Prefabs *data.PrefabLibrary
	Factory InstanceFactory
	Space   SpatialQuery
	Random  RandomSource
	Events  *ecs.EventManager // optional
	Log     func(string)      // optional
}

// Generator builds one bounded room per Generate call: size, perimeter,
// spawn and exit, obstacles, enemies and currency.
type Generator struct {
	settings config.Settings
	rules    *rules.Table
	factory  InstanceFactory
	space    SpatialQuery
	rng      RandomSource
	events   *ecs.EventManager

	logMessage func(string) // Function for logging messages

	// Resolved prefab references; nil means the stage is not configured
	wallPrefab     *data.Prefab
	exitPrefab     *data.Prefab
	markerPrefab   *data.Prefab
	currencyPrefab *data.Prefab
	enemyPrefabs   map[components.EnemyCategory]*data.Prefab
	obstaclePool   []*data.Prefab

	// Wall metrics are derived once per generator
	metricsInitialized bool
	derivedMetrics     WallMetrics

	// State of the current pass
	root     ecs.EntityID
	spawned  []SpawnedObject
	ledger   Ledger
	tier     int
	maxTier  int
	size     RoomSize
	segments SegmentCounts
	bounds   geom.Bounds
	stats    PassStats

	// seed is 0 and passSeeded false when the pass continued the stream
	// without a Seed call
	seed       int64
	seeded     bool
	passSeeded bool

	spawn     geom.Vec2
	exit      geom.Vec2
	spawnEdge Edge
	exitEdge  Edge
}

// New creates a generator. Settings are normalized and prefab references are
// resolved up front; an empty or invalid rule table is rejected here since
// every pass reads it.
func New(settings config.Settings, deps Deps) (*Generator, error) {
	if deps.Rules == nil {
		return nil, rules.ErrEmptyTable
	}
	if err := deps.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid difficulty table: %w", err)
	}
	if deps.Factory == nil || deps.Space == nil || deps.Random == nil {
		return nil, errors.New("generator needs an instance factory, a spatial query and a random source")
	}

	prefabs := deps.Prefabs
	if prefabs == nil {
		prefabs = data.NewPrefabLibrary()
	}

	g := &Generator{
		settings:     settings.Normalized(),
		rules:        deps.Rules,
		factory:      deps.Factory,
		space:        deps.Space,
		rng:          deps.Random,
		events:       deps.Events,
		logMessage:   deps.Log,
		enemyPrefabs: make(map[components.EnemyCategory]*data.Prefab),
	}

	if err := g.resolvePrefabs(prefabs); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) resolvePrefabs(lib *data.PrefabLibrary) error {
	s := g.settings
	refs := []struct {
		name   string
		id     string
		target **data.Prefab
	}{
		{"wall", s.WallPrefab, &g.wallPrefab},
		{"exit", s.ExitPrefab, &g.exitPrefab},
		{"spawn marker", s.SpawnMarkerPrefab, &g.markerPrefab},
		{"currency", s.CurrencyPrefab, &g.currencyPrefab},
	}
	for _, ref := range refs {
		p, err := lib.Resolve(ref.id)
		if err != nil {
			return fmt.Errorf("%s prefab: %w", ref.name, err)
		}
		*ref.target = p
	}

	enemies := map[components.EnemyCategory]string{
		components.EnemySquare:   s.SquareEnemyPrefab,
		components.EnemyTriangle: s.TriangleEnemyPrefab,
		components.EnemyStar:     s.StarEnemyPrefab,
	}
	for category, id := range enemies {
		p, err := lib.Resolve(id)
		if err != nil {
			return fmt.Errorf("%s enemy prefab: %w", category, err)
		}
		if p != nil {
			g.enemyPrefabs[category] = p
		}
	}

	for _, id := range s.ObstaclePrefabs {
		p, err := lib.Resolve(id)
		if err != nil {
			return fmt.Errorf("obstacle prefab: %w", err)
		}
		if p != nil {
			g.obstaclePool = append(g.obstaclePool, p)
		}
	}
	return nil
}

// Seed reseeds the random source for the next pass
func (g *Generator) Seed(seed int64) {
	g.seed = seed
	g.seeded = true
	g.rng.Seed(seed)
}

// Generate replaces the previous room with a new one for tier. maxTier is
// recorded with the result.
func (g *Generator) Generate(tier, maxTier int) {
	g.ClearGenerated()

	// A pass without a fresh Seed continues the stream; it has no seed of its own
	if !g.seeded {
		g.seed = 0
	}
	g.passSeeded = g.seeded
	g.seeded = false

	g.tier = tier
	g.maxTier = maxTier
	g.stats = PassStats{}
	g.segments = SegmentCounts{}
	g.ensureWallMetrics()

	if g.root == ecs.NoEntity {
		g.root = g.factory.CreateContainer(ContainerName)
	}

	// 1) room size
	segmentLength := g.segmentLength()
	g.size = PickRoomSize(g.rng, g.settings, segmentLength)

	// 2) bounds
	w := ResolveRoomDimension(g.size.World.X, g.size.Width, g.settings.CellSize)
	h := ResolveRoomDimension(g.size.World.Y, g.size.Height, g.settings.CellSize)
	g.bounds = geom.NewBounds(g.settings.Origin, geom.V(w, h))
	g.log(fmt.Sprintf("Room %dx%d cells, %.2fx%.2f world units", g.size.Width, g.size.Height, w, h))

	// 3) perimeter walls
	g.buildPerimeterWalls(segmentLength)

	// 4) spawn and exit on opposite sides
	picked := PickSpawnAndExit(g.rng, g.bounds, g.settings.WallInset)
	g.spawn, g.exit = picked.Spawn, picked.Exit
	g.spawnEdge, g.exitEdge = picked.SpawnEdge, picked.ExitEdge

	// 5) exit and spawn marker
	g.instantiate(g.exitPrefab, g.exit, 0)
	g.instantiate(g.markerPrefab, g.spawn, 0)

	// 6) obstacles
	if g.settings.SpawnInteriorObstacles && len(g.obstaclePool) > 0 {
		g.spawnObstacles()
	}

	// 7) enemies and currency
	rule := g.rules.GetRule(tier)
	g.spawnEnemies(rule)
	g.spawnCurrency(rule)

	if g.events != nil {
		g.events.Emit(RoomGeneratedEvent{Snapshot: g.Snapshot()})
	}
}

// ClearGenerated destroys everything from the previous pass and the ledger.
// Calling it twice is harmless.
func (g *Generator) ClearGenerated() {
	for _, obj := range g.spawned {
		g.factory.Destroy(obj.ID)
	}
	g.spawned = nil
	g.ledger.Clear()

	if g.root != ecs.NoEntity {
		g.factory.DestroyChildren(g.root)
	}
}

func (g *Generator) ensureWallMetrics() {
	if g.metricsInitialized {
		return
	}
	g.metricsInitialized = true

	if !g.settings.AutoDeriveWallMetrics || g.wallPrefab == nil {
		return
	}

	g.derivedMetrics = DeriveWallMetrics(g.wallPrefab)
	if g.derivedMetrics.SegmentLength > 0 {
		g.settings.WallSegmentLength = g.derivedMetrics.SegmentLength
	}
	if g.derivedMetrics.Thickness > 0 {
		g.settings.WallThickness = g.derivedMetrics.Thickness
	}
}

func (g *Generator) segmentLength() float64 {
	return EffectiveSegmentLength(g.derivedMetrics.SegmentLength, g.settings.WallSegmentLength, g.settings.CellSize)
}

func (g *Generator) buildPerimeterWalls(segmentLength float64) {
	walls, counts := LayoutPerimeter(g.bounds, segmentLength, g.size.Segments)
	g.segments = counts
	if g.wallPrefab == nil {
		return
	}
	for _, w := range walls {
		g.instantiate(g.wallPrefab, w.Position, w.Rotation)
	}
	g.stats.Walls = len(walls)
	g.log(fmt.Sprintf("Built %d wall segments (%dx%d)", len(walls), counts.X, counts.Y))
}

// instantiate creates prefab under the room container and records it
func (g *Generator) instantiate(prefab *data.Prefab, pos geom.Vec2, rotation float64) {
	if prefab == nil {
		return
	}
	id := g.factory.Instantiate(prefab, pos, rotation, g.root)
	if id == ecs.NoEntity {
		return
	}
	g.spawned = append(g.spawned, SpawnedObject{
		ID:       id,
		Kind:     prefab.Kind,
		PrefabID: prefab.ID,
		Position: pos,
		Rotation: rotation,
		Category: prefab.Category,
	})
}

func (g *Generator) log(message string) {
	if g.logMessage != nil {
		g.logMessage(message)
	}
}

// RoomBounds returns the bounds of the current room
func (g *Generator) RoomBounds() geom.Bounds {
	return g.bounds
}

// PlayerSpawnPosition returns the player spawn of the current room
func (g *Generator) PlayerSpawnPosition() geom.Vec2 {
	return g.spawn
}

// ExitPosition returns the exit of the current room
func (g *Generator) ExitPosition() geom.Vec2 {
	return g.exit
}

// WallMetrics returns the metrics used for the perimeter
func (g *Generator) WallMetrics() WallMetrics {
	return WallMetrics{SegmentLength: g.segmentLength(), Thickness: g.settings.WallThickness}
}

// Reservations returns the ledger entries of the current pass
func (g *Generator) Reservations() []Reservation {
	return g.ledger.Entries()
}

// Spawned returns every instance created by the current pass
func (g *Generator) Spawned() []SpawnedObject {
	out := make([]SpawnedObject, len(g.spawned))
	copy(out, g.spawned)
	return out
}

// Root returns the container entity, or ecs.NoEntity before the first pass
func (g *Generator) Root() ecs.EntityID {
	return g.root
}

// Settings returns the normalized settings in use
func (g *Generator) Settings() config.Settings {
	return g.settings
}

// Stats returns the counters of the current pass
func (g *Generator) Stats() PassStats {
	return g.stats
}

// Snapshot copies the public outputs of the current pass
func (g *Generator) Snapshot() *Snapshot {
	return &Snapshot{
		Tier:         g.tier,
		MaxTier:      g.maxTier,
		Seed:         g.seed,
		Seeded:       g.passSeeded,
		Bounds:       g.bounds,
		Size:         g.size,
		Spawn:        g.spawn,
		Exit:         g.exit,
		SpawnEdge:    g.spawnEdge,
		ExitEdge:     g.exitEdge,
		Wall:         g.WallMetrics(),
		Segments:     g.segments,
		Reservations: g.Reservations(),
		Objects:      g.Spawned(),
		Stats:        g.stats,
	}
}
