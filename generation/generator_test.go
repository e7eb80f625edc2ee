package generation

import (
	"errors"
	"strings"
	"testing"

	"roomforge/components"
	"roomforge/config"
	"roomforge/data"
	"roomforge/ecs"
	"roomforge/geom"
	"roomforge/physics"
	"roomforge/random"
	"roomforge/rules"
	"roomforge/spawners"
)

type testRig struct {
	world *ecs.World
	gen   *Generator
	log   []string
}

func newRig(t *testing.T, settings config.Settings, table *rules.Table) *testRig {
	t.Helper()
	rig := &testRig{world: ecs.NewWorld()}
	gen, err := New(settings, Deps{
		Rules:   table,
		Prefabs: data.DefaultPrefabs(),
		Factory: spawners.NewEntitySpawner(rig.world, nil),
		Space:   physics.NewSpace(rig.world),
		Random:  random.New(1),
		Events:  rig.world.GetEventManager(),
		Log:     func(m string) { rig.log = append(rig.log, m) },
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	rig.gen = gen
	return rig
}

func crowdedTable() *rules.Table {
	return rules.NewTable(rules.DifficultyRule{
		TierThreshold:  1,
		MinEnemies:     12,
		MaxEnemies:     20,
		SquareWeight:   0.4,
		TriangleWeight: 0.3,
		StarWeight:     0.3,
		MaxStars:       2,
		MinCurrency:    8,
		MaxCurrency:    14,
	})
}

func TestNewRejectsBadInput(t *testing.T) {
	world := ecs.NewWorld()
	base := Deps{
		Rules:   rules.DefaultTable(),
		Prefabs: data.DefaultPrefabs(),
		Factory: spawners.NewEntitySpawner(world, nil),
		Space:   physics.NewSpace(world),
		Random:  random.New(1),
	}

	tests := []struct {
		name        string
		mutate      func(*config.Settings, *Deps)
		wantErr     error
		errContains string
	}{
		{name: "nil table", mutate: func(_ *config.Settings, d *Deps) { d.Rules = nil }, wantErr: rules.ErrEmptyTable},
		{name: "empty table", mutate: func(_ *config.Settings, d *Deps) { d.Rules = rules.NewTable() }, wantErr: rules.ErrEmptyTable},
		{name: "missing random", mutate: func(_ *config.Settings, d *Deps) { d.Random = nil }, errContains: "random source"},
		{name: "unknown obstacle", mutate: func(s *config.Settings, _ *Deps) { s.ObstaclePrefabs = []string{"boulder"} }, errContains: "obstacle prefab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			d := base
			tt.mutate(&s, &d)
			_, err := New(s, d)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestGenerateReservationsNeverOverlap(t *testing.T) {
	for _, constrained := range []bool{true, false} {
		s := config.Default()
		s.ConstrainToWallSegments = constrained
		s.ObstacleMin, s.ObstacleMax = 4, 10
		rig := newRig(t, s, crowdedTable())

		for seed := int64(0); seed < 40; seed++ {
			rig.gen.Seed(seed)
			rig.gen.Generate(1, 10)

			res := rig.gen.Reservations()
			for i := 0; i < len(res); i++ {
				for j := i + 1; j < len(res); j++ {
					a, b := res[i], res[j]
					if geom.Distance(a.Position, b.Position) < a.Radius+b.Radius {
						t.Fatalf("constrained=%v seed %d: reservations %+v and %+v overlap", constrained, seed, a, b)
					}
				}
			}
		}
	}
}

func TestGeneratePlacesInsideBoundsAwayFromSafeZones(t *testing.T) {
	rig := newRig(t, config.Default(), crowdedTable())
	s := rig.gen.Settings()

	for seed := int64(0); seed < 30; seed++ {
		rig.gen.Seed(seed)
		rig.gen.Generate(1, 5)
		bounds := rig.gen.RoomBounds()

		for _, obj := range rig.gen.Spawned() {
			switch obj.Kind {
			case components.KindEnemy, components.KindCurrency, components.KindObstacle:
			default:
				continue
			}
			if !bounds.Contains(obj.Position) {
				t.Fatalf("seed %d: %s at %+v outside %+v", seed, obj.Kind, obj.Position, bounds)
			}
			if geom.Distance(obj.Position, rig.gen.PlayerSpawnPosition()) < s.SpawnSafeRadius {
				t.Fatalf("seed %d: %s inside spawn safe radius", seed, obj.Kind)
			}
			if geom.Distance(obj.Position, rig.gen.ExitPosition()) < s.ExitSafeRadius {
				t.Fatalf("seed %d: %s inside exit safe radius", seed, obj.Kind)
			}
		}
	}
}

func TestGenerateSpawnAndExitOnOppositeEdges(t *testing.T) {
	rig := newRig(t, config.Default(), rules.DefaultTable())
	inset := rig.gen.Settings().WallInset

	for seed := int64(0); seed < 100; seed++ {
		rig.gen.Seed(seed)
		rig.gen.Generate(2, 5)

		b := rig.gen.RoomBounds()
		lo, hi := b.Min(), b.Max()
		spawn, exit := rig.gen.PlayerSpawnPosition(), rig.gen.ExitPosition()

		near := func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 }
		horizontal := (near(spawn.X, lo.X+inset) && near(exit.X, hi.X-inset)) ||
			(near(spawn.X, hi.X-inset) && near(exit.X, lo.X+inset))
		vertical := (near(spawn.Y, lo.Y+inset) && near(exit.Y, hi.Y-inset)) ||
			(near(spawn.Y, hi.Y-inset) && near(exit.Y, lo.Y+inset))
		if !horizontal && !vertical {
			t.Fatalf("seed %d: spawn %+v and exit %+v are not on opposite edges of %+v", seed, spawn, exit, b)
		}
	}
}

func TestGenerateSquareOnlyRule(t *testing.T) {
	table := rules.NewTable(rules.DifficultyRule{TierThreshold: 1, MinEnemies: 6, MaxEnemies: 10, SquareWeight: 1})
	rig := newRig(t, config.Default(), table)

	placed := 0
	for seed := int64(0); seed < 20; seed++ {
		rig.gen.Seed(seed)
		rig.gen.Generate(1, 1)
		for _, obj := range rig.gen.Spawned() {
			if obj.Kind != components.KindEnemy {
				continue
			}
			placed++
			if obj.Category != components.EnemySquare {
				t.Fatalf("seed %d: found %s enemy with square-only weights", seed, obj.Category)
			}
		}
	}
	if placed == 0 {
		t.Fatalf("expected some enemies to be placed")
	}
}

func TestGenerateStarCap(t *testing.T) {
	table := rules.NewTable(rules.DifficultyRule{TierThreshold: 1, MinEnemies: 15, MaxEnemies: 25, StarWeight: 1, TriangleWeight: 0.2, MaxStars: 2})
	rig := newRig(t, config.Default(), table)

	for seed := int64(0); seed < 30; seed++ {
		rig.gen.Seed(seed)
		rig.gen.Generate(1, 1)

		snap := rig.gen.Snapshot()
		stars := 0
		for _, obj := range snap.Objects {
			if obj.Category == components.EnemyStar {
				stars++
			}
		}
		if stars > 2 || snap.Stats.StarsPlaced != stars {
			t.Fatalf("seed %d: %d stars placed (stats %d), cap is 2", seed, stars, snap.Stats.StarsPlaced)
		}
	}
}

func TestGenerateTwiceKeepsOnlySecondPass(t *testing.T) {
	rig := newRig(t, config.Default(), crowdedTable())

	rig.gen.Seed(5)
	rig.gen.Generate(1, 3)
	first := rig.gen.Spawned()
	if len(first) == 0 {
		t.Fatalf("first pass spawned nothing")
	}

	// Stray instance parented to the container is swept too
	crate, _ := data.DefaultPrefabs().Get(data.PrefabCrate)
	stray := spawners.NewEntitySpawner(rig.world, nil).Instantiate(crate, geom.V(0, 0), 0, rig.gen.Root())

	rig.gen.Seed(6)
	rig.gen.Generate(1, 3)
	second := rig.gen.Spawned()

	for _, obj := range first {
		if rig.world.Exists(obj.ID) {
			t.Fatalf("instance %d from the first pass survived", obj.ID)
		}
	}
	if rig.world.Exists(stray) {
		t.Fatalf("stray child of the container survived")
	}
	for _, obj := range second {
		if !rig.world.Exists(obj.ID) {
			t.Fatalf("instance %d from the second pass is missing", obj.ID)
		}
	}
	// Container plus the second pass, nothing else
	if got, want := rig.world.Count(), len(second)+1; got != want {
		t.Fatalf("world holds %d entities, want %d", got, want)
	}
	if got := len(rig.world.ChildIDs(rig.gen.Root())); got != len(second) {
		t.Fatalf("container has %d children, want %d", got, len(second))
	}

	rig.gen.ClearGenerated()
	rig.gen.ClearGenerated()
	if rig.world.Count() != 1 || len(rig.gen.Reservations()) != 0 {
		t.Fatalf("ClearGenerated left %d entities and %d reservations", rig.world.Count(), len(rig.gen.Reservations()))
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := newRig(t, config.Default(), crowdedTable())
	b := newRig(t, config.Default(), crowdedTable())

	a.gen.Seed(42)
	a.gen.Generate(1, 1)
	b.gen.Seed(42)
	b.gen.Generate(1, 1)

	sa, sb := a.gen.Snapshot(), b.gen.Snapshot()
	if sa.Bounds != sb.Bounds || sa.Spawn != sb.Spawn || sa.Exit != sb.Exit {
		t.Fatalf("same seed produced different rooms: %+v vs %+v", sa.Bounds, sb.Bounds)
	}
	if len(sa.Objects) != len(sb.Objects) {
		t.Fatalf("same seed produced %d vs %d objects", len(sa.Objects), len(sb.Objects))
	}
	for i := range sa.Objects {
		if sa.Objects[i].Position != sb.Objects[i].Position || sa.Objects[i].PrefabID != sb.Objects[i].PrefabID {
			t.Fatalf("object %d differs: %+v vs %+v", i, sa.Objects[i], sb.Objects[i])
		}
	}
}

func TestGenerateWallsAndEvent(t *testing.T) {
	rig := newRig(t, config.Default(), rules.DefaultTable())

	var events []*Snapshot
	rig.world.GetEventManager().Subscribe(EventRoomGenerated, func(e ecs.Event) {
		events = append(events, e.(RoomGeneratedEvent).Snapshot)
	})

	rig.gen.Seed(9)
	rig.gen.Generate(1, 4)

	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	snap := events[0]
	wantWalls := 2 * (snap.Segments.X + snap.Segments.Y)
	if got := snap.CountKind(components.KindWall); got != wantWalls || snap.Stats.Walls != wantWalls {
		t.Fatalf("expected %d walls, got %d (stats %d)", wantWalls, got, snap.Stats.Walls)
	}
	if snap.CountKind(components.KindExit) != 1 || snap.CountKind(components.KindSpawnMarker) != 1 {
		t.Fatalf("expected one exit and one spawn marker")
	}
	// Built-in wall is 1 x 0.2, so metrics are derived from it
	if snap.Wall.SegmentLength != 1 || snap.Wall.Thickness != 0.2 {
		t.Fatalf("unexpected wall metrics %+v", snap.Wall)
	}
	if snap.Size.Segments.X < 8 || snap.Size.Segments.X > 12 {
		t.Fatalf("segment count %d outside configured range", snap.Size.Segments.X)
	}
	if snap.Bounds.Size.X != float64(snap.Segments.X)*snap.Wall.SegmentLength {
		t.Fatalf("bounds width %g does not match %d segments", snap.Bounds.Size.X, snap.Segments.X)
	}
	if snap.MaxTier != 4 || snap.Seed != 9 {
		t.Fatalf("snapshot did not record tier/seed: %+v", snap)
	}
	if len(rig.log) == 0 {
		t.Fatalf("expected generation to log stage summaries")
	}

	raw, err := snap.MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	decoded, err := DecodeSnapshot(raw)
	if err != nil || len(decoded.Objects) != len(snap.Objects) {
		t.Fatalf("decode mismatch: %v", err)
	}
}

func TestGenerateWithoutOptionalPrefabs(t *testing.T) {
	s := config.Default()
	s.WallPrefab = ""
	s.CurrencyPrefab = ""
	s.ExitPrefab = ""
	s.ObstaclePrefabs = nil
	rig := newRig(t, s, rules.DefaultTable())

	rig.gen.Seed(1)
	rig.gen.Generate(1, 1)

	snap := rig.gen.Snapshot()
	for _, kind := range []components.ObjectKind{components.KindWall, components.KindCurrency, components.KindExit, components.KindObstacle} {
		if n := snap.CountKind(kind); n != 0 {
			t.Fatalf("expected no %s objects, got %d", kind, n)
		}
	}
	if snap.Bounds.Size.X <= 0 || snap.Bounds.Size.Y <= 0 {
		t.Fatalf("room must still have positive size: %+v", snap.Bounds)
	}
	// Without a wall prefab the configured segment length is used
	if snap.Wall.SegmentLength != s.WallSegmentLength {
		t.Fatalf("expected configured segment length, got %g", snap.Wall.SegmentLength)
	}
}

func TestWallMetricsAreDerivedOnce(t *testing.T) {
	rig := newRig(t, config.Default(), rules.DefaultTable())

	rig.gen.Seed(3)
	rig.gen.Generate(1, 1)
	first := rig.gen.WallMetrics()
	firstSegments := rig.gen.Snapshot().Wall.SegmentLength

	resized := geom.V(3, 0.5)
	rig.gen.wallPrefab.ColliderSize = &resized

	rig.gen.Seed(3)
	rig.gen.Generate(1, 1)
	second := rig.gen.WallMetrics()

	if first != second {
		t.Fatalf("wall metrics changed after the prefab was resized: %+v then %+v", first, second)
	}
	if got := rig.gen.Snapshot().Wall.SegmentLength; got != firstSegments {
		t.Fatalf("segment length changed from %g to %g", firstSegments, got)
	}
	if first.SegmentLength != 1 || first.Thickness != 0.2 {
		t.Fatalf("unexpected derived metrics %+v", first)
	}
}

func TestSnapshotSeedOnlyForSeededPass(t *testing.T) {
	rig := newRig(t, config.Default(), rules.DefaultTable())

	rig.gen.Seed(17)
	rig.gen.Generate(1, 1)
	if snap := rig.gen.Snapshot(); snap.Seed != 17 || !snap.Seeded {
		t.Fatalf("expected seeded pass with seed 17, got seed %d seeded %v", snap.Seed, snap.Seeded)
	}

	rig.gen.Generate(1, 1)
	if snap := rig.gen.Snapshot(); snap.Seed != 0 || snap.Seeded {
		t.Fatalf("unseeded pass reported seed %d seeded %v", snap.Seed, snap.Seeded)
	}
}
