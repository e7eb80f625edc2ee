// Package session assembles a world, a spawner, a physics space, a random
// stream, the generator and the run manager into one ready-to-use unit.
package session

import (
	"fmt"

	"roomforge/config"
	"roomforge/data"
	"roomforge/ecs"
	"roomforge/generation"
	"roomforge/logging"
	"roomforge/physics"
	"roomforge/random"
	"roomforge/rules"
	"roomforge/run"
	"roomforge/spawners"
)

// Options configure a session. Nil Rules, Prefabs and Log fall back to the
// built-in defaults; a nil Progress store keeps run progress in memory.
type Options struct {
	Settings config.Settings
	Rules    *rules.Table
	Prefabs  *data.PrefabLibrary
	Run      run.Options
	Progress *run.ProgressStore
	Log      *logging.MessageLog
}

// Session owns everything a single room generator needs
type Session struct {
	World     *ecs.World
	Spawner   *spawners.EntitySpawner
	Space     *physics.Space
	Random    *random.Stream
	Generator *generation.Generator
	Run       *run.Manager
	Log       *logging.MessageLog
	Prefabs   *data.PrefabLibrary
}

// New wires a session together. Nothing is generated until Regenerate.
func New(opts Options) (*Session, error) {
	if opts.Rules == nil {
		opts.Rules = rules.DefaultTable()
	}
	if opts.Prefabs == nil {
		opts.Prefabs = data.DefaultPrefabs()
	}
	if opts.Log == nil {
		opts.Log = logging.NewMessageLog(0)
	}

	world := ecs.NewWorld()
	spawner := spawners.NewEntitySpawner(world, opts.Log.Add)
	space := physics.NewSpace(world)
	rng := random.NewFromClock()

	gen, err := generation.New(opts.Settings, generation.Deps{
		Rules:   opts.Rules,
		Prefabs: opts.Prefabs,
		Factory: spawner,
		Space:   space,
		Random:  rng,
		Events:  world.GetEventManager(),
		Log:     opts.Log.Add,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	s := &Session{
		World:     world,
		Spawner:   spawner,
		Space:     space,
		Random:    rng,
		Generator: gen,
		Log:       opts.Log,
		Prefabs:   opts.Prefabs,
	}
	s.Run = run.NewManager(gen, opts.Run, opts.Progress, opts.Log.Add)

	if opts.Progress != nil {
		if _, err := s.Run.Restore(); err != nil {
			return nil, fmt.Errorf("failed to restore run progress: %w", err)
		}
	}
	return s, nil
}

// Snapshot returns the last generated room, or nil before the first pass
func (s *Session) Snapshot() *generation.Snapshot {
	if s.Generator.Root() == ecs.NoEntity {
		return nil
	}
	return s.Generator.Snapshot()
}

// Regenerate rebuilds the room for the current dungeon index
func (s *Session) Regenerate() error {
	return s.Run.GenerateCurrent()
}

// Next advances the run and generates the new room
func (s *Session) Next() error {
	return s.Run.Next()
}

// GenerateWithSeed runs one pass at an explicit tier and seed, outside the
// run sequence.
func (s *Session) GenerateWithSeed(tier, maxTier int, seed int64) *generation.Snapshot {
	s.Generator.Seed(seed)
	s.Generator.Generate(tier, maxTier)
	return s.Generator.Snapshot()
}
