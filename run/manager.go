// Package run drives a sequence of generated rooms: it owns the dungeon
// index, seeds the generator for each room and advances to the next one.
package run

import (
	"fmt"
	"time"
)

// Generator is the part of the room generator a run needs
type Generator interface {
	Seed(seed int64)
	Generate(tier, maxTier int)
}

// Options configure a run
type Options struct {
	DungeonIndex int // starting index, at least 1
	MaxDungeon   int // last index, at least 1
	UseFixedSeed bool
	FixedSeed    int64
	// Clock supplies the seed base when UseFixedSeed is off
	Clock func() int64
}

// Manager tracks the current dungeon and regenerates on demand
type Manager struct {
	gen        Generator
	opts       Options
	store      *ProgressStore
	logMessage func(string)

	dungeonIndex int
	maxDungeon   int
	lastSeed     int64
}

// NewManager creates a run manager. store may be nil.
func NewManager(gen Generator, opts Options, store *ProgressStore, logFunc func(string)) *Manager {
	if opts.Clock == nil {
		opts.Clock = func() int64 { return time.Now().UnixNano() }
	}
	m := &Manager{
		gen:        gen,
		opts:       opts,
		store:      store,
		logMessage: logFunc,
		maxDungeon: max(1, opts.MaxDungeon),
	}
	m.dungeonIndex = min(max(1, opts.DungeonIndex), m.maxDungeon)
	return m
}

// Restore continues a saved run, if any. The saved max wins over Options.
func (m *Manager) Restore() (bool, error) {
	p, found, err := m.store.Load()
	if err != nil || !found {
		return false, err
	}
	m.maxDungeon = max(1, p.MaxDungeon)
	m.dungeonIndex = min(max(1, p.DungeonIndex), m.maxDungeon)
	m.lastSeed = p.LastSeed
	m.log(fmt.Sprintf("Restored run at dungeon %d/%d", m.dungeonIndex, m.maxDungeon))
	return true, nil
}

// GenerateCurrent seeds and generates the current dungeon. The seed is the
// fixed seed or the clock, offset by the dungeon index.
func (m *Manager) GenerateCurrent() error {
	base := m.opts.Clock()
	if m.opts.UseFixedSeed {
		base = m.opts.FixedSeed
	}
	m.lastSeed = base + int64(m.dungeonIndex)

	m.gen.Seed(m.lastSeed)
	m.gen.Generate(m.dungeonIndex, m.maxDungeon)
	m.log(fmt.Sprintf("Generated dungeon %d/%d with seed %d", m.dungeonIndex, m.maxDungeon, m.lastSeed))

	return m.store.Save(m.Progress())
}

// Next advances to the next dungeon, stopping at the last one, and
// generates it.
func (m *Manager) Next() error {
	m.dungeonIndex = min(m.dungeonIndex+1, m.maxDungeon)
	return m.GenerateCurrent()
}

// DungeonIndex returns the current dungeon index
func (m *Manager) DungeonIndex() int {
	return m.dungeonIndex
}

// MaxDungeon returns the last dungeon index
func (m *Manager) MaxDungeon() int {
	return m.maxDungeon
}

// LastSeed returns the seed of the most recent generation
func (m *Manager) LastSeed() int64 {
	return m.lastSeed
}

// Progress returns the state that would be persisted
func (m *Manager) Progress() Progress {
	return Progress{DungeonIndex: m.dungeonIndex, MaxDungeon: m.maxDungeon, LastSeed: m.lastSeed}
}

func (m *Manager) log(message string) {
	if m.logMessage != nil {
		m.logMessage(message)
	}
}
