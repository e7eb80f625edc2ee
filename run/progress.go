package run

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "run"
	progressProperty = "progress"
)

// Progress is the persisted state of a dungeon run
type Progress struct {
	DungeonIndex int   `yaml:"dungeonIndex"`
	MaxDungeon   int   `yaml:"maxDungeon"`
	LastSeed     int64 `yaml:"lastSeed"`
}

// ProgressStore saves run progress through gdata. A store with a nil
// manager keeps nothing and never fails.
type ProgressStore struct {
	manager *gdata.Manager
}

// OpenProgressStore opens the per-user data directory for appName
func OpenProgressStore(appName string) (*ProgressStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open progress storage: %w", err)
	}
	return NewProgressStore(manager), nil
}

// NewProgressStore wraps an existing gdata manager, which may be nil
func NewProgressStore(manager *gdata.Manager) *ProgressStore {
	return &ProgressStore{manager: manager}
}

// Load returns the saved progress. found is false when nothing was saved.
func (s *ProgressStore) Load() (p Progress, found bool, err error) {
	if s == nil || s.manager == nil {
		return Progress{}, false, nil
	}
	if !s.manager.ObjectPropExists(progressObject, progressProperty) {
		return Progress{}, false, nil
	}

	raw, err := s.manager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return Progress{}, false, fmt.Errorf("failed to load progress: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Progress{}, false, fmt.Errorf("failed to parse progress: %w", err)
	}
	return p, true, nil
}

// Save writes progress
func (s *ProgressStore) Save(p Progress) error {
	if s == nil || s.manager == nil {
		return nil
	}

	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
