// Package persistence archives generated room snapshots by name.
package persistence

import (
	"errors"

	"roomforge/generation"
)

// ErrNotFound is returned when no layout is stored under a name
var ErrNotFound = errors.New("layout not found")

// Storage defines the interface for layout persistence
type Storage interface {
	SaveLayout(name string, snapshot *generation.Snapshot) error
	LoadLayout(name string) (*generation.Snapshot, error)
	ListLayouts() ([]string, error)
	Close() error
}
