package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"roomforge/generation"
)

// JSONStore keeps layouts in a single local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON file
type JSONData struct {
	Layouts map[string]*generation.Snapshot `json:"layouts"`
}

// NewJSONStore opens filePath, creating it when it does not exist
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Layouts: make(map[string]*generation.Snapshot),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Layouts == nil {
		js.data.Layouts = make(map[string]*generation.Snapshot)
	}
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0o644)
}

// SaveLayout stores snapshot under name, replacing any previous one
func (js *JSONStore) SaveLayout(name string, snapshot *generation.Snapshot) error {
	if name == "" {
		return fmt.Errorf("layout name must not be empty")
	}

	js.mutex.Lock()
	js.data.Layouts[name] = snapshot
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("failed to save layout %q: %w", name, err)
	}
	return nil
}

// LoadLayout returns the layout stored under name
func (js *JSONStore) LoadLayout(name string) (*generation.Snapshot, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	snapshot, exists := js.data.Layouts[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return snapshot, nil
}

// ListLayouts returns the stored layout names in order
func (js *JSONStore) ListLayouts() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.data.Layouts))
	for name := range js.data.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
