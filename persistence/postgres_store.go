package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"roomforge/generation"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps layouts in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and creates the schema
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS room_layouts (
		name TEXT PRIMARY KEY,
		tier INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		snapshot JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveLayout upserts snapshot under name
func (ps *PostgresStore) SaveLayout(name string, snapshot *generation.Snapshot) error {
	raw, err := snapshot.MarshalIndent()
	if err != nil {
		return err
	}

	query := `
	INSERT INTO room_layouts (name, tier, seed, snapshot)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name)
	DO UPDATE SET
		tier = $2, seed = $3, snapshot = $4,
		updated_at = NOW()
	`

	if _, err := ps.db.Exec(query, name, snapshot.Tier, snapshot.Seed, string(raw)); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}

// LoadLayout returns the layout stored under name
func (ps *PostgresStore) LoadLayout(name string) (*generation.Snapshot, error) {
	var raw string
	err := ps.db.QueryRow(`SELECT snapshot FROM room_layouts WHERE name = $1`, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	return generation.DecodeSnapshot([]byte(raw))
}

// ListLayouts returns the stored layout names in order
func (ps *PostgresStore) ListLayouts() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM room_layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan layout name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
