// Package rules holds the difficulty rule table that maps a dungeon tier to
// enemy and currency budgets.
package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a table has no rules at all
	ErrEmptyTable = errors.New("difficulty table has no rules")
	// ErrNoBaseline is returned when the first rule is not the lowest threshold
	ErrNoBaseline = errors.New("first difficulty rule must have the lowest tier threshold")
)

// DifficultyRule is the population budget that applies from TierThreshold upwards.
type DifficultyRule struct {
	TierThreshold int `yaml:"tierThreshold" json:"tierThreshold" jsonschema:"title=Tier threshold,description=Lowest dungeon tier this rule applies to"`

	MinEnemies int `yaml:"minEnemies" json:"minEnemies" jsonschema:"minimum=0"`
	MaxEnemies int `yaml:"maxEnemies" json:"maxEnemies" jsonschema:"minimum=0"`

	SquareWeight   float64 `yaml:"squareWeight" json:"squareWeight" jsonschema:"minimum=0,maximum=1"`
	TriangleWeight float64 `yaml:"triangleWeight" json:"triangleWeight" jsonschema:"minimum=0,maximum=1"`
	StarWeight     float64 `yaml:"starWeight" json:"starWeight" jsonschema:"minimum=0,maximum=1"`
	MaxStars       int     `yaml:"maxStars" json:"maxStars" jsonschema:"minimum=0,description=Per-room cap on star enemies"`

	MinCurrency int `yaml:"minCurrency" json:"minCurrency" jsonschema:"minimum=0"`
	MaxCurrency int `yaml:"maxCurrency" json:"maxCurrency" jsonschema:"minimum=0"`
}

// Table is an ordered list of rules. The first entry is the baseline used
// when no threshold qualifies.
type Table struct {
	Rules []DifficultyRule `yaml:"rules" json:"rules" jsonschema:"minItems=1"`
}

// NewTable creates a table from rules in authored order
func NewTable(rules ...DifficultyRule) *Table {
	return &Table{Rules: rules}
}

// GetRule returns the rule with the largest threshold not above tier. If no
// rule qualifies the first entry is returned. The table must not be empty.
func (t *Table) GetRule(tier int) DifficultyRule {
	best := t.Rules[0]
	found := false

	for _, r := range t.Rules {
		if r.TierThreshold > tier {
			continue
		}
		if !found || r.TierThreshold > best.TierThreshold {
			best = r
			found = true
		}
	}

	return best
}

// Validate checks the table contract: non-empty, first entry is the baseline,
// and every rule has sane ranges and weights.
func (t *Table) Validate() error {
	if t == nil || len(t.Rules) == 0 {
		return ErrEmptyTable
	}

	baseline := t.Rules[0].TierThreshold
	for i, r := range t.Rules {
		if r.TierThreshold < baseline {
			return fmt.Errorf("%w: rule %d has threshold %d below baseline %d", ErrNoBaseline, i, r.TierThreshold, baseline)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d (tier %d): %w", i, r.TierThreshold, err)
		}
	}

	return nil
}

// Validate checks a single rule
func (r DifficultyRule) Validate() error {
	if r.MinEnemies < 0 || r.MaxEnemies < r.MinEnemies {
		return fmt.Errorf("enemy range must satisfy 0 <= min <= max, got %d..%d", r.MinEnemies, r.MaxEnemies)
	}
	if r.MinCurrency < 0 || r.MaxCurrency < r.MinCurrency {
		return fmt.Errorf("currency range must satisfy 0 <= min <= max, got %d..%d", r.MinCurrency, r.MaxCurrency)
	}
	if r.MaxStars < 0 {
		return fmt.Errorf("maxStars must be >= 0, got %d", r.MaxStars)
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"squareWeight", r.SquareWeight},
		{"triangleWeight", r.TriangleWeight},
		{"starWeight", r.StarWeight},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", w.name, w.value)
		}
	}

	return nil
}

// DefaultTable is the built-in progression used when no rule file is given.
func DefaultTable() *Table {
	return NewTable(
		DifficultyRule{TierThreshold: 1, MinEnemies: 2, MaxEnemies: 4, SquareWeight: 1, MinCurrency: 3, MaxCurrency: 6},
		DifficultyRule{TierThreshold: 3, MinEnemies: 3, MaxEnemies: 6, SquareWeight: 0.7, TriangleWeight: 0.3, MinCurrency: 4, MaxCurrency: 7},
		DifficultyRule{TierThreshold: 5, MinEnemies: 4, MaxEnemies: 8, SquareWeight: 0.5, TriangleWeight: 0.35, StarWeight: 0.15, MaxStars: 1, MinCurrency: 4, MaxCurrency: 8},
		DifficultyRule{TierThreshold: 8, MinEnemies: 6, MaxEnemies: 10, SquareWeight: 0.4, TriangleWeight: 0.35, StarWeight: 0.25, MaxStars: 2, MinCurrency: 5, MaxCurrency: 10},
	)
}
