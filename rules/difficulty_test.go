package rules

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetRuleFloorLookup(t *testing.T) {
	// Deliberately unordered after the baseline.
	table := NewTable(
		DifficultyRule{TierThreshold: 1, MinEnemies: 1},
		DifficultyRule{TierThreshold: 6, MinEnemies: 6},
		DifficultyRule{TierThreshold: 3, MinEnemies: 3},
	)

	tests := []struct {
		tier int
		want int
	}{
		{tier: 1, want: 1},
		{tier: 2, want: 1},
		{tier: 3, want: 3},
		{tier: 5, want: 3},
		{tier: 6, want: 6},
		{tier: 99, want: 6},
	}

	for _, tt := range tests {
		if got := table.GetRule(tt.tier).TierThreshold; got != tt.want {
			t.Errorf("GetRule(%d) threshold = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestGetRuleFallsBackToFirstEntry(t *testing.T) {
	table := NewTable(
		DifficultyRule{TierThreshold: 4, MinEnemies: 9},
		DifficultyRule{TierThreshold: 2, MinEnemies: 5},
	)

	// Below every threshold: the first entry wins regardless of its own threshold.
	if got := table.GetRule(0); got.MinEnemies != 9 {
		t.Fatalf("expected first entry fallback, got %+v", got)
	}
	if got := table.GetRule(3); got.MinEnemies != 5 {
		t.Fatalf("expected tier-2 rule for tier 3, got %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr error
		errText string
	}{
		{name: "default table", table: DefaultTable()},
		{name: "nil table", table: nil, wantErr: ErrEmptyTable},
		{name: "empty table", table: NewTable(), wantErr: ErrEmptyTable},
		{
			name:    "baseline not first",
			table:   NewTable(DifficultyRule{TierThreshold: 3}, DifficultyRule{TierThreshold: 1}),
			wantErr: ErrNoBaseline,
		},
		{
			name:    "inverted enemy range",
			table:   NewTable(DifficultyRule{TierThreshold: 1, MinEnemies: 4, MaxEnemies: 2}),
			errText: "enemy range",
		},
		{
			name:    "weight above one",
			table:   NewTable(DifficultyRule{TierThreshold: 1, SquareWeight: 1.5}),
			errText: "squareWeight must be between 0 and 1",
		},
		{
			name:    "negative star cap",
			table:   NewTable(DifficultyRule{TierThreshold: 1, MaxStars: -1}),
			errText: "maxStars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errText != "":
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Fatalf("expected error containing %q, got %v", tt.errText, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Table)
	}{
		{
			name: "valid yaml",
			content: `
rules:
  - tierThreshold: 1
    minEnemies: 2
    maxEnemies: 4
    squareWeight: 1
    minCurrency: 3
    maxCurrency: 5
  - tierThreshold: 5
    minEnemies: 4
    maxEnemies: 8
    squareWeight: 0.5
    triangleWeight: 0.3
    starWeight: 0.2
    maxStars: 2
    minCurrency: 4
    maxCurrency: 9
`,
			validate: func(t *testing.T, table *Table) {
				if len(table.Rules) != 2 {
					t.Fatalf("expected 2 rules, got %d", len(table.Rules))
				}
				if table.Rules[1].MaxStars != 2 {
					t.Errorf("expected maxStars 2, got %d", table.Rules[1].MaxStars)
				}
				if table.GetRule(7).StarWeight != 0.2 {
					t.Errorf("expected tier 7 to resolve to the tier 5 rule")
				}
			},
		},
		{
			name:    "json is accepted",
			content: `{"rules":[{"tierThreshold":0,"minEnemies":1,"maxEnemies":1,"squareWeight":1}]}`,
			validate: func(t *testing.T, table *Table) {
				if table.Rules[0].MaxEnemies != 1 {
					t.Errorf("expected maxEnemies 1, got %d", table.Rules[0].MaxEnemies)
				}
			},
		},
		{
			name:        "empty rules",
			content:     "rules: []\n",
			wantErr:     true,
			errContains: "no rules",
		},
		{
			name:        "broken yaml",
			content:     "rules: [\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			table, err := LoadTable(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTable returned error: %v", err)
			}
			tt.validate(t, table)
		})
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := DefaultTable().Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	table, err := ParseTable(data)
	if err != nil {
		t.Fatalf("ParseTable returned error: %v", err)
	}
	if len(table.Rules) != len(DefaultTable().Rules) {
		t.Fatalf("rule count changed: got %d", len(table.Rules))
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON returned error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["title"] != "Dungeon Difficulty Table" {
		t.Fatalf("unexpected title: %v", doc["title"])
	}
	if !strings.Contains(string(data), "tierThreshold") {
		t.Fatalf("schema does not mention tierThreshold")
	}
}
