package data

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roomforge/components"
	"roomforge/geom"
)

func TestSampleExtents(t *testing.T) {
	tests := []struct {
		name   string
		prefab *Prefab
		want   geom.Vec2
		ok     bool
	}{
		{"collider wins", &Prefab{ColliderSize: size(2, 1), RenderSize: size(4, 4)}, geom.V(1, 0.5), true},
		{"render fallback", &Prefab{RenderSize: size(3, 1)}, geom.V(1.5, 0.5), true},
		{"degenerate collider falls back", &Prefab{ColliderSize: size(0, 1), RenderSize: size(1, 1)}, geom.V(0.5, 0.5), true},
		{"nothing usable", &Prefab{ColliderSize: size(0, 0)}, geom.Vec2{}, false},
		{"nil prefab", nil, geom.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.prefab.SampleExtents()
			if ok != tt.ok || got != tt.want {
				t.Fatalf("got (%+v, %v) want (%+v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValidatePrefab(t *testing.T) {
	tests := []struct {
		name        string
		prefab      Prefab
		errContains string
	}{
		{name: "valid obstacle", prefab: Prefab{ID: "rock", Kind: components.KindObstacle, Layer: "obstacles"}},
		{name: "missing id", prefab: Prefab{Kind: components.KindWall}, errContains: "missing id"},
		{name: "unknown kind", prefab: Prefab{ID: "x", Kind: "tree"}, errContains: "unknown kind"},
		{name: "enemy without category", prefab: Prefab{ID: "e", Kind: components.KindEnemy}, errContains: "unknown category"},
		{name: "unknown layer", prefab: Prefab{ID: "w", Kind: components.KindWall, Layer: "lava"}, errContains: "unknown layer"},
		{name: "negative size", prefab: Prefab{ID: "w", Kind: components.KindWall, RenderSize: size(-1, 1)}, errContains: "negative size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefab(&tt.prefab)
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"rock.json": `{"id":"rock","name":"Rock","kind":"obstacle","layer":"obstacles","colliderSize":{"x":1.2,"y":0.8}}`,
		"imp.json":  `{"id":"imp","kind":"enemy","category":"triangle","layer":"enemies","colliderSize":{"x":0.5,"y":0.5}}`,
		"notes.txt": `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	lib := NewPrefabLibrary()
	if err := lib.LoadFromDirectory(dir); err != nil {
		t.Fatalf("LoadFromDirectory returned error: %v", err)
	}

	if got := lib.IDs(); len(got) != 2 || got[0] != "imp" || got[1] != "rock" {
		t.Fatalf("unexpected ids: %v", got)
	}
	rock, _ := lib.Get("rock")
	if half, ok := rock.SampleExtents(); !ok || half != geom.V(0.6, 0.4) {
		t.Fatalf("unexpected rock extents: %+v", half)
	}
	if rock.LayerMask() != components.LayerObstacles {
		t.Fatalf("unexpected rock layer: %v", rock.LayerMask())
	}
}

func TestLoadFromDirectoryRejectsInvalidPrefab(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id":"","kind":"wall"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := NewPrefabLibrary().LoadFromDirectory(dir)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("expected error naming bad.json, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	lib := DefaultPrefabs()

	if p, err := lib.Resolve(""); p != nil || err != nil {
		t.Fatalf("empty id should resolve to nil without error, got %v %v", p, err)
	}
	if _, err := lib.Resolve("missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if p, err := lib.Resolve(PrefabWall); err != nil || p.Kind != components.KindWall {
		t.Fatalf("unexpected wall resolution: %+v %v", p, err)
	}
}

func TestParseHexColor(t *testing.T) {
	if got := ParseHexColor("#102030"); got != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Fatalf("unexpected color: %+v", got)
	}
	if got := ParseHexColor("nope"); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected white fallback, got %+v", got)
	}
}
