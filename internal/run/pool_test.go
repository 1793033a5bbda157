package run

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPoolValid(t *testing.T) {
	pool := DefaultPool()
	if len(pool) == 0 {
		t.Fatal("Default pool is empty")
	}

	seen := make(map[string]bool)
	for _, def := range pool {
		if err := def.validate(); err != nil {
			t.Errorf("Invalid default upgrade: %v", err)
		}
		if seen[def.ID] {
			t.Errorf("Duplicate id %q in default pool", def.ID)
		}
		seen[def.ID] = true
		if def.apply == nil {
			t.Errorf("Upgrade %q has unresolved effect %q", def.ID, def.EffectID)
		}
	}

	for _, id := range []string{PointDefenseID, RerollID, ExtraChoiceID} {
		if !seen[id] {
			t.Errorf("Default pool missing gated upgrade %q", id)
		}
	}
}

func TestLoadPool(t *testing.T) {
	path := writePool(t, `
upgrades:
  - id: test_boost
    name: Test Boost
    category: weapon
    rarity: common
    minZone: 1
    maxStacks: 2
    effect: primary_damage_boost
  - id: test_gate
    name: Test Gate
    category: meta
    rarity: rare
    minZone: 3
    maxStacks: 1
    effect: none
`)

	pool, err := LoadPool(path)
	if err != nil {
		t.Fatalf("LoadPool failed: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("Expected 2 upgrades, got %d", len(pool))
	}
	if pool[0].ID != "test_boost" || pool[0].Rarity != RarityCommon {
		t.Errorf("Unexpected first upgrade: %+v", pool[0])
	}
	if pool[0].apply == nil {
		t.Error("Expected effect resolved")
	}
	if pool[1].MinZone != 3 {
		t.Errorf("MinZone = %d, expected 3", pool[1].MinZone)
	}
}

func TestLoadPoolErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Unknown effect", `
upgrades:
  - {id: a, name: A, rarity: common, minZone: 1, maxStacks: 1, effect: does_not_exist}
`},
		{"Duplicate id", `
upgrades:
  - {id: a, name: A, rarity: common, minZone: 1, maxStacks: 1, effect: none}
  - {id: a, name: B, rarity: rare, minZone: 1, maxStacks: 1, effect: none}
`},
		{"Bad rarity", `
upgrades:
  - {id: a, name: A, rarity: legendary, minZone: 1, maxStacks: 1, effect: none}
`},
		{"Zero maxStacks", `
upgrades:
  - {id: a, name: A, rarity: common, minZone: 1, maxStacks: 0, effect: none}
`},
		{"Empty pool", `upgrades: []`},
		{"Not YAML", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPool(writePool(t, tt.yaml)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadPoolMissingFile(t *testing.T) {
	if _, err := LoadPool(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func writePool(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upgrades.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
