// Package run holds per-playthrough state: collected upgrades, their
// effects on the live ship, and the weighted-random choice sets offered
// between zones.
package run

import (
	"fmt"

	"github.com/tmarek/starlane/internal/object"
)

// Rarity biases how often an upgrade appears in offered choices.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Weight returns how many entries this rarity contributes to the inflated
// sampling slice: common ×3, uncommon ×2, rare ×1.
func (r Rarity) Weight() int {
	switch r {
	case RarityCommon:
		return 3
	case RarityUncommon:
		return 2
	case RarityRare:
		return 1
	default:
		return 1
	}
}

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare:
		return true
	}
	return false
}

// Effect mutates the live ship and weapon mounts when an upgrade is taken.
type Effect func(ship *object.Ship, weapons *object.WeaponSystem)

// UpgradeDefinition is one entry of the static, read-only upgrade pool.
type UpgradeDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Rarity      Rarity `yaml:"rarity"`
	MinZone     int    `yaml:"minZone"`
	MaxStacks   int    `yaml:"maxStacks"`
	Description string `yaml:"description"`
	EffectID    string `yaml:"effect"`

	apply Effect
}

// Apply invokes the upgrade's effect against the live ship and weapons.
func (d *UpgradeDefinition) Apply(ship *object.Ship, weapons *object.WeaponSystem) {
	if d.apply != nil {
		d.apply(ship, weapons)
	}
}

// validate checks a definition for structural problems.
func (d *UpgradeDefinition) validate() error {
	if d.ID == "" {
		return fmt.Errorf("upgrade with empty id")
	}
	if !d.Rarity.Valid() {
		return fmt.Errorf("upgrade %q: unknown rarity %q", d.ID, d.Rarity)
	}
	if d.MinZone < 1 {
		return fmt.Errorf("upgrade %q: minZone must be >= 1, got %d", d.ID, d.MinZone)
	}
	if d.MaxStacks < 1 {
		return fmt.Errorf("upgrade %q: maxStacks must be >= 1, got %d", d.ID, d.MaxStacks)
	}
	return nil
}
