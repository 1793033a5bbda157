package run

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmarek/starlane/internal/object"
)

// Upgrade ids the run-state gates depend on.
const (
	PointDefenseID = "point_defense"
	RerollID       = "reroll_module"
	ExtraChoiceID  = "targeting_feed"
)

// effects maps effect ids (referenced from pool definitions) to the Go
// functions that apply them. Gate-only upgrades use the "none" effect.
var effects = map[string]Effect{
	"none": func(ship *object.Ship, weapons *object.WeaponSystem) {},

	"primary_damage_boost": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if weapons == nil || weapons.Primary == nil {
			return
		}
		weapons.Primary.Damage *= 1.25
		weapons.Primary.Upgrade()
	},

	"primary_cooldown_cut": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if weapons == nil || weapons.Primary == nil {
			return
		}
		weapons.Primary.Cooldown *= 0.85
		weapons.Primary.FireRate = 1 / weapons.Primary.Cooldown
		weapons.Primary.Upgrade()
	},

	"shield_matrix": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if ship == nil {
			return
		}
		ship.MaxShield += 15
		ship.Shield = ship.MaxShield
	},

	"hull_plating": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if ship == nil {
			return
		}
		ship.MaxHealth += 25
		ship.Health += 25
		if ship.Health > ship.MaxHealth {
			ship.Health = ship.MaxHealth
		}
	},

	"thruster_tuning": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if ship == nil {
			return
		}
		ship.MaxSpeed *= 1.15
		ship.Accel *= 1.15
	},

	"ammo_reserve": func(ship *object.Ship, weapons *object.WeaponSystem) {
		if weapons == nil || weapons.Secondary == nil {
			return
		}
		weapons.Secondary.SetMaxAmmo(weapons.Secondary.MaxAmmo + 4)
		weapons.Secondary.Upgrade()
	},
}

// DefaultPool returns the compiled-in upgrade pool with effects resolved.
func DefaultPool() []*UpgradeDefinition {
	pool := []*UpgradeDefinition{
		{ID: "focusing_lens", Name: "Focusing Lens", Category: "weapon", Rarity: RarityCommon,
			MinZone: 1, MaxStacks: 5, EffectID: "primary_damage_boost",
			Description: "Primary weapon damage +25%"},
		{ID: "overclocked_capacitors", Name: "Overclocked Capacitors", Category: "weapon", Rarity: RarityCommon,
			MinZone: 1, MaxStacks: 4, EffectID: "primary_cooldown_cut",
			Description: "Primary weapon cooldown -15%"},
		{ID: "shield_matrix", Name: "Shield Matrix", Category: "defense", Rarity: RarityCommon,
			MinZone: 1, MaxStacks: 3, EffectID: "shield_matrix",
			Description: "Max shield +15, shield restored"},
		{ID: "hull_plating", Name: "Hull Plating", Category: "defense", Rarity: RarityCommon,
			MinZone: 1, MaxStacks: 3, EffectID: "hull_plating",
			Description: "Max hull +25, repairs 25"},
		{ID: "thruster_tuning", Name: "Thruster Tuning", Category: "mobility", Rarity: RarityUncommon,
			MinZone: 1, MaxStacks: 2, EffectID: "thruster_tuning",
			Description: "Speed and acceleration +15%"},
		{ID: "ammo_reserve", Name: "Ammo Reserve", Category: "weapon", Rarity: RarityUncommon,
			MinZone: 2, MaxStacks: 3, EffectID: "ammo_reserve",
			Description: "Rail cannon magazine +4"},
		{ID: PointDefenseID, Name: "Point Defense Array", Category: "defense", Rarity: RarityRare,
			MinZone: 2, MaxStacks: 1, EffectID: "none",
			Description: "Negates one hit per zone once your score is high enough"},
		{ID: RerollID, Name: "Recalibration Module", Category: "meta", Rarity: RarityRare,
			MinZone: 3, MaxStacks: 1, EffectID: "none",
			Description: "Reroll one upgrade offer per zone"},
		{ID: ExtraChoiceID, Name: "Targeting Feed", Category: "meta", Rarity: RarityRare,
			MinZone: 2, MaxStacks: 1, EffectID: "none",
			Description: "Upgrade offers show a fourth choice"},
	}

	for _, def := range pool {
		def.apply = effects[def.EffectID]
	}
	return pool
}

// LoadPool reads an upgrade pool from a YAML file, resolves effect ids
// against the built-in effect table and validates every entry.
func LoadPool(path string) ([]*UpgradeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upgrade pool: %w", err)
	}

	var file struct {
		Upgrades []*UpgradeDefinition `yaml:"upgrades"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse upgrade pool YAML: %w", err)
	}
	if len(file.Upgrades) == 0 {
		return nil, fmt.Errorf("upgrade pool %q is empty", path)
	}

	seen := make(map[string]bool, len(file.Upgrades))
	for _, def := range file.Upgrades {
		if err := def.validate(); err != nil {
			return nil, err
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate upgrade id %q", def.ID)
		}
		seen[def.ID] = true

		apply, ok := effects[def.EffectID]
		if !ok {
			return nil, fmt.Errorf("upgrade %q: unknown effect %q", def.ID, def.EffectID)
		}
		def.apply = apply
	}

	return file.Upgrades, nil
}
