package object

import "github.com/tmarek/starlane/internal/physics"

// Category classifies a weapon mount.
type Category string

const (
	CategoryEnergy    Category = "energy"
	CategoryBallistic Category = "ballistic"
)

// ProjectileHook creates the projectile for a successful shot.
// The weapon itself only gates firing; what comes out is up to the owner.
type ProjectileHook func(origin, dir physics.Vec3, w *Weapon)

// Weapon is a timed-fire primitive: Ready → (fire) → Cooling → Ready.
// A weapon with a finite ammo pool is additionally gated on Ammo > 0.
type Weapon struct {
	Name     string
	Damage   float64
	FireRate float64 // nominal shots per second, for display
	Cooldown float64 // seconds between successful fires
	Range    float64
	Category Category

	Ammo    int
	MaxAmmo int
	hasAmmo bool

	currentCooldown float64
	upgradeLevel    int
	hook            ProjectileHook
}

// NewWeapon creates a weapon without an ammo pool.
func NewWeapon(name string, category Category, damage, cooldown, rng float64, hook ProjectileHook) *Weapon {
	w := &Weapon{
		Name:     name,
		Damage:   damage,
		Cooldown: cooldown,
		Range:    rng,
		Category: category,
		hook:     hook,
	}
	if cooldown > 0 {
		w.FireRate = 1 / cooldown
	}
	return w
}

// NewAmmoWeapon creates a weapon gated on a finite ammo pool.
func NewAmmoWeapon(name string, category Category, damage, cooldown, rng float64, maxAmmo int, hook ProjectileHook) *Weapon {
	w := NewWeapon(name, category, damage, cooldown, rng, hook)
	w.hasAmmo = true
	w.Ammo = maxAmmo
	w.MaxAmmo = maxAmmo
	return w
}

// IsReady reports whether a fire attempt would succeed right now.
func (w *Weapon) IsReady() bool {
	return w.currentCooldown <= 0 && (!w.hasAmmo || w.Ammo > 0)
}

// Fire attempts a shot from origin toward dir. On success it decrements
// ammo (if pooled), starts the cooldown, invokes the projectile hook and
// returns true. Returns false with no side effects when not ready.
func (w *Weapon) Fire(origin, dir physics.Vec3) bool {
	if !w.IsReady() {
		return false
	}
	if w.hasAmmo {
		w.Ammo--
	}
	w.currentCooldown = w.Cooldown
	if w.hook != nil {
		w.hook(origin, dir, w)
	}
	return true
}

// Update advances the cooldown timer. The timer never goes below zero.
func (w *Weapon) Update(dt float64) {
	if dt <= 0 {
		return
	}
	w.currentCooldown -= dt
	if w.currentCooldown < 0 {
		w.currentCooldown = 0
	}
}

// AddAmmo adds n rounds, clamped to [0, MaxAmmo].
// No-op for weapons without an ammo pool.
func (w *Weapon) AddAmmo(n int) {
	if !w.hasAmmo {
		return
	}
	w.Ammo += n
	if w.Ammo > w.MaxAmmo {
		w.Ammo = w.MaxAmmo
	}
	if w.Ammo < 0 {
		w.Ammo = 0
	}
}

// HasAmmoPool reports whether this weapon is ammo-gated.
func (w *Weapon) HasAmmoPool() bool {
	return w.hasAmmo
}

// SetMaxAmmo grows the pool to max and tops up by the difference.
// Used by upgrade effects.
func (w *Weapon) SetMaxAmmo(max int) {
	if !w.hasAmmo || max < w.MaxAmmo {
		return
	}
	grown := max - w.MaxAmmo
	w.MaxAmmo = max
	w.AddAmmo(grown)
}

// Upgrade increments the weapon's upgrade level and returns the new level.
// Stat changes are applied separately by the upgrade effect.
func (w *Weapon) Upgrade() int {
	w.upgradeLevel++
	return w.upgradeLevel
}

// UpgradeLevel returns the number of upgrades applied to this mount.
func (w *Weapon) UpgradeLevel() int {
	return w.upgradeLevel
}

// CooldownProgress returns remaining cooldown as a fraction of the full
// cooldown, clamped to [0,1]. Pure query for HUD display.
func (w *Weapon) CooldownProgress() float64 {
	if w.Cooldown <= 0 {
		return 0
	}
	p := w.currentCooldown / w.Cooldown
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
