package object

import "github.com/tmarek/starlane/internal/physics"

// Default weapon stats. Upgrade effects adjust these at runtime.
const (
	PulseLaserDamage   = 10.0
	PulseLaserCooldown = 0.25
	PulseLaserRange    = 90.0
	PulseLaserSpeed    = 120.0

	RailCannonDamage   = 40.0
	RailCannonCooldown = 1.2
	RailCannonRange    = 140.0
	RailCannonSpeed    = 200.0
	RailCannonAmmo     = 8
)

// WeaponSystem is the ship's set of mounts: an energy primary that is only
// cooldown-gated, and a ballistic secondary with a finite ammo pool.
type WeaponSystem struct {
	Primary   *Weapon
	Secondary *Weapon
}

// NewWeaponSystem builds the default loadout. Fired projectiles are handed
// to spawn, which the scene wires to its projectile collection.
func NewWeaponSystem(spawn Spawner) *WeaponSystem {
	emit := func(speed float64) ProjectileHook {
		return func(origin, dir physics.Vec3, w *Weapon) {
			if spawn == nil {
				return
			}
			spawn.SpawnProjectile(NewProjectile(origin, dir, speed, w.Damage, w.Range))
		}
	}

	return &WeaponSystem{
		Primary: NewWeapon("Pulse Laser", CategoryEnergy,
			PulseLaserDamage, PulseLaserCooldown, PulseLaserRange, emit(PulseLaserSpeed)),
		Secondary: NewAmmoWeapon("Rail Cannon", CategoryBallistic,
			RailCannonDamage, RailCannonCooldown, RailCannonRange, RailCannonAmmo, emit(RailCannonSpeed)),
	}
}

// FirePrimary attempts to fire the primary mount.
func (ws *WeaponSystem) FirePrimary(origin, dir physics.Vec3) bool {
	if ws.Primary == nil {
		return false
	}
	return ws.Primary.Fire(origin, dir)
}

// FireSecondary attempts to fire the secondary mount.
func (ws *WeaponSystem) FireSecondary(origin, dir physics.Vec3) bool {
	if ws.Secondary == nil {
		return false
	}
	return ws.Secondary.Fire(origin, dir)
}

// Update advances cooldowns on all mounts.
func (ws *WeaponSystem) Update(dt float64) {
	for _, w := range ws.Mounts() {
		w.Update(dt)
	}
}

// Mounts returns all non-nil mounts, primary first.
func (ws *WeaponSystem) Mounts() []*Weapon {
	var mounts []*Weapon
	if ws.Primary != nil {
		mounts = append(mounts, ws.Primary)
	}
	if ws.Secondary != nil {
		mounts = append(mounts, ws.Secondary)
	}
	return mounts
}
