package object

import "github.com/tmarek/starlane/internal/physics"

// Hazard is a hostile debris object drifting through the corridor
// toward the ship. Hazards are owned exclusively by the scene's hazard
// collection: spawned by the HazardSpawner, removed on collision, expiry
// or scene reset.
type Hazard struct {
	Pos    physics.Vec3
	Dir    physics.Vec3 // unit direction of travel
	Speed  float64
	Size   float64 // radius basis; collision radius is Size scaled down
	Damage float64
	Health float64
	Active bool

	// CollisionRadius is Size * the tuned collision factor, fixed at spawn.
	CollisionRadius float64

	spawnPos  physics.Vec3
	maxTravel float64
	destroyed bool
}

// NewHazard creates an active hazard at pos traveling along dir.
// maxTravel bounds how far it may drift from its spawn point before expiry.
func NewHazard(pos, dir physics.Vec3, speed, size, damage, health, collisionFactor, maxTravel float64) *Hazard {
	return &Hazard{
		Pos:             pos,
		Dir:             dir.Normalized(),
		Speed:           speed,
		Size:            size,
		Damage:          damage,
		Health:          health,
		Active:          true,
		CollisionRadius: size * collisionFactor,
		spawnPos:        pos,
		maxTravel:       maxTravel,
	}
}

// Update advances the hazard along its trajectory. Returns true when the
// hazard should be removed: destroyed, or drifted past its travel bound.
func (h *Hazard) Update(dt float64) bool {
	if h.destroyed {
		h.Active = false
		return true
	}

	h.Pos = h.Pos.Add(h.Dir.Scale(h.Speed * dt))

	if physics.DistanceSquared(h.Pos, h.spawnPos) > h.maxTravel*h.maxTravel {
		h.Active = false
		return true
	}
	return false
}

// TakeDamage applies weapon damage. Returns true if the hazard is destroyed.
func (h *Hazard) TakeDamage(amount float64) bool {
	if amount <= 0 || h.destroyed {
		return h.destroyed
	}
	h.Health -= amount
	if h.Health <= 0 {
		h.Health = 0
		h.MarkDestroyed()
	}
	return h.destroyed
}

// MarkDestroyed marks the hazard for removal (implements Destructible).
func (h *Hazard) MarkDestroyed() {
	h.destroyed = true
	h.Active = false
}

// IsDestroyed returns true if the hazard is marked for removal (implements Destructible).
func (h *Hazard) IsDestroyed() bool {
	return h.destroyed
}
