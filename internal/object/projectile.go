package object

import "github.com/tmarek/starlane/internal/physics"

// ProjectileRadius is the collision radius for projectile-hazard checks.
const ProjectileRadius = 0.5

// Projectile is a shot traveling down the corridor.
type Projectile struct {
	Pos       physics.Vec3
	Vel       physics.Vec3
	Damage    float64
	Range     float64 // total travel distance before expiry
	traveled  float64
	destroyed bool
}

// NewProjectile creates a projectile at origin traveling along dir.
func NewProjectile(origin, dir physics.Vec3, speed, damage, rng float64) *Projectile {
	return &Projectile{
		Pos:    origin,
		Vel:    dir.Normalized().Scale(speed),
		Damage: damage,
		Range:  rng,
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for removal.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update advances the projectile. Returns true when it should be removed,
// either destroyed by a hit or out of range.
func (p *Projectile) Update(dt float64) bool {
	if p.destroyed {
		return true
	}
	step := p.Vel.Scale(dt)
	p.Pos = p.Pos.Add(step)
	p.traveled += step.Length()
	return p.traveled >= p.Range
}
