package loop

import (
	"github.com/tmarek/starlane/internal/object"
	"github.com/tmarek/starlane/internal/physics"
)

// resolveCollisions runs sphere-sphere tests for this tick: projectiles
// against hazards first (kills pay score), then hazards against the ship.
// O(projectiles*hazards + hazards) per frame; fine at the 15-hazard cap,
// but a spatial grid would be needed before raising it much.
func (sc *Scene) resolveCollisions() {
	sc.resolveProjectileHits()
	sc.resolveShipHits()
}

func (sc *Scene) resolveProjectileHits() {
	for _, p := range sc.projectiles {
		if p.IsDestroyed() {
			continue
		}
		for _, h := range sc.hazards {
			if h.IsDestroyed() {
				continue
			}
			if !physics.SpheresOverlap(p.Pos, object.ProjectileRadius, h.Pos, h.CollisionRadius) {
				continue
			}
			p.MarkDestroyed()
			if h.TakeDamage(p.Damage) {
				sc.zones.AddScore(scoreForSize(h.Size))
				sc.audio.PlayImpact()
			}
			break
		}
	}
}

func (sc *Scene) resolveShipHits() {
	// The scripted entry is a grace period; nothing can hit the ship
	// until it reaches its station.
	if sc.ship.Entering() {
		return
	}

	for _, h := range sc.hazards {
		if h.IsDestroyed() {
			continue
		}
		if !physics.SpheresOverlap(h.Pos, h.CollisionRadius, sc.ship.Pos, sc.ship.Radius) {
			continue
		}

		h.MarkDestroyed()

		if sc.runState.TryAbsorbHit(sc.zones.Score) {
			sc.log.Debug("point defense absorbed hit", "damage", h.Damage)
			sc.audio.PlayCollision(0)
			continue
		}

		sc.audio.PlayCollision(collisionSeverity(h.Damage))
		if sc.ship.TakeDamage(h.Damage) {
			sc.onShipDestroyed()
			return
		}
	}
}
