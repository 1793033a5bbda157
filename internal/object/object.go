// Package object contains the simulated combat entities: the player ship,
// hazards drifting down the corridor, projectiles, and the cooldown-gated
// weapon primitives that connect them.
package object

// ControlID identifies a directional or action control.
type ControlID int

const (
	ControlLeft ControlID = iota
	ControlRight
	ControlUp
	ControlDown
	ControlSecondary
)

// Controls is the input collaborator. Implementations translate whatever
// device they own (terminal byte stream, SSH session) into per-frame state.
type Controls interface {
	IsPressed(id ControlID) bool
	IsFireHeld() bool
}

// Spawner lets entities emit new projectiles during their update.
type Spawner interface {
	SpawnProjectile(p *Projectile)
}

// Corridor describes the symmetric flight box the ship is clamped to.
type Corridor struct {
	HorizontalLimit float64
	VerticalLimit   float64
}

// UpdateContext provides everything an entity needs during one tick.
// Delta is in seconds and already clamped by the scheduler.
type UpdateContext struct {
	Delta    float64
	Controls Controls
	Spawner  Spawner
	Corridor Corridor
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	MarkDestroyed()
	IsDestroyed() bool
}
