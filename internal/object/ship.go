package object

import (
	"math"

	"github.com/tmarek/starlane/internal/physics"
)

// Default ship stats.
const (
	ShipMaxHealth = 100.0
	ShipMaxShield = 20.0
	ShipAccel     = 60.0
	ShipMaxSpeed  = 30.0
	ShipDrag      = 0.15 // fraction of speed kept after one second of coasting
	ShipRadius    = 1.5

	// EntryDistance is how far behind the entry point the scripted entry
	// animation starts.
	EntryDistance = 40.0
)

// Ship is the player-controlled craft. Position is clamped each tick to the
// corridor box; health and shield pools absorb hazard damage with shield
// taking hits first.
type Ship struct {
	Pos physics.Vec3
	Vel physics.Vec3

	Health    float64
	MaxHealth float64
	Shield    float64
	MaxShield float64

	Accel    float64
	MaxSpeed float64
	Drag     float64
	Radius   float64

	PlayerControlled bool
	Weapons          *WeaponSystem

	entryPos physics.Vec3 // canonical entry coordinates
	entry    *entryAnimation
}

// entryAnimation is the scripted fly-in: an interpolated transform over a
// fixed duration, outside steady-state physics.
type entryAnimation struct {
	from     physics.Vec3
	elapsed  float64
	duration float64
	onDone   func()
}

// NewShip creates a player ship at the canonical entry position with the
// given weapon loadout.
func NewShip(weapons *WeaponSystem) *Ship {
	return &Ship{
		Health:           ShipMaxHealth,
		MaxHealth:        ShipMaxHealth,
		Shield:           ShipMaxShield,
		MaxShield:        ShipMaxShield,
		Accel:            ShipAccel,
		MaxSpeed:         ShipMaxSpeed,
		Drag:             ShipDrag,
		Radius:           ShipRadius,
		PlayerControlled: true,
		Weapons:          weapons,
	}
}

// Update integrates movement from control intent, clamps to the corridor,
// and attempts primary fire while the fire control is held. The weapon's
// own cooldown rate-limits the per-frame fire attempts.
func (s *Ship) Update(ctx UpdateContext) {
	if s.entry != nil {
		s.updateEntry(ctx.Delta)
		return
	}

	dt := ctx.Delta
	ix, iy := s.intent(ctx.Controls)

	s.Vel.X += ix * s.Accel * dt
	s.Vel.Y += iy * s.Accel * dt

	// Drag on idle axes so the ship settles instead of drifting forever.
	dragFactor := math.Pow(s.Drag, dt)
	if ix == 0 {
		s.Vel.X *= dragFactor
	}
	if iy == 0 {
		s.Vel.Y *= dragFactor
	}

	speed := s.Vel.Length()
	if speed > s.MaxSpeed {
		s.Vel = s.Vel.Scale(s.MaxSpeed / speed)
	}

	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.clampToCorridor(ctx.Corridor)

	if s.PlayerControlled && ctx.Controls != nil && s.Weapons != nil {
		if ctx.Controls.IsFireHeld() {
			s.Weapons.FirePrimary(s.nose(), forward())
		}
		if ctx.Controls.IsPressed(ControlSecondary) {
			s.Weapons.FireSecondary(s.nose(), forward())
		}
	}
}

// intent reads directional control state as a [-1,1] pair.
func (s *Ship) intent(c Controls) (ix, iy float64) {
	if !s.PlayerControlled || c == nil {
		return 0, 0
	}
	if c.IsPressed(ControlLeft) {
		ix--
	}
	if c.IsPressed(ControlRight) {
		ix++
	}
	if c.IsPressed(ControlDown) {
		iy--
	}
	if c.IsPressed(ControlUp) {
		iy++
	}
	return ix, iy
}

// clampToCorridor keeps the ship inside the symmetric flight box, killing
// velocity on the axis that hit the wall.
func (s *Ship) clampToCorridor(c Corridor) {
	if c.HorizontalLimit > 0 {
		if s.Pos.X > c.HorizontalLimit {
			s.Pos.X = c.HorizontalLimit
			s.Vel.X = 0
		} else if s.Pos.X < -c.HorizontalLimit {
			s.Pos.X = -c.HorizontalLimit
			s.Vel.X = 0
		}
	}
	if c.VerticalLimit > 0 {
		if s.Pos.Y > c.VerticalLimit {
			s.Pos.Y = c.VerticalLimit
			s.Vel.Y = 0
		} else if s.Pos.Y < -c.VerticalLimit {
			s.Pos.Y = -c.VerticalLimit
			s.Vel.Y = 0
		}
	}
}

// nose is where projectiles originate.
func (s *Ship) nose() physics.Vec3 {
	return physics.Vec3{X: s.Pos.X, Y: s.Pos.Y, Z: s.Pos.Z - s.Radius}
}

// forward is the fixed firing direction, down the corridor.
func forward() physics.Vec3 {
	return physics.Vec3{Z: -1}
}

// TakeDamage applies amount to the shield first; anything beyond the shield
// overflows to health. Both pools floor at zero. Returns true iff the ship
// is destroyed (health reaches 0).
func (s *Ship) TakeDamage(amount float64) bool {
	if amount <= 0 {
		return s.Health <= 0
	}

	shieldBefore := s.Shield
	s.Shield -= amount
	if s.Shield < 0 {
		s.Shield = 0
	}

	overflow := amount - shieldBefore
	if overflow > 0 {
		s.Health -= overflow
		if s.Health < 0 {
			s.Health = 0
		}
	}

	return s.Health == 0
}

// ResetPosition restores the canonical entry coordinates and zeroes
// velocity. Used by scene reset and debug recovery.
func (s *Ship) ResetPosition() {
	s.Pos = s.entryPos
	s.Vel = physics.Vec3{}
}

// Reset restores full pools and the entry position for a fresh run.
func (s *Ship) Reset() {
	s.Health = s.MaxHealth
	s.Shield = s.MaxShield
	s.ResetPosition()
	s.entry = nil
}

// BeginEntry starts the scripted entry animation: the ship flies in from
// behind the corridor over duration seconds, then onDone fires once.
// Steady-state movement and firing are suspended until it completes.
func (s *Ship) BeginEntry(duration float64, onDone func()) {
	start := s.entryPos
	start.Z += EntryDistance
	s.Pos = start
	s.Vel = physics.Vec3{}
	s.entry = &entryAnimation{
		from:     start,
		duration: duration,
		onDone:   onDone,
	}
}

// Entering reports whether the scripted entry animation is still running.
func (s *Ship) Entering() bool {
	return s.entry != nil
}

func (s *Ship) updateEntry(dt float64) {
	e := s.entry
	e.elapsed += dt
	t := e.elapsed / e.duration
	if t >= 1 {
		s.Pos = s.entryPos
		s.entry = nil
		if e.onDone != nil {
			e.onDone()
		}
		return
	}
	// Ease-out so the ship decelerates into position.
	eased := 1 - (1-t)*(1-t)
	s.Pos = physics.Lerp(e.from, s.entryPos, eased)
}
