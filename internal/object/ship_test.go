package object

import (
	"testing"

	"github.com/tmarek/starlane/internal/physics"
)

// stubControls is a fixed control state for tests.
type stubControls struct {
	pressed map[ControlID]bool
	fire    bool
}

func (s stubControls) IsPressed(id ControlID) bool { return s.pressed[id] }
func (s stubControls) IsFireHeld() bool            { return s.fire }

// stubSpawner records spawned projectiles.
type stubSpawner struct {
	projectiles []*Projectile
}

func (s *stubSpawner) SpawnProjectile(p *Projectile) {
	s.projectiles = append(s.projectiles, p)
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name          string
		shield        float64
		health        float64
		amount        float64
		expectShield  float64
		expectHealth  float64
		expectDestroy bool
	}{
		{"Shield absorbs fully", 20, 100, 15, 5, 100, false},
		{"Overflow to health", 20, 100, 50, 0, 70, false},
		{"Exact shield", 20, 100, 20, 0, 100, false},
		{"No shield", 0, 100, 30, 0, 70, false},
		{"Lethal", 0, 100, 200, 0, 0, true},
		{"Exactly lethal", 10, 50, 60, 0, 0, true},
		{"Zero damage", 20, 100, 0, 20, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShip(nil)
			s.Shield = tt.shield
			s.Health = tt.health

			destroyed := s.TakeDamage(tt.amount)
			if s.Shield != tt.expectShield {
				t.Errorf("Shield = %v, expected %v", s.Shield, tt.expectShield)
			}
			if s.Health != tt.expectHealth {
				t.Errorf("Health = %v, expected %v", s.Health, tt.expectHealth)
			}
			if destroyed != tt.expectDestroy {
				t.Errorf("destroyed = %v, expected %v", destroyed, tt.expectDestroy)
			}
		})
	}
}

func TestShipClampedToCorridor(t *testing.T) {
	s := NewShip(nil)
	ctx := UpdateContext{
		Delta:    0.016,
		Controls: stubControls{pressed: map[ControlID]bool{ControlRight: true, ControlUp: true}},
		Corridor: Corridor{HorizontalLimit: 10, VerticalLimit: 6},
	}

	// Push hard toward the corner for several seconds of simulated time.
	for i := 0; i < 1000; i++ {
		s.Update(ctx)
	}

	if s.Pos.X > 10 || s.Pos.Y > 6 {
		t.Errorf("Ship escaped corridor: %+v", s.Pos)
	}
	if s.Pos.X != 10 {
		t.Errorf("Expected ship pinned at horizontal limit, got %v", s.Pos.X)
	}
	if s.Vel.X != 0 {
		t.Errorf("Expected velocity zeroed at the wall, got %v", s.Vel.X)
	}
}

func TestShipFiresWhileHeld(t *testing.T) {
	spawner := &stubSpawner{}
	s := NewShip(NewWeaponSystem(spawner))
	ctx := UpdateContext{
		Delta:    0.016,
		Controls: stubControls{fire: true},
		Corridor: Corridor{HorizontalLimit: 10, VerticalLimit: 6},
	}

	// One second of held fire: rate-limited by the weapon cooldown, so
	// roughly 1/cooldown shots, never one per frame.
	for i := 0; i < 63; i++ {
		s.Update(ctx)
		s.Weapons.Update(ctx.Delta)
	}

	want := int(1.0/PulseLaserCooldown) + 1
	if len(spawner.projectiles) == 0 || len(spawner.projectiles) > want {
		t.Errorf("Expected 1..%d shots over one second, got %d", want, len(spawner.projectiles))
	}
}

func TestShipNotPlayerControlledIgnoresInput(t *testing.T) {
	spawner := &stubSpawner{}
	s := NewShip(NewWeaponSystem(spawner))
	s.PlayerControlled = false
	ctx := UpdateContext{
		Delta:    0.1,
		Controls: stubControls{pressed: map[ControlID]bool{ControlRight: true}, fire: true},
		Corridor: Corridor{HorizontalLimit: 10, VerticalLimit: 6},
	}

	s.Update(ctx)
	if s.Pos.X != 0 {
		t.Errorf("Expected no movement without player control, got X=%v", s.Pos.X)
	}
	if len(spawner.projectiles) != 0 {
		t.Errorf("Expected no firing without player control, got %d shots", len(spawner.projectiles))
	}
}

func TestResetPosition(t *testing.T) {
	s := NewShip(nil)
	s.Pos = physics.Vec3{X: 5, Y: -3, Z: 1}
	s.Vel = physics.Vec3{X: 2, Y: 2}

	s.ResetPosition()
	if s.Pos != (physics.Vec3{}) {
		t.Errorf("Expected entry position, got %+v", s.Pos)
	}
	if s.Vel != (physics.Vec3{}) {
		t.Errorf("Expected zero velocity, got %+v", s.Vel)
	}
}

func TestEntryAnimation(t *testing.T) {
	s := NewShip(nil)
	done := false
	s.BeginEntry(1.0, func() { done = true })

	if !s.Entering() {
		t.Fatal("Expected ship to be entering")
	}
	if s.Pos.Z != EntryDistance {
		t.Fatalf("Expected entry to start behind the corridor, got Z=%v", s.Pos.Z)
	}

	ctx := UpdateContext{Delta: 0.25, Corridor: Corridor{HorizontalLimit: 10, VerticalLimit: 6}}
	for i := 0; i < 3; i++ {
		s.Update(ctx)
	}
	if !s.Entering() || done {
		t.Fatal("Expected entry still in progress at 0.75s")
	}

	s.Update(ctx) // crosses 1.0s
	if s.Entering() {
		t.Error("Expected entry complete")
	}
	if !done {
		t.Error("Expected completion callback invoked")
	}
	if s.Pos != (physics.Vec3{}) {
		t.Errorf("Expected ship at entry coordinates, got %+v", s.Pos)
	}
}
