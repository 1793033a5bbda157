package object

import (
	"math/rand"

	"github.com/tmarek/starlane/internal/physics"
)

// SpawnSettings are the tunable parameters of the hazard spawner.
type SpawnSettings struct {
	BaseInterval  float64 // seconds between spawns in zone 1
	FloorInterval float64 // lower bound on the interval
	DecayPerZone  float64 // interval reduction per zone past the first
	MaxHazards    int     // concurrent active hazard cap

	EnvelopeWidth   float64 // horizontal spawn spread around the ship
	EnvelopeHeight  float64 // vertical spawn spread around the ship
	ForwardDistance float64 // spawn displacement ahead along the travel axis
	AimJitter       float64 // offset of the aim point from the ship position

	MinSpeed, MaxSpeed float64
	MinSize, MaxSize   float64
	DamagePerSize      float64 // hazard damage = Size * DamagePerSize
	HealthPerSize      float64 // hazard health = Size * HealthPerSize
	CollisionFactor    float64 // collision radius = Size * CollisionFactor
	MaxTravel          float64 // removal distance from spawn point
}

// HazardSpawner schedules hazard spawns on a cadence that tightens as
// zones progress, bounded below so the game stays playable.
type HazardSpawner struct {
	settings  SpawnSettings
	interval  float64
	sinceLast float64
	paused    bool
	rng       *rand.Rand
}

// NewHazardSpawner creates a spawner with the given settings.
func NewHazardSpawner(settings SpawnSettings, rng *rand.Rand) *HazardSpawner {
	return &HazardSpawner{
		settings: settings,
		interval: settings.BaseInterval,
		rng:      rng,
	}
}

// SetPaused suspends or resumes spawning. Elapsed time does not accumulate
// while paused.
func (s *HazardSpawner) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether spawning is suspended.
func (s *HazardSpawner) Paused() bool {
	return s.paused
}

// Reset restores the zone-1 cadence.
func (s *HazardSpawner) Reset() {
	s.interval = s.settings.BaseInterval
	s.sinceLast = 0
}

// Interval returns the current spawn interval in seconds.
func (s *HazardSpawner) Interval() float64 {
	return s.interval
}

// Update advances the spawn timer and returns a new hazard when one is due,
// or nil. activeCount is the number of hazards currently alive; the spawner
// never pushes it past MaxHazards.
func (s *HazardSpawner) Update(dt float64, zone int, shipPos physics.Vec3, activeCount int) *Hazard {
	if s.paused {
		return nil
	}

	s.sinceLast += dt
	if s.sinceLast <= s.interval || activeCount >= s.settings.MaxHazards {
		return nil
	}

	s.sinceLast = 0
	s.interval = s.intervalForZone(zone)
	return s.spawn(shipPos)
}

// intervalForZone computes the monotonically tightening cadence:
// max(floor, base - (zone-1)*decay).
func (s *HazardSpawner) intervalForZone(zone int) float64 {
	if zone < 1 {
		zone = 1
	}
	interval := s.settings.BaseInterval - float64(zone-1)*s.settings.DecayPerZone
	if interval < s.settings.FloorInterval {
		interval = s.settings.FloorInterval
	}
	return interval
}

// spawn places a hazard ahead of the ship inside the spawn envelope and
// aims it at a jittered point near (not exactly at) the ship, so hits are
// never guaranteed.
func (s *HazardSpawner) spawn(shipPos physics.Vec3) *Hazard {
	cfg := s.settings

	pos := physics.Vec3{
		X: shipPos.X + (s.rng.Float64()-0.5)*cfg.EnvelopeWidth,
		Y: shipPos.Y + (s.rng.Float64()-0.5)*cfg.EnvelopeHeight,
		Z: shipPos.Z - cfg.ForwardDistance,
	}

	aim := physics.Vec3{
		X: shipPos.X + (s.rng.Float64()-0.5)*cfg.AimJitter,
		Y: shipPos.Y + (s.rng.Float64()-0.5)*cfg.AimJitter,
		Z: shipPos.Z,
	}
	dir := aim.Sub(pos).Normalized()

	speed := cfg.MinSpeed + s.rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
	size := cfg.MinSize + s.rng.Float64()*(cfg.MaxSize-cfg.MinSize)

	return NewHazard(pos, dir, speed, size,
		size*cfg.DamagePerSize, size*cfg.HealthPerSize,
		cfg.CollisionFactor, cfg.MaxTravel)
}
