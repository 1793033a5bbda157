package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the gameplay parameters that are worth adjusting without a
// recompile. Zero-config runs use DefaultTuning.
type Tuning struct {
	Corridor CorridorTuning `yaml:"corridor"`
	Spawner  SpawnerTuning  `yaml:"spawner"`
	Zones    ZoneTuning     `yaml:"zones"`
}

// CorridorTuning bounds the ship's flight box.
type CorridorTuning struct {
	HorizontalLimit float64 `yaml:"horizontalLimit"`
	VerticalLimit   float64 `yaml:"verticalLimit"`
}

// SpawnerTuning controls hazard spawn cadence, placement and stats.
type SpawnerTuning struct {
	BaseInterval  float64 `yaml:"baseInterval"`
	FloorInterval float64 `yaml:"floorInterval"`
	DecayPerZone  float64 `yaml:"decayPerZone"`
	MaxHazards    int     `yaml:"maxHazards"`

	EnvelopeWidth   float64 `yaml:"envelopeWidth"`
	EnvelopeHeight  float64 `yaml:"envelopeHeight"`
	ForwardDistance float64 `yaml:"forwardDistance"`
	AimJitter       float64 `yaml:"aimJitter"`

	MinSpeed float64 `yaml:"minSpeed"`
	MaxSpeed float64 `yaml:"maxSpeed"`
	MinSize  float64 `yaml:"minSize"`
	MaxSize  float64 `yaml:"maxSize"`

	DamagePerSize float64 `yaml:"damagePerSize"`
	HealthPerSize float64 `yaml:"healthPerSize"`

	// CollisionFactor scales hazard size into the collision radius.
	// The 0.8 default is a gameplay tuning choice, not physics.
	CollisionFactor float64 `yaml:"collisionFactor"`
	MaxTravel       float64 `yaml:"maxTravel"`
}

// ZoneTuning controls run length and zone-clear thresholds.
type ZoneTuning struct {
	FinalZone    int `yaml:"finalZone"`
	WavesPerZone int `yaml:"wavesPerZone"`
	ScoreStep    int `yaml:"scoreStep"` // zone z clears at zoneStart + z*scoreStep
}

// DefaultTuning returns the stock parameters.
func DefaultTuning() *Tuning {
	return &Tuning{
		Corridor: CorridorTuning{
			HorizontalLimit: 24,
			VerticalLimit:   14,
		},
		Spawner: SpawnerTuning{
			BaseInterval:    2.0,
			FloorInterval:   0.5,
			DecayPerZone:    0.25,
			MaxHazards:      15,
			EnvelopeWidth:   44,
			EnvelopeHeight:  26,
			ForwardDistance: 80,
			AimJitter:       8,
			MinSpeed:        16,
			MaxSpeed:        34,
			MinSize:         1.2,
			MaxSize:         4.0,
			DamagePerSize:   8,
			HealthPerSize:   10,
			CollisionFactor: 0.8,
			MaxTravel:       170,
		},
		Zones: ZoneTuning{
			FinalZone:    5,
			WavesPerZone: 3,
			ScoreStep:    300,
		},
	}
}

// LoadTuning reads a tuning file. Fields omitted from the file keep their
// defaults; the result is validated before use.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	tuning := DefaultTuning()
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	return tuning, nil
}

// Validate rejects parameter combinations the simulation cannot run with.
func (t *Tuning) Validate() error {
	if t.Corridor.HorizontalLimit <= 0 || t.Corridor.VerticalLimit <= 0 {
		return fmt.Errorf("corridor limits must be positive")
	}
	s := t.Spawner
	if s.FloorInterval <= 0 || s.BaseInterval < s.FloorInterval {
		return fmt.Errorf("spawner intervals: need 0 < floor <= base, got floor=%v base=%v", s.FloorInterval, s.BaseInterval)
	}
	if s.DecayPerZone < 0 {
		return fmt.Errorf("decayPerZone must not be negative")
	}
	if s.MaxHazards < 1 {
		return fmt.Errorf("maxHazards must be >= 1")
	}
	if s.MinSpeed <= 0 || s.MaxSpeed < s.MinSpeed {
		return fmt.Errorf("spawner speeds: need 0 < min <= max")
	}
	if s.MinSize <= 0 || s.MaxSize < s.MinSize {
		return fmt.Errorf("spawner sizes: need 0 < min <= max")
	}
	if s.CollisionFactor <= 0 || s.CollisionFactor > 1 {
		return fmt.Errorf("collisionFactor must be in (0,1], got %v", s.CollisionFactor)
	}
	if s.MaxTravel <= s.ForwardDistance {
		return fmt.Errorf("maxTravel must exceed forwardDistance or hazards expire before arriving")
	}
	z := t.Zones
	if z.FinalZone < 1 || z.WavesPerZone < 1 || z.ScoreStep < 1 {
		return fmt.Errorf("zone tuning must be positive: %+v", z)
	}
	return nil
}
