package loop

import "time"

// Game configuration constants.
// All fixed tunables are centralized here; anything a server operator may
// want to change without a rebuild lives in config.Tuning instead.

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	// MaxDelta clamps per-tick delta time so a stalled terminal or
	// suspended process does not teleport the simulation.
	MaxDelta = 0.1
)

// Scoring: destroying a hazard pays out by size class.
const (
	ScoreSmallHazard  = 100
	ScoreMediumHazard = 50
	ScoreLargeHazard  = 20

	hazardMediumSize = 2.0
	hazardLargeSize  = 3.0
)

// scoreForSize returns the payout for destroying a hazard of the given
// size basis. Smaller hazards are harder to hit and pay more.
func scoreForSize(size float64) int {
	switch {
	case size >= hazardLargeSize:
		return ScoreLargeHazard
	case size >= hazardMediumSize:
		return ScoreMediumHazard
	default:
		return ScoreSmallHazard
	}
}

// Ship entry
const (
	EntryAnimationSeconds = 1.5
)

// Collision sound severity buckets by hazard damage.
const (
	severityDamageHeavy = 24.0
	severityDamageLight = 12.0
)

func collisionSeverity(damage float64) int {
	switch {
	case damage >= severityDamageHeavy:
		return 2
	case damage >= severityDamageLight:
		return 1
	default:
		return 0
	}
}
