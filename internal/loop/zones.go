package loop

import "github.com/charmbracelet/log"

// Phase is the zone progression state. All phase changes go through a
// single transition function so the progression is testable as a table.
type Phase int

const (
	PhaseInZone Phase = iota
	PhaseZoneComplete
	PhaseUpgradeSelection
	PhaseVictory
	PhaseGameOver
)

// String implements fmt.Stringer for logging.
func (p Phase) String() string {
	switch p {
	case PhaseInZone:
		return "in_zone"
	case PhaseZoneComplete:
		return "zone_complete"
	case PhaseUpgradeSelection:
		return "upgrade_selection"
	case PhaseVictory:
		return "victory"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseGameOver
}

// ProgressEvent drives phase transitions.
type ProgressEvent int

const (
	EventZoneCleared ProgressEvent = iota
	EventChoicesOffered
	EventUpgradeChosen
	EventRunComplete
	EventShipDestroyed
	EventRestart
)

// String implements fmt.Stringer for logging.
func (e ProgressEvent) String() string {
	switch e {
	case EventZoneCleared:
		return "zone_cleared"
	case EventChoicesOffered:
		return "choices_offered"
	case EventUpgradeChosen:
		return "upgrade_chosen"
	case EventRunComplete:
		return "run_complete"
	case EventShipDestroyed:
		return "ship_destroyed"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// transition is the single place phase changes are decided.
// Returns the next phase and whether the event is legal in the current one.
func transition(p Phase, ev ProgressEvent) (Phase, bool) {
	switch {
	case ev == EventShipDestroyed && !p.Terminal():
		return PhaseGameOver, true
	case ev == EventRestart:
		// Restart is valid from the terminal phases only; mid-run resets
		// go through ship destruction or victory first.
		if p.Terminal() {
			return PhaseInZone, true
		}
	case p == PhaseInZone && ev == EventZoneCleared:
		return PhaseZoneComplete, true
	case p == PhaseZoneComplete && ev == EventChoicesOffered:
		return PhaseUpgradeSelection, true
	case p == PhaseZoneComplete && ev == EventUpgradeChosen:
		// Empty offer: the caller skips selection and advances directly.
		return PhaseInZone, true
	case p == PhaseUpgradeSelection && ev == EventUpgradeChosen:
		return PhaseInZone, true
	case (p == PhaseZoneComplete || p == PhaseUpgradeSelection) && ev == EventRunComplete:
		return PhaseVictory, true
	}
	return p, false
}

// ZoneMachine tracks zone, wave and score for one run.
// Score is monotonically non-decreasing except on Reset.
type ZoneMachine struct {
	log *log.Logger

	phase       Phase
	CurrentZone int
	CurrentWave int
	TotalWaves  int
	Score       int

	finalZone      int
	scoreStep      int
	zoneStartScore int
}

// NewZoneMachine starts a run at zone 1, wave 1.
func NewZoneMachine(logger *log.Logger, finalZone, wavesPerZone, scoreStep int) *ZoneMachine {
	if logger == nil {
		logger = log.Default()
	}
	z := &ZoneMachine{
		log:        logger,
		finalZone:  finalZone,
		scoreStep:  scoreStep,
		TotalWaves: wavesPerZone,
	}
	z.Reset()
	return z
}

// Phase returns the current progression phase.
func (z *ZoneMachine) Phase() Phase {
	return z.phase
}

// Apply runs ev through the transition table. Illegal events are logged
// and ignored; the phase is unchanged.
func (z *ZoneMachine) Apply(ev ProgressEvent) bool {
	next, ok := transition(z.phase, ev)
	if !ok {
		z.log.Warn("ignoring progression event", "phase", z.phase, "event", ev)
		return false
	}
	if next != z.phase {
		z.log.Debug("phase transition", "from", z.phase, "to", next, "event", ev)
	}
	z.phase = next
	return true
}

// AddScore credits points and re-derives the wave counter. Negative or
// zero deltas are ignored, keeping score monotonic.
func (z *ZoneMachine) AddScore(points int) {
	if points <= 0 {
		return
	}
	z.Score += points
	z.updateWave()
}

// TargetScore is the score at which the current zone is cleared.
func (z *ZoneMachine) TargetScore() int {
	return z.zoneStartScore + z.CurrentZone*z.scoreStep
}

// ZoneCleared reports whether the current zone's threshold is reached.
func (z *ZoneMachine) ZoneCleared() bool {
	return z.Score >= z.TargetScore()
}

// OnFinalZone reports whether clearing the current zone would end the run.
func (z *ZoneMachine) OnFinalZone() bool {
	return z.CurrentZone >= z.finalZone
}

// AdvanceZone moves to the next zone, re-basing the per-zone score window
// and resetting the wave counter.
func (z *ZoneMachine) AdvanceZone() {
	z.CurrentZone++
	z.zoneStartScore = z.Score
	z.CurrentWave = 1
}

// updateWave derives the wave from score progress through the zone:
// the zone's score window splits into TotalWaves equal segments.
func (z *ZoneMachine) updateWave() {
	window := z.TargetScore() - z.zoneStartScore
	if window <= 0 {
		return
	}
	progress := z.Score - z.zoneStartScore
	wave := 1 + progress*z.TotalWaves/window
	if wave > z.TotalWaves {
		wave = z.TotalWaves
	}
	if wave > z.CurrentWave {
		z.CurrentWave = wave
	}
}

// Reset restores zone 1, wave 1, zero score, in-zone phase.
func (z *ZoneMachine) Reset() {
	z.phase = PhaseInZone
	z.CurrentZone = 1
	z.CurrentWave = 1
	z.Score = 0
	z.zoneStartScore = 0
}
