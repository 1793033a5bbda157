package loop

import "testing"

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name   string
		from   Phase
		event  ProgressEvent
		want   Phase
		wantOK bool
	}{
		{"zone cleared", PhaseInZone, EventZoneCleared, PhaseZoneComplete, true},
		{"choices offered", PhaseZoneComplete, EventChoicesOffered, PhaseUpgradeSelection, true},
		{"upgrade chosen", PhaseUpgradeSelection, EventUpgradeChosen, PhaseInZone, true},
		{"empty offer skips selection", PhaseZoneComplete, EventUpgradeChosen, PhaseInZone, true},
		{"run complete from zone complete", PhaseZoneComplete, EventRunComplete, PhaseVictory, true},
		{"run complete from selection", PhaseUpgradeSelection, EventRunComplete, PhaseVictory, true},
		{"destroyed in zone", PhaseInZone, EventShipDestroyed, PhaseGameOver, true},
		{"destroyed during selection", PhaseUpgradeSelection, EventShipDestroyed, PhaseGameOver, true},
		{"restart from game over", PhaseGameOver, EventRestart, PhaseInZone, true},
		{"restart from victory", PhaseVictory, EventRestart, PhaseInZone, true},

		{"restart mid-run rejected", PhaseInZone, EventRestart, PhaseInZone, false},
		{"clear while selecting rejected", PhaseUpgradeSelection, EventZoneCleared, PhaseUpgradeSelection, false},
		{"choices without clear rejected", PhaseInZone, EventChoicesOffered, PhaseInZone, false},
		{"destroy after game over rejected", PhaseGameOver, EventShipDestroyed, PhaseGameOver, false},
		{"complete mid-zone rejected", PhaseInZone, EventRunComplete, PhaseInZone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := transition(tt.from, tt.event)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("transition(%v, %v) = (%v, %v), want (%v, %v)",
					tt.from, tt.event, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestApplyIgnoresIllegalEvents(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)

	if z.Apply(EventUpgradeChosen) {
		t.Error("upgrade chosen accepted while in zone")
	}
	if z.Phase() != PhaseInZone {
		t.Errorf("phase changed to %v on illegal event", z.Phase())
	}

	if !z.Apply(EventZoneCleared) {
		t.Error("zone cleared rejected while in zone")
	}
	if z.Phase() != PhaseZoneComplete {
		t.Errorf("phase = %v, want zone_complete", z.Phase())
	}
}

func TestScoreMonotonic(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)

	z.AddScore(100)
	z.AddScore(-50)
	z.AddScore(0)

	if z.Score != 100 {
		t.Errorf("Score = %d, want 100", z.Score)
	}
}

func TestWaveDerivedFromScoreProgress(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)

	if z.CurrentWave != 1 {
		t.Fatalf("start wave = %d, want 1", z.CurrentWave)
	}

	z.AddScore(100)
	if z.CurrentWave != 2 {
		t.Errorf("wave at 100/300 = %d, want 2", z.CurrentWave)
	}

	z.AddScore(100)
	if z.CurrentWave != 3 {
		t.Errorf("wave at 200/300 = %d, want 3", z.CurrentWave)
	}

	// Overshooting the window never exceeds TotalWaves.
	z.AddScore(500)
	if z.CurrentWave != 3 {
		t.Errorf("wave past window = %d, want 3", z.CurrentWave)
	}
}

func TestTargetScoreScalesWithZone(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)

	if got := z.TargetScore(); got != 300 {
		t.Errorf("zone 1 target = %d, want 300", got)
	}

	z.AddScore(340)
	z.AdvanceZone()

	// Zone 2 window starts at the carried score and spans 2*step.
	if got := z.TargetScore(); got != 340+600 {
		t.Errorf("zone 2 target = %d, want %d", got, 340+600)
	}
	if z.CurrentWave != 1 {
		t.Errorf("wave after advance = %d, want 1", z.CurrentWave)
	}
}

func TestZoneClearedAtThreshold(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)

	z.AddScore(299)
	if z.ZoneCleared() {
		t.Error("cleared below threshold")
	}
	z.AddScore(1)
	if !z.ZoneCleared() {
		t.Error("not cleared at threshold")
	}
}

func TestOnFinalZone(t *testing.T) {
	z := NewZoneMachine(nil, 2, 3, 300)

	if z.OnFinalZone() {
		t.Error("zone 1 reported as final with finalZone=2")
	}
	z.AdvanceZone()
	if !z.OnFinalZone() {
		t.Error("zone 2 not reported as final")
	}
}

func TestZoneMachineReset(t *testing.T) {
	z := NewZoneMachine(nil, 5, 3, 300)
	z.AddScore(1000)
	z.AdvanceZone()
	z.Apply(EventShipDestroyed)

	z.Apply(EventRestart)
	z.Reset()

	if z.Phase() != PhaseInZone || z.CurrentZone != 1 || z.Score != 0 || z.CurrentWave != 1 {
		t.Errorf("after reset: phase=%v zone=%d score=%d wave=%d",
			z.Phase(), z.CurrentZone, z.Score, z.CurrentWave)
	}
	if got := z.TargetScore(); got != 300 {
		t.Errorf("target after reset = %d, want 300", got)
	}
}
