package loop

import "github.com/tmarek/starlane/internal/run"

// Audio is the sound collaborator. All calls are fire-and-forget; the
// simulation never consumes a return value or blocks on playback.
type Audio interface {
	// PlayCollision plays an impact sound. Severity 0..2 maps light to heavy.
	PlayCollision(severity int)
	// PlayFire plays the weapon discharge blip.
	PlayFire()
	// PlayImpact plays a projectile-hit confirmation.
	PlayImpact()
	// PlayUpgrade plays the upgrade-taken chime.
	PlayUpgrade()
	// PlayMenuMusic starts the looping title music.
	PlayMenuMusic()
	// StopMusic stops the looping title music.
	StopMusic()
	// SetMuted toggles all output.
	SetMuted(muted bool)
	// Muted reports the current mute state.
	Muted() bool
}

// NopAudio discards every request. Used in tests and when the audio device
// fails to initialize.
type NopAudio struct{ muted bool }

func (n *NopAudio) PlayCollision(int)   {}
func (n *NopAudio) PlayFire()           {}
func (n *NopAudio) PlayImpact()         {}
func (n *NopAudio) PlayUpgrade()        {}
func (n *NopAudio) PlayMenuMusic()      {}
func (n *NopAudio) StopMusic()          {}
func (n *NopAudio) SetMuted(muted bool) { n.muted = muted }
func (n *NopAudio) Muted() bool         { return n.muted }

// HUDState is the per-tick snapshot pushed to the UI collaborator.
type HUDState struct {
	Health, MaxHealth float64
	Shield, MaxShield float64
	Score             int
	Zone, Wave        int
	TotalWaves        int
	TargetScore       int
	CooldownProgress  float64
	SecondaryAmmo     int
}

// UI is the overlay collaborator. The simulation calls these at state
// transitions; the UI calls back (select/reroll/restart) asynchronously
// from the simulation's point of view. In the terminal front-end the
// callbacks fire from the input phase of a later tick.
type UI interface {
	UpdateHUD(hud HUDState)
	ShowUpgradeChoices(choices []*run.UpgradeDefinition, canReroll bool, onSelect func(idx int), onReroll func())
	ShowGameOver(score int, onRestart, onMenu func())
	ShowVictory(score int, onRestart, onMenu func())
}

// NopUI ignores every call. Used in tests.
type NopUI struct{}

func (NopUI) UpdateHUD(HUDState) {}
func (NopUI) ShowUpgradeChoices([]*run.UpgradeDefinition, bool, func(idx int), func()) {
}
func (NopUI) ShowGameOver(int, func(), func()) {}
func (NopUI) ShowVictory(int, func(), func())  {}
