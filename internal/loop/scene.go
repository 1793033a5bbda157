package loop

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tmarek/starlane/internal/config"
	"github.com/tmarek/starlane/internal/object"
	"github.com/tmarek/starlane/internal/run"
)

// Scene owns the combat simulation for one session: the ship, the hazard
// and projectile collections, the spawner, the zone machine and the run
// state. It implements Subsystem; all mutation happens inside Update or
// the callbacks invoked from the input phase, so no locking is needed.
type Scene struct {
	log    *log.Logger
	tuning *config.Tuning

	ship        *object.Ship
	weapons     *object.WeaponSystem
	hazards     []*object.Hazard
	projectiles []*object.Projectile
	spawner     *object.HazardSpawner

	zones    *ZoneMachine
	runState *run.RunState

	audio    Audio
	ui       UI
	controls object.Controls

	rng            *rand.Rand
	pendingChoices []*run.UpgradeDefinition
}

// SceneConfig wires a scene's collaborators. Nil Audio/UI default to no-ops;
// nil Tuning and Pool default to the stock values.
type SceneConfig struct {
	Log    *log.Logger
	Tuning *config.Tuning
	Pool   []*run.UpgradeDefinition
	Audio  Audio
	UI     UI
	Rand   *rand.Rand
}

// NewScene builds a scene and starts the first run with the ship's entry
// animation playing.
func NewScene(cfg SceneConfig) *Scene {
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	if cfg.Tuning == nil {
		cfg.Tuning = config.DefaultTuning()
	}
	if cfg.Pool == nil {
		cfg.Pool = run.DefaultPool()
	}
	if cfg.Audio == nil {
		cfg.Audio = &NopAudio{}
	}
	if cfg.UI == nil {
		cfg.UI = NopUI{}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(rand.Int63()))
	}

	sc := &Scene{
		log:    cfg.Log,
		tuning: cfg.Tuning,
		audio:  cfg.Audio,
		ui:     cfg.UI,
		rng:    cfg.Rand,
	}

	sc.spawner = object.NewHazardSpawner(spawnSettings(cfg.Tuning), cfg.Rand)
	sc.zones = NewZoneMachine(cfg.Log,
		cfg.Tuning.Zones.FinalZone, cfg.Tuning.Zones.WavesPerZone, cfg.Tuning.Zones.ScoreStep)
	sc.runState = run.NewRunState(cfg.Pool, cfg.Rand)

	sc.weapons = object.NewWeaponSystem(sc)
	sc.ship = object.NewShip(sc.weapons)
	sc.ship.BeginEntry(EntryAnimationSeconds, nil)

	return sc
}

func spawnSettings(t *config.Tuning) object.SpawnSettings {
	s := t.Spawner
	return object.SpawnSettings{
		BaseInterval:    s.BaseInterval,
		FloorInterval:   s.FloorInterval,
		DecayPerZone:    s.DecayPerZone,
		MaxHazards:      s.MaxHazards,
		EnvelopeWidth:   s.EnvelopeWidth,
		EnvelopeHeight:  s.EnvelopeHeight,
		ForwardDistance: s.ForwardDistance,
		AimJitter:       s.AimJitter,
		MinSpeed:        s.MinSpeed,
		MaxSpeed:        s.MaxSpeed,
		MinSize:         s.MinSize,
		MaxSize:         s.MaxSize,
		DamagePerSize:   s.DamagePerSize,
		HealthPerSize:   s.HealthPerSize,
		CollisionFactor: s.CollisionFactor,
		MaxTravel:       s.MaxTravel,
	}
}

// SpawnProjectile implements object.Spawner; fired shots join the scene's
// projectile collection on the same tick.
func (sc *Scene) SpawnProjectile(p *object.Projectile) {
	sc.projectiles = append(sc.projectiles, p)
	sc.audio.PlayFire()
}

// SetControls installs the per-frame input snapshot before the tick.
func (sc *Scene) SetControls(c object.Controls) {
	sc.controls = c
}

// Accessors for rendering. The returned slices are owned by the scene and
// valid until the next Update.
func (sc *Scene) Ship() *object.Ship                 { return sc.ship }
func (sc *Scene) Hazards() []*object.Hazard          { return sc.hazards }
func (sc *Scene) Projectiles() []*object.Projectile  { return sc.projectiles }
func (sc *Scene) Phase() Phase                       { return sc.zones.Phase() }
func (sc *Scene) Zones() *ZoneMachine                { return sc.zones }
func (sc *Scene) RunState() *run.RunState            { return sc.runState }
func (sc *Scene) PendingChoices() []*run.UpgradeDefinition {
	return sc.pendingChoices
}

// Corridor returns the tuned flight box.
func (sc *Scene) Corridor() object.Corridor {
	return object.Corridor{
		HorizontalLimit: sc.tuning.Corridor.HorizontalLimit,
		VerticalLimit:   sc.tuning.Corridor.VerticalLimit,
	}
}

// Update advances one tick. Order within the tick is load-bearing: the
// ship moves first, then projectiles and hazards, then collisions resolve
// against this tick's positions, then the zone-clear check runs.
func (sc *Scene) Update(dt float64) error {
	switch sc.zones.Phase() {
	case PhaseInZone:
		sc.updateCombat(dt)
	case PhaseZoneComplete, PhaseUpgradeSelection:
		// Combat is suspended; the corridor idles while the player picks.
	case PhaseGameOver, PhaseVictory:
		// Leftover hazards keep drifting behind the overlay.
		sc.updateHazards(dt)
	}

	sc.pushHUD()
	return nil
}

func (sc *Scene) updateCombat(dt float64) {
	ctx := object.UpdateContext{
		Delta:    dt,
		Controls: sc.controls,
		Spawner:  sc,
		Corridor: sc.Corridor(),
	}

	sc.ship.Update(ctx)
	sc.weapons.Update(dt)

	kept := sc.projectiles[:0]
	for _, p := range sc.projectiles {
		if !p.Update(dt) {
			kept = append(kept, p)
		}
	}
	sc.projectiles = kept

	if h := sc.spawner.Update(dt, sc.zones.CurrentZone, sc.ship.Pos, len(sc.hazards)); h != nil {
		sc.hazards = append(sc.hazards, h)
	}
	sc.updateHazards(dt)

	sc.resolveCollisions()

	if sc.zones.Phase() == PhaseInZone && sc.zones.ZoneCleared() {
		sc.onZoneCleared()
	}
}

func (sc *Scene) updateHazards(dt float64) {
	kept := sc.hazards[:0]
	for _, h := range sc.hazards {
		if !h.Update(dt) {
			kept = append(kept, h)
		}
	}
	sc.hazards = kept
}

// onZoneCleared pauses spawning, clears the corridor and offers upgrades.
// An empty offer (everything maxed) advances directly.
func (sc *Scene) onZoneCleared() {
	sc.zones.Apply(EventZoneCleared)
	sc.spawner.SetPaused(true)
	sc.hazards = sc.hazards[:0]
	sc.projectiles = sc.projectiles[:0]

	sc.log.Info("zone cleared",
		"zone", sc.zones.CurrentZone, "score", sc.zones.Score)

	if sc.zones.OnFinalZone() {
		sc.zones.Apply(EventRunComplete)
		sc.audio.PlayUpgrade()
		sc.ui.ShowVictory(sc.zones.Score, sc.Restart, nil)
		return
	}

	sc.offerUpgrades()
}

func (sc *Scene) offerUpgrades() {
	sc.pendingChoices = sc.runState.GenerateChoices(sc.zones.CurrentZone, 0)
	if len(sc.pendingChoices) == 0 {
		// Nothing left to offer; move straight to the next zone.
		sc.zones.Apply(EventUpgradeChosen)
		sc.beginNextZone()
		return
	}

	sc.zones.Apply(EventChoicesOffered)
	sc.ui.ShowUpgradeChoices(sc.pendingChoices, sc.runState.CanReroll(),
		sc.SelectUpgrade, sc.RerollChoices)
}

// SelectUpgrade is the UI callback for picking one of the pending choices.
// Out-of-range or out-of-phase selections are ignored.
func (sc *Scene) SelectUpgrade(idx int) {
	if sc.zones.Phase() != PhaseUpgradeSelection {
		return
	}
	if idx < 0 || idx >= len(sc.pendingChoices) {
		return
	}

	def := sc.pendingChoices[idx]
	def.Apply(sc.ship, sc.weapons)
	sc.runState.Collect(def)
	sc.audio.PlayUpgrade()
	sc.log.Info("upgrade taken", "id", def.ID, "stacks", sc.runState.StackCount(def.ID))

	sc.pendingChoices = nil
	sc.zones.Apply(EventUpgradeChosen)
	sc.beginNextZone()
}

// RerollChoices is the UI callback for the once-per-zone reroll.
func (sc *Scene) RerollChoices() {
	if sc.zones.Phase() != PhaseUpgradeSelection {
		return
	}
	if !sc.runState.UseReroll() {
		return
	}
	sc.pendingChoices = sc.runState.GenerateChoices(sc.zones.CurrentZone, 0)
	sc.ui.ShowUpgradeChoices(sc.pendingChoices, false, sc.SelectUpgrade, nil)
}

func (sc *Scene) beginNextZone() {
	sc.zones.AdvanceZone()
	sc.runState.OnZoneStart()
	sc.spawner.Reset()
	sc.spawner.SetPaused(false)
	sc.log.Info("zone start", "zone", sc.zones.CurrentZone, "spawn_interval", sc.spawner.Interval())
}

// onShipDestroyed transitions to game over and raises the overlay.
func (sc *Scene) onShipDestroyed() {
	sc.zones.Apply(EventShipDestroyed)
	sc.spawner.SetPaused(true)
	sc.log.Info("ship destroyed", "zone", sc.zones.CurrentZone, "score", sc.zones.Score)
	sc.ui.ShowGameOver(sc.zones.Score, sc.Restart, nil)
}

// Restart runs the full reset sequence: clear collections, reset run
// state, zone machine and ship, re-enter zone 1 with the entry animation.
func (sc *Scene) Restart() {
	sc.hazards = sc.hazards[:0]
	sc.projectiles = sc.projectiles[:0]
	sc.pendingChoices = nil

	sc.runState.Reset()
	sc.zones.Apply(EventRestart)
	sc.zones.Reset()
	sc.spawner.Reset()
	sc.spawner.SetPaused(false)

	sc.weapons = object.NewWeaponSystem(sc)
	sc.ship = object.NewShip(sc.weapons)
	sc.ship.BeginEntry(EntryAnimationSeconds, nil)

	sc.log.Info("run restarted")
}

// Dispose silences any sound the scene still drives.
func (sc *Scene) Dispose() {
	sc.audio.StopMusic()
}

// Score returns the run score.
func (sc *Scene) Score() int {
	return sc.zones.Score
}

func (sc *Scene) pushHUD() {
	hud := HUDState{
		Health:      sc.ship.Health,
		MaxHealth:   sc.ship.MaxHealth,
		Shield:      sc.ship.Shield,
		MaxShield:   sc.ship.MaxShield,
		Score:       sc.zones.Score,
		Zone:        sc.zones.CurrentZone,
		Wave:        sc.zones.CurrentWave,
		TotalWaves:  sc.zones.TotalWaves,
		TargetScore: sc.zones.TargetScore(),
	}
	if sc.weapons.Primary != nil {
		hud.CooldownProgress = sc.weapons.Primary.CooldownProgress()
	}
	if sc.weapons.Secondary != nil {
		hud.SecondaryAmmo = sc.weapons.Secondary.Ammo
	}
	sc.ui.UpdateHUD(hud)
}
