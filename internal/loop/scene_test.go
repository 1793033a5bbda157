package loop

import (
	"math/rand"
	"testing"

	"github.com/tmarek/starlane/internal/config"
	"github.com/tmarek/starlane/internal/object"
	"github.com/tmarek/starlane/internal/physics"
	"github.com/tmarek/starlane/internal/run"
)

// captureUI records the scene's overlay requests and callbacks.
type captureUI struct {
	hud          HUDState
	choices      []*run.UpgradeDefinition
	canReroll    bool
	onSelect     func(int)
	onReroll     func()
	offerCount   int
	gameOverSeen bool
	victorySeen  bool
	endScore     int
}

func (c *captureUI) UpdateHUD(hud HUDState) { c.hud = hud }

func (c *captureUI) ShowUpgradeChoices(choices []*run.UpgradeDefinition, canReroll bool, onSelect func(int), onReroll func()) {
	c.choices = choices
	c.canReroll = canReroll
	c.onSelect = onSelect
	c.onReroll = onReroll
	c.offerCount++
}

func (c *captureUI) ShowGameOver(score int, onRestart, onMenu func()) {
	c.gameOverSeen = true
	c.endScore = score
}

func (c *captureUI) ShowVictory(score int, onRestart, onMenu func()) {
	c.victorySeen = true
	c.endScore = score
}

func newTestScene(t *testing.T, ui UI, mutate func(cfg *SceneConfig)) *Scene {
	t.Helper()
	cfg := SceneConfig{
		UI:   ui,
		Rand: rand.New(rand.NewSource(1)),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewScene(cfg)
}

// rammer returns a hazard parked on top of the ship.
func rammer(sc *Scene, damage float64) *object.Hazard {
	return object.NewHazard(sc.ship.Pos, physics.Vec3{Z: 1}, 0, 2.0, damage, 50, 1.0, 1000)
}

func TestZoneClearOffersUpgrades(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	sc.zones.AddScore(sc.zones.TargetScore())
	if err := sc.Update(0.016); err != nil {
		t.Fatal(err)
	}

	if sc.Phase() != PhaseUpgradeSelection {
		t.Fatalf("phase = %v, want upgrade_selection", sc.Phase())
	}
	if len(ui.choices) != run.DefaultChoiceCount {
		t.Errorf("offered %d choices, want %d", len(ui.choices), run.DefaultChoiceCount)
	}
	if !sc.spawner.Paused() {
		t.Error("spawner not paused during selection")
	}
	if len(sc.Hazards()) != 0 || len(sc.Projectiles()) != 0 {
		t.Error("corridor not cleared on zone complete")
	}
}

func TestSelectUpgradeAdvancesZone(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	sc.zones.AddScore(sc.zones.TargetScore())
	sc.Update(0.016)

	picked := ui.choices[0]
	ui.onSelect(0)

	if sc.Phase() != PhaseInZone {
		t.Fatalf("phase = %v, want in_zone", sc.Phase())
	}
	if sc.zones.CurrentZone != 2 {
		t.Errorf("zone = %d, want 2", sc.zones.CurrentZone)
	}
	if sc.runState.StackCount(picked.ID) != 1 {
		t.Errorf("stack count for %s = %d, want 1", picked.ID, sc.runState.StackCount(picked.ID))
	}
	if sc.spawner.Paused() {
		t.Error("spawner still paused after zone start")
	}
	if sc.PendingChoices() != nil {
		t.Error("pending choices not cleared after selection")
	}
}

func TestSelectUpgradeGuards(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	// Not in selection phase: ignored.
	sc.SelectUpgrade(0)
	if sc.zones.CurrentZone != 1 {
		t.Fatal("selection outside upgrade phase advanced the zone")
	}

	sc.zones.AddScore(sc.zones.TargetScore())
	sc.Update(0.016)

	sc.SelectUpgrade(-1)
	sc.SelectUpgrade(len(ui.choices))
	if sc.Phase() != PhaseUpgradeSelection {
		t.Errorf("phase = %v after out-of-range selections, want upgrade_selection", sc.Phase())
	}
}

func TestRerollReplacesChoicesOnce(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	for _, def := range run.DefaultPool() {
		if def.ID == run.RerollID {
			sc.runState.Collect(def)
		}
	}

	sc.zones.AddScore(sc.zones.TargetScore())
	sc.Update(0.016)

	if !ui.canReroll {
		t.Fatal("reroll not offered despite owning the module")
	}

	ui.onReroll()
	if ui.offerCount != 2 {
		t.Fatalf("offer count = %d after reroll, want 2", ui.offerCount)
	}
	if ui.canReroll {
		t.Error("second offer still allows reroll")
	}

	sc.RerollChoices()
	if ui.offerCount != 2 {
		t.Error("reroll worked twice in one zone")
	}
}

func TestEmptyOfferAdvancesDirectly(t *testing.T) {
	ui := &captureUI{}
	only := &run.UpgradeDefinition{
		ID: "solo", Name: "Solo", Rarity: run.RarityCommon, MinZone: 1, MaxStacks: 1,
	}
	sc := newTestScene(t, ui, func(cfg *SceneConfig) {
		cfg.Pool = []*run.UpgradeDefinition{only}
	})
	sc.runState.Collect(only)

	sc.zones.AddScore(sc.zones.TargetScore())
	sc.Update(0.016)

	if ui.offerCount != 0 {
		t.Error("empty pool still produced an offer")
	}
	if sc.Phase() != PhaseInZone || sc.zones.CurrentZone != 2 {
		t.Errorf("phase=%v zone=%d, want in_zone zone 2", sc.Phase(), sc.zones.CurrentZone)
	}
}

func TestVictoryOnFinalZone(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, func(cfg *SceneConfig) {
		tuning := config.DefaultTuning()
		tuning.Zones.FinalZone = 1
		cfg.Tuning = tuning
	})

	sc.zones.AddScore(sc.zones.TargetScore())
	sc.Update(0.016)

	if sc.Phase() != PhaseVictory {
		t.Fatalf("phase = %v, want victory", sc.Phase())
	}
	if !ui.victorySeen {
		t.Error("victory overlay not shown")
	}
	if ui.offerCount != 0 {
		t.Error("upgrades offered after the final zone")
	}
}

func TestShipDestroyedEndsRun(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)
	sc.ship = object.NewShip(sc.weapons) // skip the entry grace period

	sc.zones.AddScore(40)
	sc.hazards = append(sc.hazards, rammer(sc, 500))
	sc.Update(0.016)

	if sc.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", sc.Phase())
	}
	if !ui.gameOverSeen {
		t.Error("game over overlay not shown")
	}
	if ui.endScore != sc.zones.Score {
		t.Errorf("overlay score = %d, want %d", ui.endScore, sc.zones.Score)
	}
}

func TestEntryGracePeriodBlocksHits(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	if !sc.ship.Entering() {
		t.Fatal("fresh scene ship not in entry animation")
	}

	sc.hazards = append(sc.hazards, rammer(sc, 500))
	sc.resolveCollisions()

	if sc.Phase() != PhaseInZone {
		t.Errorf("phase = %v, hit landed during entry", sc.Phase())
	}
	if sc.ship.Health != object.ShipMaxHealth {
		t.Errorf("health = %v during entry, want %v", sc.ship.Health, object.ShipMaxHealth)
	}
}

func TestPointDefenseAbsorbsOneHitPerZone(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)
	sc.ship = object.NewShip(sc.weapons)

	for _, def := range run.DefaultPool() {
		if def.ID == run.PointDefenseID {
			sc.runState.Collect(def)
		}
	}
	sc.zones.AddScore(run.PointDefenseMinScore)

	sc.hazards = append(sc.hazards, rammer(sc, 30))
	sc.resolveCollisions()

	if sc.ship.Health != object.ShipMaxHealth || sc.ship.Shield != object.ShipMaxShield {
		t.Fatalf("first hit not absorbed: health=%v shield=%v", sc.ship.Health, sc.ship.Shield)
	}

	// Charge spent: the next hit lands.
	sc.hazards = append(sc.hazards, rammer(sc, 30))
	sc.resolveCollisions()

	if sc.ship.Shield != 0 {
		t.Errorf("second hit absorbed too, shield = %v", sc.ship.Shield)
	}
}

func TestRestartResetsRun(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)
	sc.ship = object.NewShip(sc.weapons)

	for _, def := range run.DefaultPool() {
		if def.ID == run.PointDefenseID {
			sc.runState.Collect(def)
		}
	}
	sc.zones.AddScore(120)
	sc.hazards = append(sc.hazards, rammer(sc, 500))
	sc.Update(0.016)

	if sc.Phase() != PhaseGameOver {
		t.Fatalf("setup failed, phase = %v", sc.Phase())
	}

	sc.Restart()

	if sc.Phase() != PhaseInZone {
		t.Errorf("phase = %v after restart, want in_zone", sc.Phase())
	}
	if sc.zones.CurrentZone != 1 || sc.zones.Score != 0 {
		t.Errorf("zone=%d score=%d after restart", sc.zones.CurrentZone, sc.zones.Score)
	}
	if len(sc.runState.Collected()) != 0 {
		t.Error("collected upgrades survived restart")
	}
	if len(sc.Hazards()) != 0 {
		t.Error("hazards survived restart")
	}
	if !sc.ship.Entering() {
		t.Error("restarted ship skipped the entry animation")
	}
	if sc.ship.Health != object.ShipMaxHealth {
		t.Errorf("health = %v after restart, want %v", sc.ship.Health, object.ShipMaxHealth)
	}
}

func TestHUDPushedEveryTick(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)

	sc.zones.AddScore(40)
	sc.Update(0.016)

	if ui.hud.Score != 40 {
		t.Errorf("hud score = %d, want 40", ui.hud.Score)
	}
	if ui.hud.Zone != 1 {
		t.Errorf("hud zone = %d, want 1", ui.hud.Zone)
	}
	if ui.hud.MaxHealth != object.ShipMaxHealth {
		t.Errorf("hud max health = %v, want %v", ui.hud.MaxHealth, object.ShipMaxHealth)
	}
	if ui.hud.TargetScore != sc.zones.TargetScore() {
		t.Errorf("hud target = %d, want %d", ui.hud.TargetScore, sc.zones.TargetScore())
	}
}

func TestProjectileKillPaysScore(t *testing.T) {
	ui := &captureUI{}
	sc := newTestScene(t, ui, nil)
	sc.ship = object.NewShip(sc.weapons)

	// A small hazard ahead of the ship with one hit point left.
	pos := physics.Vec3{Z: sc.ship.Pos.Z - 10}
	h := object.NewHazard(pos, physics.Vec3{Z: 1}, 0, 1.5, 10, 5, 1.0, 1000)
	sc.hazards = append(sc.hazards, h)

	p := object.NewProjectile(pos, physics.Vec3{Z: -1}, 120, 10, 90)
	sc.projectiles = append(sc.projectiles, p)

	sc.resolveCollisions()

	if !h.IsDestroyed() {
		t.Fatal("hazard survived a lethal projectile hit")
	}
	if !p.IsDestroyed() {
		t.Error("projectile survived its hit")
	}
	if sc.zones.Score != ScoreSmallHazard {
		t.Errorf("score = %d, want %d", sc.zones.Score, ScoreSmallHazard)
	}
}
