package run

import "math/rand"

// Default choice counts and the point-defense score gate.
const (
	DefaultChoiceCount = 3
	ExtraChoiceCount   = 4

	// PointDefenseMinScore is the minimum run score before the point
	// defense array will spend its one charge per zone.
	PointDefenseMinScore = 150
)

// RunState accumulates the upgrades collected during one playthrough and
// gates the per-zone one-shot abilities. Created per run; Reset on new game.
type RunState struct {
	pool      []*UpgradeDefinition
	collected []*UpgradeDefinition // ordered, duplicates allowed up to MaxStacks
	stacks    map[string]int

	pointDefenseUsedThisZone bool
	rerollUsedThisZone       bool

	rng *rand.Rand
}

// NewRunState creates a run over the given static pool.
func NewRunState(pool []*UpgradeDefinition, rng *rand.Rand) *RunState {
	return &RunState{
		pool:   pool,
		stacks: make(map[string]int),
		rng:    rng,
	}
}

// Collect records a taken upgrade. Stack caps are enforced by choice
// generation, not here.
func (r *RunState) Collect(def *UpgradeDefinition) {
	r.collected = append(r.collected, def)
	r.stacks[def.ID]++
}

// Collected returns the ordered list of taken upgrades.
func (r *RunState) Collected() []*UpgradeDefinition {
	return r.collected
}

// StackCount returns how many copies of the upgrade the player holds.
func (r *RunState) StackCount(id string) int {
	return r.stacks[id]
}

// Owns reports whether at least one copy of the upgrade is held.
func (r *RunState) Owns(id string) bool {
	return r.stacks[id] > 0
}

// ChoiceCount is how many options an offer contains: 3, or 4 with the
// targeting feed upgrade.
func (r *RunState) ChoiceCount() int {
	if r.Owns(ExtraChoiceID) {
		return ExtraChoiceCount
	}
	return DefaultChoiceCount
}

// GenerateChoices builds a weighted-random offer for the given zone.
// count <= 0 means the run's current ChoiceCount. The result never contains
// an upgrade below its minZone, at its stack cap, or the same id twice; it
// may be shorter than count, including empty when everything is maxed.
func (r *RunState) GenerateChoices(currentZone, count int) []*UpgradeDefinition {
	if count <= 0 {
		count = r.ChoiceCount()
	}

	var eligible []*UpgradeDefinition
	for _, def := range r.pool {
		if def.MinZone > currentZone {
			continue
		}
		if r.stacks[def.ID] >= def.MaxStacks {
			continue
		}
		eligible = append(eligible, def)
	}
	if len(eligible) == 0 {
		return nil
	}

	// Weighted random via duplication: inflate a flat slice by rarity
	// weight, shuffle it, then dedupe keeping first occurrence.
	var weighted []*UpgradeDefinition
	for _, def := range eligible {
		for i := 0; i < def.Rarity.Weight(); i++ {
			weighted = append(weighted, def)
		}
	}

	// Fisher-Yates.
	for i := len(weighted) - 1; i > 0; i-- {
		j := r.rng.Intn(i + 1)
		weighted[i], weighted[j] = weighted[j], weighted[i]
	}

	seen := make(map[string]bool, count)
	choices := make([]*UpgradeDefinition, 0, count)
	for _, def := range weighted {
		if seen[def.ID] {
			continue
		}
		seen[def.ID] = true
		choices = append(choices, def)
		if len(choices) == count {
			break
		}
	}
	return choices
}

// TryAbsorbHit spends the point defense array's single per-zone charge.
// Requires owning the upgrade, an unused charge this zone, and a run score
// of at least PointDefenseMinScore. Returns whether the hit was absorbed.
func (r *RunState) TryAbsorbHit(currentScore int) bool {
	if !r.Owns(PointDefenseID) || r.pointDefenseUsedThisZone {
		return false
	}
	if currentScore < PointDefenseMinScore {
		return false
	}
	r.pointDefenseUsedThisZone = true
	return true
}

// CanReroll reports whether the offer may be rerolled this zone.
func (r *RunState) CanReroll() bool {
	return r.Owns(RerollID) && !r.rerollUsedThisZone
}

// UseReroll consumes this zone's reroll. Returns false when unavailable.
func (r *RunState) UseReroll() bool {
	if !r.CanReroll() {
		return false
	}
	r.rerollUsedThisZone = true
	return true
}

// OnZoneStart resets the per-zone one-shot flags.
func (r *RunState) OnZoneStart() {
	r.pointDefenseUsedThisZone = false
	r.rerollUsedThisZone = false
}

// Reset clears all collected upgrades and per-zone flags for a new run.
func (r *RunState) Reset() {
	r.collected = nil
	r.stacks = make(map[string]int)
	r.pointDefenseUsedThisZone = false
	r.rerollUsedThisZone = false
}
