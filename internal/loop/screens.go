package loop

import (
	"fmt"
	"strings"

	"github.com/tmarek/starlane/internal/draw"
	"github.com/tmarek/starlane/internal/run"
)

func centerText(cw *draw.ChunkWriter, centerX, row int, text string) {
	cw.WriteAt(centerX-len(text)/2, row, text)
}

// drawTitleScreen renders the menu with the persisted best score.
func drawTitleScreen(cw *draw.ChunkWriter, centerX, centerY, best int) {
	centerText(cw, centerX, centerY-4, "S T A R L A N E")
	centerText(cw, centerX, centerY-2, "hold the corridor, clear five zones")

	if best > 0 {
		centerText(cw, centerX, centerY, fmt.Sprintf("Best: %d", best))
	}

	centerText(cw, centerX, centerY+2, "Press SPACE to launch")
	centerText(cw, centerX, centerY+4,
		"WASD/Arrows to steer, SPACE to fire, X for rail cannon")
	centerText(cw, centerX, centerY+5,
		"P to pause, M to mute, Q to quit")
}

// drawHUD renders the in-game status line and the primary cooldown bar.
func drawHUD(cw *draw.ChunkWriter, termWidth int, hud HUDState) {
	left := fmt.Sprintf("Hull %3.0f/%3.0f  Shield %2.0f/%2.0f",
		hud.Health, hud.MaxHealth, hud.Shield, hud.MaxShield)
	cw.WriteAt(2, 1, left)

	mid := fmt.Sprintf("Zone %d  Wave %d/%d", hud.Zone, hud.Wave, hud.TotalWaves)
	cw.WriteAt(termWidth/2-len(mid)/2, 1, mid)

	right := fmt.Sprintf("Score %d / %d", hud.Score, hud.TargetScore)
	cw.WriteAt(termWidth-len(right)-1, 1, right)

	// Cooldown bar plus rail ammo in the bottom-left corner.
	const barWidth = 10
	filled := int(hud.CooldownProgress * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	cw.WriteAt(2, 2, fmt.Sprintf("[%s] Rail %d", bar, hud.SecondaryAmmo))
}

// drawUpgradeScreen renders the between-zone choice list.
func drawUpgradeScreen(cw *draw.ChunkWriter, centerX, centerY int, choices []*run.UpgradeDefinition, canReroll bool) {
	centerText(cw, centerX, centerY-5, "ZONE CLEAR")
	centerText(cw, centerX, centerY-3, "Choose an upgrade:")

	for i, def := range choices {
		line := fmt.Sprintf("%d) %-22s [%s] %s", i+1, def.Name, def.Rarity, def.Description)
		centerText(cw, centerX, centerY-1+i, line)
	}

	prompt := "Press the number to install"
	if canReroll {
		prompt += ", R to reroll once"
	}
	centerText(cw, centerX, centerY+len(choices)+1, prompt)
}

// drawGameOverScreen renders the defeat overlay.
func drawGameOverScreen(cw *draw.ChunkWriter, centerX, centerY, score, best int, newBest bool) {
	centerText(cw, centerX, centerY-3, "SHIP LOST")
	centerText(cw, centerX, centerY-1, fmt.Sprintf("Score: %d", score))
	if newBest {
		centerText(cw, centerX, centerY, "New best!")
	} else if best > 0 {
		centerText(cw, centerX, centerY, fmt.Sprintf("Best: %d", best))
	}
	centerText(cw, centerX, centerY+2, "SPACE to relaunch, ESC for menu")
}

// drawVictoryScreen renders the run-complete overlay.
func drawVictoryScreen(cw *draw.ChunkWriter, centerX, centerY, score, best int, newBest bool) {
	centerText(cw, centerX, centerY-3, "CORRIDOR CLEARED")
	centerText(cw, centerX, centerY-1, fmt.Sprintf("Final score: %d", score))
	if newBest {
		centerText(cw, centerX, centerY, "New best!")
	} else if best > 0 {
		centerText(cw, centerX, centerY, fmt.Sprintf("Best: %d", best))
	}
	centerText(cw, centerX, centerY+2, "SPACE to fly again, ESC for menu")
}

// drawPauseOverlay renders the pause banner over the frozen frame.
func drawPauseOverlay(cw *draw.ChunkWriter, centerX, centerY int) {
	centerText(cw, centerX, centerY, "PAUSED")
	centerText(cw, centerX, centerY+1, "P to resume, Q to quit")
}
