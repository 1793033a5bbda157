package loop

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tmarek/starlane/internal/config"
	"github.com/tmarek/starlane/internal/draw"
	"github.com/tmarek/starlane/internal/input"
	"github.com/tmarek/starlane/internal/run"
	"github.com/tmarek/starlane/internal/score"
)

// Options configures a game session. Zero values fall back to defaults;
// a nil Scores disables high-score persistence.
type Options struct {
	Log      *log.Logger
	Tuning   *config.Tuning
	Pool     []*run.UpgradeDefinition
	Audio    Audio
	Scores   *score.Store
	SizeFunc draw.TermSizeFunc
}

// Game is the terminal front-end: it owns the scheduler, the scene, the
// input stream and the frame writer, and implements the scene's UI
// interface with ANSI overlays. One Game serves one player session.
type Game struct {
	log    *log.Logger
	sched  *Scheduler
	scene  *Scene
	stream *input.Stream
	cw     *draw.ChunkWriter
	canvas *draw.Canvas
	cam    *draw.Camera
	audio  Audio
	scores *score.Store
	sizeFn draw.TermSizeFunc

	// started distinguishes the title screen from an active run; the
	// zone machine only exists inside a run.
	started bool
	prev    input.Snapshot
	hud     HUDState

	// Upgrade overlay state, set via ShowUpgradeChoices.
	upgradeChoices []*run.UpgradeDefinition
	canReroll      bool
	onSelect       func(idx int)
	onReroll       func()

	// End-of-run overlay state, set via ShowGameOver/ShowVictory.
	endScore   int
	endBest    int
	endNewBest bool
	onRestart  func()
}

// Run blocks, driving a full session from title screen to quit. The
// reader must deliver raw terminal bytes; the writer receives ANSI
// frames. Returns when the player quits, the reader ends (disconnect) or
// a frame errors.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Log == nil {
		opts.Log = log.Default()
	}
	if opts.Audio == nil {
		opts.Audio = &NopAudio{}
	}
	if opts.SizeFunc == nil {
		opts.SizeFunc = draw.DefaultTermSizeFunc
	}

	g := &Game{
		log:    opts.Log,
		audio:  opts.Audio,
		scores: opts.Scores,
		sizeFn: opts.SizeFunc,
		cw:     draw.NewChunkWriter(w, 0, 0),
		canvas: draw.NewCanvas(80, 24, targetWidth, targetHeight),
		cam:    draw.NewCamera(),
		prev:   input.Snapshot{Number: -1},
	}

	g.scene = NewScene(SceneConfig{
		Log:    opts.Log,
		Tuning: opts.Tuning,
		Pool:   opts.Pool,
		Audio:  opts.Audio,
		UI:     g,
	})

	g.sched = NewScheduler(opts.Log)
	g.sched.Register(g.scene)
	g.sched.SetPreUpdate(g.handleInput)
	g.sched.SetPostUpdate(g.render)
	g.sched.SetPaused(true) // title screen

	g.stream = input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	g.audio.PlayMenuMusic()
	defer g.sched.Dispose()

	err := g.sched.Run()
	g.log.Info("session ended",
		"frames", g.sched.Perf().Frames(), "avg_fps", fmt.Sprintf("%.1f", g.sched.Perf().FPS()))
	return err
}

// handleInput is the pre-update hook: drain the stream, act on edges and
// hand the movement snapshot to the scene. Discrete actions trigger on
// the press edge only, so a key held across frames fires once.
func (g *Game) handleInput(dt float64) error {
	snap := g.stream.Read()
	prev := g.prev
	g.prev = snap

	edge := func(now, was bool) bool { return now && !was }

	if edge(snap.Quit, prev.Quit) {
		g.sched.Stop()
		return nil
	}
	if edge(snap.Mute, prev.Mute) {
		g.audio.SetMuted(!g.audio.Muted())
	}

	if !g.started {
		if edge(snap.Fire, prev.Fire) || edge(snap.Enter, prev.Enter) {
			g.launch()
		}
		return nil
	}

	if g.onRestart != nil {
		switch {
		case edge(snap.Fire, prev.Fire) || edge(snap.Enter, prev.Enter):
			restart := g.onRestart
			g.clearEndOverlay()
			restart()
			g.resetInput()
		case edge(snap.Escape, prev.Escape):
			g.returnToMenu()
		}
		return nil
	}

	if g.onSelect != nil {
		switch {
		case snap.Number >= 1 && snap.Number != prev.Number:
			if idx := snap.Number - 1; idx < len(g.upgradeChoices) {
				sel := g.onSelect
				g.clearUpgradeOverlay()
				sel(idx)
				g.resetInput()
			}
		case edge(snap.Reroll, prev.Reroll) && g.onReroll != nil:
			g.onReroll()
		}
		return nil
	}

	if edge(snap.Pause, prev.Pause) {
		g.sched.SetPaused(!g.sched.Paused())
	}

	g.scene.SetControls(snap)
	return nil
}

// launch leaves the title screen and starts the simulation.
func (g *Game) launch() {
	g.started = true
	g.sched.SetPaused(false)
	g.audio.StopMusic()
	g.resetInput()
	g.log.Info("run launched")
}

// returnToMenu ends the finished run and goes back to the title screen.
func (g *Game) returnToMenu() {
	g.scene.Restart()
	g.clearEndOverlay()
	g.started = false
	g.sched.SetPaused(true)
	g.audio.PlayMenuMusic()
	g.resetInput()
}

func (g *Game) resetInput() {
	g.stream.Reset()
	g.prev = input.Snapshot{Number: -1}
}

func (g *Game) clearUpgradeOverlay() {
	g.upgradeChoices = nil
	g.canReroll = false
	g.onSelect = nil
	g.onReroll = nil
}

func (g *Game) clearEndOverlay() {
	g.onRestart = nil
	g.endScore = 0
	g.endNewBest = false
}

// render is the post-update hook: adapt to the terminal size, draw the
// scene and layer the overlay for the current screen.
func (g *Game) render(dt float64) error {
	width, height, err := g.sizeFn()
	if err != nil {
		return fmt.Errorf("read terminal size: %w", err)
	}
	g.canvas.Resize(width, height)

	draw.ClearScreen(g.cw)
	g.canvas.Clear()

	if g.started {
		renderScene(g.canvas, g.cam, g.scene)
	}
	g.canvas.Render(g.cw)

	centerX := width / 2
	centerY := height / 2

	switch {
	case !g.started:
		drawTitleScreen(g.cw, centerX, centerY, g.best())
	case g.scene.Phase() == PhaseGameOver:
		drawGameOverScreen(g.cw, centerX, centerY, g.endScore, g.endBest, g.endNewBest)
	case g.scene.Phase() == PhaseVictory:
		drawVictoryScreen(g.cw, centerX, centerY, g.endScore, g.endBest, g.endNewBest)
	case g.onSelect != nil:
		drawUpgradeScreen(g.cw, centerX, centerY, g.upgradeChoices, g.canReroll)
	default:
		drawHUD(g.cw, width, g.hud)
		if g.sched.Paused() {
			drawPauseOverlay(g.cw, centerX, centerY)
		}
	}

	return g.cw.Flush()
}

func (g *Game) best() int {
	if g.scores == nil {
		return 0
	}
	return g.scores.Best()
}

// UpdateHUD implements UI.
func (g *Game) UpdateHUD(hud HUDState) {
	g.hud = hud
}

// ShowUpgradeChoices implements UI.
func (g *Game) ShowUpgradeChoices(choices []*run.UpgradeDefinition, canReroll bool, onSelect func(idx int), onReroll func()) {
	g.upgradeChoices = choices
	g.canReroll = canReroll
	g.onSelect = onSelect
	g.onReroll = onReroll
}

// ShowGameOver implements UI. The run score is submitted to the high
// score store here, once, when the overlay appears.
func (g *Game) ShowGameOver(runScore int, onRestart, onMenu func()) {
	g.recordEnd(runScore)
	g.onRestart = onRestart
}

// ShowVictory implements UI.
func (g *Game) ShowVictory(runScore int, onRestart, onMenu func()) {
	g.recordEnd(runScore)
	g.onRestart = onRestart
}

func (g *Game) recordEnd(runScore int) {
	g.endScore = runScore
	g.endNewBest = false
	if g.scores != nil {
		g.endNewBest = g.scores.Record(runScore)
		g.endBest = g.scores.Best()
	}
}
