// Package audio synthesizes all game sound at runtime. There are no
// sample assets; every effect is a short generated tone pushed through a
// shared beep mixer.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Engine owns the speaker and the mixer. When the audio device cannot be
// opened the engine stays uninitialized and every call is a no-op, so
// headless environments (CI, SSH hosts without a sound card) still run.
type Engine struct {
	mu          sync.Mutex
	log         *log.Logger
	mixer       *beep.Mixer
	musicCtrl   *beep.Ctrl
	initialized bool
	muted       bool
}

// NewEngine creates an engine and tries to open the audio device.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		log:   logger,
		mixer: &beep.Mixer{},
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio device unavailable, running silent", "err", err)
		return e
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return e
}

// Close silences the mixer. The speaker itself has no close; clearing the
// mixer is enough to stop output.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.musicCtrl = nil
}

// SetMuted toggles all output. Music keeps its position; one-shots are
// simply not queued while muted.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	if e.musicCtrl != nil {
		speaker.Lock()
		e.musicCtrl.Paused = muted
		speaker.Unlock()
	}
}

// Muted reports the current mute state.
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *Engine) playTone(d time.Duration, gen beep.Streamer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized || e.muted {
		return
	}
	speaker.Lock()
	e.mixer.Add(beep.Take(sampleRate.N(d), gen))
	speaker.Unlock()
}

// PlayFire plays the weapon discharge blip, a short descending square.
func (e *Engine) PlayFire() {
	e.playTone(60*time.Millisecond, newSweep(880, 440, 0.08, 60*time.Millisecond))
}

// PlayImpact plays the hazard-destroyed confirmation.
func (e *Engine) PlayImpact() {
	e.playTone(120*time.Millisecond, newCrackle(0.2, 10))
}

// PlayCollision plays a hull hit. Severity 0..2 picks a heavier rumble.
func (e *Engine) PlayCollision(severity int) {
	switch {
	case severity >= 2:
		e.playTone(400*time.Millisecond, newCrackle(0.45, 5))
	case severity == 1:
		e.playTone(250*time.Millisecond, newCrackle(0.3, 7))
	default:
		e.playTone(150*time.Millisecond, newSweep(220, 110, 0.2, 150*time.Millisecond))
	}
}

// PlayUpgrade plays the two-note upgrade chime.
func (e *Engine) PlayUpgrade() {
	e.playTone(300*time.Millisecond, newChime(987.77, 1318.51, 150*time.Millisecond))
}

// PlayMenuMusic starts the looping title drone. Idempotent while playing.
func (e *Engine) PlayMenuMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	if e.musicCtrl != nil {
		speaker.Lock()
		e.musicCtrl.Paused = e.muted
		speaker.Unlock()
		return
	}
	ctrl := &beep.Ctrl{Streamer: newDrone(), Paused: e.muted}
	e.musicCtrl = ctrl
	speaker.Lock()
	e.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopMusic pauses the title drone.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.musicCtrl == nil {
		return
	}
	speaker.Lock()
	e.musicCtrl.Paused = true
	speaker.Unlock()
}

// sweep is a sine tone sliding between two frequencies with a release
// envelope over its lifetime.
type sweep struct {
	from, to float64
	amp      float64
	total    int
	pos      int
}

func newSweep(from, to, amp float64, d time.Duration) *sweep {
	return &sweep{from: from, to: to, amp: amp, total: sampleRate.N(d)}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		progress := float64(g.pos) / float64(g.total)
		if progress > 1 {
			progress = 1
		}
		freq := g.from + (g.to-g.from)*progress
		env := 1 - progress
		s := g.amp * env * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// crackle is filtered noise over a low rumble with exponential decay.
type crackle struct {
	amp   float64
	decay float64
	seed  int64
	pos   int
}

func newCrackle(amp, decay float64) *crackle {
	return &crackle{amp: amp, decay: decay, seed: time.Now().UnixNano()}
}

func (g *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		env := math.Exp(-t * g.decay)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.4 * math.Sin(2*math.Pi*70*t)

		s := g.amp * env * (0.6*noise + rumble)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *crackle) Err() error { return nil }

// chime plays two sine notes back to back, each with its own release.
type chime struct {
	first, second float64
	split         int
	pos           int
}

func newChime(first, second float64, splitAt time.Duration) *chime {
	return &chime{first: first, second: second, split: sampleRate.N(splitAt)}
}

func (g *chime) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		freq := g.first
		notePos := g.pos
		if g.pos >= g.split {
			freq = g.second
			notePos = g.pos - g.split
		}
		env := math.Exp(-float64(notePos) / float64(sampleRate) * 12)
		s := 0.15 * env * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *chime) Err() error { return nil }

// drone is the looping title background: a slow beating pair of low
// sines that never resolves.
type drone struct {
	pos int
}

func newDrone() *drone { return &drone{} }

func (g *drone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		s := 0.05*math.Sin(2*math.Pi*55*t) + 0.05*math.Sin(2*math.Pi*55.5*t)
		s += 0.03 * math.Sin(2*math.Pi*110*t) * (0.5 + 0.5*math.Sin(2*math.Pi*0.1*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *drone) Err() error { return nil }
