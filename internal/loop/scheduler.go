// Package loop provides the frame scheduler, the combat scene and the zone
// progression state machine, plus the terminal front-end that drives them.
package loop

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Subsystem receives ordered per-tick updates from the Scheduler.
type Subsystem interface {
	Update(dt float64) error
}

// Hook runs before or after the subsystem updates of a tick.
type Hook func(dt float64) error

// Disposer is implemented by subsystems that hold external resources
// needing release after the loop ends.
type Disposer interface {
	Dispose()
}

// Scheduler drives the simulation at a fixed cadence. Each tick computes a
// clamped delta time, runs the pre-update hook, updates every registered
// subsystem in registration order, runs the post-update hook, then sleeps
// out the frame. All simulation state is mutated from inside Run's call
// stack only; see the ordering guarantee on Register.
//
// The scheduler itself never panics; subsystem errors propagate out of Run
// unmodified.
type Scheduler struct {
	log *log.Logger

	subsystems []Subsystem
	preUpdate  Hook
	postUpdate Hook

	perf PerfMonitor

	lastTick time.Time
	paused   bool
	running  atomic.Bool
	stop     atomic.Bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{log: logger}
}

// Register appends a subsystem. Update order is registration order, which
// is load-bearing: the scene relies on ship movement preceding hazard
// movement preceding collision resolution.
func (s *Scheduler) Register(sub Subsystem) {
	s.subsystems = append(s.subsystems, sub)
}

// SetPreUpdate installs the hook run before subsystem updates (input).
func (s *Scheduler) SetPreUpdate(h Hook) {
	s.preUpdate = h
}

// SetPostUpdate installs the hook run after subsystem updates (render).
func (s *Scheduler) SetPostUpdate(h Hook) {
	s.postUpdate = h
}

// SetPaused suspends subsystem updates while keeping the tick cadence.
// Because the clock re-bases every tick, no delta time accumulates while
// paused and timing resumes cleanly on unpause.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether subsystem updates are suspended.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Perf exposes the frame performance monitor.
func (s *Scheduler) Perf() *PerfMonitor {
	return &s.perf
}

// Run blocks, ticking until Stop is called or a hook/subsystem returns an
// error. Calling Run while already running is a no-op with a warning; Run
// and Stop are safe to call from different goroutines.
func (s *Scheduler) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("scheduler already running, ignoring start")
		return nil
	}
	s.stop.Store(false)
	s.lastTick = time.Now()

	defer s.running.Store(false)

	for !s.stop.Load() {
		frameStart := time.Now()

		if err := s.tick(frameStart); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}
	return nil
}

// Stop cancels scheduling after the current tick. Idempotent: stopping a
// stopped scheduler logs and returns.
func (s *Scheduler) Stop() {
	if !s.running.Load() && !s.stop.Load() {
		s.log.Debug("scheduler already stopped, ignoring stop")
		return
	}
	s.stop.Store(true)
}

// Dispose releases subsystem resources after Run returns. Each disposal
// runs under recover, so one failing subsystem cannot block the rest.
func (s *Scheduler) Dispose() {
	for _, sub := range s.subsystems {
		d, ok := sub.(Disposer)
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("subsystem dispose panicked", "panic", r)
				}
			}()
			d.Dispose()
		}()
	}
}

// tick advances one frame. The hooks run even while paused (input has to
// keep flowing to detect unpause, and the screen still redraws); only the
// registered subsystems are skipped.
func (s *Scheduler) tick(now time.Time) error {
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if dt > MaxDelta {
		dt = MaxDelta
	}
	if dt < 0 {
		dt = 0
	}

	s.perf.Observe(dt)

	if s.preUpdate != nil {
		if err := s.preUpdate(dt); err != nil {
			return err
		}
	}

	if !s.paused {
		for _, sub := range s.subsystems {
			if err := sub.Update(dt); err != nil {
				return err
			}
		}
	}

	if s.postUpdate != nil {
		if err := s.postUpdate(dt); err != nil {
			return err
		}
	}
	return nil
}
