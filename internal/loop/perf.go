package loop

// PerfMonitor tracks frame pacing with an exponential moving average of
// per-tick delta time. Updated once per scheduler tick.
type PerfMonitor struct {
	ema    float64 // seconds
	worst  float64 // seconds
	frames uint64
}

// emaAlpha weights recent frames; ~64-frame effective window.
const emaAlpha = 1.0 / 64.0

// Observe records one frame's delta time in seconds.
func (p *PerfMonitor) Observe(dt float64) {
	p.frames++
	if p.frames == 1 {
		p.ema = dt
	} else {
		p.ema += emaAlpha * (dt - p.ema)
	}
	if dt > p.worst {
		p.worst = dt
	}
}

// AverageDelta returns the smoothed frame delta in seconds.
func (p *PerfMonitor) AverageDelta() float64 {
	return p.ema
}

// WorstDelta returns the largest observed (already clamped) delta.
func (p *PerfMonitor) WorstDelta() float64 {
	return p.worst
}

// Frames returns the total tick count.
func (p *PerfMonitor) Frames() uint64 {
	return p.frames
}

// FPS returns the smoothed frames per second, or 0 before the first tick.
func (p *PerfMonitor) FPS() float64 {
	if p.ema <= 0 {
		return 0
	}
	return 1 / p.ema
}
