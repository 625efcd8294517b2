// internal/engine/clock.go
package engine

// SimulationClock decouples the host frame rate from simulation ticks. Each
// host frame's elapsed time goes into an accumulator, clamped to a maximum
// so a stalled host cannot trigger an unbounded catch-up burst, and the loop
// drains the accumulator in whole fixed-timestep increments.
//
// While paused, increments are still drained but the update callback is not
// invoked: elapsed ticks are discarded, not queued, so resuming never
// replays the pause.
type SimulationClock struct {
	timestep     float64 // seconds per simulation tick
	maxFrameTime float64 // accumulator clamp, seconds

	provider    TimeProvider
	accumulator float64
	lastFrame   int64 // UnixNano of the previous Frame call
	running     bool
}

// NewSimulationClock creates a stopped clock. timestep and maxFrameTime are
// in seconds.
func NewSimulationClock(timestep, maxFrameTime float64, provider TimeProvider) *SimulationClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &SimulationClock{
		timestep:     timestep,
		maxFrameTime: maxFrameTime,
		provider:     provider,
	}
}

// Start begins (or restarts) the clock at the provider's current time.
func (c *SimulationClock) Start() {
	c.running = true
	c.accumulator = 0
	c.lastFrame = c.provider.Now().UnixNano()
}

// Stop halts the clock immediately. No partial-tick rollback is needed
// because ticks are atomic: a tick runs to completion before the next is
// considered.
func (c *SimulationClock) Stop() {
	c.running = false
}

// Running reports whether the clock is started.
func (c *SimulationClock) Running() bool {
	return c.running
}

// Timestep returns the fixed tick size in seconds.
func (c *SimulationClock) Timestep() float64 {
	return c.timestep
}

// Frame reads the elapsed time since the previous Frame from the provider
// and advances the simulation. Call once per host video frame.
func (c *SimulationClock) Frame(paused bool, update func(dt float64)) int {
	if !c.running {
		return 0
	}
	now := c.provider.Now().UnixNano()
	delta := float64(now-c.lastFrame) / 1e9
	c.lastFrame = now
	return c.Advance(delta, paused, update)
}

// Advance feeds one frame's delta (seconds) into the accumulator and runs
// update once per whole timestep drained. Returns the number of update
// invocations; paused frames drain without invoking and return 0.
func (c *SimulationClock) Advance(frameDelta float64, paused bool, update func(dt float64)) int {
	if !c.running || frameDelta < 0 {
		return 0
	}

	c.accumulator += frameDelta
	if c.accumulator > c.maxFrameTime {
		// Spiral-of-death protection: drop lag beyond the clamp.
		c.accumulator = c.maxFrameTime
	}

	executed := 0
	for c.accumulator >= c.timestep && c.running {
		c.accumulator -= c.timestep
		if paused {
			continue
		}
		update(c.timestep)
		executed++
	}
	return executed
}
