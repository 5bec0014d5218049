package ecs

// Clock advances simulation time one fixed step per rendered frame and
// owns the deferred-callback schedule, freeze frames, and slow motion.
// It is created once at startup and reconfigured, never recreated.
type Clock struct {
	stepDT  float64
	elapsed float64

	freezeFrames int
	slowFrames   int
	slowScale    float64

	callbacks []*deferredCall
}

type deferredCall struct {
	remaining float64
	fn        func()
	fired     bool
}

// NewClock creates a clock stepping at the given ticks per second.
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = 60
	}
	return &Clock{stepDT: 1.0 / float64(tps), slowScale: 1}
}

// Step advances the clock one frame and returns the simulation delta
// for this step: zero while frozen, scaled while slow motion is active.
// Due callbacks fire here, before any entity update runs.
func (c *Clock) Step() float64 {
	if c.freezeFrames > 0 {
		c.freezeFrames--
		return 0
	}

	dt := c.stepDT
	if c.slowFrames > 0 {
		c.slowFrames--
		dt *= c.slowScale
	}
	c.elapsed += dt
	c.fireDue(dt)
	return dt
}

// StepDT returns the unscaled per-frame delta. Presentation effects
// advance by this even during freeze frames.
func (c *Clock) StepDT() float64 {
	return c.stepDT
}

// Elapsed returns total simulation seconds advanced so far.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// After schedules fn to run at the start of the first step at least
// delay simulation-seconds from now. The callback must tolerate firing
// after whatever it captured has been destroyed.
func (c *Clock) After(delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	c.callbacks = append(c.callbacks, &deferredCall{remaining: delay, fn: fn})
}

// Freeze suspends simulation for the next n frames.
func (c *Clock) Freeze(frames int) {
	if frames > c.freezeFrames {
		c.freezeFrames = frames
	}
}

// Frozen reports whether a freeze frame is in effect.
func (c *Clock) Frozen() bool {
	return c.freezeFrames > 0
}

// SlowMotion scales the simulation delta by scale for the next
// duration seconds of wall-frames. Re-issuing extends, never shortens.
func (c *Clock) SlowMotion(duration, scale float64) {
	if duration <= 0 || scale <= 0 || scale >= 1 {
		return
	}
	frames := int(duration / c.stepDT)
	if frames > c.slowFrames {
		c.slowFrames = frames
	}
	c.slowScale = scale
}

// Reset drops all pending callbacks and active time effects. Elapsed
// time is kept; the clock survives room transitions.
func (c *Clock) Reset() {
	c.callbacks = nil
	c.freezeFrames = 0
	c.slowFrames = 0
	c.slowScale = 1
}

func (c *Clock) fireDue(dt float64) {
	// callbacks scheduled by a firing callback belong to a later step
	due := c.callbacks
	for _, call := range due {
		if call.fired {
			continue
		}
		call.remaining -= dt
		if call.remaining > 0 {
			continue
		}
		call.fired = true
		call.fn()
	}

	kept := c.callbacks[:0]
	for _, call := range c.callbacks {
		if !call.fired {
			kept = append(kept, call)
		}
	}
	c.callbacks = kept
}
