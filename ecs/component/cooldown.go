package component

// Cooldowns is a named set of countdown timers, in seconds. Systems
// start a timer by name and test it before acting again.
type Cooldowns struct {
	Timers map[string]float64
}

// Start sets (or restarts) a named timer.
func (c *Cooldowns) Start(name string, seconds float64) {
	if c.Timers == nil {
		c.Timers = make(map[string]float64, 4)
	}
	c.Timers[name] = seconds
}

// Ready reports whether a named timer has elapsed (or was never set).
func (c *Cooldowns) Ready(name string) bool {
	if c == nil || c.Timers == nil {
		return true
	}
	return c.Timers[name] <= 0
}

var CooldownsComponent = NewComponent[Cooldowns]()
