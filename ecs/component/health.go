package component

// Health is attached to every combat-capable entity. InvulnFrames is
// the only damage debounce: while it is positive, ApplyDamage no-ops.
// Sustained overlap with an entity whose window is zero reapplies
// damage every frame; that is the observed product behavior, kept.
type Health struct {
	Max          float64
	Current      float64
	InvulnFrames int
	Dead         bool
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max float64) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Max: max, Current: max}
}

// Alive reports whether the entity can still act.
func (h *Health) Alive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage unless dead or inside the invulnerability
// window. Returns true if health changed.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || h.InvulnFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
	}
	return true
}

// Heal restores health, clamped to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

var HealthComponent = NewComponent[Health]()
