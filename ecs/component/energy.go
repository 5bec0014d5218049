package component

// Energy powers the player's ranged attack. Regenerates slowly; energy
// pickups refill it in chunks.
type Energy struct {
	Max     float64
	Current float64
	Regen   float64 // per second
}

func NewEnergy(max, regen float64) Energy {
	return Energy{Max: max, Current: max, Regen: regen}
}

// Spend deducts cost if available and reports whether it was.
func (e *Energy) Spend(cost float64) bool {
	if e == nil || e.Current < cost {
		return false
	}
	e.Current -= cost
	return true
}

// Restore adds energy, clamped to Max.
func (e *Energy) Restore(amount float64) {
	if e == nil || amount <= 0 {
		return
	}
	e.Current += amount
	if e.Current > e.Max {
		e.Current = e.Max
	}
}

var EnergyComponent = NewComponent[Energy]()
