package component

// TTL destroys its entity when Seconds reaches zero. Bullets and other
// short-lived spawns carry one.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
