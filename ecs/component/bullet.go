package component

// Bullet is the projectile payload. The collision rules decide who it
// can hurt via the bullet's tag, not this component.
type Bullet struct {
	Damage float64
}

var BulletComponent = NewComponent[Bullet]()
