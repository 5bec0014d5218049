package obj

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/undercroft/common"
)

type particle struct {
	pos    common.Vec2
	vel    common.Vec2
	life   float64
	maxAge float64
	radius float64
	color  color.RGBA
	drag   float64
}

type particlePreset struct {
	count    int
	speed    float64
	life     float64
	radius   float64
	color    color.RGBA
	drag     float64
	spread   float64 // arc in radians; 2π for a full ring
	outward  bool
	jitter   float64
}

var particlePresets = map[string]particlePreset{
	"warning":    {count: 6, speed: 30, life: 0.35, radius: 2.5, color: color.RGBA{255, 170, 40, 255}, drag: 2, spread: 2 * math.Pi, outward: false, jitter: 0.3},
	"player_hit": {count: 12, speed: 90, life: 0.4, radius: 2, color: color.RGBA{220, 50, 50, 255}, drag: 4, spread: 2 * math.Pi, outward: true, jitter: 0.5},
	"enemy_hit":  {count: 8, speed: 70, life: 0.3, radius: 1.8, color: color.RGBA{240, 240, 240, 255}, drag: 4, spread: 2 * math.Pi, outward: true, jitter: 0.5},
	"sparkle":    {count: 10, speed: 45, life: 0.6, radius: 1.5, color: color.RGBA{255, 230, 90, 255}, drag: 1.5, spread: 2 * math.Pi, outward: true, jitter: 0.8},
	"death":      {count: 16, speed: 60, life: 0.7, radius: 2.2, color: color.RGBA{130, 130, 140, 255}, drag: 2.5, spread: 2 * math.Pi, outward: true, jitter: 0.6},
	"enrage":     {count: 20, speed: 140, life: 0.5, radius: 2.5, color: color.RGBA{180, 60, 220, 255}, drag: 3, spread: 2 * math.Pi, outward: true, jitter: 0.2},
}

// Particles is a purely cosmetic emitter. It advances on wall-clock
// step time so bursts keep moving through freeze frames and slow
// motion.
type Particles struct {
	live []particle
	rng  *rand.Rand
}

func NewParticles(rng *rand.Rand) *Particles {
	return &Particles{rng: rng}
}

// Emit spawns a preset burst at origin. Unknown presets are ignored.
func (p *Particles) Emit(origin common.Vec2, preset string) {
	def, ok := particlePresets[preset]
	if !ok {
		return
	}
	for i := 0; i < def.count; i++ {
		frac := float64(i) / float64(def.count)
		angle := frac*def.spread + p.rng.Float64()*def.jitter
		speed := def.speed * (0.6 + 0.4*p.rng.Float64())
		dir := common.FromAngle(angle)
		pos := origin
		vel := dir.Scale(speed)
		if !def.outward {
			// converging burst: start on a ring sized so the particles
			// arrive at the origin as they expire
			pos = origin.Add(dir.Scale(speed * def.life))
			vel = dir.Scale(-speed)
		}
		p.live = append(p.live, particle{
			pos:    pos,
			vel:    vel,
			maxAge: def.life * (0.7 + 0.3*p.rng.Float64()),
			radius: def.radius,
			color:  def.color,
			drag:   def.drag,
		})
	}
}

// Update steps every live particle by dt seconds.
func (p *Particles) Update(dt float64) {
	out := p.live[:0]
	for _, pt := range p.live {
		pt.life += dt
		if pt.life >= pt.maxAge {
			continue
		}
		damp := 1 - pt.drag*dt
		if damp < 0 {
			damp = 0
		}
		pt.vel = pt.vel.Scale(damp)
		pt.pos = pt.pos.Add(pt.vel.Scale(dt))
		out = append(out, pt)
	}
	p.live = out
}

// Draw renders all live particles in world space through the camera.
func (p *Particles) Draw(screen *ebiten.Image, cam *Camera) {
	for _, pt := range p.live {
		fade := 1 - pt.life/pt.maxAge
		c := pt.color
		c.A = uint8(float64(c.A) * fade)
		sx, sy := cam.WorldToScreen(pt.pos)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(pt.radius*cam.Zoom()), c, true)
	}
}

// Count reports live particles, for tests.
func (p *Particles) Count() int {
	return len(p.live)
}
