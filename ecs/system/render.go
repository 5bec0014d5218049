package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/obj"
	"github.com/milk9111/undercroft/room"
)

var (
	floorColor = color.RGBA{28, 26, 34, 255}
	wallColor  = color.RGBA{62, 58, 74, 255}

	archetypeColors = map[component.ArchetypeID]color.RGBA{
		component.ArchetypePlayer:      {90, 200, 250, 255},
		component.ArchetypeMeleeEnemy:  {210, 80, 70, 255},
		component.ArchetypeRangedEnemy: {230, 150, 60, 255},
		component.ArchetypeSentinel:    {150, 110, 230, 255},
		component.ArchetypeBoss:        {180, 40, 90, 255},
		component.ArchetypePickup:      {120, 220, 120, 255},
		component.ArchetypeDecoration:  {200, 170, 90, 255},
	}

	playerBulletColor = color.RGBA{180, 240, 255, 255}
	enemyBulletColor  = color.RGBA{255, 120, 120, 255}
)

// RenderSystem draws the room, every shaped entity, cosmetic
// particles, the fade overlay, and the HUD. It reads simulation state
// and never writes it.
type RenderSystem struct {
	cam       *obj.Camera
	trans     *TransitionSystem
	particles *obj.Particles
}

func NewRenderSystem(cam *obj.Camera, trans *TransitionSystem, particles *obj.Particles) *RenderSystem {
	return &RenderSystem{cam: cam, trans: trans, particles: particles}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(floorColor)

	if rm := r.trans.CurrentRoom(); rm != nil {
		r.drawRoom(screen, rm)
	}
	r.drawEntities(w, screen)
	if r.particles != nil {
		r.particles.Draw(screen, r.cam)
	}
	r.drawFade(screen)
	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawRoom(screen *ebiten.Image, rm *room.Spec) {
	zoom := r.cam.Zoom()
	tl := r.cam.ViewTopLeft()
	size := float32(rm.TileSize * zoom)
	for ty, row := range rm.Layout {
		for tx, ch := range row {
			if ch != '#' {
				continue
			}
			sx := float32((float64(tx)*rm.TileSize - tl.X) * zoom)
			sy := float32((float64(ty)*rm.TileSize - tl.Y) * zoom)
			vector.DrawFilledRect(screen, sx, sy, size, size, wallColor, false)
		}
	}
}

func (r *RenderSystem) drawEntities(w *ecs.World, screen *ebiten.Image) {
	zoom := r.cam.Zoom()
	ecs.ForEach2(w, component.TransformComponent, component.ColliderComponent,
		func(e ecs.Entity, t *component.Transform, col *component.Collider) {
			c := r.entityColor(w, e)
			scale, alpha, flash := 1.0, 1.0, 0.0
			if vis, ok := ecs.Get(w, e, component.VisualComponent); ok {
				scale, alpha, flash = vis.Scale, vis.Alpha, vis.Flash
			}
			c = tint(c, flash, alpha)
			sx, sy := r.cam.WorldToScreen(t.Pos)

			switch col.Shape {
			case component.ShapeCircle:
				radius := float32(col.Radius * scale * zoom)
				vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, c, true)
				r.drawFacing(screen, e, w, t, sx, sy, col.Radius*scale*zoom)
			case component.ShapeBox:
				ew, eh := col.HalfExtents()
				hw := float32(ew * scale * zoom)
				hh := float32(eh * scale * zoom)
				vector.DrawFilledRect(screen, float32(sx)-hw, float32(sy)-hh, hw*2, hh*2, c, false)
			}

			r.drawHealthBar(w, e, screen, sx, sy, col, zoom)
		})
}

// drawFacing renders a short direction tick on actors that aim.
func (r *RenderSystem) drawFacing(screen *ebiten.Image, e ecs.Entity, w *ecs.World, t *component.Transform, sx, sy, radius float64) {
	if !ecs.Has(w, e, component.AIComponent) && !ecs.Has(w, e, component.PlayerTagComponent) {
		return
	}
	if ecs.Has(w, e, component.DyingComponent) {
		return
	}
	dir := common.FromAngle(t.Rotation)
	ex := sx + dir.X*radius*1.4
	ey := sy + dir.Y*radius*1.4
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, color.RGBA{255, 255, 255, 160}, true)
}

func (r *RenderSystem) drawHealthBar(w *ecs.World, e ecs.Entity, screen *ebiten.Image, sx, sy float64, col *component.Collider, zoom float64) {
	hp, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok || hp.Dead || hp.Max <= 0 || hp.Current >= hp.Max {
		return
	}
	if ecs.Has(w, e, component.PlayerTagComponent) {
		return // player health lives in the HUD
	}
	width := float32(24 * zoom)
	height := float32(3 * zoom)
	top := float32(sy) - float32((col.Radius+8)*zoom)
	left := float32(sx) - width/2
	frac := float32(common.Clamp(hp.Current/hp.Max, 0, 1))
	vector.DrawFilledRect(screen, left, top, width, height, color.RGBA{20, 20, 20, 200}, false)
	vector.DrawFilledRect(screen, left, top, width*frac, height, color.RGBA{200, 60, 60, 230}, false)
}

func (r *RenderSystem) entityColor(w *ecs.World, e ecs.Entity) color.RGBA {
	if ecs.Has(w, e, component.BulletComponent) {
		if tags, ok := ecs.Get(w, e, component.TagsComponent); ok && tags.Has(component.TagPlayerBullet) {
			return playerBulletColor
		}
		return enemyBulletColor
	}
	if arch, ok := ecs.Get(w, e, component.ArchetypeComponent); ok {
		if c, found := archetypeColors[arch.ID]; found {
			return c
		}
	}
	return color.RGBA{200, 200, 200, 255}
}

func (r *RenderSystem) drawFade(screen *ebiten.Image) {
	alpha := r.trans.FadeAlpha()
	if alpha <= 0 {
		return
	}
	bounds := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()),
		color.RGBA{0, 0, 0, uint8(common.Clamp(alpha, 0, 1) * 255)}, false)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}

	if hp, ok := ecs.Get(w, player, component.HealthComponent); ok {
		drawBar(screen, 12, 12, 160, 10, hp.Current/hp.Max, color.RGBA{200, 60, 60, 255})
	}
	if en, ok := ecs.Get(w, player, component.EnergyComponent); ok {
		drawBar(screen, 12, 28, 160, 6, en.Current/en.Max, color.RGBA{80, 160, 240, 255})
	}
	if stats, ok := ecs.Get(w, player, component.PlayerStatsComponent); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("kills %d", stats.KillCount), 12, 40)
	}

	// boss bar across the top while one is alive in the room
	if boss, ok := ecs.First(w, component.BossPhaseComponent); ok {
		if hp, ok := ecs.Get(w, boss, component.HealthComponent); ok && hp.Alive() {
			bounds := screen.Bounds()
			width := float64(bounds.Dx()) - 160
			drawBar(screen, 80, float64(bounds.Dy())-24, width, 8, hp.Current/hp.Max, color.RGBA{180, 40, 90, 255})
		}
	}
}

func drawBar(screen *ebiten.Image, x, y, width, height, frac float64, fill color.RGBA) {
	frac = common.Clamp(frac, 0, 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{20, 20, 20, 200}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*frac), float32(height), fill, false)
}

// tint lightens toward white by flash and applies alpha.
func tint(c color.RGBA, flash, alpha float64) color.RGBA {
	flash = common.Clamp(flash, 0, 1)
	alpha = common.Clamp(alpha, 0, 1)
	lighten := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*flash)
	}
	out := color.RGBA{lighten(c.R), lighten(c.G), lighten(c.B), uint8(float64(c.A) * alpha)}
	return out
}
