package system

import (
	"math"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
)

const (
	rangedRetreatStep = 96.0
	strafeFlipPeriod  = 2.5 // seconds each strafe direction is held
)

// updateRanged is the distance-banded shooter: retreat when crowded,
// approach when too far, strafe perpendicular in between. It shares the
// melee machine's pathfinding but not its state table.
func (s *AISystem) updateRanged(ctx *AIContext) {
	if !ctx.PlayerFound {
		ctx.Velocity.V = common.Vec2{}
		return
	}

	toPlayer := ctx.PlayerPos.Sub(ctx.Transform.Pos)
	dist := toPlayer.Length()
	away := toPlayer.Normalized().Scale(-1)

	var goal common.Vec2
	switch {
	case dist < ctx.AI.RetreatRange:
		goal = ctx.Transform.Pos.Add(away.Scale(rangedRetreatStep))
	case dist > ctx.AI.ApproachRange:
		goal = ctx.PlayerPos
	default:
		if math.Mod(ctx.State.Elapsed, strafeFlipPeriod*2) < strafeFlipPeriod {
			ctx.State.StrafeSign = 1
		} else {
			ctx.State.StrafeSign = -1
		}
		perp := common.Vec2{X: -toPlayer.Y, Y: toPlayer.X}.Normalized()
		goal = ctx.Transform.Pos.Add(perp.Scale(rangedRetreatStep * ctx.State.StrafeSign))
	}

	s.followPathTo(ctx, goal, ctx.AI.MoveSpeed*ctx.SpeedScale)

	// always face the player, not the travel direction
	ctx.Transform.Rotation = toPlayer.Angle()

	cds, ok := ecs.Get(ctx.World, ctx.Entity, component.CooldownsComponent)
	if !ok {
		return
	}
	if cds.Ready("shoot") && dist <= ctx.AI.ApproachRange {
		aim := toPlayer.Normalized()
		muzzle := ctx.Transform.Pos.Add(aim.Scale(18))
		if _, err := entity.NewBullet(ctx.World, muzzle, aim.Scale(ctx.AI.BulletSpeed), ctx.AI.BulletDamage, component.TagEnemyBullet); err == nil {
			cds.Start("shoot", ctx.AI.ShootCooldown*ctx.CadenceScale)
			ctx.World.Events().PushSound("enemy_shot")
		}
	}
}
