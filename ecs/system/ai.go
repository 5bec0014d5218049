package system

import (
	"math"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/pathfind"
)

const (
	waypointArriveRadius = 8.0
	telegraphPulseHz     = 8.0
	lungeDecayRate       = 6.0
)

// AIContext is handed to every state hook: the world, the entity, its
// components, and the tracked player target if one exists.
type AIContext struct {
	World  *ecs.World
	Entity ecs.Entity
	DT     float64

	AI        *component.AI
	State     *component.AIState
	Transform *component.Transform
	Velocity  *component.Velocity
	Visual    *component.Visual

	PlayerFound bool
	PlayerPos   common.Vec2

	// boss phase scaling; 1 for everyone else
	SpeedScale   float64
	CadenceScale float64

	sys *AISystem
}

// TransitionTo switches state immediately: exit hook, enter hook,
// elapsed reset. The new state's update runs from the next tick.
func (ctx *AIContext) TransitionTo(name component.StateID) {
	ctx.sys.transition(ctx, name)
}

// ScheduleTransition defers a transition through the clock. The
// callback no-ops if the entity died or transitioned again in the
// meantime.
func (ctx *AIContext) ScheduleTransition(delay float64, name component.StateID) {
	ctx.sys.scheduleTransition(ctx, delay, name)
}

// StateDef is one named state's hooks. Any of them may be nil.
type StateDef struct {
	Enter  func(ctx *AIContext)
	Update func(ctx *AIContext)
	Exit   func(ctx *AIContext)
}

// StateTable is an archetype's complete state machine definition.
type StateTable map[component.StateID]StateDef

// AISystem drives every AI-bearing entity: the melee/boss state
// machine, the ranged band selector, and the scripted sentinel.
type AISystem struct {
	clock  *ecs.Clock
	grid   func() *pathfind.Grid
	combat *Combat

	melee   StateTable
	scripts *scriptRunner
}

func NewAISystem(clock *ecs.Clock, grid func() *pathfind.Grid, combat *Combat) *AISystem {
	s := &AISystem{
		clock:  clock,
		grid:   grid,
		combat: combat,
	}
	s.melee = s.meleeStateTable()
	s.scripts = newScriptRunner()
	return s
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	playerPos, playerFound := playerPosition(w)

	ecs.ForEach2(w, component.AIComponent, component.AIStateComponent, func(e ecs.Entity, ai *component.AI, st *component.AIState) {
		if hp, ok := ecs.Get(w, e, component.HealthComponent); ok && !hp.Alive() {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent)
		if !ok {
			return
		}
		vis, _ := ecs.Get(w, e, component.VisualComponent)

		ctx := &AIContext{
			World:        w,
			Entity:       e,
			DT:           dt,
			AI:           ai,
			State:        st,
			Transform:    t,
			Velocity:     vel,
			Visual:       vis,
			PlayerFound:  playerFound,
			PlayerPos:    playerPos,
			SpeedScale:   1,
			CadenceScale: 1,
			sys:          s,
		}
		if phase, ok := ecs.Get(w, e, component.BossPhaseComponent); ok && phase.Phase >= 2 {
			ctx.SpeedScale = phase.SpeedScale
			ctx.CadenceScale = phase.CadenceScale
		}

		arch, _ := ecs.Get(w, e, component.ArchetypeComponent)
		switch {
		case arch != nil && arch.ID == component.ArchetypeRangedEnemy:
			s.updateRanged(ctx)
		case arch != nil && arch.ID == component.ArchetypeSentinel:
			s.scripts.update(ctx)
		default:
			s.updateTable(ctx, s.melee)
		}

		st.Elapsed += dt
	})
}

// updateTable dispatches the current state's update hook, entering the
// initial state first if the machine has never run.
func (s *AISystem) updateTable(ctx *AIContext, table StateTable) {
	if ctx.State.Current == "" {
		ctx.State.Current = component.StateChase
	}
	if ctx.State.Seq == 0 {
		ctx.State.Seq = 1
		if def, ok := table[ctx.State.Current]; ok && def.Enter != nil {
			def.Enter(ctx)
		}
	}
	if def, ok := table[ctx.State.Current]; ok && def.Update != nil {
		def.Update(ctx)
	}
}

func (s *AISystem) transition(ctx *AIContext, name component.StateID) {
	table := s.melee
	if def, ok := table[ctx.State.Current]; ok && def.Exit != nil {
		def.Exit(ctx)
	}
	ctx.State.Current = name
	ctx.State.Elapsed = 0
	ctx.State.Seq++
	if def, ok := table[name]; ok && def.Enter != nil {
		def.Enter(ctx)
	}
}

func (s *AISystem) scheduleTransition(ctx *AIContext, delay float64, name component.StateID) {
	w := ctx.World
	e := ctx.Entity
	seq := ctx.State.Seq
	s.clock.After(delay, func() {
		// the entity may be long gone by now
		if !w.IsAlive(e) {
			return
		}
		st, ok := ecs.Get(w, e, component.AIStateComponent)
		if !ok || st.Seq != seq {
			return
		}
		ai, ok := ecs.Get(w, e, component.AIComponent)
		if !ok {
			return
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		vel, _ := ecs.Get(w, e, component.VelocityComponent)
		if t == nil || vel == nil {
			return
		}
		vis, _ := ecs.Get(w, e, component.VisualComponent)
		playerPos, playerFound := playerPosition(w)
		s.transition(&AIContext{
			World:        w,
			Entity:       e,
			AI:           ai,
			State:        st,
			Transform:    t,
			Velocity:     vel,
			Visual:       vis,
			PlayerFound:  playerFound,
			PlayerPos:    playerPos,
			SpeedScale:   1,
			CadenceScale: 1,
			sys:          s,
		}, name)
	})
}

// meleeStateTable is the canonical chase/telegraph/attack machine.
func (s *AISystem) meleeStateTable() StateTable {
	return StateTable{
		component.StateChase: {
			Enter: func(ctx *AIContext) {
				ctx.State.PathCooldown = 0
			},
			Update: func(ctx *AIContext) {
				if !ctx.PlayerFound {
					ctx.Velocity.V = common.Vec2{}
					return
				}
				if ctx.Transform.Pos.DistanceTo(ctx.PlayerPos) < ctx.AI.MeleeRange {
					ctx.TransitionTo(component.StateTelegraph)
					return
				}
				s.followPathTo(ctx, ctx.PlayerPos, ctx.AI.MoveSpeed*ctx.SpeedScale)
			},
		},
		component.StateTelegraph: {
			Enter: func(ctx *AIContext) {
				ctx.Velocity.V = common.Vec2{}
				ctx.State.TelegraphLeft = ctx.AI.WindUp
				ctx.World.Events().PushSound("telegraph")
				ctx.World.Events().PushParticles(ctx.Transform.Pos, "warning")
			},
			Update: func(ctx *AIContext) {
				ctx.State.TelegraphLeft -= ctx.DT
				if ctx.PlayerFound {
					ctx.Transform.Rotation = ctx.PlayerPos.Sub(ctx.Transform.Pos).Angle()
				}
				remaining := math.Max(ctx.State.TelegraphLeft, 0)
				frac := 0.0
				if ctx.AI.WindUp > 0 {
					frac = remaining / ctx.AI.WindUp
				}
				pulse := 0.5 + 0.5*math.Sin(ctx.State.Elapsed*telegraphPulseHz*2*math.Pi)
				ctx.State.WarnIntensity = frac * pulse
				if ctx.Visual != nil {
					ctx.Visual.Flash = ctx.State.WarnIntensity
				}
				if ctx.State.TelegraphLeft <= 0 {
					ctx.TransitionTo(component.StateAttack)
				}
			},
			Exit: func(ctx *AIContext) {
				ctx.State.WarnIntensity = 0
				if ctx.Visual != nil {
					ctx.Visual.Flash = 0
				}
			},
		},
		component.StateAttack: {
			Enter: func(ctx *AIContext) {
				if ctx.PlayerFound {
					toPlayer := ctx.PlayerPos.Sub(ctx.Transform.Pos)
					if toPlayer.Length() <= ctx.AI.StrikeRange {
						s.combat.DamagePlayer(ctx.World, ctx.AI.Damage, ctx.Transform.Pos)
					}
					ctx.Velocity.V = toPlayer.Normalized().Scale(ctx.AI.LungeSpeed)
					ctx.Transform.Rotation = toPlayer.Angle()
				}
				// back to chase after the recovery window, hit or miss
				ctx.ScheduleTransition(ctx.AI.RecoverDelay*ctx.CadenceScale, component.StateChase)
			},
			Update: func(ctx *AIContext) {
				decay := math.Exp(-lungeDecayRate * ctx.DT)
				ctx.Velocity.V = ctx.Velocity.V.Scale(decay)
			},
		},
	}
}

// followPathTo re-queries the pathfinder on the entity's own cooldown
// and walks the waypoints, falling back to straight-line pursuit when
// no path is available.
func (s *AISystem) followPathTo(ctx *AIContext, goal common.Vec2, speed float64) {
	ctx.State.PathCooldown -= ctx.DT
	if ctx.State.PathCooldown <= 0 {
		interval := ctx.AI.PathInterval
		if interval <= 0 {
			interval = 0.25
		}
		ctx.State.PathCooldown = interval
		var g *pathfind.Grid
		if s.grid != nil {
			g = s.grid()
		}
		ctx.State.Path = g.FindPath(ctx.Transform.Pos, goal)
		ctx.State.Waypoint = 0
	}

	target := goal
	if len(ctx.State.Path) > 0 {
		for ctx.State.Waypoint < len(ctx.State.Path) &&
			ctx.Transform.Pos.DistanceTo(ctx.State.Path[ctx.State.Waypoint]) < waypointArriveRadius {
			ctx.State.Waypoint++
		}
		if ctx.State.Waypoint < len(ctx.State.Path) {
			target = ctx.State.Path[ctx.State.Waypoint]
		}
	}

	dir := target.Sub(ctx.Transform.Pos).Normalized()
	ctx.Velocity.V = dir.Scale(speed)
	if dir.Length() > 0 {
		ctx.Transform.Rotation = dir.Angle()
	}
}

func playerPosition(w *ecs.World) (common.Vec2, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return common.Vec2{}, false
	}
	if hp, ok := ecs.Get(w, player, component.HealthComponent); ok && !hp.Alive() {
		return common.Vec2{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return common.Vec2{}, false
	}
	return t.Pos, true
}
