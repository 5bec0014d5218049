package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/prefabs"
)

const sentinelSweepRate = 0.8 // radians per second while scanning

// aiLifecycleDispatch is appended to every behavior script so the Go
// side can invoke the right lifecycle function per phase.
const aiLifecycleDispatch = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

type scriptRuntime struct {
	name        string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initial     component.StateID
	initialized bool
	pending     component.StateID
	broken      bool
}

// scriptRunner drives entities whose behavior lives in a tengo script.
// Compiled runtimes are cached per entity; a script that fails to load
// or run degrades to the built-in fallback instead of faulting.
type scriptRunner struct {
	cache map[ecs.Entity]*scriptRuntime
}

func newScriptRunner() *scriptRunner {
	return &scriptRunner{cache: map[ecs.Entity]*scriptRuntime{}}
}

// ResetScripts drops all cached script runtimes. Called on room
// teardown so runtimes for destroyed entities don't accumulate.
func (s *AISystem) ResetScripts() {
	s.scripts = newScriptRunner()
}

func (r *scriptRunner) update(ctx *AIContext) {
	script, ok := ecs.Get(ctx.World, ctx.Entity, component.AIScriptComponent)
	if !ok || script.Name == "" {
		r.fallback(ctx)
		return
	}

	rt, err := r.runtime(ctx.Entity, script.Name)
	if err != nil {
		if rt == nil || !rt.broken {
			log.Printf("ai: entity=%s script %s: %v", ctx.Entity, script.Name, err)
		}
		r.markBroken(ctx.Entity, script.Name)
		r.fallback(ctx)
		return
	}
	if rt.broken {
		r.fallback(ctx)
		return
	}

	if ctx.State.Current == "" {
		ctx.State.Current = rt.initial
	}

	engine := buildScriptEngine(ctx, rt)
	if !rt.initialized {
		if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
			log.Printf("ai: entity=%s script onEnter: %v", ctx.Entity, err)
			rt.broken = true
			return
		}
		rt.initialized = true
	}

	if err := rt.runPhase("update", ctx.State.Current, engine); err != nil {
		log.Printf("ai: entity=%s script update: %v", ctx.Entity, err)
		rt.broken = true
		return
	}

	if rt.pending == "" || rt.pending == ctx.State.Current {
		rt.pending = ""
		return
	}

	prev := ctx.State.Current
	if err := rt.runPhase("exit", prev, engine); err != nil {
		log.Printf("ai: entity=%s script onExit: %v", ctx.Entity, err)
		rt.broken = true
		return
	}
	ctx.State.Current = rt.pending
	ctx.State.Elapsed = 0
	ctx.State.Seq++
	rt.pending = ""
	if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
		log.Printf("ai: entity=%s script onEnter: %v", ctx.Entity, err)
		rt.broken = true
	}
}

// fallback is the scripted archetype's safe default: sweep and fire
// when the player is in range.
func (r *scriptRunner) fallback(ctx *AIContext) {
	if !ctx.PlayerFound {
		ctx.Transform.Rotation += sentinelSweepRate * ctx.DT
		return
	}
	toPlayer := ctx.PlayerPos.Sub(ctx.Transform.Pos)
	if toPlayer.Length() > ctx.AI.ApproachRange {
		ctx.Transform.Rotation += sentinelSweepRate * ctx.DT
		return
	}
	ctx.Transform.Rotation = toPlayer.Angle()
	fireSentinel(ctx)
}

func (r *scriptRunner) markBroken(e ecs.Entity, name string) {
	if rt, ok := r.cache[e]; ok && rt != nil {
		rt.broken = true
		return
	}
	r.cache[e] = &scriptRuntime{name: name, broken: true}
}

func (r *scriptRunner) runtime(e ecs.Entity, name string) (*scriptRuntime, error) {
	if rt, ok := r.cache[e]; ok && rt != nil && rt.name == name {
		return rt, nil
	}

	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}

	script := tengo.NewScript(append(src, []byte("\n"+aiLifecycleDispatch)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script: %w", err)
	}

	rt := &scriptRuntime{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		initial:   component.StateID("scan"),
	}
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", rt.initial, noop); err != nil {
		return nil, err
	}
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(compiled.Get("initial_state").String()); s != "" {
			rt.initial = component.StateID(s)
		}
	}

	r.cache[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) runPhase(phase string, current component.StateID, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", string(current)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptEngine(ctx *AIContext, rt *scriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		if name = strings.TrimSpace(name); name == "" {
			return tengo.FalseValue, nil
		}
		rt.pending = component.StateID(name)
		return tengo.TrueValue, nil
	}}

	values["sweep"] = &tengo.UserFunction{Name: "sweep", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ctx.Transform.Rotation += sentinelSweepRate * ctx.DT
		return tengo.UndefinedValue, nil
	}}

	values["player_in_range"] = &tengo.UserFunction{Name: "player_in_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !ctx.PlayerFound {
			return tengo.FalseValue, nil
		}
		if ctx.Transform.Pos.DistanceTo(ctx.PlayerPos) <= ctx.AI.ApproachRange {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["face_player"] = &tengo.UserFunction{Name: "face_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.PlayerFound {
			ctx.Transform.Rotation = ctx.PlayerPos.Sub(ctx.Transform.Pos).Angle()
		}
		return tengo.UndefinedValue, nil
	}}

	values["can_fire"] = &tengo.UserFunction{Name: "can_fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cds, ok := ecs.Get(ctx.World, ctx.Entity, component.CooldownsComponent)
		if ok && cds.Ready("shoot") {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		fireSentinel(ctx)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func fireSentinel(ctx *AIContext) {
	cds, ok := ecs.Get(ctx.World, ctx.Entity, component.CooldownsComponent)
	if !ok || !cds.Ready("shoot") {
		return
	}
	aim := common.FromAngle(ctx.Transform.Rotation)
	muzzle := ctx.Transform.Pos.Add(aim.Scale(20))
	if _, err := entity.NewBullet(ctx.World, muzzle, aim.Scale(ctx.AI.BulletSpeed), ctx.AI.BulletDamage, component.TagEnemyBullet); err == nil {
		cds.Start("shoot", ctx.AI.ShootCooldown*ctx.CadenceScale)
		ctx.World.Events().PushSound("sentinel_shot")
	}
}
