package main

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/system"
	"github.com/milk9111/undercroft/obj"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/room"
	"github.com/milk9111/undercroft/save"
)

type Game struct {
	world *ecs.World
	clock *ecs.Clock
	cam   *obj.Camera
	input *obj.Input

	trans     *system.TransitionSystem
	aiSys     *system.AISystem
	playerSys *system.PlayerControllerSystem
	deathSys  *system.DeathSystem
	render    *system.RenderSystem
	particles *obj.Particles
	sounds    *obj.SoundBank

	paused  bool
	muted   bool
	pauseUI *ebitenui.UI

	reloadRequested atomic.Bool

	showDebug bool
}

func NewGame() (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	rooms, err := room.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	world := ecs.NewWorld()
	clock := ecs.NewClock(60)
	cam := obj.NewCamera(common.BaseWidth, common.BaseHeight, 1)
	input := obj.NewInput(cam)
	gateway := save.NewGateway(save.DefaultPath())

	sounds := obj.NewSoundBank()
	particles := obj.NewParticles(rand.New(rand.NewSource(rand.Int63())))

	trans := system.NewTransitionSystem(clock, cam, rooms, spec, gateway)
	combat := system.NewCombat(clock, spec.Player.InvulnFrames)
	aiSys := system.NewAISystem(clock, trans.Grid, combat)
	trans.SetAISystem(aiSys)

	playerSys := system.NewPlayerControllerSystem(input, &spec.Player)
	deathSys := system.NewDeathSystem(clock, trans, spec.Loot, rand.New(rand.NewSource(rand.Int63())))

	collisions := system.NewCollisionSystem()
	system.RegisterCombatRules(collisions, combat, trans)

	g := &Game{
		world:     world,
		clock:     clock,
		cam:       cam,
		input:     input,
		trans:     trans,
		aiSys:     aiSys,
		playerSys: playerSys,
		deathSys:  deathSys,
		particles: particles,
		sounds:    sounds,
	}

	// frame order: scheduled callbacks fire in clock.Step, then intent,
	// then movement against the room, then resolution, then presentation
	world.AddSystem(playerSys)
	world.AddSystem(aiSys)
	world.AddSystem(system.NewBossSystem())
	world.AddSystem(system.NewMovementSystem(trans.CurrentRoom))
	world.AddSystem(system.NewTTLSystem())
	world.AddSystem(system.NewCooldownSystem())
	world.AddSystem(system.NewInvulnSystem())
	world.AddSystem(collisions)
	world.AddSystem(deathSys)
	world.AddSystem(trans)
	world.AddSystem(system.NewCameraSystem(cam))
	world.AddSystem(system.NewVisualSystem(clock))
	world.AddSystem(system.NewFeedbackSystem(sounds, particles))

	g.render = system.NewRenderSystem(cam, trans, particles)

	if err := trans.EnterInitial(world); err != nil {
		return nil, fmt.Errorf("enter initial room: %w", err)
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.input.KeyPressedThisFrame("pause") {
		g.paused = !g.paused
		if g.paused {
			g.pauseUI = NewPauseUI(g)
		}
	}
	if g.paused {
		if g.pauseUI != nil {
			g.pauseUI.Update()
		}
		return nil
	}

	if g.input.KeyPressedThisFrame("debug") {
		g.showDebug = !g.showDebug
	}
	if g.input.KeyPressedThisFrame("mute") {
		g.muted = !g.muted
		g.sounds.SetMuted(g.muted)
	}
	if g.reloadRequested.Swap(false) {
		g.applyTuning()
	}

	dt := g.clock.Step()
	g.world.Update(dt)

	// cosmetic layers run on wall-clock step time so they keep moving
	// through freeze frames
	g.particles.Update(g.clock.StepDT())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.showDebug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  sim %.1fs",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.clock.Elapsed()))
	}

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) killCount() int {
	player, ok := ecs.First(g.world, component.PlayerTagComponent)
	if !ok {
		return g.trans.Progress().KillCount
	}
	if stats, ok := ecs.Get(g.world, player, component.PlayerStatsComponent); ok {
		return stats.KillCount
	}
	return 0
}

// RequestTuningReload marks the prefab files dirty. Safe to call from
// any goroutine; the reload itself happens on the game loop.
func (g *Game) RequestTuningReload() {
	g.reloadRequested.Store(true)
}

// applyTuning re-reads the prefab files and pushes the new values into
// the systems that consume them live. Entities already spawned keep the
// tuning they were built with.
func (g *Game) applyTuning() {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Printf("tuning reload rejected: %v", err)
		return
	}
	g.playerSys.SetSpec(&spec.Player)
	g.deathSys.SetLoot(spec.Loot)
	g.aiSys.ResetScripts()
	log.Println("tuning reloaded")
}
