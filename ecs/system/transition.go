package system

import (
	"fmt"
	"log"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/obj"
	"github.com/milk9111/undercroft/pathfind"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/room"
	"github.com/milk9111/undercroft/save"
)

const (
	fadeDuration  = 0.35
	slowMoScale   = 0.4
	camFollowRate = 5.0
	camDeadzone   = 24.0
	camLookahead  = 60.0
)

// TransitionPhase is the orchestrator's own little state machine.
type TransitionPhase int

const (
	TransitionIdle TransitionPhase = iota
	TransitionFadeOut
	TransitionSwapping
	TransitionFadeIn
)

// TransitionSystem sequences a room swap: snapshot progress, fade out
// under slow motion, tear down the old room's entities, populate the
// new room, place the player, snap the camera, fade back in.
type TransitionSystem struct {
	clock   *ecs.Clock
	cam     *obj.Camera
	rooms   *room.Set
	spec    *prefabs.GameSpec
	gateway *save.Gateway
	ai      *AISystem

	current *room.Spec
	grid    *pathfind.Grid

	phase       TransitionPhase
	fadeElapsed float64
	alpha       float64

	progress save.Snapshot
}

func NewTransitionSystem(clock *ecs.Clock, cam *obj.Camera, rooms *room.Set, spec *prefabs.GameSpec, gateway *save.Gateway) *TransitionSystem {
	return &TransitionSystem{
		clock:   clock,
		cam:     cam,
		rooms:   rooms,
		spec:    spec,
		gateway: gateway,
	}
}

// SetAISystem breaks the construction cycle: the AI system needs the
// grid provider, the orchestrator needs to reset script runtimes.
func (s *TransitionSystem) SetAISystem(ai *AISystem) {
	s.ai = ai
}

// CurrentRoom returns the active room definition.
func (s *TransitionSystem) CurrentRoom() *room.Spec {
	return s.current
}

// Grid returns the active room's pathfinding grid; nil between rooms.
func (s *TransitionSystem) Grid() *pathfind.Grid {
	return s.grid
}

// FadeAlpha is sampled by the renderer for the fade overlay.
func (s *TransitionSystem) FadeAlpha() float64 {
	return s.alpha
}

// Phase exposes the orchestrator state, mostly for tests.
func (s *TransitionSystem) Phase() TransitionPhase {
	return s.phase
}

// Progress returns the current progress snapshot (stats carried by
// value across swaps).
func (s *TransitionSystem) Progress() save.Snapshot {
	return s.progress
}

// EnterInitial starts a run: restored from the save gateway when a
// snapshot exists, a fresh game otherwise.
func (s *TransitionSystem) EnterInitial(w *ecs.World) error {
	startRoom := s.rooms.Initial
	if snap, ok, err := s.gateway.Restore(); err != nil {
		log.Printf("transition: restore failed, starting fresh: %v", err)
		s.progress = s.freshProgress()
	} else if ok {
		s.progress = snap
		if _, exists := s.rooms.Get(snap.RoomID); exists {
			startRoom = snap.RoomID
		}
	} else {
		s.progress = s.freshProgress()
	}

	if err := s.enterRoom(w, startRoom, component.SpawnCenter); err != nil {
		return err
	}
	s.phase = TransitionFadeIn
	s.fadeElapsed = 0
	s.alpha = 1
	return nil
}

// Begin starts a transition through a door. No-op while one is already
// in flight.
func (s *TransitionSystem) Begin(w *ecs.World, targetRoom string, side component.SpawnSide) {
	if s.phase != TransitionIdle {
		return
	}
	if _, ok := s.rooms.Get(targetRoom); !ok {
		log.Printf("transition: unknown room %q, ignoring door", targetRoom)
		return
	}

	s.captureProgress(w)
	s.progress.RoomID = targetRoom

	s.phase = TransitionFadeOut
	s.fadeElapsed = 0
	s.alpha = 0
	s.clock.SlowMotion(fadeDuration, slowMoScale)
	w.Events().PushSound("door")

	s.clock.After(fadeDuration, func() {
		s.swap(w, targetRoom, side)
	})
}

// Respawn restarts the run at the initial room with fresh stats after
// player death. Kill count survives; it is run progress, not health.
func (s *TransitionSystem) Respawn(w *ecs.World) {
	if s.phase != TransitionIdle {
		return
	}
	kills := s.progress.KillCount
	s.progress = s.freshProgress()
	s.progress.KillCount = kills

	s.phase = TransitionFadeOut
	s.fadeElapsed = 0
	s.clock.After(fadeDuration, func() {
		s.swap(w, s.rooms.Initial, component.SpawnCenter)
	})
}

func (s *TransitionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()

	switch s.phase {
	case TransitionFadeOut:
		s.fadeElapsed += dt
		s.alpha = min(s.fadeElapsed/fadeDuration, 1)
	case TransitionFadeIn:
		s.fadeElapsed += dt
		s.alpha = 1 - min(s.fadeElapsed/fadeDuration, 1)
		if s.fadeElapsed >= fadeDuration {
			s.alpha = 0
			s.phase = TransitionIdle
		}
	}
}

// swap is the teardown/rebuild step, fired by the scheduler once the
// fade-out completes.
func (s *TransitionSystem) swap(w *ecs.World, targetRoom string, side component.SpawnSide) {
	s.phase = TransitionSwapping
	s.alpha = 1

	if err := s.enterRoom(w, targetRoom, side); err != nil {
		log.Printf("transition: enter %s: %v", targetRoom, err)
	}

	s.phase = TransitionFadeIn
	s.fadeElapsed = 0

	s.progress.RoomID = targetRoom
	if err := s.gateway.Persist(s.progress); err != nil {
		log.Printf("transition: autosave: %v", err)
	}
}

// enterRoom clears the registry, populates the target room, places the
// player, and reinitializes the camera. The invariant after this call:
// no entity from the previous room exists.
func (s *TransitionSystem) enterRoom(w *ecs.World, roomID string, side component.SpawnSide) error {
	target, ok := s.rooms.Get(roomID)
	if !ok {
		return fmt.Errorf("transition: unknown room %q", roomID)
	}

	w.Clear()
	if s.ai != nil {
		s.ai.ResetScripts()
	}

	s.current = target
	s.grid = target.BuildGrid()

	if err := entity.PopulateRoom(w, target, s.spec); err != nil {
		return err
	}

	spawnPos := target.SpawnPosition(side)
	player, err := entity.NewPlayer(w, &s.spec.Player, spawnPos)
	if err != nil {
		return err
	}
	s.applyProgress(w, player)

	// camera: snap, then reconfigure follow for the new room
	s.cam.SetBounds(0, 0, target.PixelWidth(), target.PixelHeight())
	s.cam.Configure(camFollowRate, camDeadzone)
	s.cam.SetLookaheadFacing(camLookahead)
	s.cam.SnapTo(spawnPos)
	return nil
}

// captureProgress snapshots the player's run stats by value.
func (s *TransitionSystem) captureProgress(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, player, component.HealthComponent); ok {
		s.progress.Health = hp.Current
		s.progress.MaxHealth = hp.Max
	}
	if en, ok := ecs.Get(w, player, component.EnergyComponent); ok {
		s.progress.Energy = en.Current
		s.progress.MaxEnergy = en.Max
	}
	if stats, ok := ecs.Get(w, player, component.PlayerStatsComponent); ok {
		s.progress.KillCount = stats.KillCount
	}
}

// applyProgress restores snapshot stats onto a freshly spawned player.
func (s *TransitionSystem) applyProgress(w *ecs.World, player ecs.Entity) {
	if hp, ok := ecs.Get(w, player, component.HealthComponent); ok {
		if s.progress.MaxHealth > 0 {
			hp.Max = s.progress.MaxHealth
		}
		if s.progress.Health > 0 {
			hp.Current = s.progress.Health
		}
	}
	if en, ok := ecs.Get(w, player, component.EnergyComponent); ok {
		if s.progress.MaxEnergy > 0 {
			en.Max = s.progress.MaxEnergy
		}
		en.Current = min(s.progress.Energy, en.Max)
	}
	if stats, ok := ecs.Get(w, player, component.PlayerStatsComponent); ok {
		stats.KillCount = s.progress.KillCount
	}
}

func (s *TransitionSystem) freshProgress() save.Snapshot {
	return save.Snapshot{
		Health:    s.spec.Player.MaxHealth,
		MaxHealth: s.spec.Player.MaxHealth,
		Energy:    s.spec.Player.MaxEnergy,
		MaxEnergy: s.spec.Player.MaxEnergy,
		RoomID:    s.rooms.Initial,
	}
}
