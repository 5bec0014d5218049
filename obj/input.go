package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/undercroft/common"
)

// Input implements the discrete input predicates the simulation polls.
// Pointer positions are translated into world space through the camera.
type Input struct {
	cam  *Camera
	keys map[string]ebiten.Key
}

func NewInput(cam *Camera) *Input {
	return &Input{
		cam: cam,
		keys: map[string]ebiten.Key{
			"up":       ebiten.KeyW,
			"down":     ebiten.KeyS,
			"left":     ebiten.KeyA,
			"right":    ebiten.KeyD,
			"interact": ebiten.KeyE,
			"pause":    ebiten.KeyEscape,
			"debug":    ebiten.KeyF3,
			"mute":     ebiten.KeyM,
		},
	}
}

func (i *Input) KeyHeld(id string) bool {
	k, ok := i.keys[id]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

func (i *Input) KeyPressedThisFrame(id string) bool {
	k, ok := i.keys[id]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(k)
}

func (i *Input) PointerPressedThisFrame() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (i *Input) PointerHeld() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (i *Input) PointerWorldPosition() common.Vec2 {
	mx, my := ebiten.CursorPosition()
	if i.cam == nil {
		return common.Vec2{X: float64(mx), Y: float64(my)}
	}
	tl := i.cam.ViewTopLeft()
	zoom := i.cam.Zoom()
	if zoom == 0 {
		zoom = 1
	}
	return common.Vec2{
		X: tl.X + float64(mx)/zoom,
		Y: tl.Y + float64(my)/zoom,
	}
}
