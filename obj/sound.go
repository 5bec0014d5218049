package obj

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/undercroft/assets"
)

// SoundBank lazily loads players by id and plays them fire-and-forget.
// A missing asset logs once and the id becomes a silent no-op.
type SoundBank struct {
	players map[string]*audio.Player
	missing map[string]bool
	muted   bool
}

func NewSoundBank() *SoundBank {
	return &SoundBank{
		players: make(map[string]*audio.Player),
		missing: make(map[string]bool),
	}
}

// SetMuted silences playback without unloading anything.
func (b *SoundBank) SetMuted(muted bool) {
	b.muted = muted
}

// Play starts the sound from the beginning. Restarting an in-flight
// player is intentional; rapid fire retriggers rather than stacking.
func (b *SoundBank) Play(id string) {
	if b.muted || b.missing[id] {
		return
	}
	player, ok := b.players[id]
	if !ok {
		var err error
		player, err = assets.LoadSound(id)
		if err != nil {
			log.Printf("sound %s unavailable: %v", id, err)
			b.missing[id] = true
			return
		}
		b.players[id] = player
	}
	player.Rewind()
	player.Play()
}
