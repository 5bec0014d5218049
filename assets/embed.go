package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed sounds
var assetsFS embed.FS

// Context is the process-wide audio context. Ebiten allows exactly one.
var Context = audio.NewContext(44100)

// LoadSound decodes an embedded wav by id and returns a ready player.
func LoadSound(id string) (*audio.Player, error) {
	b, err := assetsFS.ReadFile("sounds/" + id + ".wav")
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", id, err)
	}
	stream, err := wav.DecodeWithSampleRate(Context.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", id, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("buffer sound %s: %w", id, err)
	}
	return Context.NewPlayerFromBytes(data), nil
}
