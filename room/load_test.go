package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs/component"
)

func TestLoadAllCatalog(t *testing.T) {
	set, err := LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "crypt_entry", set.Initial)

	for _, id := range []string{"crypt_entry", "great_hall", "boss_vault"} {
		r, ok := set.Get(id)
		require.Truef(t, ok, "room %s missing", id)
		assert.Positive(t, r.Width)
		assert.Positive(t, r.Height)
		assert.Positive(t, r.TileSize)
		for _, d := range r.Doors {
			_, ok := set.Get(d.Target)
			assert.Truef(t, ok, "%s: door target %q not in catalog", id, d.Target)
		}
	}
}

func TestSpawnPositionSides(t *testing.T) {
	r := &Spec{Width: 40, Height: 24, TileSize: 32}

	left := r.SpawnPosition(component.SpawnLeft)
	right := r.SpawnPosition(component.SpawnRight)
	center := r.SpawnPosition(component.SpawnCenter)

	assert.Equal(t, common.Vec2{X: 64, Y: 384}, left)
	assert.Equal(t, common.Vec2{X: 1216, Y: 384}, right)
	assert.Equal(t, common.Vec2{X: 640, Y: 384}, center)
}

func TestWallAt(t *testing.T) {
	r := &Spec{
		Width: 3, Height: 3, TileSize: 32,
		Layout: []string{
			"###",
			"#.#",
			"###",
		},
	}

	assert.True(t, r.WallAt(common.Vec2{X: 16, Y: 16}))
	assert.False(t, r.WallAt(common.Vec2{X: 48, Y: 48}))
	// out of bounds counts as solid
	assert.True(t, r.WallAt(common.Vec2{X: -1, Y: 16}))
	assert.True(t, r.WallAt(common.Vec2{X: 200, Y: 16}))
}

func TestBuildGridMatchesLayout(t *testing.T) {
	r := &Spec{
		Width: 3, Height: 2, TileSize: 32,
		Layout: []string{
			"#.#",
			"...",
		},
	}
	g := r.BuildGrid()
	require.NotNil(t, g)
	assert.True(t, g.Blocked(0, 0))
	assert.False(t, g.Blocked(1, 0))
	assert.True(t, g.Blocked(2, 0))
	assert.False(t, g.Blocked(0, 1))
}

func TestParseSide(t *testing.T) {
	for name, want := range map[string]component.SpawnSide{
		"left":   component.SpawnLeft,
		"right":  component.SpawnRight,
		"center": component.SpawnCenter,
		"":       component.SpawnCenter,
	} {
		got, err := ParseSide(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSide("above")
	assert.Error(t, err)
}
