package save

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistRestoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	g := NewGateway(path)

	in := Snapshot{
		Health:    72,
		MaxHealth: 100,
		Energy:    18,
		MaxEnergy: 50,
		KillCount: 9,
		RoomID:    "great_hall",
	}
	require.NoError(t, g.Persist(in))

	out, ok, err := g.Restore()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.Health, out.Health)
	assert.Equal(t, in.MaxHealth, out.MaxHealth)
	assert.Equal(t, in.Energy, out.Energy)
	assert.Equal(t, in.MaxEnergy, out.MaxEnergy)
	assert.Equal(t, in.KillCount, out.KillCount)
	assert.Equal(t, in.RoomID, out.RoomID)
	assert.False(t, out.Timestamp.IsZero(), "persist should stamp the snapshot")
}

func TestRestoreMissingFileIsNotAnError(t *testing.T) {
	g := NewGateway(filepath.Join(t.TempDir(), "never-written.json"))
	_, ok, err := g.Restore()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, ok, err := NewGateway(path).Restore()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPersistCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "save.json")
	require.NoError(t, NewGateway(path).Persist(Snapshot{RoomID: "crypt_entry"}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestPersistLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	require.NoError(t, NewGateway(path).Persist(Snapshot{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "save.json", entries[0].Name())
}
