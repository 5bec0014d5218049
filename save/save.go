// Package save is the persistence gateway: a minimal progress snapshot
// written to disk. Absence of a snapshot is a normal state, not an
// error.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the whole persisted contract.
type Snapshot struct {
	Health    float64   `json:"health"`
	MaxHealth float64   `json:"maxHealth"`
	Energy    float64   `json:"energy"`
	MaxEnergy float64   `json:"maxEnergy"`
	KillCount int       `json:"killCount"`
	RoomID    string    `json:"currentRoomId"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultPath places the snapshot under the user config dir, falling
// back to the working directory when none is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "undercroft_save.json"
	}
	return filepath.Join(dir, "undercroft", "save.json")
}

// Gateway reads and writes the snapshot file.
type Gateway struct {
	path string
}

func NewGateway(path string) *Gateway {
	return &Gateway{path: path}
}

// Persist writes the snapshot, stamping Timestamp if unset.
func (g *Gateway) Persist(s Snapshot) error {
	if g == nil || g.path == "" {
		return errors.New("save: gateway not configured")
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save: marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(g.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save: create save dir: %w", err)
		}
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("save: replace snapshot: %w", err)
	}
	return nil
}

// Restore loads the snapshot. The second return is false when no
// snapshot exists, meaning a new game rather than a failure.
func (g *Gateway) Restore() (Snapshot, bool, error) {
	var s Snapshot
	if g == nil || g.path == "" {
		return s, false, errors.New("save: gateway not configured")
	}
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, false, nil
	}
	if err != nil {
		return s, false, fmt.Errorf("save: read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, false, fmt.Errorf("save: unmarshal snapshot: %w", err)
	}
	return s, true, nil
}
