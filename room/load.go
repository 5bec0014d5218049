package room

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rooms.yaml
var roomsFS embed.FS

type roomFile struct {
	Initial string  `yaml:"initial"`
	Rooms   []*Spec `yaml:"rooms"`
}

// Set is the loaded room catalog.
type Set struct {
	Initial string
	byID    map[string]*Spec
}

// LoadAll decodes the embedded room catalog and validates door targets.
func LoadAll() (*Set, error) {
	data, err := roomsFS.ReadFile("rooms.yaml")
	if err != nil {
		return nil, fmt.Errorf("room: read rooms.yaml: %w", err)
	}
	var f roomFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("room: unmarshal rooms.yaml: %w", err)
	}
	if len(f.Rooms) == 0 {
		return nil, fmt.Errorf("room: rooms.yaml defines no rooms")
	}

	set := &Set{Initial: f.Initial, byID: make(map[string]*Spec, len(f.Rooms))}
	for _, r := range f.Rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("room: room without id")
		}
		if r.TileSize <= 0 {
			r.TileSize = 32
		}
		if _, dup := set.byID[r.ID]; dup {
			return nil, fmt.Errorf("room: duplicate room id %q", r.ID)
		}
		set.byID[r.ID] = r
	}
	if set.Initial == "" {
		set.Initial = f.Rooms[0].ID
	}

	for _, r := range f.Rooms {
		for _, d := range r.Doors {
			if _, ok := set.byID[d.Target]; !ok {
				return nil, fmt.Errorf("room: %s: door targets unknown room %q", r.ID, d.Target)
			}
			if _, err := ParseSide(d.Side); err != nil {
				return nil, fmt.Errorf("room: %s: %w", r.ID, err)
			}
		}
	}
	return set, nil
}

// Get returns a room by id.
func (s *Set) Get(id string) (*Spec, bool) {
	r, ok := s.byID[id]
	return r, ok
}
