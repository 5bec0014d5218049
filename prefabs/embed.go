package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a prefab yaml by name, preferring an on-disk copy so the
// watcher can hot-reload edits during development.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript reads an embedded tengo script by name.
func LoadScript(name string) ([]byte, error) {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	if !strings.HasPrefix(s, "scripts/") {
		s = "scripts/" + s
	}
	if data, err := os.ReadFile(diskPath(s)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(s)
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "prefabs/")
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
