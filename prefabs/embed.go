package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const scriptDir = "scripts"

// The catalog and behavior scripts ship inside the binary. Any of them can
// be overridden by a file at the same relative path under OverrideDir.
//
//go:embed catalog.yaml scripts/*.tengo
var embedded embed.FS

var OverrideDir = "prefabs"

// Load reads a prefab document such as catalog.yaml.
func Load(name string) ([]byte, error) {
	return read(relative(name))
}

// LoadScript reads a behavior script. The name may be bare or carry a
// scripts/ or prefabs/scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	rel := strings.TrimPrefix(relative(name), scriptDir+"/")
	return read(path.Join(scriptDir, rel))
}

// Dirs lists the override directories, the ones worth watching for edits.
func Dirs() []string {
	return []string{OverrideDir, filepath.Join(OverrideDir, scriptDir)}
}

func relative(name string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "prefabs/")
}

func read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(OverrideDir, filepath.FromSlash(rel)))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("prefabs: read override %s: %w", rel, err)
	}
	return embedded.ReadFile(rel)
}
