package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is checked before the embedded copies so edited specs and scripts are
// picked up without a rebuild. Empty disables the disk override.
var Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns the named spec file.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript returns the named tengo script. "rank.tengo",
// "scripts/rank.tengo" and "prefabs/scripts/rank.tengo" all name the same
// file.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

func read(fsys embed.FS, clean string) ([]byte, error) {
	if Dir != "" && clean != "" {
		if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return fsys.ReadFile(clean)
}

func cleanPrefabPath(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "prefabs/")
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return path.Join("scripts", s)
}
