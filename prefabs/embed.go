package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string][]byte{}
)

// Load returns the raw bytes of a prefab file. A file on disk under
// prefabs/ overrides the embedded copy so specs can be edited without a
// rebuild; results are cached until Invalidate is called.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)

	cacheMu.Lock()
	if data, ok := cache[clean]; ok {
		cacheMu.Unlock()
		return data, nil
	}
	cacheMu.Unlock()

	data, err := os.ReadFile(diskPrefabPath(clean))
	if err != nil {
		data, err = PrefabsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}

	cacheMu.Lock()
	cache[clean] = data
	cacheMu.Unlock()
	return data, nil
}

// LoadScript returns the bytes of an embedded scenario script.
func LoadScript(name string) ([]byte, error) {
	clean := name
	if !strings.HasPrefix(clean, "scripts/") {
		clean = "scripts/" + clean
	}
	if filepath.Ext(clean) == "" {
		clean += ".tengo"
	}
	return ScriptsFS.ReadFile(clean)
}

// ScriptNames lists the embedded scenario scripts by basename.
func ScriptNames() []string {
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return names
}

// Invalidate drops a cached prefab (or the whole cache when name is empty)
// so the next Load rereads it. Called by the hot-reload watcher.
func Invalidate(name string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if name == "" {
		cache = map[string][]byte{}
		return
	}
	delete(cache, cleanPrefabPath(name))
}

func cleanPrefabPath(name string) string {
	clean := filepath.Base(name)
	if filepath.Ext(clean) == "" {
		clean += ".yaml"
	}
	return clean
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", clean)
}
