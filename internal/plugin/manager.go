// Package plugin lets simulation mods register game systems, event hooks, admin commands
// and configs, and loads them from shared object files.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	pluginpkg "plugin"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PluginAPIVersion defines the current plugin API version.
const PluginAPIVersion = "2"

// PluginManager handles loading of plugins from shared object files.
type PluginManager struct {
	// Dir is the directory where plugin .so files are located.
	Dir string

	log *zap.SugaredLogger
	// mu protects LoadPlugins from concurrent execution.
	mu sync.Mutex

	loaded, skipped, failed int
}

// NewPluginManager creates a PluginManager for a given directory.
func NewPluginManager(dir string, log *zap.SugaredLogger) *PluginManager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PluginManager{Dir: dir, log: log}
}

// Stats returns loaded, skipped and failed plugin counts since creation.
func (pm *PluginManager) Stats() (loaded, skipped, failed int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.loaded, pm.skipped, pm.failed
}

// readMeta looks for base.json, base.yaml or base.yml next to the plugin.
func (pm *PluginManager) readMeta(base string) (PluginMeta, bool) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		metaPath := filepath.Join(pm.Dir, base+ext)
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta PluginMeta
		if ext == ".json" {
			err = json.Unmarshal(data, &meta)
		} else {
			err = yaml.Unmarshal(data, &meta)
		}
		if err != nil {
			pm.log.Warnw("failed to parse plugin metadata", "path", metaPath, "err", err)
			continue
		}
		return meta, true
	}
	return PluginMeta{}, false
}

// LoadPlugins loads all plugins in pm.Dir and invokes their Register function.
// Plugins whose metadata declares another API version are skipped.
func (pm *PluginManager) LoadPlugins(reg PluginRegistry) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	entries, err := os.ReadDir(pm.Dir)
	if err != nil {
		pm.failed++
		return fmt.Errorf("cannot read plugin directory %s: %w", pm.Dir, err)
	}
	for _, f := range entries {
		if f.IsDir() || filepath.Ext(f.Name()) != ".so" {
			continue
		}
		base := strings.TrimSuffix(f.Name(), ".so")
		if meta, ok := pm.readMeta(base); ok {
			if meta.Version != PluginAPIVersion {
				pm.log.Infow("skipping plugin: version mismatch", "plugin", meta.Name, "got", meta.Version, "want", PluginAPIVersion)
				pm.skipped++
				continue
			}
			reg.RegisterPluginMeta(meta)
		}

		pluginPath := filepath.Join(pm.Dir, f.Name())
		reg.Emit(HookBeforePluginLoad, pluginPath)

		p, err := pluginpkg.Open(pluginPath)
		if err != nil {
			pm.failed++
			return fmt.Errorf("failed to open plugin %s: %w", pluginPath, err)
		}
		sym, err := p.Lookup("Register")
		if err != nil {
			pm.failed++
			pm.log.Warnw("no Register symbol", "plugin", pluginPath, "err", err)
			continue
		}
		pm.register(reg, sym, base, pluginPath)
	}
	return nil
}

// register invokes the plugin's Register symbol, recovering from panics.
func (pm *PluginManager) register(reg PluginRegistry, sym interface{}, base, pluginPath string) {
	defer func() {
		if r := recover(); r != nil {
			pm.failed++
			pm.log.Errorw("panic in plugin Register", "plugin", pluginPath, "panic", r)
		}
	}()
	registerFunc, ok := sym.(func(PluginRegistry))
	if !ok {
		pm.failed++
		pm.log.Warnw("invalid Register signature", "plugin", pluginPath)
		return
	}
	registerFunc(reg)
	if err := reg.LoadPluginConfig(base, pm.Dir); err != nil {
		pm.failed++
		pm.log.Warnw("failed to load plugin config", "plugin", base, "err", err)
	}
	pm.loaded++
	pm.log.Infow("plugin loaded", "plugin", pluginPath)
	reg.Emit(HookAfterPluginLoad, pluginPath)
}

// UnloadPlugins triggers unload hooks for all loaded plugins.
func (pm *PluginManager) UnloadPlugins(reg PluginRegistry) {
	metas := reg.PluginMetas()
	for _, meta := range metas {
		reg.Emit(HookBeforePluginUnload, meta)
	}
	for _, meta := range metas {
		reg.Emit(HookAfterPluginUnload, meta)
	}
}

// ReloadPlugins unloads existing plugins and reloads them.
func (pm *PluginManager) ReloadPlugins(reg PluginRegistry) error {
	pm.UnloadPlugins(reg)
	reg.ClearPlugins()
	return pm.LoadPlugins(reg)
}
