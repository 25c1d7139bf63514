// Package templates maps layout classes to template implementations.
//
// The lookup table is assembled once at startup: a base manifest plus
// any number of plugin manifests, merged in load order. Plugins may
// add layouts, add named templates under an existing layout, and
// replace a layout's default template only when their manifest says
// make_default. After Build the table is immutable.
package templates

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lmancini/MTG-Proxyshop/internal/layout"
)

// Template executes the render step for one card.
type Template interface {
	Execute() error
}

// Factory constructs a template bound to a layout object and the
// source art file.
type Factory func(data *layout.Data, file string) Template

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a template implementation available under name.
// Plugins call this from their init path before Build.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

func lookup(name string) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// LayoutTemplates names the templates available for one layout class.
type LayoutTemplates struct {
	Default string            `yaml:"default"`
	Other   map[string]string `yaml:"other"`
}

// Manifest is one source of layout-to-template mappings, either the
// built-in base table or a plugin's template_map.yaml.
type Manifest struct {
	// MakeDefault permits this manifest to replace the default
	// template of a layout the base table already covers.
	MakeDefault bool                       `yaml:"make_default"`
	Layouts     map[string]LayoutTemplates `yaml:"layouts"`
}

// Selector is the merged, immutable lookup table.
type Selector struct {
	layouts map[string]LayoutTemplates
}

// Build merges plugin manifests over the base table.
func Build(base Manifest, plugins ...Manifest) *Selector {
	merged := make(map[string]LayoutTemplates, len(base.Layouts))
	for class, lt := range base.Layouts {
		merged[class] = cloneLayout(lt)
	}

	for _, plugin := range plugins {
		for class, lt := range plugin.Layouts {
			existing, ok := merged[class]
			if !ok {
				// New layout class, taken wholesale.
				merged[class] = cloneLayout(lt)
				continue
			}
			for name, tmpl := range lt.Other {
				existing.Other[name] = tmpl
			}
			if lt.Default != "" && plugin.MakeDefault {
				existing.Default = lt.Default
			}
			merged[class] = existing
		}
	}

	return &Selector{layouts: merged}
}

// Get resolves a template factory for the given template name and
// layout class. An unknown layout class yields nil; an unknown or
// empty template name falls back to the layout's default.
func (s *Selector) Get(templateName, layoutClass string) Factory {
	lt, ok := s.layouts[layoutClass]
	if !ok {
		return nil
	}
	name := lt.Default
	if templateName != "" {
		if n, ok := lt.Other[templateName]; ok {
			name = n
		}
	}
	return lookup(name)
}

func cloneLayout(lt LayoutTemplates) LayoutTemplates {
	other := make(map[string]string, len(lt.Other))
	for k, v := range lt.Other {
		other[k] = v
	}
	return LayoutTemplates{Default: lt.Default, Other: other}
}

// LoadPluginManifests reads template_map.yaml from every directory
// under pluginsDir. Unreadable manifests are logged and skipped; a
// missing plugins directory is not an error.
func LoadPluginManifests(pluginsDir string) []Manifest {
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read plugins directory", "dir", pluginsDir, "error", err)
		}
		return nil
	}

	var manifests []Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(pluginsDir, entry.Name(), "template_map.yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			slog.Warn("Skipping malformed plugin manifest", "plugin", entry.Name(), "error", err)
			continue
		}
		slog.Debug("Loaded plugin manifest", "plugin", entry.Name(), "layouts", len(m.Layouts))
		manifests = append(manifests, m)
	}
	return manifests
}

// DefaultManifest maps every built-in layout class to the built-in
// default template.
func DefaultManifest() Manifest {
	classes := []string{
		"normal", "split", "flip", "adventure", "leveler", "class",
		"mutate", "planeswalker", "saga", "battle",
		"transform", "mdfc", "pw_tf", "pw_mdfc", "basic",
	}
	layouts := make(map[string]LayoutTemplates, len(classes))
	for _, class := range classes {
		layouts[class] = LayoutTemplates{Default: "default", Other: map[string]string{}}
	}
	return Manifest{Layouts: layouts}
}
