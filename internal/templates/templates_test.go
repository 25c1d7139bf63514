package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmancini/MTG-Proxyshop/internal/layout"
)

type fakeTemplate struct{ name string }

func (f *fakeTemplate) Execute() error { return nil }

func registerFake(t *testing.T, name string) {
	t.Helper()
	Register(name, func(data *layout.Data, file string) Template {
		return &fakeTemplate{name: name}
	})
}

func TestGetFallsBackToDefault(t *testing.T) {
	registerFake(t, "default")

	s := Build(DefaultManifest())

	f := s.Get("nonexistent", "normal")
	require.NotNil(t, f)
	tmpl := f(&layout.Data{}, "x.png").(*fakeTemplate)
	assert.Equal(t, "default", tmpl.name)
}

func TestGetUnknownLayoutClass(t *testing.T) {
	s := Build(DefaultManifest())
	assert.Nil(t, s.Get("default", "scheme"))
}

func TestPluginAddsNamedTemplate(t *testing.T) {
	registerFake(t, "default")
	registerFake(t, "showcase-impl")

	plugin := Manifest{
		Layouts: map[string]LayoutTemplates{
			"normal": {Other: map[string]string{"showcase": "showcase-impl"}},
		},
	}
	s := Build(DefaultManifest(), plugin)

	f := s.Get("showcase", "normal")
	require.NotNil(t, f)
	assert.Equal(t, "showcase-impl", f(&layout.Data{}, "x.png").(*fakeTemplate).name)

	// Other layouts keep the built-in default.
	f = s.Get("showcase", "saga")
	require.NotNil(t, f)
	assert.Equal(t, "default", f(&layout.Data{}, "x.png").(*fakeTemplate).name)
}

func TestPluginDefaultOverrideRequiresPermission(t *testing.T) {
	registerFake(t, "default")
	registerFake(t, "fancy")

	plugin := Manifest{
		Layouts: map[string]LayoutTemplates{
			"normal": {Default: "fancy"},
		},
	}

	// Without make_default the base default stays.
	s := Build(DefaultManifest(), plugin)
	f := s.Get("", "normal")
	require.NotNil(t, f)
	assert.Equal(t, "default", f(&layout.Data{}, "x.png").(*fakeTemplate).name)

	// With make_default the plugin wins.
	plugin.MakeDefault = true
	s = Build(DefaultManifest(), plugin)
	f = s.Get("", "normal")
	require.NotNil(t, f)
	assert.Equal(t, "fancy", f(&layout.Data{}, "x.png").(*fakeTemplate).name)
}

func TestPluginNewLayoutClass(t *testing.T) {
	registerFake(t, "token-impl")

	plugin := Manifest{
		Layouts: map[string]LayoutTemplates{
			"token": {Default: "token-impl"},
		},
	}
	s := Build(DefaultManifest(), plugin)

	f := s.Get("", "token")
	require.NotNil(t, f)
	assert.Equal(t, "token-impl", f(&layout.Data{}, "x.png").(*fakeTemplate).name)
}

func TestBuildDoesNotMutateBase(t *testing.T) {
	base := DefaultManifest()
	plugin := Manifest{
		MakeDefault: true,
		Layouts: map[string]LayoutTemplates{
			"normal": {Default: "fancy", Other: map[string]string{"x": "y"}},
		},
	}
	Build(base, plugin)

	assert.Equal(t, "default", base.Layouts["normal"].Default)
	assert.Empty(t, base.Layouts["normal"].Other)
}

func TestLoadPluginManifests(t *testing.T) {
	dir := t.TempDir()
	pluginDir := filepath.Join(dir, "myplugin")
	require.NoError(t, os.MkdirAll(pluginDir, 0755))

	manifest := `
make_default: true
layouts:
  normal:
    default: fancy
    other:
      showcase: showcase-impl
`
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "template_map.yaml"), []byte(manifest), 0644))

	// A plugin dir without a manifest is skipped silently.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	manifests := LoadPluginManifests(dir)
	require.Len(t, manifests, 1)
	assert.True(t, manifests[0].MakeDefault)
	assert.Equal(t, "fancy", manifests[0].Layouts["normal"].Default)
	assert.Equal(t, "showcase-impl", manifests[0].Layouts["normal"].Other["showcase"])
}

func TestLoadPluginManifestsMissingDir(t *testing.T) {
	assert.Nil(t, LoadPluginManifests(filepath.Join(t.TempDir(), "nope")))
}
