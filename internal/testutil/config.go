// Package testutil provides common test utilities for the proxyshop project.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/lmancini/MTG-Proxyshop/internal/cache"
	"github.com/lmancini/MTG-Proxyshop/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	Lang          string
	ScryUnique    string
	ScrySorting   string
	ScryAscending bool
	ScryExtras    bool
	SetDataDir    string
	PluginsDir    string
	TestMode      bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		Lang:          config.Lang,
		ScryUnique:    config.ScryUnique,
		ScrySorting:   config.ScrySorting,
		ScryAscending: config.ScryAscending,
		ScryExtras:    config.ScryExtras,
		SetDataDir:    config.SetDataDir,
		PluginsDir:    config.PluginsDir,
		TestMode:      config.TestMode,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.Lang = state.Lang
	config.ScryUnique = state.ScryUnique
	config.ScrySorting = state.ScrySorting
	config.ScryAscending = state.ScryAscending
	config.ScryExtras = state.ScryExtras
	config.SetDataDir = state.SetDataDir
	config.PluginsDir = state.PluginsDir
	config.TestMode = state.TestMode
}

// SetTestConfig resets viper, applies test-friendly defaults (English,
// test mode on so console prompts stay quiet) and schedules restoration
// when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.Lang = "en"
	config.ScryUnique = "arts"
	config.ScrySorting = "released"
	config.ScryAscending = false
	config.ScryExtras = false
	config.TestMode = true

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetupTestCache points the global lookup cache at a fresh sqlite file
// under the test's temp directory and resets the singleton both now
// and on cleanup.
func SetupTestCache(t *testing.T) {
	t.Helper()

	viper.Set("cache.dbfile", filepath.Join(t.TempDir(), "cache.db"))
	viper.Set("cache.ttl", "24h")

	if err := cache.ResetGlobalCache(); err != nil {
		t.Fatalf("failed to reset cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })
}
