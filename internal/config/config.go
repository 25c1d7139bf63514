package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// Lang is the preferred Scryfall card language (e.g. "en", "ja").
	Lang string
	// ScryUnique is the uniqueness mode passed to card searches ("arts", "prints", "cards").
	ScryUnique string
	// ScrySorting is the sort order passed to card searches ("released", "set", ...).
	ScrySorting string
	// ScryAscending controls the search sort direction.
	ScryAscending bool
	// ScryExtras includes extras (promos, funny cards) in card searches.
	ScryExtras bool
	// SetDataDir is where merged set records are persisted, one JSON file per set.
	SetDataDir string
	// PluginsDir holds plugin folders carrying template manifests.
	PluginsDir string
	// TestMode suppresses interactive console output (warnings, prompts).
	TestMode bool
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("lang", "en")
	viper.SetDefault("scryfall.unique", "arts")
	viper.SetDefault("scryfall.sorting", "released")
	viper.SetDefault("scryfall.ascending", false)
	viper.SetDefault("scryfall.extras", false)
	viper.SetDefault("paths.sets", "./data/sets")
	viper.SetDefault("paths.plugins", "./plugins")

	// Get values from viper
	Lang = viper.GetString("lang")
	ScryUnique = viper.GetString("scryfall.unique")
	ScrySorting = viper.GetString("scryfall.sorting")
	ScryAscending = viper.GetBool("scryfall.ascending")
	ScryExtras = viper.GetBool("scryfall.extras")
	SetDataDir = viper.GetString("paths.sets")
	PluginsDir = viper.GetString("paths.plugins")
	TestMode = viper.GetBool("testmode")
}

// SetLang sets the preferred card language
func SetLang(lang string) {
	Lang = lang
}

// SetTestMode toggles interactive console output
func SetTestMode(enabled bool) {
	TestMode = enabled
}
