package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "en", Lang)
	assert.Equal(t, "arts", ScryUnique)
	assert.Equal(t, "released", ScrySorting)
	assert.False(t, ScryAscending)
	assert.False(t, ScryExtras)
	assert.Equal(t, "./data/sets", SetDataDir)
	assert.False(t, TestMode)
}

func TestInitConfigReadsViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("lang", "ja")
	viper.Set("scryfall.extras", true)
	viper.Set("paths.sets", "/tmp/sets")

	InitConfig()

	assert.Equal(t, "ja", Lang)
	assert.True(t, ScryExtras)
	assert.Equal(t, "/tmp/sets", SetDataDir)
}

func TestSetters(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	InitConfig()

	SetLang("de")
	assert.Equal(t, "de", Lang)

	SetTestMode(true)
	assert.True(t, TestMode)
}
