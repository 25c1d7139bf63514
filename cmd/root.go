// Package cmd wires the proxyshop CLI: config, logging, template
// plugins and the render pipeline.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lmancini/MTG-Proxyshop/internal/cache"
	"github.com/lmancini/MTG-Proxyshop/internal/config"
	"github.com/lmancini/MTG-Proxyshop/internal/console"
	"github.com/lmancini/MTG-Proxyshop/internal/fileutil"
	"github.com/lmancini/MTG-Proxyshop/internal/render"
	"github.com/lmancini/MTG-Proxyshop/internal/scryfall"
	"github.com/lmancini/MTG-Proxyshop/internal/setcache"
	"github.com/lmancini/MTG-Proxyshop/internal/templates"
)

// CLI represents the complete command structure for the proxyshop application
type CLI struct {
	// Global flags
	Lang    string `help:"Card language to fetch (e.g. en, ja)"`
	NoCache bool   `help:"Bypass the card lookup cache"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g. 720h for 30 days)" default:"720h"`

	Render RenderCmd `cmd:"" help:"Render proxies from art files"`
	Cache  CacheCmd  `cmd:"" help:"Manage the lookup cache"`
}

// RenderCmd represents the render command
type RenderCmd struct {
	Files    []string `arg:"" help:"Art files or directories to render (Name (Artist) [SET].ext)"`
	Template string   `short:"t" help:"Named template to use; empty selects each layout's default"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Clear cached API lookups"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("proxyshop"),
		kong.Description("Render MTG proxies from card art using Scryfall data."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(&cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// Run renders each art file in turn. An unsupported layout or missing
// template stops the run after a blocking prompt, matching the
// interactive tool this is: a half-rendered batch with the wrong
// template helps nobody. Not-found cards just skip the file.
func (r *RenderCmd) Run(cli *CLI) error {
	job := &render.Job{
		Client: scryfall.NewClient(
			scryfall.WithSetStore(setcache.New(config.SetDataDir)),
		),
		Selector:     buildSelector(),
		TemplateName: r.Template,
		UseCache:     !cli.NoCache,
	}

	files, err := fileutil.ExpandArtFiles(r.Files)
	if err != nil {
		return err
	}

	ctx := context.Background()
	failed := 0
	for _, file := range files {
		err := job.Render(ctx, file)
		switch {
		case err == nil:
			continue
		case render.IsUnsupportedLayout(err) || render.IsNoTemplate(err):
			console.AwaitExit("%v", err)
			return err
		case scryfall.IsNotFound(err):
			console.Warn("%v", err)
			failed++
		default:
			slog.Error("Render failed", "file", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to render", failed, len(files))
	}
	return nil
}

// buildSelector merges the built-in template table with every plugin
// manifest found under the plugins directory.
func buildSelector() *templates.Selector {
	plugins := templates.LoadPluginManifests(config.PluginsDir)
	return templates.Build(templates.DefaultManifest(), plugins...)
}

func initConfig() {
	viper.SetDefault("lang", "en")
	viper.SetDefault("scryfall.unique", "arts")
	viper.SetDefault("scryfall.sorting", "released")
	viper.SetDefault("scryfall.ascending", false)
	viper.SetDefault("scryfall.extras", false)
	viper.SetDefault("paths.sets", "./data/sets")
	viper.SetDefault("paths.plugins", "./plugins")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.Lang != "" {
		config.SetLang(cli.Lang)
	}

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
