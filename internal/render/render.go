// Package render coordinates one render job: parse the art file name,
// resolve card and set data, build the layout object, select a
// template and execute it.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lmancini/MTG-Proxyshop/internal/cardfile"
	"github.com/lmancini/MTG-Proxyshop/internal/layout"
	"github.com/lmancini/MTG-Proxyshop/internal/scryfall"
	"github.com/lmancini/MTG-Proxyshop/internal/templates"
)

// cardCountPlaceholder stands in when neither provider knows the
// set's size.
const cardCountPlaceholder = "XXX"

// Job renders art files with one client and one template table. Jobs
// may run concurrently; the client's rate limiter is shared state.
type Job struct {
	Client       *scryfall.Client
	Selector     *templates.Selector
	TemplateName string // empty selects each layout's default
	UseCache     bool   // route card lookups through the sqlite cache
}

// Render runs the full pipeline for one art file. Failures come back
// as typed errors (*scryfall.CardError, *UnsupportedLayoutError,
// *NoTemplateError); none of them abort anything beyond this job
// unless the caller chooses to.
func (j *Job) Render(ctx context.Context, file string) error {
	start := time.Now()
	details := cardfile.Parse(file)

	var data *layout.Data
	if layout.IsBasicLand(details.Name) {
		// Basic lands never need the API.
		data = layout.BasicLand(details.Name, details.Artist, details.Set)
	} else {
		card, err := j.resolveCard(ctx, details)
		if err != nil {
			return err
		}

		data, err = layout.FromCard(card, details.Name)
		if err != nil {
			return &UnsupportedLayoutError{Layout: card.Layout}
		}

		// An artist tag in the file name overrides the printing's.
		if details.Artist != "" {
			data.Artist = details.Artist
		}

		set := j.Client.GetSetData(ctx, data.Set)
		data.CardCount = cardCount(set)
	}
	data.Creator = details.Creator

	factory := j.Selector.Get(j.TemplateName, data.Class)
	if factory == nil {
		return &NoTemplateError{Template: j.TemplateName, Class: data.Class}
	}

	if err := factory(data, file).Execute(); err != nil {
		return fmt.Errorf("template execution for %q: %w", data.Name, err)
	}

	slog.Info("Rendered card",
		"name", data.Name,
		"layout", data.Class,
		"set", data.Set,
		"duration", time.Since(start))
	return nil
}

// RenderCustom runs the pipeline with a caller-supplied card record,
// bypassing API resolution. Used by creator workflows feeding custom
// card data.
func (j *Job) RenderCustom(ctx context.Context, file string, card *scryfall.Card) error {
	start := time.Now()

	var data *layout.Data
	if layout.IsBasicLand(card.Name) {
		data = layout.BasicLand(card.Name, card.Artist, card.Set)
	} else {
		var err error
		data, err = layout.FromCard(card, card.Name)
		if err != nil {
			return &UnsupportedLayoutError{Layout: card.Layout}
		}
	}

	factory := j.Selector.Get(j.TemplateName, data.Class)
	if factory == nil {
		return &NoTemplateError{Template: j.TemplateName, Class: data.Class}
	}

	if err := factory(data, file).Execute(); err != nil {
		return fmt.Errorf("template execution for %q: %w", data.Name, err)
	}

	slog.Info("Rendered custom card", "name", data.Name, "duration", time.Since(start))
	return nil
}

func (j *Job) resolveCard(ctx context.Context, details cardfile.CardDetails) (*scryfall.Card, error) {
	if j.UseCache {
		card, fromCache, err := j.Client.CachedGetCardData(ctx, details.Name, details.Set, details.Number)
		if err != nil {
			return nil, err
		}
		if fromCache {
			slog.Debug("Card data from cache", "name", details.Name)
		}
		return card, nil
	}
	return j.Client.GetCardData(ctx, details.Name, details.Set, details.Number)
}

// cardCount backfills the set size: printed size when known, raw card
// count otherwise, placeholder when neither provider answered.
func cardCount(set scryfall.SetRecord) string {
	if n, ok := set.PrintedSize(); ok {
		return strconv.Itoa(n)
	}
	if n, ok := set.CardCount(); ok {
		return strconv.Itoa(n)
	}
	return cardCountPlaceholder
}
