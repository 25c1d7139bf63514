// Package layout turns classified card records into template-ready
// layout objects. The set of layouts is closed: every renderable
// layout has an entry in Builders, and anything else is unsupported.
package layout

import (
	"fmt"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/scryfall"
)

// Data is the layout object handed to a template. One render job owns
// it exclusively; templates may fill in whatever else they need.
type Data struct {
	Kind            scryfall.Layout
	Class           string // template class name, keys template selection
	Name            string
	Artist          string
	Set             string
	CollectorNumber string
	CardCount       string
	Creator         string
	Card            *scryfall.Card // nil for basic lands
	Faces           []scryfall.Card
}

// Builder constructs a layout object from a classified record.
// name is the card name as queried, used to pick the front face.
type Builder func(card *scryfall.Card, name string) (*Data, error)

// Builders is the closed layout-to-builder table. Built once; plugin
// templates key off Class, not off this table.
var Builders = map[scryfall.Layout]Builder{
	scryfall.LayoutNormal:           singleFace("normal"),
	scryfall.LayoutSplit:            singleFace("split"),
	scryfall.LayoutFlip:             singleFace("flip"),
	scryfall.LayoutAdventure:        singleFace("adventure"),
	scryfall.LayoutLeveler:          singleFace("leveler"),
	scryfall.LayoutClass:            singleFace("class"),
	scryfall.LayoutMutate:           singleFace("mutate"),
	scryfall.LayoutPlaneswalker:     singleFace("planeswalker"),
	scryfall.LayoutSaga:             twoFaceAware("saga"),
	scryfall.LayoutBattle:           twoFaceAware("battle"),
	scryfall.LayoutTransform:        twoFace("transform"),
	scryfall.LayoutModalDFC:         twoFace("mdfc"),
	scryfall.LayoutPlaneswalkerTF:   twoFace("pw_tf"),
	scryfall.LayoutPlaneswalkerMDFC: twoFace("pw_mdfc"),
}

// FromCard builds the layout object for a classified record. The
// returned error marks an unsupported layout; callers decide whether
// that aborts the run.
func FromCard(card *scryfall.Card, name string) (*Data, error) {
	builder, ok := Builders[card.Layout]
	if !ok {
		return nil, fmt.Errorf("no builder for layout %q", card.Layout)
	}
	return builder(card, name)
}

func base(class string, card *scryfall.Card) *Data {
	return &Data{
		Kind:            card.Layout,
		Class:           class,
		Name:            card.Name,
		Artist:          card.Artist,
		Set:             strings.ToUpper(card.Set),
		CollectorNumber: card.CollectorNumber,
		Card:            card,
	}
}

func singleFace(class string) Builder {
	return func(card *scryfall.Card, name string) (*Data, error) {
		d := base(class, card)
		if name != "" {
			d.Name = name
		}
		return d, nil
	}
}

// twoFace requires exactly two faces, the first being the one the
// query resolves to; face-level name and artist replace the composite
// record's values.
func twoFace(class string) Builder {
	return func(card *scryfall.Card, name string) (*Data, error) {
		if len(card.CardFaces) != 2 {
			return nil, fmt.Errorf("layout %q needs 2 faces, record has %d", card.Layout, len(card.CardFaces))
		}
		d := base(class, card)
		d.Faces = card.CardFaces
		d.Name = card.CardFaces[0].Name
		if card.CardFaces[0].Artist != "" {
			d.Artist = card.CardFaces[0].Artist
		}
		return d, nil
	}
}

// twoFaceAware handles layouts that exist in single- and double-faced
// printings (sagas, battles).
func twoFaceAware(class string) Builder {
	return func(card *scryfall.Card, name string) (*Data, error) {
		if len(card.CardFaces) > 0 {
			return twoFace(class)(card, name)
		}
		return singleFace(class)(card, name)
	}
}

// basicLandNames are the card names that bypass API resolution.
var basicLandNames = map[string]bool{
	"Plains":                true,
	"Island":                true,
	"Swamp":                 true,
	"Mountain":              true,
	"Forest":                true,
	"Wastes":                true,
	"Snow-Covered Plains":   true,
	"Snow-Covered Island":   true,
	"Snow-Covered Swamp":    true,
	"Snow-Covered Mountain": true,
	"Snow-Covered Forest":   true,
}

// IsBasicLand reports whether name is a basic land.
func IsBasicLand(name string) bool {
	return basicLandNames[name]
}

// BasicLand constructs the basic-land layout directly, no card record
// involved.
func BasicLand(name, artist, set string) *Data {
	return &Data{
		Kind:   scryfall.LayoutBasic,
		Class:  "basic",
		Name:   name,
		Artist: artist,
		Set:    strings.ToUpper(set),
	}
}
