package scryfall

import "maps"

// Layout is the canonical physical-card-shape category. Most values
// come straight off the Scryfall wire; the classifier rewrites a few
// of them (meld becomes transform, planeswalker variants get promoted)
// before the record reaches a layout builder.
type Layout string

// Layouts the pipeline knows about.
const (
	LayoutNormal           Layout = "normal"
	LayoutTransform        Layout = "transform"
	LayoutModalDFC         Layout = "modal_dfc"
	LayoutMeld             Layout = "meld"
	LayoutSplit            Layout = "split"
	LayoutFlip             Layout = "flip"
	LayoutAdventure        Layout = "adventure"
	LayoutLeveler          Layout = "leveler"
	LayoutClass            Layout = "class"
	LayoutSaga             Layout = "saga"
	LayoutBattle           Layout = "battle"
	LayoutMutate           Layout = "mutate"
	LayoutPlaneswalker     Layout = "planeswalker"
	LayoutPlaneswalkerTF   Layout = "planeswalker_tf"
	LayoutPlaneswalkerMDFC Layout = "planeswalker_mdfc"
	LayoutBasic            Layout = "basic"
)

// Layouts Scryfall serves that are not playable game pieces.
const (
	layoutArtSeries  Layout = "art_series"
	layoutReversible Layout = "reversible_card"
)

// Card is a normalized Scryfall card record. Faces of multi-face
// cards decode into the same shape with only the face-level fields
// populated; meld faces are full card records tagged "card_face".
type Card struct {
	Object          string            `json:"object,omitempty"`
	ID              string            `json:"id,omitempty"`
	Name            string            `json:"name"`
	NameNormalized  string            `json:"name_normalized,omitempty"`
	Lang            string            `json:"lang,omitempty"`
	Layout          Layout            `json:"layout,omitempty"`
	Set             string            `json:"set,omitempty"`
	SetName         string            `json:"set_name,omitempty"`
	SetType         string            `json:"set_type,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	TypeLine        string            `json:"type_line,omitempty"`
	OracleText      string            `json:"oracle_text,omitempty"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	Artist          string            `json:"artist,omitempty"`
	FlavorText      string            `json:"flavor_text,omitempty"`
	Rarity          string            `json:"rarity,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	FrameEffects    []string          `json:"frame_effects,omitempty"`
	CardFaces       []Card            `json:"card_faces,omitempty"`
	AllParts        []RelatedPart     `json:"all_parts,omitempty"`
	ImageURIs       map[string]string `json:"image_uris,omitempty"`
}

// RelatedPart is a reference to another card object, used here only
// for resolving meld parts and results.
type RelatedPart struct {
	Object    string `json:"object,omitempty"`
	ID        string `json:"id,omitempty"`
	Component string `json:"component,omitempty"`
	Name      string `json:"name,omitempty"`
	TypeLine  string `json:"type_line,omitempty"`
	URI       string `json:"uri,omitempty"`
}

// Playable reports whether the record is a playable game piece, as
// opposed to a minigame insert, art series card or double-sided promo.
func (c *Card) Playable() bool {
	if c.SetType == "minigame" {
		return false
	}
	switch c.Layout {
	case layoutArtSeries, layoutReversible:
		return false
	}
	return true
}

// Clone returns a deep copy. The classifier works on clones so a raw
// record handed out by the resolver is never mutated behind a caller.
func (c *Card) Clone() *Card {
	out := *c
	out.Keywords = append([]string(nil), c.Keywords...)
	out.FrameEffects = append([]string(nil), c.FrameEffects...)
	out.AllParts = append([]RelatedPart(nil), c.AllParts...)
	out.ImageURIs = maps.Clone(c.ImageURIs)
	if c.CardFaces != nil {
		out.CardFaces = make([]Card, len(c.CardFaces))
		for i := range c.CardFaces {
			out.CardFaces[i] = *c.CardFaces[i].Clone()
		}
	}
	return &out
}

// searchResult is the envelope returned by the /cards/search endpoint.
type searchResult struct {
	Object     string `json:"object"`
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page"`
	Data       []Card `json:"data"`
}

// SetRecord is a merged set record. Scryfall and MTGJSON disagree on
// field sets, so the record stays map-shaped; typed accessors cover
// the fields the pipeline reads.
type SetRecord map[string]any

// Name returns the set's display name, or "" for an invalid record.
func (r SetRecord) Name() string {
	name, _ := r["name"].(string)
	return name
}

// Type returns the Scryfall set_type ("expansion", "token", ...).
func (r SetRecord) Type() string {
	t, _ := r["set_type"].(string)
	return t
}

// ParentCode returns the parent set code for child sets (token sets,
// promo sets) when Scryfall supplies one.
func (r SetRecord) ParentCode() string {
	code, _ := r["parent_set_code"].(string)
	return code
}

// Complete reports whether the record was built from live Scryfall
// data. Records loaded from disk without the marker are legacy or
// partial and must be re-resolved.
func (r SetRecord) Complete() bool {
	v, ok := r["scryfall"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return !ok || b
}

// PrintedSize returns the printed size of the set, if known.
func (r SetRecord) PrintedSize() (int, bool) {
	return r.intField("printed_size")
}

// CardCount returns the raw card count of the set, if known.
func (r SetRecord) CardCount() (int, bool) {
	return r.intField("card_count")
}

// TokenCount returns the number of token entries MTGJSON lists.
func (r SetRecord) TokenCount() (int, bool) {
	return r.intField("tokenCount")
}

func (r SetRecord) intField(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case float64: // encoding/json decodes numbers as float64
		return int(v), true
	}
	return 0, false
}

// Merge folds other into a copy of r. Fields already present in r win
// on collision; other only contributes fields r lacks.
func (r SetRecord) Merge(other SetRecord) SetRecord {
	out := make(SetRecord, len(r)+len(other))
	maps.Copy(out, r)
	for k, v := range other {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}
