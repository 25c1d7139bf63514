package scryfall

import (
	"context"
	"slices"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/normalize"
)

// FrameEffectMeld is the frame effect marking a meld transform icon.
const FrameEffectMeld = "meld"

// transformIcons are the frame effects that carry a transform icon.
// A meld record without one of these gets FrameEffectMeld appended so
// the transform templates always have an icon to draw.
var transformIcons = map[string]bool{
	"sunmoondfc":     true,
	"compasslanddfc": true,
	"upsidedowndfc":  true,
	"mooneldrazidfc": true,
	"originpwdfc":    true,
	"convertdfc":     true,
	"fandfc":         true,
	"meld":           true,
}

// processCardData classifies a resolved record into its canonical
// layout. It is a pure transform: the input record is cloned, never
// mutated, and the branches below are mutually exclusive by return.
//
// Order matters. Meld reshaping runs first so the record carries
// card_faces like any other two-faced card; the two-face branch then
// owns every record with faces and returns before the single-face
// checks; mutate beats the single-face planeswalker check.
func (c *Client) processCardData(ctx context.Context, card *Card) (*Card, error) {
	out := card.Clone()

	// Reshape meld card data to fit the transform layout.
	if out.Layout == LayoutMeld {
		if err := c.resolveMeldFaces(ctx, out); err != nil {
			return nil, err
		}
	}

	// Alternate two-face layouts: promote by the selected face's type.
	if len(out.CardFaces) > 0 {
		face := out.CardFaces[1]
		if normalize.Name(out.CardFaces[0].Name) == out.NameNormalized {
			face = out.CardFaces[0]
		}
		if strings.Contains(face.TypeLine, "Planeswalker") {
			if out.Layout == LayoutTransform {
				out.Layout = LayoutPlaneswalkerTF
			} else {
				out.Layout = LayoutPlaneswalkerMDFC
			}
		}
		if strings.Contains(face.TypeLine, "Saga") {
			out.Layout = LayoutSaga
		}
		if strings.Contains(face.TypeLine, "Battle") {
			out.Layout = LayoutBattle
		}
		return out, nil
	}

	if slices.Contains(out.Keywords, "Mutate") {
		out.Layout = LayoutMutate
		return out, nil
	}

	if strings.Contains(out.TypeLine, "Planeswalker") {
		out.Layout = LayoutPlaneswalker
		return out, nil
	}

	return out, nil
}

// resolveMeldFaces rewrites a meld record as a two-faced transform:
// the queried meld part in front, the meld result in back, each face
// fetched in full from its part reference.
func (c *Client) resolveMeldFaces(ctx context.Context, card *Card) error {
	var front []RelatedPart
	var back *RelatedPart
	for _, part := range card.AllParts {
		switch part.Component {
		case "meld_part":
			front = append(front, part)
		case "meld_result":
			p := part
			back = &p
		}
	}
	if back == nil || len(front) < 2 {
		return &CardError{Name: card.Name, Set: card.Set, URL: c.baseURL}
	}

	// Tie-break which part is the front face. The queried name
	// matching the result or the first part selects the first part;
	// anything else falls through to the second. Kept exactly as the
	// layouts downstream expect it, asymmetry included.
	faces := []RelatedPart{front[1], *back}
	if card.NameNormalized == normalize.Name(back.Name) ||
		card.NameNormalized == normalize.Name(front[0].Name) {
		faces = []RelatedPart{front[0], *back}
	}

	resolved := make([]Card, 0, len(faces))
	for _, ref := range faces {
		var face Card
		if err := c.fetchJSON(ctx, ref.URI, &face); err != nil {
			return &CardError{Name: ref.Name, URL: ref.URI, Err: err}
		}
		face.Object = "card_face"
		resolved = append(resolved, face)
	}
	card.CardFaces = resolved

	if !slices.ContainsFunc(card.FrameEffects, func(fe string) bool { return transformIcons[fe] }) {
		card.FrameEffects = append(card.FrameEffects, FrameEffectMeld)
	}
	card.Layout = LayoutTransform
	return nil
}
