package scryfall

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/cache"
	"github.com/lmancini/MTG-Proxyshop/internal/config"
	"github.com/lmancini/MTG-Proxyshop/internal/normalize"
)

// CachedCard wraps a classified card record for caching.
type CachedCard struct {
	Card *Card `json:"card"`
}

// CachedGetCardData is GetCardData backed by the sqlite lookup cache.
// Card printings are immutable once released, so successful lookups
// are cached across runs; not-found results are never cached, a later
// run may succeed once Scryfall indexes the card.
// Cache key format: card_{normalized_name}_{set}_{number}_{lang}
func (c *Client) CachedGetCardData(ctx context.Context, name, set, number string) (*Card, bool, error) {
	cacheKey := fmt.Sprintf("card_%s_%s_%s_%s",
		normalize.Name(name), strings.ToLower(set), number, config.Lang)

	result, fromCache, err := cache.GetOrFetch("scryfall_cache", cacheKey, func() (*CachedCard, error) {
		card, fetchErr := c.GetCardData(ctx, name, set, number)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedCard{Card: card}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.Card, fromCache, nil
}
