package scryfall

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/config"
	"github.com/lmancini/MTG-Proxyshop/internal/console"
	"github.com/lmancini/MTG-Proxyshop/internal/normalize"
)

// GetCardData fetches card data for one card and classifies its
// layout. A collector number selects the unique-lookup strategy,
// otherwise the card is found by exact-name search. When a non-English
// language is configured it is tried first, with a warning and a
// fallback to English; a failed English search is retried once with
// extras included. The only error returned is *CardError.
func (c *Client) GetCardData(ctx context.Context, name, set, number string) (*Card, error) {
	nameNormalized := normalize.Name(name)
	number = strings.TrimLeft(number, "0 ")

	lookup := func(lang string, extras bool) (*Card, error) {
		if number != "" {
			return c.getCardUnique(ctx, set, number, lang)
		}
		return c.getCardSearch(ctx, name, set, lang, extras)
	}

	// Query the card in the configured alternate language first.
	if config.Lang != "" && config.Lang != "en" {
		card, err := lookup(config.Lang, false)
		if err == nil {
			card.NameNormalized = nameNormalized
			return c.processCardData(ctx, card)
		}
		console.Warn("Reverting to English: %s", name)
	}

	// Query in English, retry with extras included if that failed.
	card, err := lookup("en", false)
	if err != nil && !config.ScryExtras && number == "" {
		card, err = lookup("en", true)
	}
	if err != nil {
		return nil, err
	}
	card.NameNormalized = nameNormalized
	return c.processCardData(ctx, card)
}

// getCardUnique fetches a card via /cards/{set}/{number}(/{lang}).
func (c *Client) getCardUnique(ctx context.Context, set, number, lang string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, strings.ToLower(set), number)
	if lang != "en" {
		endpoint += "/" + lang
	}

	var card Card
	if err := c.fetchJSON(ctx, endpoint, &card); err != nil {
		return nil, &CardError{Set: set, Number: number, Lang: lang, URL: endpoint, Err: err}
	}
	if card.Object == "error" || !card.Playable() {
		return nil, NewCardError(endpoint, "", set, number, lang)
	}
	return &card, nil
}

// getCardSearch fetches a card via /cards/search using an exact-name
// clause, returning the first playable result.
func (c *Client) getCardSearch(ctx context.Context, name, set, lang string, extras bool) (*Card, error) {
	dir := "desc"
	if config.ScryAscending {
		dir = "asc"
	}
	q := fmt.Sprintf("!%q lang:%s", name, lang)
	if set != "" {
		q += " set:" + strings.ToLower(set)
	}

	params := url.Values{}
	params.Set("unique", config.ScryUnique)
	params.Set("order", config.ScrySorting)
	params.Set("dir", dir)
	params.Set("include_extras", strconv.FormatBool(extras || config.ScryExtras))
	params.Set("q", q)
	endpoint := c.baseURL + "/cards/search?" + params.Encode()

	var result searchResult
	if err := c.fetchJSON(ctx, endpoint, &result); err != nil {
		return nil, &CardError{Name: name, Set: set, Lang: lang, URL: endpoint, Err: err}
	}
	for i := range result.Data {
		if result.Data[i].Playable() {
			return &result.Data[i], nil
		}
	}
	return nil, NewCardError(endpoint, name, set, "", lang)
}

// GetCardsPaged fetches a card list from a search endpoint, following
// pagination links when allPages is set. Failures degrade to whatever
// was collected so far, which may be an empty list.
func (c *Client) GetCardsPaged(ctx context.Context, endpoint string, allPages bool, params url.Values) []Card {
	if endpoint == "" {
		endpoint = c.baseURL + "/cards/search"
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	cards := []Card{}
	for endpoint != "" {
		var page searchResult
		if err := c.fetchJSON(ctx, endpoint, &page); err != nil {
			slog.Warn("Paged card fetch failed", "url", endpoint, "error", err)
			return cards
		}
		cards = append(cards, page.Data...)
		if !allPages || !page.HasMore {
			break
		}
		endpoint = page.NextPage
	}
	return cards
}

// GetCardsOracle fetches every printing sharing an Oracle ID, oldest
// printings first.
func (c *Client) GetCardsOracle(ctx context.Context, oracleID string, allPages bool) []Card {
	params := url.Values{}
	params.Set("q", "oracleid:"+oracleID)
	params.Set("dir", "asc")
	params.Set("order", "released")
	params.Set("unique", "prints")
	return c.GetCardsPaged(ctx, "", allPages, params)
}
