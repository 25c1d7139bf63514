package scryfall

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Fields MTGJSON includes that the pipeline has no use for. Bulk
// product and card listings dwarf the rest of the record; only the
// token count survives, as tokenCount.
var mtgjsonExtraFields = []string{"sealedProduct", "booster", "cards"}

// GetSetData returns the merged set record for a set code, applying a
// cache-then-fetch policy: a persisted record carrying the scryfall
// marker is returned as-is; otherwise Scryfall (primary) and MTGJSON
// (secondary) are fetched and merged, primary fields winning on
// collision. Missing data degrades to an empty record, never an error.
func (c *Client) GetSetData(ctx context.Context, code string) SetRecord {
	code = strings.ToUpper(code)

	if c.sets != nil {
		if rec, ok := c.sets.Load(code); ok && rec.Complete() {
			return rec
		}
	}

	scry := c.getSetScryfall(ctx, code)

	// Token sets carry their counts on the parent set in MTGJSON.
	lookup := code
	if scry.Type() == "token" && scry.ParentCode() != "" {
		lookup = strings.ToUpper(scry.ParentCode())
	}
	mtg := c.getSetMTGJSON(ctx, lookup)

	merged := scry.Merge(mtg)

	// Persist only a record worth keeping: both sources answered, or
	// the printed size is already known. A nameless record is invalid
	// and never hits the cache.
	shouldPersist := (len(scry) > 0 && len(mtg) > 0) || hasKey(merged, "printed_size")
	if c.sets != nil && shouldPersist && merged.Name() != "" {
		if err := c.sets.Save(code, merged); err != nil {
			slog.Warn("Failed to persist set data", "set", code, "error", err)
		}
	}

	return merged
}

// getSetScryfall fetches the primary set record. Fallback: empty.
func (c *Client) getSetScryfall(ctx context.Context, code string) SetRecord {
	endpoint := fmt.Sprintf("%s/sets/%s", c.baseURL, code)

	rec := SetRecord{}
	if err := c.fetchJSON(ctx, endpoint, &rec); err != nil {
		slog.Warn("Scryfall set lookup failed", "set", code, "error", err)
		return SetRecord{}
	}
	if rec.Name() == "" {
		return SetRecord{}
	}
	if _, ok := rec["scryfall"]; !ok {
		rec["scryfall"] = true
	}
	return rec
}

// getSetMTGJSON fetches the secondary set record and strips the bulk
// listings down to a token count. Fallback: empty.
func (c *Client) getSetMTGJSON(ctx context.Context, code string) SetRecord {
	endpoint := fmt.Sprintf("%s/%s.json", c.mtgjsonURL, code)

	var envelope struct {
		Data SetRecord `json:"data"`
	}
	if err := c.fetchJSON(ctx, endpoint, &envelope); err != nil {
		slog.Warn("MTGJSON set lookup failed", "set", code, "error", err)
		return SetRecord{}
	}
	rec := envelope.Data
	if rec.Name() == "" {
		return SetRecord{}
	}

	tokens, _ := rec["tokens"].([]any)
	delete(rec, "tokens")
	rec["tokenCount"] = len(tokens)
	for _, field := range mtgjsonExtraFields {
		delete(rec, field)
	}
	return rec
}

func hasKey(rec SetRecord, key string) bool {
	_, ok := rec[key]
	return ok
}
