package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// ScryfallCacheSchema defines the schema for resolved card lookups
const ScryfallCacheSchema = `
CREATE TABLE IF NOT EXISTS scryfall_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scryfall_cached_at ON scryfall_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	ScryfallCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"scryfall_cache": true,
}
