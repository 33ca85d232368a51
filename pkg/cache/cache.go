// Package cache stores finished search results so that repeated searches
// over the same input are answered without exploring the space again.
//
// # Backends
//
// [Cache] is a byte store with per-entry time-to-live. Three backends are
// provided:
//
//   - [FileCache] keeps one JSON file per entry and survives restarts; the
//     CLI uses it under ~/.cache/treesearch.
//   - [MemoryCache] is a bounded in-process map, used by the HTTP server.
//   - [NullCache] never stores anything, for --no-cache.
//
// # Keys
//
// A [Keyer] derives keys from a hash of the canonical input document and
// the search parameters, so the same tree in JSON and in YAML shares an
// entry while a different limit or goal does not:
//
//	k := cache.NewDefaultKeyer()
//	key := k.SearchKey(cache.Hash(canonical), cache.SearchKeyOpts{Kind: "tree", Goal: "file7", Algorithm: "ids"})
//
// Searches are deterministic, so entries only go stale when the key scheme
// changes; [KeyVersion] is part of every key for that reason.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a key-value byte store. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// a miss (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// GetJSON loads the entry under key into v.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		// An entry that no longer decodes is as good as missing.
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
