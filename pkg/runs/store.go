// Package runs archives finished search results by run ID, so a client of
// the HTTP server can fetch a result again after the request that produced
// it has returned.
//
// [MemoryStore] keeps a bounded number of recent runs in process.
// [MongoStore] keeps them in a MongoDB collection, optionally expiring them
// through a TTL index.
package runs

import (
	"context"

	tsio "github.com/matzehuels/treesearch/pkg/io"
)

// Store archives results. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores r under r.RunID, replacing any earlier entry.
	Put(ctx context.Context, r tsio.Result) error

	// Get returns the result with the given run ID. A missing run is
	// reported with errors.ErrCodeNotFound.
	Get(ctx context.Context, runID string) (tsio.Result, error)

	// Close releases resources held by the store.
	Close() error
}
