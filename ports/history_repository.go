package ports

import (
	"context"

	"watchlens/domain/core"
	"watchlens/domain/watch"
)

// HistoryRepository persists the merged watch history. Storage returns
// records verbatim; order is not guaranteed, which is why the merger works
// off identity keys rather than positions. Serializing concurrent merges for
// one history is the implementation's responsibility.
type HistoryRepository interface {
	// ReplaceAll atomically swaps the stored history for the merged result.
	ReplaceAll(ctx context.Context, importID core.ImportID, records []watch.WatchRecord) error

	// ListAll returns every stored record.
	ListAll(ctx context.Context) ([]watch.WatchRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
