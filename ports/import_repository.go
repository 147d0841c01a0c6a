package ports

import (
	"context"

	"watchlens/domain/core"
	"watchlens/domain/watch"
)

// ImportRepository tracks uploaded history files and their import outcomes.
type ImportRepository interface {
	Create(ctx context.Context, meta *watch.ImportMeta) error
	GetByID(ctx context.Context, id core.ImportID) (*watch.ImportMeta, error)
	List(ctx context.Context, limit int) ([]*watch.ImportMeta, error)
	UpdateStatus(ctx context.Context, id core.ImportID, status watch.ImportStatus, errorMsg string) error
	UpdateCounts(ctx context.Context, id core.ImportID, recordCount, duplicateCount int) error
}
