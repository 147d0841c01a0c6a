package ports

import (
	"context"
	"io"
)

// FileStorage stores uploaded history files. The local-disk implementation
// lives in internal/importer; a cloud adapter would satisfy the same
// interface without touching the processing logic.
type FileStorage interface {
	Store(ctx context.Context, r io.Reader, filename string) (string, error)
	GetReader(ctx context.Context, filePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, filePath string) error
	Exists(ctx context.Context, filePath string) (bool, error)
}
