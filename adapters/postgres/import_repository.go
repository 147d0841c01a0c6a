package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"watchlens/domain/core"
	"watchlens/domain/watch"
	"watchlens/ports"

	"github.com/jmoiron/sqlx"
)

// importRepository implements the ImportRepository interface
type importRepository struct {
	db *sqlx.DB
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *sqlx.DB) ports.ImportRepository {
	return &importRepository{db: db}
}

// Create inserts a new import row
func (r *importRepository) Create(ctx context.Context, meta *watch.ImportMeta) error {
	query := `INSERT INTO imports (
		id, filename, file_size, file_path, status, error_message,
		record_count, duplicate_count, imported_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.Filename, meta.FileSize, meta.FilePath, meta.Status, meta.ErrorMessage,
		meta.RecordCount, meta.DuplicateCount, meta.ImportedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create import: %w", err)
	}
	return nil
}

// GetByID retrieves an import by its ID
func (r *importRepository) GetByID(ctx context.Context, id core.ImportID) (*watch.ImportMeta, error) {
	query := `SELECT
		id, filename, COALESCE(file_size, 0) as file_size, COALESCE(file_path, '') as file_path,
		status, COALESCE(error_message, '') as error_message,
		COALESCE(record_count, 0) as record_count, COALESCE(duplicate_count, 0) as duplicate_count,
		imported_at
	FROM imports WHERE id = $1`

	var meta watch.ImportMeta
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&meta.ID, &meta.Filename, &meta.FileSize, &meta.FilePath,
		&meta.Status, &meta.ErrorMessage,
		&meta.RecordCount, &meta.DuplicateCount,
		(*timestampScanner)(&meta.ImportedAt),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrImportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get import: %w", err)
	}
	return &meta, nil
}

// List returns the most recent imports
func (r *importRepository) List(ctx context.Context, limit int) ([]*watch.ImportMeta, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT
		id, filename, COALESCE(file_size, 0) as file_size, COALESCE(file_path, '') as file_path,
		status, COALESCE(error_message, '') as error_message,
		COALESCE(record_count, 0) as record_count, COALESCE(duplicate_count, 0) as duplicate_count,
		imported_at
	FROM imports ORDER BY imported_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var imports []*watch.ImportMeta
	for rows.Next() {
		var meta watch.ImportMeta
		err := rows.Scan(
			&meta.ID, &meta.Filename, &meta.FileSize, &meta.FilePath,
			&meta.Status, &meta.ErrorMessage,
			&meta.RecordCount, &meta.DuplicateCount,
			(*timestampScanner)(&meta.ImportedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, &meta)
	}
	return imports, rows.Err()
}

// UpdateStatus sets the import status and error message
func (r *importRepository) UpdateStatus(ctx context.Context, id core.ImportID, status watch.ImportStatus, errorMsg string) error {
	query := `UPDATE imports SET status = $2, error_message = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, errorMsg)
	if err != nil {
		return fmt.Errorf("failed to update import status: %w", err)
	}
	return nil
}

// UpdateCounts records the parse and merge outcome
func (r *importRepository) UpdateCounts(ctx context.Context, id core.ImportID, recordCount, duplicateCount int) error {
	query := `UPDATE imports SET record_count = $2, duplicate_count = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, recordCount, duplicateCount)
	if err != nil {
		return fmt.Errorf("failed to update import counts: %w", err)
	}
	return nil
}
