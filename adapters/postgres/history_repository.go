package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"watchlens/domain/core"
	"watchlens/domain/watch"
	"watchlens/ports"

	"github.com/jmoiron/sqlx"
)

// historyRepository implements the HistoryRepository interface
type historyRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// ReplaceAll atomically swaps the stored history for the merged result. The
// single transaction is what serializes concurrent merges for this history;
// the merger itself never touches storage.
func (r *historyRepository) ReplaceAll(ctx context.Context, importID core.ImportID, records []watch.WatchRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM watch_records`); err != nil {
		return fmt.Errorf("failed to clear watch_records: %w", err)
	}

	insert := `INSERT INTO watch_records (
		id, import_id, position, watched_at, raw_timestamp,
		video_id, video_title, video_url, channel_title, channel_url, channel_id,
		product, topics, year, month, week, day_of_week, hour, yoy_key
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
	)`

	for i, rec := range records {
		topicsJSON, err := json.Marshal(rec.Topics)
		if err != nil {
			return fmt.Errorf("failed to marshal topics for record %s: %w", rec.ID, err)
		}

		_, err = tx.ExecContext(ctx, insert,
			rec.ID, importID, i, rec.WatchedAt, rec.RawTimestamp,
			rec.VideoID, rec.VideoTitle, rec.VideoURL, rec.ChannelTitle, rec.ChannelURL, rec.ChannelID,
			rec.Product, topicsJSON, rec.Year, rec.Month, rec.Week, rec.DayOfWeek, rec.Hour, rec.YoyKey,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history replace: %w", err)
	}
	return nil
}

// ListAll returns every stored record in stored position order.
func (r *historyRepository) ListAll(ctx context.Context) ([]watch.WatchRecord, error) {
	query := `SELECT
		id, watched_at, raw_timestamp,
		video_id, video_title, video_url, channel_title, channel_url, channel_id,
		product, topics, year, month, week, day_of_week, hour, yoy_key
	FROM watch_records ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch records: %w", err)
	}
	defer rows.Close()

	var records []watch.WatchRecord
	for rows.Next() {
		var rec watch.WatchRecord
		var topicsJSON []byte

		err := rows.Scan(
			&rec.ID, &rec.WatchedAt, &rec.RawTimestamp,
			&rec.VideoID, &rec.VideoTitle, &rec.VideoURL, &rec.ChannelTitle, &rec.ChannelURL, &rec.ChannelID,
			&rec.Product, &topicsJSON, &rec.Year, &rec.Month, &rec.Week, &rec.DayOfWeek, &rec.Hour, &rec.YoyKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch record: %w", err)
		}

		if len(topicsJSON) > 0 {
			if err := json.Unmarshal(topicsJSON, &rec.Topics); err != nil {
				return nil, fmt.Errorf("failed to unmarshal topics for record %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch records: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (r *historyRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM watch_records`); err != nil {
		return 0, fmt.Errorf("failed to count watch records: %w", err)
	}
	return count, nil
}
