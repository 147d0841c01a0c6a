package takeout

import (
	"context"
	"fmt"
	"io"

	"watchlens/domain/core"
	"watchlens/domain/watch"
)

// ProgressFunc receives parse progress: percent complete and records
// assembled so far.
type ProgressFunc func(percent float64, recordsProcessed int)

// Options configures a batch run.
type Options struct {
	// ChunkSize bounds how many fragments are assembled between cancellation
	// checks and progress reports. Zero means DefaultChunkSize.
	ChunkSize int

	// Progress, when set, is called after each chunk.
	Progress ProgressFunc
}

// DefaultChunkSize balances progress granularity against callback overhead
// for typical multi-year exports (tens of thousands of events).
const DefaultChunkSize = 500

// Process runs the full pipeline over one uploaded file: extract fragments,
// assemble records, compute the batch summary. It is a single synchronous
// pass; callers wanting a background import wrap it in a worker.
//
// Per-fragment problems never abort the batch: ad fragments and unknown verbs
// are dropped during extraction, unparseable timestamps leave watchedAt nil
// and increment the summary's data-quality counter. Batch-level failures are
// core.ErrNotParseable (input is not HTML at all, no partial output) and
// core.ErrNoRecords (well-formed HTML with zero viewing events, e.g. a
// non-Takeout file).
//
// Cancellation is cooperative: the context is checked between chunks, never
// mid-fragment, so a cancelled run leaks no partially assembled records.
func Process(ctx context.Context, r io.Reader, opts Options) ([]watch.WatchRecord, watch.ImportSummary, error) {
	fragments, err := Extract(r)
	if err != nil {
		return nil, watch.ImportSummary{}, err
	}
	if len(fragments) == 0 {
		return nil, watch.ImportSummary{}, core.ErrNoRecords
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	records := make([]watch.WatchRecord, 0, len(fragments))
	for start := 0; start < len(fragments); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, watch.ImportSummary{}, err
		}

		end := start + chunkSize
		if end > len(fragments) {
			end = len(fragments)
		}
		for i := start; i < end; i++ {
			records = append(records, Assemble(fragments[i], i))
		}

		if opts.Progress != nil {
			opts.Progress(float64(len(records))/float64(len(fragments))*100, len(records))
		}
	}

	if err := verifyBatch(records); err != nil {
		return nil, watch.ImportSummary{}, err
	}

	return records, watch.Summarize(records), nil
}

// verifyBatch asserts assembler postconditions over the finished batch.
// Two records may share an id only when they are the same event repeated in
// the export; an id collision between records with different payloads means
// parser state leaked between fragments, which is a programmer error, not a
// recoverable input condition. The calendar-nullability invariant is checked
// for every record.
func verifyBatch(records []watch.WatchRecord) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if j, dup := seen[r.ID]; dup {
			prev := records[j]
			if prev.RawTimestamp != r.RawTimestamp || prev.Video() != r.Video() || prev.Title() != r.Title() {
				return fmt.Errorf("%w: %s at positions %d and %d", core.ErrDuplicateIdentity, r.ID, j, i)
			}
		} else {
			seen[r.ID] = i
		}

		if !r.CalendarConsistent() {
			return fmt.Errorf("%w: record %s", core.ErrPartialCalendar, r.ID)
		}
	}
	return nil
}
