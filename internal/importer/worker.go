package importer

import (
	"context"
	"errors"
	"time"

	"watchlens/domain/watch"
	"watchlens/internal"
	"watchlens/internal/api"
	"watchlens/internal/history"
	"watchlens/internal/takeout"
	"watchlens/ports"

	"golang.org/x/sync/errgroup"
)

// EventSink receives the worker's progress protocol. *api.SSEHub satisfies
// it; tests substitute a recorder.
type EventSink interface {
	Broadcast(event api.ImportEvent)
}

// parseShare is the fraction of reported progress attributed to parsing;
// merging and persisting report the remainder.
const parseShare = 0.8

// Worker processes one uploaded history file at a time: parse, merge into
// the stored history, persist, and report progress over the SSE hub.
type Worker struct {
	historyRepo ports.HistoryRepository
	importRepo  ports.ImportRepository
	files       ports.FileStorage
	hub         EventSink
	logger      *internal.Logger
	chunkSize   int
	timeout     time.Duration
}

// NewWorker creates an import worker.
func NewWorker(historyRepo ports.HistoryRepository, importRepo ports.ImportRepository, files ports.FileStorage, hub EventSink, chunkSize int, timeout time.Duration) *Worker {
	if chunkSize <= 0 {
		chunkSize = takeout.DefaultChunkSize
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Worker{
		historyRepo: historyRepo,
		importRepo:  importRepo,
		files:       files,
		hub:         hub,
		logger:      internal.NewDefaultLogger(),
		chunkSize:   chunkSize,
		timeout:     timeout,
	}
}

// Run executes one import end to end. It always leaves the import row in a
// terminal status and always emits exactly one terminal SSE event. Errors are
// reported through those channels rather than returned: the caller launched
// us in a goroutine and has nothing useful to do with an error value.
func (w *Worker) Run(ctx context.Context, meta *watch.ImportMeta) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	importID := meta.ID.String()
	start := time.Now()
	w.logger.Info("Starting import %s (%s, %d bytes)", importID, meta.Filename, meta.FileSize)

	w.setStatus(ctx, meta, watch.ImportStatusParsing, "")

	// Parsing and loading the stored history are independent; run both under
	// one group so either failure cancels the other.
	var (
		records  []watch.WatchRecord
		summary  watch.ImportSummary
		existing []watch.WatchRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reader, err := w.files.GetReader(gctx, meta.FilePath)
		if err != nil {
			return err
		}
		defer reader.Close()

		var parseErr error
		records, summary, parseErr = takeout.Process(gctx, reader, takeout.Options{
			ChunkSize: w.chunkSize,
			Progress: func(percent float64, processed int) {
				w.progress(importID, percent*parseShare, processed)
			},
		})
		return parseErr
	})
	g.Go(func() error {
		var loadErr error
		existing, loadErr = w.historyRepo.ListAll(gctx)
		return loadErr
	})

	if err := g.Wait(); err != nil {
		w.finishWithError(ctx, meta, err)
		return
	}

	w.setStatus(ctx, meta, watch.ImportStatusMerging, "")
	w.progress(importID, 85, summary.TotalRecords)
	merged := history.Merge(existing, records)
	ordered := history.NewestFirst(merged.Records)

	if err := w.historyRepo.ReplaceAll(ctx, meta.ID, ordered); err != nil {
		w.finishWithError(ctx, meta, err)
		return
	}
	w.progress(importID, 95, summary.TotalRecords)

	if err := w.importRepo.UpdateCounts(ctx, meta.ID, summary.TotalRecords, merged.Duplicates); err != nil {
		w.logger.Warn("Import %s: failed to record counts: %v", importID, err)
	}
	w.setStatus(ctx, meta, watch.ImportStatusComplete, "")

	w.logger.Info("Import %s complete in %.2fs: %d records, %d new, %d duplicates",
		importID, time.Since(start).Seconds(), summary.TotalRecords, merged.Added, merged.Duplicates)

	w.hub.Broadcast(api.ImportEvent{
		ImportID:         importID,
		EventType:        api.EventComplete,
		Progress:         100,
		RecordsProcessed: summary.TotalRecords,
		Data: map[string]interface{}{
			"summary":    summary,
			"added":      merged.Added,
			"duplicates": merged.Duplicates,
			"total":      merged.Total,
		},
		Timestamp: time.Now(),
	})
}

// finishWithError records the terminal failure state. Cancellation gets its
// own status and event type so the UI can tell "you stopped it" from "it
// broke".
func (w *Worker) finishWithError(ctx context.Context, meta *watch.ImportMeta, err error) {
	importID := meta.ID.String()

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		w.logger.Warn("Import %s cancelled: %v", importID, err)
		// The run context is dead; use a short-lived one for the status write.
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		w.setStatus(cleanupCtx, meta, watch.ImportStatusCancelled, err.Error())
		w.hub.Broadcast(api.ImportEvent{
			ImportID:  importID,
			EventType: api.EventCancelled,
			Timestamp: time.Now(),
		})
		return
	}

	w.logger.Error("Import %s failed: %v", importID, err)
	w.setStatus(ctx, meta, watch.ImportStatusFailed, err.Error())
	w.hub.Broadcast(api.ImportEvent{
		ImportID:  importID,
		EventType: api.EventError,
		Data:      map[string]interface{}{"message": err.Error()},
		Timestamp: time.Now(),
	})
}

func (w *Worker) progress(importID string, percent float64, processed int) {
	w.hub.Broadcast(api.ImportEvent{
		ImportID:         importID,
		EventType:        api.EventProgress,
		Progress:         percent,
		RecordsProcessed: processed,
		Timestamp:        time.Now(),
	})
}

func (w *Worker) setStatus(ctx context.Context, meta *watch.ImportMeta, status watch.ImportStatus, errorMsg string) {
	meta.Status = status
	if err := w.importRepo.UpdateStatus(ctx, meta.ID, status, errorMsg); err != nil {
		w.logger.Warn("Import %s: failed to update status to %s: %v", meta.ID, status, err)
	}
}
