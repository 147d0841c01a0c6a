// Package history merges freshly parsed record batches into the stored watch
// history. The history itself is externally owned: callers pass it in and
// persist the merged result; nothing here mutates a slice it was given.
// Serializing concurrent merges for the same history is the storage caller's
// job, not this package's.
package history

import (
	"sort"
	"time"

	"watchlens/domain/core"
	"watchlens/domain/watch"
)

// DuplicatePolicy defines how colliding identities are handled during merge.
type DuplicatePolicy string

const (
	// KeepExisting drops the incoming record on an identity collision. The
	// existing record always wins so re-imports can never rewrite history
	// nondeterministically. This is the only policy the core uses.
	KeepExisting DuplicatePolicy = "keep_existing"
)

// MergeResult reports the outcome of one merge pass.
type MergeResult struct {
	Records    []watch.WatchRecord `json:"-"`
	Added      int                 `json:"added"`
	Duplicates int                 `json:"duplicates"`
	Total      int                 `json:"total"`
}

// Merge combines an incoming batch into the existing history. Existing
// records keep their order and are never edited; incoming records that
// introduce a new identity are appended in batch order. Merge is idempotent:
// merging a batch into a history that already contains it adds nothing.
func Merge(existing, incoming []watch.WatchRecord) MergeResult {
	merged := make([]watch.WatchRecord, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing))

	for _, r := range existing {
		merged = append(merged, r)
		seen[identityKey(r)] = struct{}{}
	}

	result := MergeResult{}
	for _, r := range incoming {
		key := identityKey(r)
		if _, dup := seen[key]; dup {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
		result.Added++
	}

	result.Records = merged
	result.Total = len(merged)
	return result
}

// identityKey computes the dedup identity for one record. Preference order:
// (videoId, watchedAt) when both are present, (videoId, rawTimestamp) when
// the watch time failed to parse, and a full-field content hash for records
// with no video id at all.
func identityKey(r watch.WatchRecord) string {
	videoID := r.Video()
	switch {
	case videoID != "" && r.WatchedAt != nil:
		return videoID + "@" + r.WatchedAt.UTC().Format(time.RFC3339Nano)
	case videoID != "":
		return videoID + "@raw:" + r.RawTimestamp
	default:
		return fullFieldKey(r)
	}
}

func fullFieldKey(r watch.WatchRecord) string {
	parts := []string{
		r.RawTimestamp,
		r.Title(),
		r.Channel(),
		string(r.Product),
	}
	if r.VideoURL != nil {
		parts = append(parts, *r.VideoURL)
	}
	if r.ChannelURL != nil {
		parts = append(parts, *r.ChannelURL)
	}
	return core.ComputeRecordHash(parts...).String()
}

// NewestFirst returns a copy of records ordered by watch time descending.
// Records without a watch time sink to the end, keeping their relative order.
// This is the presentation ordering the storage caller applies after a merge;
// Merge itself never reorders.
func NewestFirst(records []watch.WatchRecord) []watch.WatchRecord {
	out := make([]watch.WatchRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return laterThan(out[i], out[j])
	})
	return out
}

func laterThan(a, b watch.WatchRecord) bool {
	if a.WatchedAt == nil || b.WatchedAt == nil {
		return a.WatchedAt != nil && b.WatchedAt == nil
	}
	return a.WatchedAt.After(*b.WatchedAt)
}
