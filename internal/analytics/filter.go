// Package analytics computes dashboard aggregates over normalized watch
// records. Every function here is pure: records are read-only input, the
// current time is an explicit parameter wherever a period-to-date window
// needs one, and empty input yields zero-valued results of the same shape as
// non-empty input.
package analytics

import (
	"strings"
	"time"

	"watchlens/domain/watch"
)

// ApplyFilter returns the subset of records matching the filter. The zero
// filter is the identity transform. Timeframe bounds apply to WatchedAt, so
// records without a watch time are excluded by any timeframe other than
// "all"; the other criteria never look at the watch time.
func ApplyFilter(records []watch.WatchRecord, f watch.FilterOptions, now time.Time) []watch.WatchRecord {
	if f.IsZero() {
		return records
	}

	var cutoff time.Time
	switch f.Timeframe {
	case watch.TimeframeYear:
		cutoff = now.AddDate(-1, 0, 0)
	case watch.TimeframeQuarter:
		cutoff = now.AddDate(0, -3, 0)
	case watch.TimeframeMonth:
		cutoff = now.AddDate(0, -1, 0)
	case watch.TimeframeWeek:
		cutoff = now.AddDate(0, 0, -7)
	}

	search := strings.ToLower(f.Search)

	out := make([]watch.WatchRecord, 0, len(records))
	for _, r := range records {
		if !cutoff.IsZero() {
			if r.WatchedAt == nil || r.WatchedAt.Before(cutoff) {
				continue
			}
		}
		if f.Product != "" && r.Product != f.Product {
			continue
		}
		if len(f.Channels) > 0 && !containsFold(f.Channels, r.Channel()) {
			continue
		}
		if len(f.Topics) > 0 && !anyTopicMatch(f.Topics, r.Topics) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title()), search) &&
			!strings.Contains(strings.ToLower(r.Channel()), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func anyTopicMatch(wanted, have []string) bool {
	for _, w := range wanted {
		if containsFold(have, w) {
			return true
		}
	}
	return false
}
