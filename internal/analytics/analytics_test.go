package analytics

import (
	"time"

	"watchlens/domain/watch"
)

// Shared test fixtures: watched builds a record at an instant, topical adds
// topic labels.

func watched(t time.Time) watch.WatchRecord {
	r := watch.WatchRecord{ID: t.Format(time.RFC3339Nano), Product: watch.ProductYouTube}
	r.SetWatchedAt(t)
	return r
}

func topical(t time.Time, topics ...string) watch.WatchRecord {
	r := watched(t)
	r.Topics = topics
	return r
}

func channelRec(t time.Time, channel string) watch.WatchRecord {
	r := watched(t)
	r.ChannelTitle = &channel
	return r
}

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
