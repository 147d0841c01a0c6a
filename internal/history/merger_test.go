package history

import (
	"testing"
	"time"

	"watchlens/domain/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, videoID, title string, watchedAt *time.Time) watch.WatchRecord {
	r := watch.WatchRecord{ID: id, Product: watch.ProductYouTube}
	if videoID != "" {
		r.VideoID = &videoID
	}
	if title != "" {
		r.VideoTitle = &title
	}
	if watchedAt != nil {
		r.SetWatchedAt(*watchedAt)
		r.RawTimestamp = watchedAt.Format("Jan 2, 2006, 3:04:05 PM") + " UTC"
	}
	return r
}

func at(day, hour int) *time.Time {
	t := time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
	return &t
}

// TestMergeAppendsNewIdentities tests that new records land after the
// existing history in batch order
func TestMergeAppendsNewIdentities(t *testing.T) {
	existing := []watch.WatchRecord{rec("e1", "vidAAA", "Old", at(1, 10))}
	incoming := []watch.WatchRecord{
		rec("n1", "vidBBB", "New One", at(2, 10)),
		rec("n2", "vidCCC", "New Two", at(3, 10)),
	}

	result := Merge(existing, incoming)

	require.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Duplicates)
	assert.Equal(t, "e1", result.Records[0].ID)
	assert.Equal(t, "n1", result.Records[1].ID)
	assert.Equal(t, "n2", result.Records[2].ID)
}

// TestMergeIdempotent tests that re-merging an already merged batch is a
// no-op
func TestMergeIdempotent(t *testing.T) {
	batch := []watch.WatchRecord{
		rec("a", "vidAAA", "One", at(1, 10)),
		rec("b", "vidBBB", "Two", at(2, 10)),
	}

	first := Merge(nil, batch)
	second := Merge(first.Records, batch)

	assert.Equal(t, 2, first.Added)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 2, second.Duplicates)
	assert.Equal(t, first.Total, second.Total)

	third := Merge(second.Records, batch)
	assert.Equal(t, second.Total, third.Total)
}

// TestMergeExistingWins tests that a colliding incoming record never
// replaces the stored one
func TestMergeExistingWins(t *testing.T) {
	stored := rec("stored", "vidAAA", "Stored Title", at(1, 10))
	replay := rec("replay", "vidAAA", "Replayed Title", at(1, 10))

	result := Merge([]watch.WatchRecord{stored}, []watch.WatchRecord{replay})

	require.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, "stored", result.Records[0].ID)
	assert.Equal(t, "Stored Title", result.Records[0].Title())
}

// TestMergeRewatchesKept tests that the same video at different times is two
// identities
func TestMergeRewatchesKept(t *testing.T) {
	first := rec("w1", "vidAAA", "Same Video", at(1, 10))
	again := rec("w2", "vidAAA", "Same Video", at(1, 14))

	result := Merge([]watch.WatchRecord{first}, []watch.WatchRecord{again})
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Added)
}

// TestMergeUnparsedTimestampIdentity tests dedup on the raw timestamp when
// the watch time failed to parse
func TestMergeUnparsedTimestampIdentity(t *testing.T) {
	a := watch.WatchRecord{ID: "a", RawTimestamp: "Mar 1, 2024, 9:00:00 AM CEST", Product: watch.ProductYouTube}
	vid := "vidAAA"
	a.VideoID = &vid
	b := a
	b.ID = "b"

	result := Merge([]watch.WatchRecord{a}, []watch.WatchRecord{b})
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Duplicates)
}

// TestMergeNoVideoIDContentIdentity tests the full-field fallback for
// records without a video id
func TestMergeNoVideoIDContentIdentity(t *testing.T) {
	a := rec("a", "", "a private video", at(1, 10))
	same := rec("b", "", "a private video", at(1, 10))
	different := rec("c", "", "another private video", at(1, 10))

	result := Merge([]watch.WatchRecord{a}, []watch.WatchRecord{same, different})
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Added)
}

// TestMergeDoesNotMutateInputs tests that both input slices survive a merge
// unchanged
func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := []watch.WatchRecord{rec("e1", "vidAAA", "Old", at(1, 10))}
	incoming := []watch.WatchRecord{rec("n1", "vidBBB", "New", at(2, 10))}

	_ = Merge(existing, incoming)

	assert.Equal(t, "e1", existing[0].ID)
	assert.Len(t, existing, 1)
	assert.Equal(t, "n1", incoming[0].ID)
}

// TestNewestFirst tests presentation ordering with timeless records at the
// end
func TestNewestFirst(t *testing.T) {
	timeless := watch.WatchRecord{ID: "timeless", RawTimestamp: "bad", Product: watch.ProductYouTube}
	records := []watch.WatchRecord{
		timeless,
		rec("old", "vidAAA", "Old", at(1, 10)),
		rec("new", "vidBBB", "New", at(5, 10)),
	}

	ordered := NewestFirst(records)
	require.Len(t, ordered, 3)
	assert.Equal(t, "new", ordered[0].ID)
	assert.Equal(t, "old", ordered[1].ID)
	assert.Equal(t, "timeless", ordered[2].ID)

	// Input untouched.
	assert.Equal(t, "timeless", records[0].ID)
}
