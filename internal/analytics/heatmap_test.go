package analytics

import (
	"testing"
	"time"

	"watchlens/domain/watch"
)

// TestHeatmapAlwaysFullGrid tests that every (day, hour) cell is present and
// zero-filled even with no input
func TestHeatmapAlwaysFullGrid(t *testing.T) {
	cells := ComputeDayTimeHeatmap(nil)

	if len(cells) != 168 {
		t.Fatalf("Expected 168 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.Day != i/24 || c.Hour != i%24 {
			t.Fatalf("cell %d has coordinates (%d, %d), want (%d, %d)", i, c.Day, c.Hour, i/24, i%24)
		}
		if c.Value != 0 {
			t.Errorf("cell (%d, %d) = %d, want 0", c.Day, c.Hour, c.Value)
		}
	}
}

// TestHeatmapCounts tests cell placement from the derived calendar fields
func TestHeatmapCounts(t *testing.T) {
	// 2024-03-16 02:30 UTC is a Saturday (day 6).
	records := []watch.WatchRecord{
		watched(time.Date(2024, 3, 16, 2, 30, 0, 0, time.UTC)),
		watched(time.Date(2024, 3, 23, 2, 45, 0, 0, time.UTC)), // also Saturday 02:xx
		watched(time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)),  // Monday 09:00
	}

	cells := ComputeDayTimeHeatmap(records)

	if got := cells[6*24+2].Value; got != 2 {
		t.Errorf("Saturday 02:00 = %d, want 2", got)
	}
	if got := cells[1*24+9].Value; got != 1 {
		t.Errorf("Monday 09:00 = %d, want 1", got)
	}

	total := 0
	for _, c := range cells {
		total += c.Value
	}
	if total != 3 {
		t.Errorf("Total = %d, want 3", total)
	}
}

// TestHeatmapSkipsTimelessRecords tests records without calendar fields are
// left out rather than defaulting to cell (0, 0)
func TestHeatmapSkipsTimelessRecords(t *testing.T) {
	timeless := watch.WatchRecord{ID: "x", RawTimestamp: "bad"}
	cells := ComputeDayTimeHeatmap([]watch.WatchRecord{timeless})

	if cells[0].Value != 0 {
		t.Errorf("cell (0, 0) = %d, want 0", cells[0].Value)
	}
}
