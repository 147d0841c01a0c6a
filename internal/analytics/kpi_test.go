package analytics

import (
	"testing"
	"time"

	"watchlens/domain/watch"
)

// TestYoyDeltaEdgePolicy tests the divide-by-zero policy
func TestYoyDeltaEdgePolicy(t *testing.T) {
	tests := []struct {
		current  int
		previous int
		want     float64
	}{
		{5, 0, 100}, // growth from nothing
		{0, 0, 0},   // nothing either year
		{3, 4, -25}, // ordinary decline
		{6, 4, 50},  // ordinary growth
		{4, 4, 0},   // flat
		{0, 10, -100},
	}

	for _, test := range tests {
		if got := YoyDelta(test.current, test.previous); got != test.want {
			t.Errorf("YoyDelta(%d, %d) = %v, want %v", test.current, test.previous, got, test.want)
		}
	}
}

// TestComputeKPIWindows tests the to-date windows against an injected now
func TestComputeKPIWindows(t *testing.T) {
	now := utc(2024, time.June, 15, 12, 0)

	records := []watch.WatchRecord{
		watched(utc(2024, time.June, 10, 9, 0)),    // month, quarter, year
		watched(utc(2024, time.May, 1, 9, 0)),      // quarter, year
		watched(utc(2024, time.February, 1, 9, 0)), // year only
		watched(utc(2023, time.June, 5, 9, 0)),     // prior-year month window
		watched(utc(2023, time.November, 1, 9, 0)), // neither window, all-time
	}

	kpis := ComputeKPIs(records, now)

	if kpis.MonthToDate.Count != 1 {
		t.Errorf("MonthToDate = %d, want 1", kpis.MonthToDate.Count)
	}
	if kpis.QuarterToDate.Count != 2 {
		t.Errorf("QuarterToDate = %d, want 2", kpis.QuarterToDate.Count)
	}
	if kpis.YearToDate.Count != 3 {
		t.Errorf("YearToDate = %d, want 3", kpis.YearToDate.Count)
	}
	if kpis.AllTime.Count != 5 {
		t.Errorf("AllTime = %d, want 5", kpis.AllTime.Count)
	}

	// June 2023 had 1 watch in the comparable window, June 2024 has 1: flat.
	if kpis.MonthToDate.YoyDelta != 0 {
		t.Errorf("MonthToDate YoY = %v, want 0", kpis.MonthToDate.YoyDelta)
	}
}

// TestComputeKPIsTimelessRecords tests that records with no watch time only
// reach the all-time counter
func TestComputeKPIsTimelessRecords(t *testing.T) {
	now := utc(2024, time.June, 15, 12, 0)
	timeless := watch.WatchRecord{ID: "x", RawTimestamp: "bad", Product: watch.ProductYouTube}

	kpis := ComputeKPIs([]watch.WatchRecord{timeless}, now)

	if kpis.AllTime.Count != 1 {
		t.Errorf("AllTime = %d, want 1", kpis.AllTime.Count)
	}
	if kpis.YearToDate.Count != 0 || kpis.MonthToDate.Count != 0 {
		t.Error("Timeless records must not reach the dated windows")
	}
}

// TestComputeKPIsEmpty tests the zero-record edge
func TestComputeKPIsEmpty(t *testing.T) {
	kpis := ComputeKPIs(nil, utc(2024, time.June, 15, 12, 0))
	if kpis.AllTime.Count != 0 || kpis.AllTime.YoyDelta != 0 {
		t.Errorf("Empty input should be all zeros, got %+v", kpis.AllTime)
	}
}
