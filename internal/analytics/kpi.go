package analytics

import (
	"time"

	"watchlens/domain/watch"
)

// KPI is one headline counter with its year-over-year percentage delta.
type KPI struct {
	Count    int     `json:"count"`
	YoyDelta float64 `json:"yoyDelta"`
}

// KPISet holds the four dashboard counters.
type KPISet struct {
	MonthToDate   KPI `json:"monthToDate"`
	QuarterToDate KPI `json:"quarterToDate"`
	YearToDate    KPI `json:"yearToDate"`
	AllTime       KPI `json:"allTime"`
}

// ComputeKPIs counts watches for the month-, quarter-, and year-to-date
// windows ending at now, plus all-time, each compared against the same
// window one year earlier. Records without a watch time only contribute to
// the all-time count.
func ComputeKPIs(records []watch.WatchRecord, now time.Time) KPISet {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	quarterStart := time.Date(now.Year(), quarterStartMonth(now.Month()), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var mtd, qtd, ytd, prevMTD, prevQTD, prevYTD int
	var allTime, prevAllTime int

	yearAgo := now.AddDate(-1, 0, 0)
	for _, r := range records {
		allTime++
		if r.WatchedAt == nil {
			continue
		}
		t := r.WatchedAt.UTC()

		if inWindow(t, monthStart, now) {
			mtd++
		}
		if inWindow(t, quarterStart, now) {
			qtd++
		}
		if inWindow(t, yearStart, now) {
			ytd++
		}

		if inWindow(t, monthStart.AddDate(-1, 0, 0), yearAgo) {
			prevMTD++
		}
		if inWindow(t, quarterStart.AddDate(-1, 0, 0), yearAgo) {
			prevQTD++
		}
		if inWindow(t, yearStart.AddDate(-1, 0, 0), yearAgo) {
			prevYTD++
		}
		if !t.After(yearAgo) {
			prevAllTime++
		}
	}

	return KPISet{
		MonthToDate:   KPI{Count: mtd, YoyDelta: YoyDelta(mtd, prevMTD)},
		QuarterToDate: KPI{Count: qtd, YoyDelta: YoyDelta(qtd, prevQTD)},
		YearToDate:    KPI{Count: ytd, YoyDelta: YoyDelta(ytd, prevYTD)},
		AllTime:       KPI{Count: allTime, YoyDelta: YoyDelta(allTime, prevAllTime)},
	}
}

// YoyDelta is the year-over-year percentage change. Edge policy: a previous
// count of zero yields +100% when anything was watched this period and 0%
// when nothing was.
func YoyDelta(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (float64(current) - float64(previous)) / float64(previous) * 100
}

func quarterStartMonth(m time.Month) time.Month {
	switch {
	case m >= time.October:
		return time.October
	case m >= time.July:
		return time.July
	case m >= time.April:
		return time.April
	default:
		return time.January
	}
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
