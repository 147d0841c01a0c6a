package analytics

import (
	"time"

	"watchlens/domain/watch"
)

// Dashboard bundles every aggregate the UI renders for one filtered view.
type Dashboard struct {
	RecordCount int           `json:"recordCount"`
	KPIs        KPISet        `json:"kpis"`
	Trend       MonthlyTrend  `json:"trend"`
	Channels    []ChannelStat `json:"channels"`
	Heatmap     []HeatmapCell `json:"heatmap"`
	Topics      []TopicStat   `json:"topics"`
	Sessions    SessionStats  `json:"sessions"`
	Yoy         YoyComparison `json:"yoy"`
}

// BuildDashboard applies the filter once and runs every aggregation over the
// filtered subset. Pure and total: any filter combination including the zero
// filter is accepted, and empty input produces the full zero-valued shape.
// topChannels <= 0 falls back to DefaultTopChannels.
func BuildDashboard(records []watch.WatchRecord, f watch.FilterOptions, now time.Time, topChannels int) Dashboard {
	filtered := ApplyFilter(records, f, now)

	return Dashboard{
		RecordCount: len(filtered),
		KPIs:        ComputeKPIs(filtered, now),
		Trend:       ComputeMonthlyTrend(filtered),
		Channels:    ComputeTopChannels(filtered, topChannels),
		Heatmap:     ComputeDayTimeHeatmap(filtered),
		Topics:      ComputeTopicLeaderboard(filtered, now),
		Sessions:    DetectSessions(filtered),
		Yoy:         CompareYearOverYear(filtered, now),
	}
}
