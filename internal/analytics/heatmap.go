package analytics

import "watchlens/domain/watch"

// HeatmapCell is one day-of-week x hour-of-day cell.
type HeatmapCell struct {
	Day   int `json:"day"` // 0=Sunday..6=Saturday
	Hour  int `json:"hour"`
	Value int `json:"value"`
}

// ComputeDayTimeHeatmap counts watches per (day-of-week, hour) cell. The
// output always contains exactly 7x24 = 168 cells in (day, hour) order,
// zero-filled; sparse omission would break the dashboard grid, so the full
// shape is a postcondition even for empty input. Records without a watch
// time carry no calendar fields and are skipped.
func ComputeDayTimeHeatmap(records []watch.WatchRecord) []HeatmapCell {
	cells := make([]HeatmapCell, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			cells = append(cells, HeatmapCell{Day: day, Hour: hour})
		}
	}

	for _, r := range records {
		if r.DayOfWeek == nil || r.Hour == nil {
			continue
		}
		cells[*r.DayOfWeek*24+*r.Hour].Value++
	}
	return cells
}
