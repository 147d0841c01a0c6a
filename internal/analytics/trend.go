package analytics

import (
	"sort"
	"time"

	"watchlens/domain/watch"

	"gonum.org/v1/gonum/stat"
)

// MonthBucket is one month of watch activity.
type MonthBucket struct {
	Label string `json:"label"` // "Jan 2006"
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

// MonthlyTrend is the chronological month series plus an overall direction.
type MonthlyTrend struct {
	Buckets   []MonthBucket `json:"buckets"`
	Slope     float64       `json:"slope"` // watches per month, fitted
	Direction string        `json:"direction"`
}

// slopeEpsilon separates a genuinely flat fit from rounding noise.
const slopeEpsilon = 0.05

// ComputeMonthlyTrend groups records into calendar-month buckets in
// chronological order. Records without a watch time are excluded, never
// assigned to an arbitrary bucket. Direction comes from a simple linear
// regression over the bucket counts.
func ComputeMonthlyTrend(records []watch.WatchRecord) MonthlyTrend {
	counts := make(map[int]int) // year*12+month0
	for _, r := range records {
		if r.WatchedAt == nil {
			continue
		}
		t := r.WatchedAt.UTC()
		counts[t.Year()*12+int(t.Month())-1]++
	}

	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	trend := MonthlyTrend{Buckets: make([]MonthBucket, 0, len(keys)), Direction: "stable"}
	xs := make([]float64, 0, len(keys))
	ys := make([]float64, 0, len(keys))
	for i, k := range keys {
		year, month0 := k/12, k%12
		trend.Buckets = append(trend.Buckets, MonthBucket{
			Label: time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Year:  year,
			Month: month0 + 1,
			Count: counts[k],
		})
		xs = append(xs, float64(i))
		ys = append(ys, float64(counts[k]))
	}

	if len(keys) >= 2 {
		_, slope := stat.LinearRegression(xs, ys, nil, false)
		trend.Slope = slope
		switch {
		case slope > slopeEpsilon:
			trend.Direction = "up"
		case slope < -slopeEpsilon:
			trend.Direction = "down"
		}
	}

	return trend
}
