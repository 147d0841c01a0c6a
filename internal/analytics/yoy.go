package analytics

import (
	"time"

	"watchlens/domain/watch"
)

// YoyMonth compares one calendar month of the current year against the same
// month last year.
type YoyMonth struct {
	Month        int     `json:"month"` // 1-12
	Label        string  `json:"label"` // "Jan"
	CurrentYear  int     `json:"currentYear"`
	PreviousYear int     `json:"previousYear"`
	Delta        float64 `json:"delta"`
}

// YoyComparison is the full twelve-month year-over-year view.
type YoyComparison struct {
	Year   int        `json:"year"`
	Months []YoyMonth `json:"months"`
}

// CompareYearOverYear counts watches per calendar month for the year of now
// and the year before, joining on the month. All twelve months are present
// even when empty. Records use their yoyKey, so unparsed timestamps are
// excluded by construction.
func CompareYearOverYear(records []watch.WatchRecord, now time.Time) YoyComparison {
	year := now.UTC().Year()
	current := make(map[int]int)
	previous := make(map[int]int)

	for _, r := range records {
		if r.Year == nil || r.Month == nil {
			continue
		}
		switch *r.Year {
		case year:
			current[*r.Month]++
		case year - 1:
			previous[*r.Month]++
		}
	}

	out := YoyComparison{Year: year, Months: make([]YoyMonth, 0, 12)}
	for m := 1; m <= 12; m++ {
		out.Months = append(out.Months, YoyMonth{
			Month:        m,
			Label:        time.Month(m).String()[:3],
			CurrentYear:  current[m],
			PreviousYear: previous[m],
			Delta:        YoyDelta(current[m], previous[m]),
		})
	}
	return out
}
