package watch

import (
	"fmt"
	"time"
)

// SetWatchedAt assigns the resolved instant and derives every calendar field
// from it in one step. Calendar fields are never populated any other way, so
// a record can never end up with a watch time and missing calendar data, or
// the reverse.
func (r *WatchRecord) SetWatchedAt(t time.Time) {
	utc := t.UTC()
	r.WatchedAt = &utc

	year := utc.Year()
	month := int(utc.Month())
	week := weekOfMonth(utc.Day())
	dow := int(utc.Weekday()) // 0=Sunday..6=Saturday
	hour := utc.Hour()
	yoy := fmt.Sprintf("%04d-%02d", year, month)

	r.Year = &year
	r.Month = &month
	r.Week = &week
	r.DayOfWeek = &dow
	r.Hour = &hour
	r.YoyKey = &yoy
}

// weekOfMonth maps day-of-month to a 1-based week index (1..5).
func weekOfMonth(day int) int {
	return (day-1)/7 + 1
}

// CalendarConsistent reports whether the null-together invariant holds:
// WatchedAt is nil exactly when every calendar field is nil.
func (r WatchRecord) CalendarConsistent() bool {
	populated := r.Year != nil && r.Month != nil && r.Week != nil &&
		r.DayOfWeek != nil && r.Hour != nil && r.YoyKey != nil
	empty := r.Year == nil && r.Month == nil && r.Week == nil &&
		r.DayOfWeek == nil && r.Hour == nil && r.YoyKey == nil
	if r.WatchedAt != nil {
		return populated
	}
	return empty
}
