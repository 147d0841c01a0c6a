package analytics

import (
	"sort"
	"time"

	"watchlens/domain/watch"

	"github.com/montanaflynn/stats"
)

// SessionGap is the idle threshold separating two sessions.
const SessionGap = 30 * time.Minute

// BingeThreshold is the video count at which a session counts as a binge.
const BingeThreshold = 5

// Session is one run of consecutive watches with gaps under SessionGap.
type Session struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	VideoCount int       `json:"videoCount"`
	Binge      bool      `json:"binge"`
}

// SessionStats is the session partition plus derived measures.
type SessionStats struct {
	Sessions         []Session `json:"sessions"`
	TotalSessions    int       `json:"totalSessions"`
	BingeSessions    int       `json:"bingeSessions"`
	HourDistribution [24]int   `json:"hourDistribution"` // sessions by start hour
	AvgGapMinutes    float64   `json:"avgGapMinutes"`    // within-session gaps
	MedianGapMinutes float64   `json:"medianGapMinutes"`
}

// DetectSessions partitions records into viewing sessions. Records without a
// watch time are excluded, the rest sorted ascending by watch time; a new
// session starts whenever the gap to the previous watch exceeds SessionGap.
// Gap statistics cover within-session gaps only.
func DetectSessions(records []watch.WatchRecord) SessionStats {
	times := make([]time.Time, 0, len(records))
	for _, r := range records {
		if r.WatchedAt != nil {
			times = append(times, r.WatchedAt.UTC())
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	result := SessionStats{Sessions: []Session{}}
	if len(times) == 0 {
		return result
	}

	var gaps []float64
	current := Session{Start: times[0], End: times[0], VideoCount: 1}
	for _, t := range times[1:] {
		gap := t.Sub(current.End)
		if gap > SessionGap {
			result.Sessions = append(result.Sessions, finishSession(current))
			current = Session{Start: t, End: t, VideoCount: 1}
			continue
		}
		gaps = append(gaps, gap.Minutes())
		current.End = t
		current.VideoCount++
	}
	result.Sessions = append(result.Sessions, finishSession(current))

	result.TotalSessions = len(result.Sessions)
	for _, s := range result.Sessions {
		if s.Binge {
			result.BingeSessions++
		}
		result.HourDistribution[s.Start.Hour()]++
	}

	if len(gaps) > 0 {
		// stats errors only on empty input, which is excluded above.
		result.AvgGapMinutes, _ = stats.Mean(gaps)
		result.MedianGapMinutes, _ = stats.Median(gaps)
	}
	return result
}

func finishSession(s Session) Session {
	s.Binge = s.VideoCount >= BingeThreshold
	return s
}
