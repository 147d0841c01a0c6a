package analytics

import (
	"sort"
	"time"

	"watchlens/domain/watch"
)

// NoTopicLabel is the bucket for records no classifier rule matched. "No
// topic" is a real bucket, not an error.
const NoTopicLabel = "No topic"

// TopicStat is one row of the topic leaderboard.
type TopicStat struct {
	Topic   string  `json:"topic"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // of total topic mentions
	Trend   string  `json:"trend"`   // "up", "down", "stable"
}

// topicTrendThreshold is the month-over-month percentage band treated as
// stable.
const topicTrendThreshold = 10.0

// ComputeTopicLeaderboard counts topic mentions over the record set. A record
// with N topics contributes to N buckets, so percentages are relative to
// total mentions, not record count. Trend classifies the calendar month of
// now against the immediately preceding month per topic.
func ComputeTopicLeaderboard(records []watch.WatchRecord, now time.Time) []TopicStat {
	now = now.UTC()
	currentKey := monthKey(now)
	previousKey := monthKey(now.AddDate(0, -1, 0))

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	currentMonth := make(map[string]int)
	previousMonth := make(map[string]int)
	totalMentions := 0

	note := func(topic string, r watch.WatchRecord, ordinal int) {
		if _, ok := counts[topic]; !ok {
			firstSeen[topic] = ordinal
		}
		counts[topic]++
		totalMentions++
		if r.WatchedAt != nil {
			switch monthKey(r.WatchedAt.UTC()) {
			case currentKey:
				currentMonth[topic]++
			case previousKey:
				previousMonth[topic]++
			}
		}
	}

	for i, r := range records {
		if len(r.Topics) == 0 {
			note(NoTopicLabel, r, i)
			continue
		}
		for _, topic := range r.Topics {
			note(topic, r, i)
		}
	}

	stats := make([]TopicStat, 0, len(counts))
	for topic, count := range counts {
		stats = append(stats, TopicStat{
			Topic:   topic,
			Count:   count,
			Percent: float64(count) / float64(totalMentions) * 100,
			Trend:   classifyTrend(currentMonth[topic], previousMonth[topic]),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return firstSeen[stats[i].Topic] < firstSeen[stats[j].Topic]
	})
	return stats
}

// classifyTrend applies the +-10% month-over-month band. A topic absent last
// month is stable unless it has current activity, in which case it is up.
func classifyTrend(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "up"
		}
		return "stable"
	}
	change := (float64(current) - float64(previous)) / float64(previous) * 100
	switch {
	case change > topicTrendThreshold:
		return "up"
	case change < -topicTrendThreshold:
		return "down"
	default:
		return "stable"
	}
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
