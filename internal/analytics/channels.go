package analytics

import (
	"sort"

	"watchlens/domain/watch"
)

// ChannelStat is one row of the channel leaderboard.
type ChannelStat struct {
	Channel string  `json:"channel"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // of all counted records
}

// DefaultTopChannels is the leaderboard size the dashboard requests.
const DefaultTopChannels = 10

// ComputeTopChannels groups records by channel title and returns the top n by
// count. Ties break by first appearance in record order, so the leaderboard
// is deterministic for a given input ordering. Records without channel
// metadata are skipped; n <= 0 means DefaultTopChannels.
func ComputeTopChannels(records []watch.WatchRecord, n int) []ChannelStat {
	if n <= 0 {
		n = DefaultTopChannels
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	total := 0
	for i, r := range records {
		ch := r.Channel()
		if ch == "" {
			continue
		}
		if _, ok := counts[ch]; !ok {
			firstSeen[ch] = i
		}
		counts[ch]++
		total++
	}

	stats := make([]ChannelStat, 0, len(counts))
	for ch, count := range counts {
		stats = append(stats, ChannelStat{Channel: ch, Count: count})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return firstSeen[stats[i].Channel] < firstSeen[stats[j].Channel]
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	for i := range stats {
		stats[i].Percent = float64(stats[i].Count) / float64(total) * 100
	}
	return stats
}
