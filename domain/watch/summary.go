package watch

import "time"

// ProductBreakdown counts records per product for one import batch.
type ProductBreakdown struct {
	YouTube      int `json:"youtube"`
	YouTubeMusic int `json:"youtubeMusic"`
}

// DateRange is the span of resolved watch times in a batch. Both ends are nil
// when no record in the batch carries a watch time.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// ImportSummary is computed once over a full normalized batch and returned to
// the caller alongside the records.
type ImportSummary struct {
	TotalRecords       int              `json:"totalRecords"`
	UniqueChannels     int              `json:"uniqueChannels"`
	ProductBreakdown   ProductBreakdown `json:"productBreakdown"`
	DateRange          DateRange        `json:"dateRange"`
	UnparsedTimestamps int              `json:"unparsedTimestamps"`
}

// Summarize computes the batch summary over normalized records.
func Summarize(records []WatchRecord) ImportSummary {
	summary := ImportSummary{TotalRecords: len(records)}

	channels := make(map[string]struct{})
	for _, r := range records {
		switch r.Product {
		case ProductYouTubeMusic:
			summary.ProductBreakdown.YouTubeMusic++
		default:
			summary.ProductBreakdown.YouTube++
		}

		if ch := r.Channel(); ch != "" {
			channels[ch] = struct{}{}
		}

		if r.WatchedAt == nil {
			summary.UnparsedTimestamps++
			continue
		}
		if summary.DateRange.Start == nil || r.WatchedAt.Before(*summary.DateRange.Start) {
			t := *r.WatchedAt
			summary.DateRange.Start = &t
		}
		if summary.DateRange.End == nil || r.WatchedAt.After(*summary.DateRange.End) {
			t := *r.WatchedAt
			summary.DateRange.End = &t
		}
	}
	summary.UniqueChannels = len(channels)

	return summary
}
