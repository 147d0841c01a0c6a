package watch

// Timeframe bounds an aggregation to a trailing window ending at the injected
// "now". TimeframeAll applies no bound.
type Timeframe string

const (
	TimeframeAll     Timeframe = "all"
	TimeframeYear    Timeframe = "year"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeMonth   Timeframe = "month"
	TimeframeWeek    Timeframe = "week"
)

// FilterOptions is the value object every aggregation function consumes.
// It is always passed by value and never mutated; the zero value is the
// identity filter.
type FilterOptions struct {
	Timeframe Timeframe `json:"timeframe"`
	Product   Product   `json:"product"`  // empty = both products
	Topics    []string  `json:"topics"`   // empty = all topics
	Channels  []string  `json:"channels"` // empty = all channels
	Search    string    `json:"search"`   // substring match on title/channel
}

// IsZero reports whether the filter is the identity transform.
func (f FilterOptions) IsZero() bool {
	return (f.Timeframe == "" || f.Timeframe == TimeframeAll) &&
		f.Product == "" && len(f.Topics) == 0 && len(f.Channels) == 0 && f.Search == ""
}
