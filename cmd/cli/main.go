// Command cli parses a Takeout watch-history file offline and prints a
// summary plus a few headline aggregates, without touching a database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"watchlens/domain/watch"
	"watchlens/internal/analytics"
	"watchlens/internal/takeout"
)

func main() {
	var (
		topN    = flag.Int("top", 10, "number of top channels to print")
		product = flag.String("product", "", "filter by product (youtube, youtube_music)")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cli [flags] <watch-history.html>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open %s: %v", flag.Arg(0), err)
	}
	defer file.Close()

	records, summary, err := takeout.Process(context.Background(), file, takeout.Options{
		Progress: func(percent float64, processed int) {
			fmt.Fprintf(os.Stderr, "\rParsing... %3.0f%% (%d records)", percent, processed)
		},
	})
	if err != nil {
		log.Fatalf("Parse failed: %v", err)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Printf("Records:            %d\n", summary.TotalRecords)
	fmt.Printf("Unique channels:    %d\n", summary.UniqueChannels)
	fmt.Printf("YouTube:            %d\n", summary.ProductBreakdown.YouTube)
	fmt.Printf("YouTube Music:      %d\n", summary.ProductBreakdown.YouTubeMusic)
	fmt.Printf("Unparsed timestamps: %d\n", summary.UnparsedTimestamps)
	if summary.DateRange.Start != nil && summary.DateRange.End != nil {
		fmt.Printf("Range:              %s to %s\n",
			summary.DateRange.Start.Format("2006-01-02"),
			summary.DateRange.End.Format("2006-01-02"))
	}

	filter := watch.FilterOptions{Product: watch.Product(*product)}
	dash := analytics.BuildDashboard(records, filter, time.Now(), *topN)

	if len(dash.Channels) > 0 {
		fmt.Printf("\nTop channels:\n")
		for i, ch := range dash.Channels {
			fmt.Printf("  %2d. %-40s %5d (%.1f%%)\n", i+1, ch.Channel, ch.Count, ch.Percent)
		}
	}

	if len(dash.Topics) > 0 {
		fmt.Printf("\nTopics:\n")
		for _, t := range dash.Topics {
			fmt.Printf("  %-22s %5d (%.1f%%, %s)\n", t.Topic, t.Count, t.Percent, t.Trend)
		}
	}

	fmt.Printf("\nSessions: %d (%d binges)\n", dash.Sessions.TotalSessions, dash.Sessions.BingeSessions)
}
