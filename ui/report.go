package ui

import (
	"fmt"
	"strings"
	"time"

	"watchlens/internal/analytics"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BuildReport renders the dashboard as a markdown document.
func BuildReport(dash analytics.Dashboard, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Watch History Report\n\n")
	fmt.Fprintf(&b, "Generated %s over %d records.\n\n", now.Format("January 2, 2006"), dash.RecordCount)

	b.WriteString("## Key Figures\n\n")
	b.WriteString("| Window | Watches | YoY |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| Month to date | %d | %s |\n", dash.KPIs.MonthToDate.Count, formatDelta(dash.KPIs.MonthToDate.YoyDelta))
	fmt.Fprintf(&b, "| Quarter to date | %d | %s |\n", dash.KPIs.QuarterToDate.Count, formatDelta(dash.KPIs.QuarterToDate.YoyDelta))
	fmt.Fprintf(&b, "| Year to date | %d | %s |\n", dash.KPIs.YearToDate.Count, formatDelta(dash.KPIs.YearToDate.YoyDelta))
	fmt.Fprintf(&b, "| All time | %d | %s |\n\n", dash.KPIs.AllTime.Count, formatDelta(dash.KPIs.AllTime.YoyDelta))

	if len(dash.Channels) > 0 {
		b.WriteString("## Top Channels\n\n")
		for i, ch := range dash.Channels {
			fmt.Fprintf(&b, "%d. %s — %d watches (%.1f%%)\n", i+1, ch.Channel, ch.Count, ch.Percent)
		}
		b.WriteString("\n")
	}

	if len(dash.Topics) > 0 {
		b.WriteString("## Topics\n\n")
		b.WriteString("| Topic | Mentions | Share | Trend |\n|---|---|---|---|\n")
		for _, t := range dash.Topics {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% | %s |\n", t.Topic, t.Count, t.Percent, t.Trend)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Viewing Sessions\n\n")
	fmt.Fprintf(&b, "%d sessions detected, %d of them binges (5+ watches).\n",
		dash.Sessions.TotalSessions, dash.Sessions.BingeSessions)
	if dash.Sessions.TotalSessions > 0 {
		fmt.Fprintf(&b, "Average gap within a session: %.1f minutes (median %.1f).\n",
			dash.Sessions.AvgGapMinutes, dash.Sessions.MedianGapMinutes)
	}
	b.WriteString("\n")

	if len(dash.Trend.Buckets) > 0 {
		b.WriteString("## Monthly Trend\n\n")
		fmt.Fprintf(&b, "Direction: **%s** (%.2f watches/month).\n\n", dash.Trend.Direction, dash.Trend.Slope)
		for _, bucket := range dash.Trend.Buckets {
			fmt.Fprintf(&b, "- %s: %d\n", bucket.Label, bucket.Count)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts the markdown report into a standalone HTML page.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	doc := p.Parse([]byte(md))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: "Watch History Report",
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func formatDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.1f%%", delta)
	}
	return fmt.Sprintf("%.1f%%", delta)
}
