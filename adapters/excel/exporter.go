// Package excel renders a computed dashboard to an .xlsx workbook for
// offline analysis.
package excel

import (
	"fmt"
	"io"

	"watchlens/internal/analytics"

	"github.com/xuri/excelize/v2"
)

// Exporter writes dashboards to Excel workbooks.
type Exporter struct{}

// NewExporter creates a dashboard exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Write renders the dashboard to w as an .xlsx workbook with one sheet per
// aggregate family.
func (e *Exporter) Write(dash analytics.Dashboard, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeKPISheet(f, dash); err != nil {
		return err
	}
	if err := e.writeChannelsSheet(f, dash.Channels); err != nil {
		return err
	}
	if err := e.writeTopicsSheet(f, dash.Topics); err != nil {
		return err
	}
	if err := e.writeHeatmapSheet(f, dash.Heatmap); err != nil {
		return err
	}
	if err := e.writeTrendSheet(f, dash.Trend); err != nil {
		return err
	}

	// Remove the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeKPISheet(f *excelize.File, dash analytics.Dashboard) error {
	const sheet = "KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Window", "Watches", "YoY %"},
		{"Month to date", dash.KPIs.MonthToDate.Count, dash.KPIs.MonthToDate.YoyDelta},
		{"Quarter to date", dash.KPIs.QuarterToDate.Count, dash.KPIs.QuarterToDate.YoyDelta},
		{"Year to date", dash.KPIs.YearToDate.Count, dash.KPIs.YearToDate.YoyDelta},
		{"All time", dash.KPIs.AllTime.Count, dash.KPIs.AllTime.YoyDelta},
		{},
		{"Filtered records", dash.RecordCount},
		{"Sessions", dash.Sessions.TotalSessions},
		{"Binge sessions", dash.Sessions.BingeSessions},
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeChannelsSheet(f *excelize.File, channels []analytics.ChannelStat) error {
	const sheet = "Top Channels"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{"Channel", "Watches", "% of total"}}
	for _, ch := range channels {
		rows = append(rows, []interface{}{ch.Channel, ch.Count, ch.Percent})
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeTopicsSheet(f *excelize.File, topics []analytics.TopicStat) error {
	const sheet = "Topics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{"Topic", "Mentions", "% of mentions", "Trend"}}
	for _, t := range topics {
		rows = append(rows, []interface{}{t.Topic, t.Count, t.Percent, t.Trend})
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeHeatmapSheet(f *excelize.File, cells []analytics.HeatmapCell) error {
	const sheet = "Heatmap"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	header := make([]interface{}, 0, 25)
	header = append(header, "")
	for hour := 0; hour < 24; hour++ {
		header = append(header, hour)
	}
	rows := [][]interface{}{header}

	for day := 0; day < 7; day++ {
		row := make([]interface{}, 0, 25)
		row = append(row, days[day])
		for hour := 0; hour < 24; hour++ {
			row = append(row, cells[day*24+hour].Value)
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeTrendSheet(f *excelize.File, trend analytics.MonthlyTrend) error {
	const sheet = "Monthly Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{"Month", "Watches"}}
	for _, b := range trend.Buckets {
		rows = append(rows, []interface{}{b.Label, b.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Direction", trend.Direction})
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
