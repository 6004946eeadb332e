// Package exporter writes the projection summary as a downloadable file.
package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"outpatient-planner/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const (
	SummaryCSVFilename  = "projections_summary.csv"
	SummaryXLSXFilename = "projections_summary.xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet = "Summary"
)

var summaryHeader = []string{"Metric", "Total", "Percentage Change"}

var ErrInvalidSummary = errors.New("invalid projection summary file")

// SummaryRow is one exported line as text.
type SummaryRow struct {
	Metric           string
	Total            float64
	PercentageChange string
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// SummaryCSV writes the three summary lines under a Metric, Total,
// Percentage Change header.
func SummaryCSV(summary *entity.ProjectionSummary) (*File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(summaryHeader); err != nil {
		return nil, fmt.Errorf("write summary header: %w", err)
	}
	for _, line := range summary.Lines {
		record := []string{line.Metric, FormatTotal(line.Total), FormatPercentChange(line.PercentageChange)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write summary line %q: %w", line.Metric, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush summary: %w", err)
	}

	return &File{
		Name:        SummaryCSVFilename,
		ContentType: ContentTypeCSV,
		Content:     buf.Bytes(),
	}, nil
}

// ParseSummaryCSV reads a file produced by SummaryCSV.
func ParseSummaryCSV(r io.Reader) ([]SummaryRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}
	if len(records) == 0 || len(records[0]) != len(summaryHeader) {
		return nil, ErrInvalidSummary
	}
	for i, name := range summaryHeader {
		if records[0][i] != name {
			return nil, fmt.Errorf("%w: unexpected column %q", ErrInvalidSummary, records[0][i])
		}
	}

	rows := make([]SummaryRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		total, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: total for %q: %v", ErrInvalidSummary, rec[0], err)
		}
		rows = append(rows, SummaryRow{Metric: rec[0], Total: total, PercentageChange: rec[2]})
	}
	return rows, nil
}

// SummaryWorkbook writes the same table to a single-sheet workbook with a
// bold header row.
func SummaryWorkbook(summary *entity.ProjectionSummary) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("name summary sheet: %w", err)
	}

	for i, name := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, name); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetCellStyle(summarySheet, "A1", "C1", headerStyle)
	}

	for i, line := range summary.Lines {
		row := i + 2
		values := []interface{}{line.Metric, line.Total, FormatPercentChange(line.PercentageChange)}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	_ = f.SetColWidth(summarySheet, "B", "C", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write summary workbook: %w", err)
	}

	return &File{
		Name:        SummaryXLSXFilename,
		ContentType: ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}
