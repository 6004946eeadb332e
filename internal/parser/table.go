// Package parser turns uploaded activity files into an ActivityTable.
// Only the shape of the file is checked here; which columns exist is left
// to the operations that need them.
package parser

import (
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"outpatient-planner/internal/domain/entity"
)

var (
	ErrEmptyFile         = errors.New("file has no header row")
	ErrUnsupportedFormat = errors.New("unsupported file format, upload a .csv or .xlsx file")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the parser from the uploaded file name.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// tableBuilder maps a header onto the typed record fields.
type tableBuilder struct {
	width int
	index map[string]int
	table *entity.ActivityTable
}

func newTableBuilder(header []string) (*tableBuilder, error) {
	if len(header) == 0 {
		return nil, &entity.ParseError{Line: 1, Err: ErrEmptyFile}
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	return &tableBuilder{
		width: len(columns),
		index: index,
		table: &entity.ActivityTable{Columns: columns, Records: []entity.ActivityRecord{}},
	}, nil
}

func (b *tableBuilder) add(row []string) {
	b.table.Records = append(b.table.Records, entity.ActivityRecord{
		Specialty:            b.text(row, entity.ColumnSpecialty),
		Date:                 b.text(row, entity.ColumnDate),
		Referrals:            b.number(row, entity.ColumnReferrals),
		FirstAppointments:    b.number(row, entity.ColumnFirstAppointments),
		FollowUpAppointments: b.number(row, entity.ColumnFollowUpAppointments),
		Discharges:           b.number(row, entity.ColumnDischarges),
	})
}

func (b *tableBuilder) text(row []string, column string) string {
	i, ok := b.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (b *tableBuilder) number(row []string, column string) float64 {
	return parseCount(b.text(row, column))
}

// parseCount reads a numeric cell; anything unreadable counts as zero.
func parseCount(cell string) float64 {
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
