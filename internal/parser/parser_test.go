package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"outpatient-planner/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `specialty,date,referrals,first_appointments,follow_up_appointments,discharges,site
Cardiology,2023-01-15,100,50,80,30,North
Dermatology,2023-01-20,40,20,10,15,South
Cardiology,2023-02-10,200,,60,n/a,North
`

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"specialty", "date", "referrals", "first_appointments", "follow_up_appointments", "discharges", "site"}, table.Columns)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, entity.ActivityRecord{
		Specialty:            "Cardiology",
		Date:                 "2023-01-15",
		Referrals:            100,
		FirstAppointments:    50,
		FollowUpAppointments: 80,
		Discharges:           30,
	}, table.Records[0])
	assert.Equal(t, "Dermatology", table.Records[1].Specialty)
}

func TestParseCSVBadCellsCountAsZero(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	rec := table.Records[2]
	assert.Equal(t, 200.0, rec.Referrals)
	assert.Zero(t, rec.FirstAppointments)
	assert.Zero(t, rec.Discharges)
}

func TestParseCSVMissingColumnsAreNotAnError(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("specialty,notes\nENT,hello\n"))
	require.NoError(t, err)

	assert.False(t, table.HasColumn(entity.ColumnReferrals))
	assert.Zero(t, table.Records[0].Referrals)
}

func TestParseCSVInconsistentColumnCount(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("specialty,referrals\nENT,1\nENT,2,3\n"))

	var parseErr *entity.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))

	var parseErr *entity.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("specialty,referrals\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestParseCSVStripsBOMAndSpaces(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("\ufeffspecialty, referrals \nENT, 12 \n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"specialty", "referrals"}, table.Columns)
	assert.Equal(t, 12.0, table.Records[0].Referrals)
}

func TestParseCSVBareQuote(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("specialty,referrals\nE\"NT,1\n"))

	var parseErr *entity.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("activity.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = DetectFormat("activity.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	_, err = DetectFormat("activity.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"specialty", "date", "referrals", "first_appointments", "follow_up_appointments", "discharges"},
		{"Cardiology", "2023-01-15", 100, 50, 80, 30},
		{"Dermatology", "2023-01-20", 40, 20},
	})

	table, err := Parse("activity.xlsx", buf)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, 100.0, table.Records[0].Referrals)
	assert.Equal(t, 30.0, table.Records[0].Discharges)
	assert.Equal(t, "Dermatology", table.Records[1].Specialty)
	assert.Zero(t, table.Records[1].Discharges)
}

func TestParseWorkbookTooManyFields(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"specialty", "referrals"},
		{"ENT", 1, "extra"},
	})

	_, err := ParseWorkbook(buf)

	var parseErr *entity.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
}

func TestParseWorkbookNotAWorkbook(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("not a zip"))

	var parseErr *entity.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
