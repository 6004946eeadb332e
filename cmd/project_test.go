package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"outpatient-planner/config"
	"outpatient-planner/internal/exporter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const activityCSV = `specialty,referrals,first_appointments,follow_up_appointments,discharges
Cardiology,100,50,80,30
Dermatology,40,20,10,15
Cardiology,200,50,60,45
`

func writeActivity(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.csv")
	require.NoError(t, os.WriteFile(path, []byte(activityCSV), 0o644))
	return path
}

func TestRunProjectWritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), exporter.SummaryCSVFilename)
	var stdout bytes.Buffer

	err := runProject(&projectOptions{
		file:          writeActivity(t),
		growthRate:    10,
		backlogTarget: 20,
		out:           out,
	}, &stdout)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := exporter.ParseSummaryCSV(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "250.00%", rows[2].PercentageChange)
	assert.Contains(t, stdout.String(), "Cardiology")
	assert.Contains(t, stdout.String(), "350")
}

func TestRunProjectWritesWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.xlsx")

	err := runProject(&projectOptions{
		file:       writeActivity(t),
		specialty:  "Dermatology",
		growthRate: 0,
		out:        out,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	wb, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Metric", "Total", "Percentage Change"}, rows[0])
}

func TestRunProjectRejectsGrowthOutOfRange(t *testing.T) {
	err := runProject(&projectOptions{file: writeActivity(t), growthRate: 60}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestProjectCommandRequiresFile(t *testing.T) {
	cmd := newProjectCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestApplyPlanningDefaultsUsesConfig(t *testing.T) {
	cmd := newProjectCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--file", "activity.csv"}))

	opts := &projectOptions{growthRate: config.DefaultGrowthRate, backlogTarget: config.DefaultBacklogTarget}
	applyPlanningDefaults(cmd, opts, config.PlanningConfig{DefaultGrowthRate: 25, DefaultBacklogTarget: 40})

	assert.Equal(t, 25, opts.growthRate)
	assert.Equal(t, 40, opts.backlogTarget)
}

func TestApplyPlanningDefaultsKeepsExplicitFlags(t *testing.T) {
	cmd := newProjectCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--file", "activity.csv", "--growth-rate", "5", "-b", "0"}))

	opts := &projectOptions{growthRate: 5, backlogTarget: 0}
	applyPlanningDefaults(cmd, opts, config.PlanningConfig{DefaultGrowthRate: 25, DefaultBacklogTarget: 40})

	assert.Equal(t, 5, opts.growthRate)
	assert.Equal(t, 0, opts.backlogTarget)
}
