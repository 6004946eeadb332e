package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"outpatient-planner/config"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/exporter"
	"outpatient-planner/internal/parser"
	"outpatient-planner/internal/planning"

	"github.com/spf13/cobra"
)

type projectOptions struct {
	file          string
	specialty     string
	growthRate    int
	backlogTarget int
	out           string
}

func newProjectCmd() *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project next year's activity from a file and write the summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyPlanningDefaults(cmd, opts, cfg.Planning)
			return runProject(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "activity data (.csv or .xlsx)")
	cmd.Flags().StringVarP(&opts.specialty, "specialty", "s", "", "specialty to plan for (default: first in file)")
	cmd.Flags().IntVarP(&opts.growthRate, "growth-rate", "g", config.DefaultGrowthRate, "expected referral growth in percent (0-50)")
	cmd.Flags().IntVarP(&opts.backlogTarget, "backlog-target", "b", config.DefaultBacklogTarget, "waiting patients to clear next year")
	cmd.Flags().StringVarP(&opts.out, "out", "o", exporter.SummaryCSVFilename, "summary file to write (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// applyPlanningDefaults fills the planning controls the user did not pass
// on the command line from the configured defaults.
func applyPlanningDefaults(cmd *cobra.Command, opts *projectOptions, planning config.PlanningConfig) {
	if !cmd.Flags().Changed("growth-rate") {
		opts.growthRate = planning.DefaultGrowthRate
	}
	if !cmd.Flags().Changed("backlog-target") {
		opts.backlogTarget = planning.DefaultBacklogTarget
	}
}

func runProject(opts *projectOptions, stdout io.Writer) error {
	growth := entity.GrowthAssumption(opts.growthRate)
	backlog := entity.BacklogTarget(opts.backlogTarget)
	if !growth.Valid() {
		return fmt.Errorf("growth rate must be between %d and %d", entity.MinGrowthRate, entity.MaxGrowthRate)
	}
	if !backlog.Valid() {
		return fmt.Errorf("backlog target must not be negative")
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := parser.Parse(opts.file, f)
	if err != nil {
		return err
	}

	specialty := opts.specialty
	if table.HasColumn(entity.ColumnSpecialty) {
		if specialty == "" {
			specialty, _ = planning.DefaultSpecialty(table)
		}
		table = planning.FilterBySpecialty(table, specialty)
	}

	prediction, err := planning.PredictReferrals(table, growth)
	if err != nil {
		return err
	}
	summary, err := planning.PlanCapacity(table, prediction, backlog)
	if err != nil {
		return err
	}

	var file *exporter.File
	if strings.EqualFold(filepath.Ext(opts.out), ".xlsx") {
		file, err = exporter.SummaryWorkbook(summary)
	} else {
		file, err = exporter.SummaryCSV(summary)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, file.Content, 0o644); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	if specialty != "" {
		fmt.Fprintf(tw, "Specialty:\t%s\n", specialty)
	}
	fmt.Fprintf(tw, "Last year's referrals:\t%s\n", exporter.RoundTotal(prediction.LastYearReferrals))
	for _, line := range summary.Lines {
		fmt.Fprintf(tw, "%s:\t%s\t%s\n", line.Metric, exporter.RoundTotal(line.Total), exporter.FormatPercentChange(line.PercentageChange))
	}
	fmt.Fprintf(tw, "Written:\t%s\n", opts.out)
	return tw.Flush()
}
