package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func newReportCmd(opts *rootOptions, kind usecase.ReportKind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts, usecase.BuildLaunchReportCommand{Kind: kind})
		},
	}
}

func newPayloadCmd(opts *rootOptions) *cobra.Command {
	var band float64

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Success rate per payload mass band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts, usecase.BuildLaunchReportCommand{
				Kind:      usecase.ReportByPayload,
				BandWidth: band,
			})
		},
	}
	cmd.Flags().Float64Var(&band, "band", 2000, "Payload band width in kg")

	return cmd
}

func runReport(cmd *cobra.Command, opts *rootOptions, command usecase.BuildLaunchReportCommand) error {
	ctx := cmd.Context()

	table, source, err := loadTable(ctx, opts)
	if err != nil {
		return err
	}

	report, err := usecase.NewBuildLaunchReportUseCase(table, source, service.NewLaunchStatistics()).Execute(ctx, command)
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), report, opts.output)
}

func writeReport(w io.Writer, report *dto.ReportDTO, format string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Source: %s (%d launches)\n\n", report.Source, report.Total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tLAUNCHES\tSUCCESSES\tRATE")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", row.Key, row.Launches, row.Successes, row.Rate*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Best != nil {
		fmt.Fprintf(w, "\nBest: %s (%.1f%%)\n", report.Best.Key, report.Best.Rate*100)
	}
	return nil
}
