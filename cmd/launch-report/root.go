package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/config"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

type rootOptions struct {
	output  string
	dataset string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "launch-report",
		Short: "Success-rate reports over the SpaceX launch records",
		Long: "launch-report loads the launch table from the configured dataset source\n" +
			"(DATASET_SOURCE, same as the dashboard server) and prints success rates\n" +
			"grouped by launch site, payload band or booster category.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch opts.output {
			case outputTable, outputJSON:
				return nil
			default:
				return fmt.Errorf("invalid --output %q: want %s or %s", opts.output, outputTable, outputJSON)
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	f.StringVar(&opts.dataset, "dataset", "", "Path to a launch CSV file (overrides DATASET_SOURCE)")

	root.AddCommand(
		newReportCmd(opts, usecase.ReportBySite, "sites", "Success rate per launch site"),
		newPayloadCmd(opts),
		newReportCmd(opts, usecase.ReportByBooster, "boosters", "Success rate per booster version category"),
	)

	return root
}

// loadTable читает таблицу из источника, выбранного конфигурацией или флагом --dataset
func loadTable(ctx context.Context, opts *rootOptions) (*entity.LaunchTable, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if opts.dataset != "" {
		cfg.Dataset.Source = config.DatasetSourceCSV
		cfg.Dataset.Path = opts.dataset
	}

	log := logger.NewWithWriter(os.Getenv("LOG_LEVEL"), os.Stderr)

	repo, closeRepo, err := dataset.Open(ctx, cfg.Dataset)
	if err != nil {
		return nil, "", err
	}
	defer closeRepo()

	table, err := usecase.NewLoadLaunchTableUseCase(repo, log).Execute(ctx)
	if err != nil {
		return nil, "", err
	}
	return table, repo.Source(), nil
}
