package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/pipeline"
)

var (
	mergeJobsCSV  string
	mergeSitesCSV string
	mergeOut      string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge jobs and sites analyses into one record per tax id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobs, err := pipeline.ReadRecordsCSV(mergeJobsCSV)
		if err != nil {
			return err
		}
		sites, err := pipeline.ReadRecordsCSV(mergeSitesCSV)
		if err != nil {
			return err
		}

		merged := company.Merge(jobs, sites, scoreConfig(cfg).MinTeamSize)
		records := make([]company.Record, 0, len(merged))
		for _, r := range merged {
			records = append(records, r)
		}

		if err := pipeline.WriteRecordsCSV(mergeOut, records); err != nil {
			return err
		}
		zap.L().Info("merged analyses",
			zap.Int("jobs", len(jobs)),
			zap.Int("sites", len(sites)),
			zap.Int("merged", len(records)),
			zap.String("out", mergeOut))
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeJobsCSV, "jobs", "jobs_analysis.csv", "jobs analysis CSV")
	mergeCmd.Flags().StringVar(&mergeSitesCSV, "sites", "sites_analysis.csv", "sites analysis CSV")
	mergeCmd.Flags().StringVar(&mergeOut, "output", "merged_companies.csv", "output CSV path")
	rootCmd.AddCommand(mergeCmd)
}
