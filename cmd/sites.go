package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/pipeline"
)

var (
	sitesInput string
	sitesOut   string
	sitesLimit int
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Analyze candidates through their company websites",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		candidates, err := loadCandidates(ctx, sitesInput, sitesLimit)
		if err != nil {
			return err
		}

		records, err := newSiteAnalyzer(cfg).Run(ctx, candidates)
		if err != nil {
			return eris.Wrap(err, "sites: run analysis")
		}

		if err := pipeline.WriteRecordsCSV(sitesOut, records); err != nil {
			return err
		}
		zap.L().Info("site analysis written",
			zap.String("out", sitesOut),
			zap.Int("records", len(records)))
		return nil
	},
}

func init() {
	sitesCmd.Flags().StringVar(&sitesInput, "input", "", "candidate list (CSV or XLSX)")
	sitesCmd.Flags().StringVar(&sitesOut, "output", "sites_analysis.csv", "output CSV path")
	sitesCmd.Flags().IntVar(&sitesLimit, "limit", 0, "process at most N candidates (0 = all)")
	_ = sitesCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(sitesCmd)
}
