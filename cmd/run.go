package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/pipeline"
)

var (
	runInput  string
	runOutDir string
	runLimit  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: jobs + sites, merge, export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := os.MkdirAll(runOutDir, 0o755); err != nil {
			return eris.Wrapf(err, "run: create out dir %s", runOutDir)
		}

		candidates, err := loadCandidates(ctx, runInput, runLimit)
		if err != nil {
			return err
		}

		var jobs, sites []company.Record
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			jobs, err = newJobsAnalyzer(cfg).Run(gctx, candidates)
			return eris.Wrap(err, "run: jobs analysis")
		})
		g.Go(func() error {
			var err error
			sites, err = newSiteAnalyzer(cfg).Run(gctx, candidates)
			return eris.Wrap(err, "run: sites analysis")
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if err := pipeline.WriteRecordsCSV(filepath.Join(runOutDir, "jobs_analysis.csv"), jobs); err != nil {
			return err
		}
		if err := pipeline.WriteRecordsCSV(filepath.Join(runOutDir, "sites_analysis.csv"), sites); err != nil {
			return err
		}

		minTeam := scoreConfig(cfg).MinTeamSize
		merged := company.Merge(jobs, sites, minTeam)
		records := make([]company.Record, 0, len(merged))
		for _, r := range merged {
			records = append(records, r)
		}
		if err := pipeline.WriteRecordsCSV(filepath.Join(runOutDir, "merged_companies.csv"), records); err != nil {
			return err
		}
		zap.L().Info("pipeline merged",
			zap.Int("candidates", len(candidates)),
			zap.Int("qualified", len(records)))

		return pipeline.Export(filepath.Join(runOutDir, cfg.Export.OutPath), records, minTeam)
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "candidate list (CSV or XLSX)")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "data", "directory for intermediate and final CSVs")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "process at most N candidates (0 = all)")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
