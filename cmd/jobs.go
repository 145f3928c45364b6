package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/config"
	"github.com/sells-group/support-radar/internal/fetcher"
	"github.com/sells-group/support-radar/internal/model"
	"github.com/sells-group/support-radar/internal/pipeline"
	"github.com/sells-group/support-radar/internal/score"
	"github.com/sells-group/support-radar/internal/sitescan"
	"github.com/sells-group/support-radar/pkg/hh"
)

var (
	jobsInput string
	jobsOut   string
	jobsLimit int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Analyze candidates through HeadHunter vacancy postings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		candidates, err := loadCandidates(ctx, jobsInput, jobsLimit)
		if err != nil {
			return err
		}

		records, err := newJobsAnalyzer(cfg).Run(ctx, candidates)
		if err != nil {
			return eris.Wrap(err, "jobs: run analysis")
		}

		if err := pipeline.WriteRecordsCSV(jobsOut, records); err != nil {
			return err
		}
		zap.L().Info("jobs analysis written",
			zap.String("out", jobsOut),
			zap.Int("records", len(records)))
		return nil
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsInput, "input", "", "candidate list (CSV or XLSX)")
	jobsCmd.Flags().StringVar(&jobsOut, "output", "jobs_analysis.csv", "output CSV path")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 0, "process at most N candidates (0 = all)")
	_ = jobsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(jobsCmd)
}

func loadCandidates(ctx context.Context, path string, limit int) ([]model.Candidate, error) {
	candidates, err := fetcher.LoadCandidates(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "load candidates")
	}
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func scoreConfig(cfg *config.Config) score.Config {
	sc := score.DefaultConfig()
	if cfg.Score.MinTeamSize > 0 {
		sc.MinTeamSize = cfg.Score.MinTeamSize
	}
	if cfg.Score.MaxDirectSize > 0 {
		sc.MaxDirectSize = cfg.Score.MaxDirectSize
	}
	return sc
}

func newJobsAnalyzer(cfg *config.Config) *pipeline.JobsAnalyzer {
	client := hh.NewCache(hh.NewClient(
		hh.WithBaseURL(cfg.HH.BaseURL),
		hh.WithUserAgent(cfg.HH.UserAgent),
		hh.WithToken(cfg.HH.Token),
		hh.WithRateLimit(cfg.HH.RPS),
	))
	return pipeline.NewJobsAnalyzer(client,
		pipeline.WithScoreConfig(scoreConfig(cfg)),
		pipeline.WithBatching(
			cfg.Batch.Size,
			cfg.Batch.MaxConcurrentCompanies,
			time.Duration(cfg.Batch.DelayBetweenBatchesMS)*time.Millisecond,
		),
	)
}

func newSiteAnalyzer(cfg *config.Config) *pipeline.SiteAnalyzer {
	prober := sitescan.NewProber(
		sitescan.WithUserAgent(cfg.Sites.UserAgent),
		sitescan.WithRateLimit(cfg.Sites.RPS),
	)
	return pipeline.NewSiteAnalyzer(prober,
		pipeline.WithSiteScoreConfig(scoreConfig(cfg)),
		pipeline.WithSiteBatching(
			cfg.Batch.Size,
			cfg.Batch.MaxConcurrentCompanies,
			time.Duration(cfg.Batch.DelayBetweenBatchesMS)*time.Millisecond,
		),
	)
}
