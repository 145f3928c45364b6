package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/model"
	"github.com/sells-group/support-radar/internal/score"
	"github.com/sells-group/support-radar/internal/sitescan"
)

// SiteAnalyzer assesses companies through their own websites.
type SiteAnalyzer struct {
	prober      *sitescan.Prober
	scoreCfg    score.Config
	batchSize   int
	concurrency int
	batchDelay  time.Duration
}

// SiteAnalyzerOption configures a SiteAnalyzer.
type SiteAnalyzerOption func(*SiteAnalyzer)

// WithSiteBatching sets batch size, per-batch concurrency, and inter-batch delay.
func WithSiteBatching(size, concurrency int, delay time.Duration) SiteAnalyzerOption {
	return func(a *SiteAnalyzer) {
		if size > 0 {
			a.batchSize = size
		}
		if concurrency > 0 {
			a.concurrency = concurrency
		}
		a.batchDelay = delay
	}
}

// WithSiteScoreConfig overrides the scoring configuration.
func WithSiteScoreConfig(cfg score.Config) SiteAnalyzerOption {
	return func(a *SiteAnalyzer) { a.scoreCfg = cfg }
}

// NewSiteAnalyzer builds an analyzer on top of a site prober.
func NewSiteAnalyzer(prober *sitescan.Prober, opts ...SiteAnalyzerOption) *SiteAnalyzer {
	a := &SiteAnalyzer{
		prober:      prober,
		scoreCfg:    score.DefaultConfig(),
		batchSize:   20,
		concurrency: 5,
		batchDelay:  time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyzes all candidates in bounded concurrent batches. Only
// companies that parsed and cleared the team-size threshold come back;
// everything below it is dropped, not carried forward.
func (a *SiteAnalyzer) Run(ctx context.Context, candidates []model.Candidate) ([]company.Record, error) {
	records := make([]company.Record, len(candidates))
	for start := 0; start < len(candidates); start += a.batchSize {
		end := min(start+a.batchSize, len(candidates))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.concurrency)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				records[i] = a.AnalyzeCompany(gctx, candidates[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return records[:end], err
		}

		zap.L().Info("sites batch done",
			zap.Int("processed", end),
			zap.Int("total", len(candidates)))

		if end < len(candidates) && a.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return records[:end], ctx.Err()
			case <-time.After(a.batchDelay):
			}
		}
	}

	qualified := keepQualified(records, a.scoreCfg.MinTeamSize)
	zap.L().Info("site analysis finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("qualified", len(qualified)))
	return qualified, nil
}

// AnalyzeCompany produces a site-source record for one candidate. Fetch
// and parse failures land on the record, never abort the run.
func (a *SiteAnalyzer) AnalyzeCompany(ctx context.Context, cand model.Candidate) company.Record {
	rec := company.Record{
		TaxID:        cand.TaxID,
		Name:         cand.Name,
		Site:         cand.Site,
		Source:       company.SourceSites,
		EvidenceType: company.EvidenceSite,
	}

	features, err := a.prober.Analyze(ctx, cand.Site)
	if err != nil {
		rec.Error = err.Error()
		rec.EvidenceType = company.EvidenceError
		zap.L().Warn("site analysis failed",
			zap.String("company", cand.Name),
			zap.String("site", cand.Site),
			zap.Error(err))
		return rec
	}

	scan, err := a.prober.ScanCareer(ctx, cand.Site, features)
	if err != nil {
		zap.L().Debug("career scan aborted",
			zap.String("site", cand.Site),
			zap.Error(err))
	}

	est := sitescan.EstimateTeam(features, scan, a.scoreCfg)
	rec.SupportTeamSizeMin = est.TeamSize
	rec.SupportEvidence = est.Evidence
	rec.ParsedSuccessfully = true

	rec.HasSupportSection = features.HasSupportSection
	rec.HasSupportEmail = features.HasSupportEmail
	rec.HasContactForm = features.HasContactForm
	rec.HasOnlineChat = features.HasOnlineChat
	rec.HasMessengers = features.HasMessengers
	rec.HasKBOrFAQ = features.HasKBOrFAQ
	rec.Mentions24x7 = features.Mentions24x7
	rec.SupportEmail = features.SupportEmail
	rec.SupportURL = features.SupportURL
	rec.KBURL = features.KBURL
	rec.ChatVendor = features.ChatVendor

	rec.JobsURL = scan.JobsURL
	rec.SiteVacancies = scan.SiteVacancies
	rec.SupportVacancyTitles = scan.JobTitles
	rec.SupportVacanciesCount = scan.SiteVacancies
	rec.ShiftWorkMentioned = scan.ShiftWorkMentioned

	rec.EvidenceURL = firstNonEmpty(est.EvidenceURL, features.SupportURL, features.KBURL, cand.Site)
	return rec
}
