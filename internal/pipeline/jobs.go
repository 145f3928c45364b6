// Package pipeline orchestrates the two evidence sources, the cross-source
// merge, and the final export.
package pipeline

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/support-radar/internal/classify"
	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/model"
	"github.com/sells-group/support-radar/internal/score"
	"github.com/sells-group/support-radar/pkg/hh"
)

// fallbackSearchTerms are appended to the company name when an employer
// page yields too few support vacancies.
var fallbackSearchTerms = []string{"поддержка", "оператор"}

// minDirectVacancies is the employer-page vacancy count below which the
// text-search fallback kicks in.
const minDirectVacancies = 5

// maxSampleURLs bounds the vacancy URL sample kept on a record.
const maxSampleURLs = 3

// JobsAnalyzer assesses companies through their HeadHunter vacancy
// postings.
type JobsAnalyzer struct {
	client      hh.Client
	scoreCfg    score.Config
	batchSize   int
	concurrency int
	batchDelay  time.Duration
}

// JobsAnalyzerOption configures a JobsAnalyzer.
type JobsAnalyzerOption func(*JobsAnalyzer)

// WithBatching sets batch size, per-batch concurrency, and inter-batch delay.
func WithBatching(size, concurrency int, delay time.Duration) JobsAnalyzerOption {
	return func(a *JobsAnalyzer) {
		if size > 0 {
			a.batchSize = size
		}
		if concurrency > 0 {
			a.concurrency = concurrency
		}
		a.batchDelay = delay
	}
}

// WithScoreConfig overrides the scoring configuration.
func WithScoreConfig(cfg score.Config) JobsAnalyzerOption {
	return func(a *JobsAnalyzer) { a.scoreCfg = cfg }
}

// NewJobsAnalyzer builds an analyzer on top of an hh client.
func NewJobsAnalyzer(client hh.Client, opts ...JobsAnalyzerOption) *JobsAnalyzer {
	a := &JobsAnalyzer{
		client:      client,
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

// Run analyzes all candidates in bounded concurrent batches. API failures
// land in the record's Error field; one bad company never stops the run.
// Only companies that parsed and cleared the team-size threshold come
// back; everything below it is dropped, not carried forward.
func (a *JobsAnalyzer) Run(ctx context.Context, candidates []model.Candidate) ([]company.Record, error) {
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

		zap.L().Info("jobs batch done",
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
	zap.L().Info("jobs analysis finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("qualified", len(qualified)))
	return qualified, nil
}

// keepQualified drops records that failed to parse or whose team estimate
// is below the admission threshold.
func keepQualified(records []company.Record, minTeamSize int) []company.Record {
	out := make([]company.Record, 0, len(records))
	for _, r := range records {
		if r.ParsedSuccessfully && r.SupportTeamSizeMin >= minTeamSize {
			out = append(out, r)
		}
	}
	return out
}

// AnalyzeCompany produces a jobs-source record for one candidate. It never
// returns an error: failures are recorded on the record itself.
func (a *JobsAnalyzer) AnalyzeCompany(ctx context.Context, cand model.Candidate) company.Record {
	rec := company.Record{
		TaxID:        cand.TaxID,
		Name:         cand.Name,
		Site:         cand.Site,
		Source:       company.SourceJobs,
		EvidenceType: company.EvidenceVacanciesEstimate,
	}

	employer, vacancies, err := a.collectVacancies(ctx, cand.Name)
	if err != nil {
		rec.Error = err.Error()
		rec.EvidenceType = company.EvidenceError
		zap.L().Warn("jobs analysis failed",
			zap.String("company", cand.Name),
			zap.Error(err))
		return rec
	}

	items, titles, urls := classifyVacancies(vacancies)

	est := score.Aggregate(items, a.scoreCfg)
	rec.SupportTeamSizeMin = est.TeamSize
	rec.SupportEvidence = est.Evidence
	rec.EstimatedTeamFromJobs = est.TeamSize
	rec.JobsEvidence = est.Evidence
	rec.SupportVacanciesCount = len(items)
	rec.SupportVacancyTitles = titles
	rec.VacanciesSampleURLs = urls
	rec.JobTitlesFound = strings.Join(titles, "; ")
	rec.ShiftWorkMentioned = est.ShiftWork
	rec.Mentions24x7 = est.Mentions24x7
	rec.ParsedSuccessfully = true

	if est.IsLevelA {
		rec.EvidenceType = company.EvidenceVacanciesDirect
	}
	if employer != nil {
		rec.HHEmployerID = employer.ID
		rec.JobsURL = employer.AlternateURL
	}
	rec.EvidenceURL = firstNonEmpty(
		est.EvidenceURL,
		firstOf(urls),
		rec.JobsURL,
		searchURL(cand.Name),
	)
	return rec
}

// collectVacancies resolves the employer and gathers its vacancies,
// falling back to text search when the employer page is missing or thin.
func (a *JobsAnalyzer) collectVacancies(ctx context.Context, name string) (*hh.Employer, []hh.Vacancy, error) {
	employers, err := a.client.SearchEmployers(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	var vacancies []hh.Vacancy
	employer := BestEmployerMatch(name, employers)
	if employer != nil {
		vacancies, err = a.client.ListVacancies(ctx, employer.ID)
		if err != nil {
			return employer, nil, err
		}
	}

	if countSupport(vacancies) < minDirectVacancies {
		for _, term := range fallbackSearchTerms {
			extra, err := a.client.SearchVacancies(ctx, name+" "+term)
			if err != nil {
				zap.L().Debug("vacancy text search failed",
					zap.String("company", name),
					zap.String("term", term),
					zap.Error(err))
				continue
			}
			vacancies = append(vacancies, keepEmployer(extra, employer, name)...)
		}
	}

	return employer, dedupVacancies(vacancies), nil
}

// classifyVacancies filters vacancies down to confirmed support roles and
// shapes them as evidence items.
func classifyVacancies(vacancies []hh.Vacancy) (items []model.EvidenceItem, titles, urls []string) {
	for _, v := range vacancies {
		res := classify.Classify(v.Name, v.Snippet.Text())
		if !res.IsSupport {
			continue
		}
		items = append(items, model.EvidenceItem{
			Title:   v.Name,
			Snippet: v.Snippet.Text(),
			URL:     v.AlternateURL,
		})
		titles = append(titles, v.Name)
		if len(urls) < maxSampleURLs && v.AlternateURL != "" {
			urls = append(urls, v.AlternateURL)
		}
	}
	return items, titles, urls
}

// BestEmployerMatch picks the employer most likely to be the candidate
// company. Matching runs on normalized names; weak matches are rejected
// rather than guessed.
func BestEmployerMatch(name string, employers []hh.Employer) *hh.Employer {
	target := company.NormalizeName(name)
	if target == "" || len(employers) == 0 {
		return nil
	}

	best := -1
	bestScore := 0
	for i, e := range employers {
		s := matchScore(target, company.NormalizeName(e.Name), e)
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < 40 {
		// Looser second pass: a weaker name match is acceptable when the
		// employer actually has open vacancies to inspect.
		for i, e := range employers {
			s := matchScore(target, company.NormalizeName(e.Name), e)
			if s >= 20 && e.OpenVacancies > 0 && s > bestScore {
				best, bestScore = i, s
			}
		}
		if best < 0 || bestScore < 20 {
			return nil
		}
	}
	return &employers[best]
}

func matchScore(target, candidate string, e hh.Employer) int {
	if candidate == "" {
		return 0
	}
	s := 0
	switch {
	case candidate == target:
		s = 100
	case strings.Contains(candidate, target) || strings.Contains(target, candidate):
		s = 80
	default:
		s = wordOverlap(target, candidate) * 20
	}
	s += min(e.OpenVacancies*2, 10)
	if e.Type == "company" {
		s += 10
	}
	return s
}

func wordOverlap(a, b string) int {
	words := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		words[w] = true
	}
	n := 0
	for _, w := range strings.Fields(b) {
		if words[w] {
			n++
		}
	}
	return n
}

func countSupport(vacancies []hh.Vacancy) int {
	n := 0
	for _, v := range vacancies {
		if classify.Classify(v.Name, v.Snippet.Text()).IsSupport {
			n++
		}
	}
	return n
}

// keepEmployer drops text-search hits that belong to other companies.
// With a resolved employer the hit must carry its id; without one the
// hit's employer name must contain the candidate name, so a search for
// "Ромашка поддержка" cannot attribute another company's vacancies.
func keepEmployer(vacancies []hh.Vacancy, employer *hh.Employer, name string) []hh.Vacancy {
	var out []hh.Vacancy
	if employer != nil {
		for _, v := range vacancies {
			if v.Employer.ID == employer.ID {
				out = append(out, v)
			}
		}
		return out
	}

	target := company.NormalizeName(name)
	if target == "" {
		return nil
	}
	for _, v := range vacancies {
		if strings.Contains(company.NormalizeName(v.Employer.Name), target) {
			out = append(out, v)
		}
	}
	return out
}

func dedupVacancies(vacancies []hh.Vacancy) []hh.Vacancy {
	seen := make(map[string]bool, len(vacancies))
	var out []hh.Vacancy
	for _, v := range vacancies {
		if v.ID == "" || seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}

func searchURL(name string) string {
	return "https://hh.ru/search/vacancy?text=" + url.QueryEscape(name)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstOf(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
