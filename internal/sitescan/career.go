package sitescan

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// CareerScan is the result of probing a company's career pages for
// support vacancies.
type CareerScan struct {
	JobsURL            string
	SiteVacancies      int
	JobTitles          []string
	ShiftWorkMentioned bool
}

// ScanCareer locates a career page for the site and extracts support
// vacancy titles from it. A missing career page is not an error: the
// scan comes back empty.
func (p *Prober) ScanCareer(ctx context.Context, siteURL string, homepage Features) (CareerScan, error) {
	jobsURL := homepage.JobsURL
	var html string
	var err error

	if jobsURL != "" {
		html, err = p.Fetch(ctx, jobsURL)
		if err != nil {
			zap.L().Debug("career link from homepage failed", zap.String("url", jobsURL), zap.Error(err))
			jobsURL = ""
		}
	}
	if jobsURL == "" {
		for _, path := range careerPaths {
			candidate := strings.TrimRight(siteURL, "/") + path
			body, ferr := p.Fetch(ctx, candidate)
			if ferr != nil {
				continue
			}
			lower := strings.ToLower(body)
			if matchesAnyKeyword(lower, jobKeywords) || anyPattern(supportJobPatterns, lower) {
				jobsURL, html = candidate, body
				break
			}
		}
	}
	if jobsURL == "" {
		return CareerScan{}, nil
	}

	titles := parseVacancyTitles(html)
	scan := CareerScan{
		JobsURL:            jobsURL,
		SiteVacancies:      len(titles),
		JobTitles:          titles,
		ShiftWorkMentioned: shiftWorkRe.MatchString(strings.ToLower(html)),
	}
	zap.L().Debug("career page scanned",
		zap.String("url", jobsURL),
		zap.Int("support_vacancies", scan.SiteVacancies))
	return scan, ctx.Err()
}

// parseVacancyTitles pulls candidate vacancy titles out of career-page
// markup and keeps only the support roles.
func parseVacancyTitles(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	doc.Find("script, style, noscript").Each(func(_ int, sel *goquery.Selection) {
		sel.Remove()
	})

	var raw []string
	doc.Find("h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		raw = append(raw, sel.Text())
	})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		if strings.Contains(lower, "vacan") || strings.Contains(lower, "job") ||
			strings.Contains(lower, "career") || strings.Contains(lower, "rabota") {
			raw = append(raw, sel.Text())
		}
	})
	doc.Find(`[class*="vacancy"], [class*="job-title"], [class*="position"]`).Each(func(_ int, sel *goquery.Selection) {
		raw = append(raw, sel.Text())
	})

	return cleanVacancyTitles(raw)
}

// cleanVacancyTitles normalizes scraped titles, drops boilerplate, and
// returns deduplicated support-role titles only.
func cleanVacancyTitles(raw []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, title := range raw {
		t := normalizeSpace(title)
		n := utf8.RuneCountInString(t)
		if n < 5 || n > 120 {
			continue
		}
		lower := strings.ToLower(t)
		if anyPattern(vacancyNoisePatterns, lower) {
			continue
		}
		if !anyPattern(supportJobPatterns, lower) {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, t)
	}
	return out
}
