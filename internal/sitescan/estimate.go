package sitescan

import (
	"fmt"
	"strings"

	"github.com/sells-group/support-radar/internal/score"
)

// Estimate is the team-size conclusion drawn from a site scan.
type Estimate struct {
	TeamSize    int
	Evidence    string
	EvidenceURL string
	IsLevelA    bool
}

// EstimateTeam combines homepage features and the career scan into a
// team-size estimate. A direct mention wins: first on a support-flavored
// homepage, then on the support section's own page. Otherwise heuristic
// signals are summed Tier B style. Site headcounts are bounded above
// because marketing copy quotes figures unrelated to the support team.
func EstimateTeam(f Features, scan CareerScan, cfg score.Config) Estimate {
	if f.HasSupportSection || ContainsSupportKeyword(f.PageText) {
		if m, ok := score.FindDirectMentionInText(f.PageText, cfg.MinTeamSize, cfg.MaxDirectSize); ok {
			return Estimate{
				TeamSize:    m.TeamSize,
				Evidence:    m.Evidence(),
				EvidenceURL: f.URL,
				IsLevelA:    true,
			}
		}
	}
	if f.SupportText != "" {
		if m, ok := score.FindDirectMentionInText(f.SupportText, cfg.MinTeamSize, cfg.MaxDirectSize); ok {
			return Estimate{
				TeamSize:    m.TeamSize,
				Evidence:    m.Evidence(),
				EvidenceURL: f.SupportURL,
				IsLevelA:    true,
			}
		}
	}
	return estimateLevelB(f, scan, cfg)
}

func estimateLevelB(f Features, scan CareerScan, cfg score.Config) Estimate {
	size := 0
	var parts []string
	var evidenceURL string

	if f.Mentions24x7 && scan.ShiftWorkMentioned {
		size = max(size, cfg.MinTeamSize)
		parts = append(parts, "round-the-clock support with shift coverage")
	}
	if scan.SiteVacancies >= 2 && uniqueTitleCount(scan.JobTitles) >= 2 {
		size = max(size, cfg.MinTeamSize)
		parts = append(parts, fmt.Sprintf("%d open support vacancies on company site", scan.SiteVacancies))
		evidenceURL = scan.JobsURL
	}
	if roleDiversity(scan.JobTitles) >= 2 {
		size = max(size, cfg.MinTeamSize)
		parts = append(parts, "several distinct support roles advertised")
	}
	if ind := firstLoadIndicator(f.FullText); ind != "" {
		size = max(size, cfg.MinTeamSize)
		parts = append(parts, fmt.Sprintf("high-load indicators (%s)", ind))
	}

	if size < cfg.MinTeamSize || len(parts) == 0 {
		return Estimate{Evidence: "Level B: insufficient site evidence"}
	}
	if f.HasKBOrFAQ {
		parts = append(parts, "knowledge base / FAQ")
	}
	return Estimate{
		TeamSize:    size,
		Evidence:    "Level B: estimate based on: " + strings.Join(parts, "; "),
		EvidenceURL: evidenceURL,
	}
}

func firstLoadIndicator(fullText string) string {
	if fullText == "" {
		return ""
	}
	for _, ind := range loadIndicators {
		if strings.Contains(fullText, ind) {
			return ind
		}
	}
	return ""
}

func uniqueTitleCount(titles []string) int {
	seen := make(map[string]bool, len(titles))
	for _, t := range titles {
		seen[strings.ToLower(normalizeSpace(t))] = true
	}
	return len(seen)
}

// roleDiversity counts distinct support role families across vacancy
// titles: tiered lines, phone work, chat work, quality control.
func roleDiversity(titles []string) int {
	families := map[string][]string{
		"tier":  {"l1", "l2", "l3", "линия", "линии"},
		"phone": {"звонк", "телефон", "call", "колл", "оператор"},
		"chat":  {"чат", "chat", "письменн", "email"},
		"qa":    {"контрол", "качеств", "quality"},
	}
	seen := make(map[string]bool)
	for _, t := range titles {
		lower := strings.ToLower(t)
		for family, markers := range families {
			for _, m := range markers {
				if strings.Contains(lower, m) {
					seen[family] = true
					break
				}
			}
		}
	}
	return len(seen)
}
