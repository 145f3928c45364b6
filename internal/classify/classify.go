package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/sells-group/support-radar/internal/model"
)

// Classify decides whether a vacancy title/snippet pair denotes a support
// role. It never fails: any unrecognized input yields a negative result with
// a reason.
//
// Order matters: exclusions short-circuit first, then the support-keyword
// gate, then manager disambiguation. The "no sales" qualifier escapes the
// sales-manager exclusion rule when it appears anywhere in the text, but the
// manager disambiguation step looks for it in the title only.
func Classify(title, snippet string) model.ClassificationResult {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < 3 {
		return model.ClassificationResult{}
	}

	titleLower := strings.ToLower(title)
	fullText := model.EvidenceItem{Title: title, Snippet: snippet}.CombinedText()

	for _, ex := range exclusions {
		if ex.re.MatchString(fullText) && ex.guard(fullText) {
			return model.ClassificationResult{Reason: model.ReasonExcludedRole}
		}
	}

	if !anyMatch(supportKeywords, fullText) {
		return model.ClassificationResult{Reason: model.ReasonNoSupportKeyword}
	}

	if strings.Contains(titleLower, "менеджер") {
		if strings.Contains(titleLower, "продаж") && !strings.Contains(titleLower, "без продаж") {
			return model.ClassificationResult{Reason: model.ReasonSalesManager}
		}
		if !strings.Contains(fullText, "клиент") && !strings.Contains(fullText, "поддерж") {
			return model.ClassificationResult{Reason: model.ReasonNonClientManager}
		}
	}

	return model.ClassificationResult{IsSupport: true, Reason: model.ReasonSupportVacancy}
}
