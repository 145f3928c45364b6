package classify

import (
	"strings"

	"github.com/sells-group/support-radar/internal/model"
)

// AnalyzeQuality extracts the heuristic signals used by the Level B score.
// It is a separate pass from Classify so either pattern set can evolve
// without entangling the other's thresholds.
func AnalyzeQuality(title, snippet string) model.QualitySignals {
	text := model.EvidenceItem{Title: title, Snippet: snippet}.CombinedText()

	return model.QualitySignals{
		IsShiftWork:    anyMatch(shiftPatterns, text),
		HasLoadMention: anyMatch(loadPatterns, text),
		Is24x7:         anyMatch(twentyFourSevenPatterns, text),
		IsTierLevel:    tierLevelRe.MatchString(text),
		IsChatSupport:  chatRe.MatchString(text),
		IsPhoneSupport: phoneRe.MatchString(text),
		RoleCategory:   roleCategory(text),
	}
}

// roleCategory returns the first category in priority order with a keyword
// present in the text, or RoleNone.
func roleCategory(text string) model.RoleCategory {
	for _, cat := range roleCategoryOrder {
		for _, kw := range roleCategoryKeywords[cat] {
			if strings.Contains(text, kw) {
				return cat
			}
		}
	}
	return model.RoleNone
}
