package score

import (
	"fmt"
	"strings"

	"github.com/sells-group/support-radar/internal/classify"
	"github.com/sells-group/support-radar/internal/model"
)

// directScore is the score assigned to any Tier A result.
const directScore = 100

// emptyEvidence is the canonical evidence text for an empty item set.
const emptyEvidence = "No support vacancies"

// Aggregate turns a set of evidence items for one company into a single
// team-size estimate. Tier A (direct numeric mention) pre-empts Tier B
// (weighted heuristic signals) entirely. Zero items yield the canonical
// empty estimate. Re-scoring the same items is deterministic.
func Aggregate(items []model.EvidenceItem, cfg Config) model.AggregateEstimate {
	if len(items) == 0 {
		return model.AggregateEstimate{Evidence: emptyEvidence}
	}

	if m, ok := FindDirectMention(items, cfg.MinTeamSize, 0); ok {
		return model.AggregateEstimate{
			Score:        directScore,
			TeamSize:     m.TeamSize,
			Evidence:     levelAEvidence(m.Context),
			EvidenceURL:  m.URL,
			IsLevelA:     true,
			UniqueRoles:  1,
			VacancyCount: len(items),
		}
	}

	return aggregateLevelB(items, cfg)
}

// aggregateLevelB accumulates per-item quality signals into a heuristic
// score and maps it through the configured bands.
func aggregateLevelB(items []model.EvidenceItem, cfg Config) model.AggregateEstimate {
	roles := make(map[model.RoleCategory]bool)
	var shiftCount, loadCount, fullTimeCount, tierCount int
	var hasChat, hasPhone bool

	for _, item := range items {
		q := classify.AnalyzeQuality(item.Title, item.Snippet)
		if q.RoleCategory != model.RoleNone {
			roles[q.RoleCategory] = true
		}
		if q.IsShiftWork {
			shiftCount++
		}
		if q.HasLoadMention {
			loadCount++
		}
		if q.Is24x7 {
			fullTimeCount++
		}
		if q.IsTierLevel {
			tierCount++
		}
		hasChat = hasChat || q.IsChatSupport
		hasPhone = hasPhone || q.IsPhoneSupport
	}

	score := 0
	var parts []string

	switch n := len(items); {
	case n >= 3:
		score += cfg.VacancyPoints3Plus
		parts = append(parts, fmt.Sprintf("%d support vacancies", n))
	case n == 2:
		score += cfg.VacancyPoints2
		parts = append(parts, "2 support vacancies")
	case n == 1:
		score += cfg.VacancyPoints1
		parts = append(parts, "1 support vacancy")
	}

	if len(roles) >= 2 {
		score += cfg.RolesPoints
		parts = append(parts, "distinct roles ("+roleList(roles)+")")
	}

	if fullTimeCount > 0 {
		score += cfg.Points24x7
		parts = append(parts, "round-the-clock coverage (24/7)")
	} else if shiftCount > 0 {
		score += cfg.PointsShift
		parts = append(parts, "shift work")
	}

	if tierCount > 0 {
		score += cfg.PointsTier
		parts = append(parts, "tiered support (L1/L2)")
	}

	if hasChat && hasPhone {
		score += cfg.PointsBothChannels
		parts = append(parts, "multiple support channels (chat+phone)")
	} else if hasChat || hasPhone {
		score += cfg.PointsOneChannel
	}

	if loadCount > 0 {
		score += cfg.PointsLoad
		parts = append(parts, "high request load")
	}

	teamSize, descriptor := cfg.teamSizeFor(score)

	evidence := "Level B: insufficient evidence"
	if len(parts) > 0 {
		evidence = "Level B: estimate based on: " + strings.Join(parts, ", ")
		if teamSize >= cfg.MinTeamSize {
			evidence += " (" + descriptor + ")"
		}
	}

	return model.AggregateEstimate{
		Score:        score,
		TeamSize:     teamSize,
		Evidence:     evidence,
		Mentions24x7: fullTimeCount > 0,
		ShiftWork:    shiftCount > 0 || fullTimeCount > 0,
		UniqueRoles:  len(roles),
		VacancyCount: len(items),
	}
}

// roleList renders up to three role categories in stable priority order.
func roleList(roles map[model.RoleCategory]bool) string {
	order := []model.RoleCategory{
		model.RoleOperator, model.RoleManager, model.RoleTechSupport,
		model.RoleChatSupport, model.RoleConsultant,
	}
	var names []string
	for _, cat := range order {
		if roles[cat] {
			names = append(names, string(cat))
		}
		if len(names) == 3 {
			break
		}
	}
	return strings.Join(names, ", ")
}
