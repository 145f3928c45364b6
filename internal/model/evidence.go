package model

// EvidenceItem is one unit of evidence text with provenance: a job listing
// or a page excerpt fed into the scorer. Immutable once created.
type EvidenceItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// CombinedText returns the lowercased title+snippet blob used by the
// pattern matchers.
func (e EvidenceItem) CombinedText() string {
	return lowerJoin(e.Title, e.Snippet)
}

// Reason explains a classification outcome.
type Reason string

const (
	ReasonSupportVacancy   Reason = "support_vacancy"
	ReasonExcludedRole     Reason = "excluded_role"
	ReasonNoSupportKeyword Reason = "no_support_keyword"
	ReasonSalesManager     Reason = "sales_manager"
	ReasonNonClientManager Reason = "non_client_manager"
)

// ClassificationResult is the verdict on a single evidence item: whether its
// text denotes a support role, and why not when it doesn't.
type ClassificationResult struct {
	IsSupport bool   `json:"is_support"`
	Reason    Reason `json:"reason"`
}

// RoleCategory buckets a support vacancy by its dominant function.
type RoleCategory string

const (
	RoleOperator    RoleCategory = "оператор"
	RoleManager     RoleCategory = "менеджер"
	RoleTechSupport RoleCategory = "техподдержка"
	RoleChatSupport RoleCategory = "чат_поддержка"
	RoleConsultant  RoleCategory = "консультант"
	RoleNone        RoleCategory = ""
)

// QualitySignals are the per-item heuristic signals that feed the Level B
// score. Derived independently from classification.
type QualitySignals struct {
	IsShiftWork    bool         `json:"is_shift_work"`
	HasLoadMention bool         `json:"has_load_mention"`
	Is24x7         bool         `json:"is_24_7"`
	IsTierLevel    bool         `json:"is_l1_l2"`
	IsChatSupport  bool         `json:"is_chat_support"`
	IsPhoneSupport bool         `json:"is_phone_support"`
	RoleCategory   RoleCategory `json:"role_category,omitempty"`
}

// AggregateEstimate is the scored team-size estimate for one company from
// one source, with its human-readable evidence trail.
type AggregateEstimate struct {
	Score        int    `json:"score"`
	TeamSize     int    `json:"team_size"`
	Evidence     string `json:"evidence"`
	EvidenceURL  string `json:"evidence_url,omitempty"`
	IsLevelA     bool   `json:"is_level_a"`
	Mentions24x7 bool   `json:"mentions_24_7"`
	ShiftWork    bool   `json:"shift_work"`
	UniqueRoles  int    `json:"unique_roles"`
	VacancyCount int    `json:"vacancy_count"`
}

// Candidate is one seed row from the input file.
type Candidate struct {
	TaxID string `json:"tax_id"`
	Name  string `json:"name"`
	Site  string `json:"site"`
}
