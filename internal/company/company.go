// Package company defines the per-company record type and the cross-source
// merge that produces one record per tax id.
package company

// Evidence types carried on a Record.
const (
	EvidenceVacanciesDirect   = "vacancies_direct"
	EvidenceVacanciesEstimate = "vacancies_estimate"
	EvidenceSite              = "site"
	EvidenceError             = "error"
	EvidenceOther             = "other"
)

// Source tags.
const (
	SourceJobs     = "jobs_analysis"
	SourceSites    = "sites_analysis"
	SourceSite     = "company_site"
	SourceCombined = "combined"
)

// Record is one company's support-team assessment from one source, and after
// merge the single surviving record per tax id.
type Record struct {
	TaxID              string `json:"tax_id"`
	Name               string `json:"name"`
	Site               string `json:"site"`
	SupportTeamSizeMin int    `json:"support_team_size_min"`
	SupportEvidence    string `json:"support_evidence"`
	EvidenceURL        string `json:"evidence_url"`
	EvidenceType       string `json:"evidence_type"`
	Source             string `json:"source"`

	// Jobs-source detail
	HHEmployerID          string   `json:"hh_employer_id,omitempty"`
	SupportVacanciesCount int      `json:"support_vacancies_count,omitempty"`
	SupportVacancyTitles  []string `json:"support_vacancy_titles,omitempty"`
	VacanciesSampleURLs   []string `json:"vacancies_sample_urls,omitempty"`
	JobTitlesFound        string   `json:"job_titles_found,omitempty"`
	JobsURL               string   `json:"jobs_url,omitempty"`
	EstimatedTeamFromJobs int      `json:"estimated_team_from_jobs,omitempty"`
	JobsEvidence          string   `json:"jobs_evidence,omitempty"`

	// Site feature flags
	HasSupportSection  bool `json:"has_support_section"`
	HasSupportEmail    bool `json:"has_support_email"`
	HasContactForm     bool `json:"has_contact_form"`
	HasOnlineChat      bool `json:"has_online_chat"`
	HasMessengers      bool `json:"has_messengers"`
	HasKBOrFAQ         bool `json:"has_kb_or_faq"`
	Mentions24x7       bool `json:"mentions_24_7"`
	ShiftWorkMentioned bool `json:"shift_work_mentioned"`

	// Site detail
	SupportEmail  string `json:"support_email,omitempty"`
	SupportURL    string `json:"support_url,omitempty"`
	KBURL         string `json:"kb_url,omitempty"`
	ChatVendor    string `json:"chat_vendor,omitempty"`
	SiteVacancies int    `json:"company_site_vacancies,omitempty"`

	Error              string `json:"error,omitempty"`
	ParsedSuccessfully bool   `json:"parsed_successfully"`
}
