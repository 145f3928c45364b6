package pipeline

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/company"
)

// Column order for the final CSV: identity and estimate first, jobs-source
// detail second, site detail and flags last.
var (
	requiredColumns = []string{
		"tax_id", "name", "site",
		"support_team_size_min", "support_evidence",
		"evidence_url", "evidence_type", "source",
	}
	jobsColumns = []string{
		"hh_employer_id", "support_vacancies_count", "support_vacancy_titles",
		"vacancies_sample_urls", "job_titles_found", "jobs_url",
		"estimated_team_from_jobs", "jobs_evidence",
	}
	siteColumns = []string{
		"has_support_section", "has_support_email", "has_contact_form",
		"has_online_chat", "has_messengers", "has_kb_or_faq",
		"mentions_24_7", "shift_work_mentioned",
		"support_email", "support_url", "kb_url", "chat_vendor",
		"company_site_vacancies", "error", "parsed_successfully",
	}
)

func exportHeader() []string {
	header := make([]string, 0, len(requiredColumns)+len(jobsColumns)+len(siteColumns))
	header = append(header, requiredColumns...)
	header = append(header, jobsColumns...)
	header = append(header, siteColumns...)
	return header
}

// Clean validates and normalizes merged records for export. Records with
// invalid tax ids or estimates below minTeamSize are dropped; junk support
// emails scraped from image tags are cleared. The result is sorted by team
// size descending, then name ascending.
func Clean(records []company.Record, minTeamSize int) []company.Record {
	out := make([]company.Record, 0, len(records))
	dropped := 0
	for _, r := range records {
		r.TaxID = company.CleanTaxID(r.TaxID)
		if !company.ValidTaxID(r.TaxID) {
			dropped++
			continue
		}
		if r.SupportTeamSizeMin < minTeamSize {
			dropped++
			continue
		}
		if junkEmail(r.SupportEmail) {
			r.SupportEmail = ""
		}
		r.Name = strings.TrimSpace(r.Name)
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SupportTeamSizeMin != out[j].SupportTeamSizeMin {
			return out[i].SupportTeamSizeMin > out[j].SupportTeamSizeMin
		}
		return out[i].Name < out[j].Name
	})

	zap.L().Info("export cleaned",
		zap.Int("kept", len(out)),
		zap.Int("dropped", dropped))
	return out
}

// junkEmail flags addresses scraped out of image markup rather than
// contact links.
func junkEmail(email string) bool {
	if email == "" {
		return false
	}
	lower := strings.ToLower(email)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.Contains(lower, "@2x.")
}

// Export writes cleaned records to a CSV file.
func Export(path string, records []company.Record, minTeamSize int) error {
	cleaned := Clean(records, minTeamSize)
	if err := WriteRecordsCSV(path, cleaned); err != nil {
		return err
	}
	zap.L().Info("exported records",
		zap.String("path", path),
		zap.Int("count", len(cleaned)))
	return nil
}

// WriteRecordsCSV writes records in the canonical column order. It is used
// both for intermediate per-source files and for the final export.
func WriteRecordsCSV(path string, records []company.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader()); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// ReadRecordsCSV reads records written by WriteRecordsCSV or produced by
// external tooling. Boolean columns accept the usual spelling variants and
// coerce everything unrecognized to false.
func ReadRecordsCSV(path string) ([]company.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "export: read %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]company.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := company.Record{
			TaxID:                 get(row, "tax_id"),
			Name:                  get(row, "name"),
			Site:                  get(row, "site"),
			SupportTeamSizeMin:    atoi(get(row, "support_team_size_min")),
			SupportEvidence:       get(row, "support_evidence"),
			EvidenceURL:           get(row, "evidence_url"),
			EvidenceType:          get(row, "evidence_type"),
			Source:                get(row, "source"),
			HHEmployerID:          get(row, "hh_employer_id"),
			SupportVacanciesCount: atoi(get(row, "support_vacancies_count")),
			SupportVacancyTitles:  splitList(get(row, "support_vacancy_titles")),
			VacanciesSampleURLs:   splitList(get(row, "vacancies_sample_urls")),
			JobTitlesFound:        get(row, "job_titles_found"),
			JobsURL:               get(row, "jobs_url"),
			EstimatedTeamFromJobs: atoi(get(row, "estimated_team_from_jobs")),
			JobsEvidence:          get(row, "jobs_evidence"),
			HasSupportSection:     CoerceBool(get(row, "has_support_section")),
			HasSupportEmail:       CoerceBool(get(row, "has_support_email")),
			HasContactForm:        CoerceBool(get(row, "has_contact_form")),
			HasOnlineChat:         CoerceBool(get(row, "has_online_chat")),
			HasMessengers:         CoerceBool(get(row, "has_messengers")),
			HasKBOrFAQ:            CoerceBool(get(row, "has_kb_or_faq")),
			Mentions24x7:          CoerceBool(get(row, "mentions_24_7")),
			ShiftWorkMentioned:    CoerceBool(get(row, "shift_work_mentioned")),
			SupportEmail:          get(row, "support_email"),
			SupportURL:            get(row, "support_url"),
			KBURL:                 get(row, "kb_url"),
			ChatVendor:            get(row, "chat_vendor"),
			SiteVacancies:         atoi(get(row, "company_site_vacancies")),
			Error:                 get(row, "error"),
			ParsedSuccessfully:    CoerceBool(get(row, "parsed_successfully")),
		}
		records = append(records, r)
	}
	return records, nil
}

func recordRow(r company.Record) []string {
	return []string{
		r.TaxID, r.Name, r.Site,
		strconv.Itoa(r.SupportTeamSizeMin), r.SupportEvidence,
		r.EvidenceURL, r.EvidenceType, r.Source,
		r.HHEmployerID, strconv.Itoa(r.SupportVacanciesCount),
		strings.Join(r.SupportVacancyTitles, "; "),
		strings.Join(r.VacanciesSampleURLs, "; "),
		r.JobTitlesFound, r.JobsURL,
		strconv.Itoa(r.EstimatedTeamFromJobs), r.JobsEvidence,
		boolStr(r.HasSupportSection), boolStr(r.HasSupportEmail),
		boolStr(r.HasContactForm), boolStr(r.HasOnlineChat),
		boolStr(r.HasMessengers), boolStr(r.HasKBOrFAQ),
		boolStr(r.Mentions24x7), boolStr(r.ShiftWorkMentioned),
		r.SupportEmail, r.SupportURL, r.KBURL, r.ChatVendor,
		strconv.Itoa(r.SiteVacancies), r.Error,
		boolStr(r.ParsedSuccessfully),
	}
}

// CoerceBool maps the boolean spellings seen in source files onto a real
// bool. Anything unrecognized is false.
func CoerceBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "да", "t":
		return true
	default:
		return false
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
