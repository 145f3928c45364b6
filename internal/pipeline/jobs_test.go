package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/model"
	"github.com/sells-group/support-radar/pkg/hh"
)

type fakeHH struct {
	employers       []hh.Employer
	vacancies       map[string][]hh.Vacancy
	searchHits      []hh.Vacancy
	failEmployers   bool
	searchQueries   []string
	listedEmployers []string
}

func (f *fakeHH) SearchEmployers(_ context.Context, name string) ([]hh.Employer, error) {
	if f.failEmployers {
		return nil, eris.New("hh: status 503")
	}
	return f.employers, nil
}

func (f *fakeHH) ListVacancies(_ context.Context, employerID string) ([]hh.Vacancy, error) {
	f.listedEmployers = append(f.listedEmployers, employerID)
	return f.vacancies[employerID], nil
}

func (f *fakeHH) SearchVacancies(_ context.Context, query string) ([]hh.Vacancy, error) {
	f.searchQueries = append(f.searchQueries, query)
	return f.searchHits, nil
}

func TestBestEmployerMatch_Exact(t *testing.T) {
	employers := []hh.Employer{
		{ID: "1", Name: "Ромашка Групп"},
		{ID: "2", Name: `ООО "Ромашка"`, Type: "company", OpenVacancies: 3},
	}
	m := BestEmployerMatch("Ромашка", employers)
	require.NotNil(t, m)
	assert.Equal(t, "2", m.ID)
}

func TestBestEmployerMatch_NoCandidates(t *testing.T) {
	assert.Nil(t, BestEmployerMatch("Ромашка", nil))
}

func TestBestEmployerMatch_WeakMatchRejected(t *testing.T) {
	employers := []hh.Employer{{ID: "1", Name: "Совершенно другая компания"}}
	assert.Nil(t, BestEmployerMatch("Ромашка", employers))
}

func TestBestEmployerMatch_Substring(t *testing.T) {
	employers := []hh.Employer{
		{ID: "1", Name: "Ромашка и партнёры северо-запад", OpenVacancies: 0},
	}
	m := BestEmployerMatch("Ромашка и партнёры северо-запад плюс", employers)
	require.NotNil(t, m)
	assert.Equal(t, "1", m.ID)
}

func TestAnalyzeCompany_HappyPath(t *testing.T) {
	client := &fakeHH{
		employers: []hh.Employer{{ID: "42", Name: "Ромашка", Type: "company", OpenVacancies: 6, AlternateURL: "https://hh.ru/employer/42"}},
		vacancies: map[string][]hh.Vacancy{"42": {
			{ID: "v1", Name: "Оператор поддержки", AlternateURL: "https://hh.ru/vacancy/v1",
				Snippet: hh.Snippet{Requirement: "приём звонков 24/7"}},
			{ID: "v2", Name: "Специалист поддержки в чат", AlternateURL: "https://hh.ru/vacancy/v2",
				Snippet: hh.Snippet{Responsibility: "письменная поддержка клиентов"}},
			{ID: "v3", Name: "Разработчик Go", AlternateURL: "https://hh.ru/vacancy/v3"},
		}},
	}
	a := NewJobsAnalyzer(client)

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{
		TaxID: "7707083893", Name: "Ромашка",
	})

	assert.True(t, rec.ParsedSuccessfully)
	assert.Empty(t, rec.Error)
	assert.Equal(t, "42", rec.HHEmployerID)
	assert.Equal(t, 2, rec.SupportVacanciesCount)
	assert.Equal(t, []string{"Оператор поддержки", "Специалист поддержки в чат"}, rec.SupportVacancyTitles)
	assert.Equal(t, company.SourceJobs, rec.Source)
	assert.Equal(t, "https://hh.ru/vacancy/v1", rec.EvidenceURL)
	assert.NotEmpty(t, rec.SupportEvidence)
}

func TestAnalyzeCompany_DirectMention(t *testing.T) {
	client := &fakeHH{
		employers: []hh.Employer{{ID: "42", Name: "Ромашка", Type: "company", OpenVacancies: 6}},
		vacancies: map[string][]hh.Vacancy{"42": {
			{ID: "v1", Name: "Оператор поддержки",
				Snippet: hh.Snippet{Requirement: "в команде поддержки работает 35 человек"}},
		}},
	}
	a := NewJobsAnalyzer(client)

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	assert.Equal(t, 35, rec.SupportTeamSizeMin)
	assert.Equal(t, company.EvidenceVacanciesDirect, rec.EvidenceType)
}

func TestAnalyzeCompany_APIFailureRecorded(t *testing.T) {
	a := NewJobsAnalyzer(&fakeHH{failEmployers: true})

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	assert.False(t, rec.ParsedSuccessfully)
	assert.Equal(t, company.EvidenceError, rec.EvidenceType)
	assert.Contains(t, rec.Error, "503")
}

func TestAnalyzeCompany_FallbackSearchWhenThin(t *testing.T) {
	client := &fakeHH{
		employers: []hh.Employer{{ID: "42", Name: "Ромашка", Type: "company", OpenVacancies: 1}},
		vacancies: map[string][]hh.Vacancy{"42": {
			{ID: "v1", Name: "Оператор поддержки", Snippet: hh.Snippet{}},
		}},
		searchHits: []hh.Vacancy{
			{ID: "v9", Name: "Консультант поддержки", Employer: hh.RefModel{ID: "42"}},
			{ID: "v10", Name: "Оператор поддержки чужой", Employer: hh.RefModel{ID: "99"}},
		},
	}
	a := NewJobsAnalyzer(client)

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	assert.Len(t, client.searchQueries, 2)
	// v10 belongs to another employer and is filtered out.
	assert.Equal(t, 2, rec.SupportVacanciesCount)
}

func TestAnalyzeCompany_NoEmployerNoVacancies(t *testing.T) {
	a := NewJobsAnalyzer(&fakeHH{})

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	assert.True(t, rec.ParsedSuccessfully)
	assert.Equal(t, 0, rec.SupportTeamSizeMin)
	assert.Equal(t, "No support vacancies", rec.SupportEvidence)
	assert.Contains(t, rec.EvidenceURL, "hh.ru/search/vacancy")
}

func TestRun_KeepsOnlyQualified(t *testing.T) {
	client := &fakeHH{
		employers: []hh.Employer{{ID: "42", Name: "Ромашка", OpenVacancies: 1}},
		vacancies: map[string][]hh.Vacancy{"42": {
			{ID: "v1", Name: "Оператор поддержки",
				Snippet: hh.Snippet{Requirement: "в команде поддержки работает 35 человек"}},
		}},
	}
	a := NewJobsAnalyzer(client, WithBatching(1, 1, 0))

	records, err := a.Run(context.Background(), []model.Candidate{
		{TaxID: "7707083893", Name: "Ромашка"},
		{TaxID: "123456789012", Name: "Другая"},
	})
	require.NoError(t, err)
	// Другая has no employer match and no search hits: estimate 0, dropped.
	require.Len(t, records, 1)
	assert.Equal(t, "Ромашка", records[0].Name)
	assert.GreaterOrEqual(t, records[0].SupportTeamSizeMin, 10)
}

func TestRun_DropsFailedCompanies(t *testing.T) {
	a := NewJobsAnalyzer(&fakeHH{failEmployers: true}, WithBatching(2, 2, 0))

	records, err := a.Run(context.Background(), []model.Candidate{
		{Name: "Альфа"}, {Name: "Бета"},
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnalyzeCompany_SearchWithoutEmployerFiltersByName(t *testing.T) {
	client := &fakeHH{
		searchHits: []hh.Vacancy{
			{ID: "s1", Name: "Оператор поддержки",
				Employer: hh.RefModel{ID: "7", Name: `ООО "Ромашка"`}},
			{ID: "s2", Name: "Оператор поддержки",
				Employer: hh.RefModel{ID: "8", Name: "Василёк"}},
		},
	}
	a := NewJobsAnalyzer(client)

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	// s2 belongs to a company whose name has nothing to do with the
	// candidate, so the text-search hit is not attributed.
	assert.Equal(t, 1, rec.SupportVacanciesCount)
	assert.Equal(t, []string{"Оператор поддержки"}, rec.SupportVacancyTitles)
}

func TestAnalyzeCompany_SampleURLsCapped(t *testing.T) {
	client := &fakeHH{
		employers: []hh.Employer{{ID: "42", Name: "Ромашка", Type: "company", OpenVacancies: 6}},
		vacancies: map[string][]hh.Vacancy{"42": {
			{ID: "v1", Name: "Оператор поддержки", AlternateURL: "https://hh.ru/vacancy/v1"},
			{ID: "v2", Name: "Оператор поддержки чата", AlternateURL: "https://hh.ru/vacancy/v2"},
			{ID: "v3", Name: "Оператор поддержки смены", AlternateURL: "https://hh.ru/vacancy/v3"},
			{ID: "v4", Name: "Консультант поддержки", AlternateURL: "https://hh.ru/vacancy/v4"},
		}},
	}
	a := NewJobsAnalyzer(client)

	rec := a.AnalyzeCompany(context.Background(), model.Candidate{Name: "Ромашка"})
	assert.Equal(t, 4, rec.SupportVacanciesCount)
	assert.Len(t, rec.VacanciesSampleURLs, 3)
}
