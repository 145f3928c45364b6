package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_JobsOnly(t *testing.T) {
	jobs := []Record{{TaxID: "7707083893", Name: "Ромашка", SupportTeamSizeMin: 12}}
	merged := Merge(jobs, nil, 10)
	assert.Len(t, merged, 1)
	assert.Equal(t, SourceJobs, merged["7707083893"].Source)
}

func TestMerge_SiteLargerWins(t *testing.T) {
	jobs := []Record{{
		TaxID: "7707083893", SupportTeamSizeMin: 12,
		SupportEvidence: "Level B: estimate based on: 3 support vacancies",
		EvidenceType:    EvidenceVacanciesEstimate,
	}}
	sites := []Record{{
		TaxID: "7707083893", SupportTeamSizeMin: 40,
		SupportEvidence: "Level A: direct mention of support team size",
		EvidenceURL:     "https://example.ru/about",
		EvidenceType:    EvidenceSite,
	}}
	merged := Merge(jobs, sites, 10)
	r := merged["7707083893"]
	assert.Equal(t, 40, r.SupportTeamSizeMin)
	assert.Equal(t, EvidenceSite, r.EvidenceType)
	assert.Equal(t, "https://example.ru/about", r.EvidenceURL)
	assert.Equal(t, SourceCombined, r.Source)
}

func TestMerge_EqualSizeKeepsJobs(t *testing.T) {
	jobs := []Record{{TaxID: "7707083893", SupportTeamSizeMin: 12, SupportEvidence: "jobs"}}
	sites := []Record{{TaxID: "7707083893", SupportTeamSizeMin: 12, SupportEvidence: "site"}}
	merged := Merge(jobs, sites, 10)
	r := merged["7707083893"]
	assert.Equal(t, "jobs", r.SupportEvidence)
	assert.Equal(t, SourceJobs, r.Source)
}

func TestMerge_SiteSmallerIgnored(t *testing.T) {
	jobs := []Record{{TaxID: "7707083893", SupportTeamSizeMin: 15, SupportEvidence: "jobs"}}
	sites := []Record{{TaxID: "7707083893", SupportTeamSizeMin: 10, SupportEvidence: "site"}}
	merged := Merge(jobs, sites, 10)
	assert.Equal(t, "jobs", merged["7707083893"].SupportEvidence)
}

func TestMerge_SiteInsertsNewTaxID(t *testing.T) {
	sites := []Record{{TaxID: "123456789012", SupportTeamSizeMin: 11}}
	merged := Merge(nil, sites, 10)
	assert.Len(t, merged, 1)
	assert.Equal(t, SourceSites, merged["123456789012"].Source)
}

func TestMerge_TaxIDCleanedAsKey(t *testing.T) {
	jobs := []Record{{TaxID: "7707083893.0", SupportTeamSizeMin: 12}}
	merged := Merge(jobs, nil, 10)
	_, ok := merged["7707083893"]
	assert.True(t, ok)
}

func TestMerge_EmptyTaxIDSkipped(t *testing.T) {
	jobs := []Record{{TaxID: "", SupportTeamSizeMin: 50}}
	merged := Merge(jobs, nil, 10)
	assert.Empty(t, merged)
}

func TestMerge_BelowThresholdDropped(t *testing.T) {
	jobs := []Record{
		{TaxID: "7707083893", SupportTeamSizeMin: 12},
		{TaxID: "123456789012", SupportTeamSizeMin: 9},
	}
	merged := Merge(jobs, nil, 10)
	assert.Len(t, merged, 1)
	_, ok := merged["123456789012"]
	assert.False(t, ok)
}

func TestMerge_DuplicateJobsLastWins(t *testing.T) {
	jobs := []Record{
		{TaxID: "7707083893", SupportTeamSizeMin: 12, SupportEvidence: "first"},
		{TaxID: "7707083893", SupportTeamSizeMin: 14, SupportEvidence: "second"},
	}
	merged := Merge(jobs, nil, 10)
	assert.Equal(t, "second", merged["7707083893"].SupportEvidence)
}
