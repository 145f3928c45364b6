package company

import (
	"go.uber.org/zap"
)

// Merge combines per-source records into one record per tax id.
//
// Jobs-source records seed the map keyed by cleaned tax id. A site-source
// record overwrites the estimate fields of an existing entry only when its
// team-size estimate is strictly greater; the larger estimate is treated as
// the stronger evidence. New tax ids are inserted as-is. Records below
// minTeamSize are dropped after the merge.
func Merge(jobs, sites []Record, minTeamSize int) map[string]Record {
	merged := make(map[string]Record, len(jobs)+len(sites))

	for _, r := range jobs {
		id := CleanTaxID(r.TaxID)
		if id == "" {
			continue
		}
		r.TaxID = id
		if r.Source == "" {
			r.Source = SourceJobs
		}
		if r.EvidenceType == "" {
			r.EvidenceType = EvidenceVacanciesEstimate
		}
		merged[id] = r
	}

	for _, r := range sites {
		id := CleanTaxID(r.TaxID)
		if id == "" {
			continue
		}

		existing, ok := merged[id]
		if !ok {
			r.TaxID = id
			if r.Source == "" {
				r.Source = SourceSites
			}
			if r.EvidenceType == "" {
				r.EvidenceType = EvidenceSite
			}
			merged[id] = r
			continue
		}

		if r.SupportTeamSizeMin > existing.SupportTeamSizeMin {
			zap.L().Debug("merge: site estimate wins",
				zap.String("tax_id", id),
				zap.Int("jobs_size", existing.SupportTeamSizeMin),
				zap.Int("site_size", r.SupportTeamSizeMin),
			)
			existing.SupportTeamSizeMin = r.SupportTeamSizeMin
			existing.SupportEvidence = r.SupportEvidence
			existing.EvidenceURL = r.EvidenceURL
			existing.EvidenceType = r.EvidenceType
			existing.Source = SourceCombined
			merged[id] = existing
		}
	}

	for id, r := range merged {
		if r.SupportTeamSizeMin < minTeamSize {
			delete(merged, id)
		}
	}

	return merged
}
