package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/company"
	"github.com/sells-group/support-radar/internal/model"
)

// Header aliases for the three candidate columns. Input files come from
// several registries with inconsistent naming, Russian and English.
var (
	taxIDAliases = []string{"tax_id", "inn", "инн"}
	nameAliases  = []string{"name", "company", "company_name", "название", "наименование", "организация"}
	siteAliases  = []string{"site", "website", "url", "сайт", "домен", "web"}
)

// LoadCandidates reads a candidate company list from a CSV or XLSX file.
// A row needs a name and a site to be kept; tax ids are normalized on
// load. Both pipelines key their work off the site column, so rows
// without one are skipped here rather than downstream.
func LoadCandidates(ctx context.Context, path string) ([]model.Candidate, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(path)
		if err != nil {
			return nil, err
		}
	case ".csv":
		rows, err = readCSVFile(ctx, path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, eris.Errorf("fetcher: unsupported input format %q", filepath.Ext(path))
	}

	if len(rows) == 0 {
		return nil, eris.Errorf("fetcher: %s is empty", path)
	}

	taxCol, nameCol, siteCol := resolveColumns(rows[0])
	if nameCol < 0 {
		return nil, eris.Errorf("fetcher: %s has no recognizable name column", path)
	}

	var out []model.Candidate
	skipped := 0
	for _, row := range rows[1:] {
		c := model.Candidate{
			TaxID: company.CleanTaxID(cell(row, taxCol)),
			Name:  strings.TrimSpace(cell(row, nameCol)),
			Site:  normalizeSite(cell(row, siteCol)),
		}
		if c.Name == "" || c.Site == "" {
			skipped++
			continue
		}
		out = append(out, c)
	}

	zap.L().Info("loaded candidates",
		zap.String("path", path),
		zap.Int("count", len(out)),
		zap.Int("skipped", skipped))
	return out, nil
}

func readCSVFile(ctx context.Context, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()

	headerCh := make(chan []string, 1)
	rowCh, errCh := StreamCSV(ctx, f, CSVOptions{
		HasHeader:  true,
		HeaderCh:   headerCh,
		LazyQuotes: true,
	})

	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	select {
	case header := <-headerCh:
		rows = append([][]string{header}, rows...)
	default:
		return nil, eris.Errorf("fetcher: %s is empty", path)
	}
	return rows, nil
}

// resolveColumns maps aliased header names to column indexes. A missing
// column comes back as -1.
func resolveColumns(header []string) (taxCol, nameCol, siteCol int) {
	taxCol, nameCol, siteCol = -1, -1, -1
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case taxCol < 0 && matchesAlias(key, taxIDAliases):
			taxCol = i
		case nameCol < 0 && matchesAlias(key, nameAliases):
			nameCol = i
		case siteCol < 0 && matchesAlias(key, siteAliases):
			siteCol = i
		}
	}
	return taxCol, nameCol, siteCol
}

func matchesAlias(key string, aliases []string) bool {
	for _, a := range aliases {
		if key == a {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// normalizeSite ensures a site value carries a scheme so the prober can
// fetch it directly.
func normalizeSite(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	return strings.TrimRight(site, "/")
}
