package company

import (
	"regexp"
	"strings"
)

var (
	nonDigitRe   = regexp.MustCompile(`\D`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	quoteRe      = regexp.MustCompile(`[«»"'()\[\]{}<>]`)
)

// legalForms lists company legal-form tokens stripped during name
// normalization for cross-source matching.
var legalForms = []string{
	"ооо", "зао", "оао", "пао", "ао", "ип",
	"нко", "мкк", "ltd", "llc", "inc", "gmbh",
}

// CleanTaxID strips non-digits from a tax id, dropping a trailing ".0"
// float artifact first. The result is returned even when it is not a valid
// 10- or 12-digit INN: at the merge stage unparseable ids stay verbatim map
// keys, validation happens only at export.
func CleanTaxID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimSuffix(s, ".0")
	return nonDigitRe.ReplaceAllString(s, "")
}

// ValidTaxID reports whether id is exactly 10 or 12 all-digit characters.
func ValidTaxID(id string) bool {
	if len(id) != 10 && len(id) != 12 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeName standardizes a company name for matching by lowercasing,
// removing legal-form tokens, stripping bracket and quote punctuation, and
// collapsing whitespace.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	for _, form := range legalForms {
		n = strings.ReplaceAll(n, form, "")
	}
	n = quoteRe.ReplaceAllString(n, "")
	n = multiSpaceRe.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}
