package score

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/support-radar/internal/model"
)

// directMentionPatterns capture an explicit support-team headcount from
// free text. Each has exactly one numeric capture group of two or more
// digits. Character classes use \p{L} because the corpus is mostly Cyrillic.
var directMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:в\s+)?(?:нашей\s+)?(?:команд[еа]|отдел[еа]|служб[ае])\s+поддержк[а-яё]*[\s\p{L}\d,.-]{0,50}?(\d{2,})\s*(?:человек|сотрудник|специалист|оператор)`),
	regexp.MustCompile(`работа[ею]т\s+в\s+(?:поддержк|контакт[-\s]*центр)[\s\p{L}\d,.-]{0,50}?(\d{2,})\s*(?:человек|сотрудник)`),
	regexp.MustCompile(`размер[\s\p{L}\d,.-]{0,30}?(?:команд[ы]|отдел[а])[\s\p{L}\d,.-]{0,30}?(\d{2,})\s*(?:человек|сотрудник)`),
	regexp.MustCompile(`(?:более|около|свыше|до)\s+(\d{2,})\s*(?:человек|сотрудник)[\s\p{L}\d,.-]{0,40}(?:в\s+)?поддержк`),
	regexp.MustCompile(`поддержк[а-яё]*[\s\p{L}\d,.-]{0,30}?из\s+(\d{2,})\s*(?:человек|сотрудник)`),
	regexp.MustCompile(`контакт[-\s]*центр[\s\p{L}\d,.-]{0,60}?(\d{2,})\s*(?:человек|сотрудник|оператор|мест|работников)`),
	regexp.MustCompile(`штат\s+(?:поддержк|контакт[-\s]*центр)[\s\p{L}\d,.-]{0,30}?(\d{2,})\s*(?:человек|сотрудник)`),
	regexp.MustCompile(`обрабатываем\s+в\s+день[\s\p{L}\d,.-]{0,30}?(\d{2,})\s*(?:тысяч|запросов|обращений)`),
	regexp.MustCompile(`ежедневно\s+(?:обрабатываем|принимаем)[\s\p{L}\d,.-]{0,30}?(\d{2,})\s*(?:тысяч|звонков)`),
}

// contextRadius is the number of characters quoted around a direct match.
const contextRadius = 60

// maxEvidenceLen caps the Level A evidence string.
const maxEvidenceLen = 200

// DirectMention is an accepted Tier A match.
type DirectMention struct {
	TeamSize int
	Context  string
	URL      string
}

// FindDirectMention scans items in input order for an explicit headcount
// statement. The first capture with min <= n (and n <= max when max > 0)
// wins. Unparsable captures are skipped, never fatal.
func FindDirectMention(items []model.EvidenceItem, min, max int) (DirectMention, bool) {
	for _, item := range items {
		text := item.CombinedText()
		if m, ok := scanText(text, min, max); ok {
			m.URL = item.URL
			return m, true
		}
	}
	return DirectMention{}, false
}

// FindDirectMentionInText runs the Tier A scan over a single text blob,
// used by the site-analysis path where evidence is a page rather than a
// vacancy list.
func FindDirectMentionInText(text string, min, max int) (DirectMention, bool) {
	return scanText(strings.ToLower(text), min, max)
}

func scanText(text string, min, max int) (DirectMention, bool) {
	for _, re := range directMentionPatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		if n < min || (max > 0 && n > max) {
			continue
		}
		return DirectMention{TeamSize: n, Context: contextAround(text, loc[0], loc[1])}, true
	}
	return DirectMention{}, false
}

// contextAround quotes the text surrounding a match, collapsed to single
// spaces. Offsets are clamped to rune boundaries.
func contextAround(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !isRuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !isRuneStart(text[hi]) {
		hi++
	}
	ctx := strings.ReplaceAll(text[lo:hi], "\n", " ")
	return strings.Join(strings.Fields(ctx), " ")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// Evidence renders the mention as a Tier A evidence string.
func (m DirectMention) Evidence() string {
	return levelAEvidence(m.Context)
}

// levelAEvidence formats the Tier A evidence string, capped at
// maxEvidenceLen bytes without splitting a rune.
func levelAEvidence(context string) string {
	ev := `Level A: direct mention of support team size: "` + context + `"`
	if len(ev) > maxEvidenceLen {
		ev = ev[:maxEvidenceLen-3]
		for len(ev) > 0 {
			if r, size := utf8.DecodeLastRuneInString(ev); r == utf8.RuneError && size <= 1 {
				ev = ev[:len(ev)-1]
				continue
			}
			break
		}
		ev += "..."
	}
	return ev
}
