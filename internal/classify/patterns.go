// Package classify decides whether a piece of vacancy or page text denotes a
// customer-support role and extracts per-item quality signals. All matchers
// are pure functions over read-only, package-level pattern tables compiled
// once at init.
package classify

import (
	"regexp"
	"strings"

	"github.com/sells-group/support-radar/internal/model"
)

// supportKeywords gates classification: at least one must match the combined
// title+snippet text for an item to count as a support vacancy. Covers role
// names, channel names, and shift indicators in Russian and English.
var supportKeywords = compileAll(
	`поддержк[а-яё]*`, `helpdesk`, `service\s*desk`,
	`оператор`, `консультант`, `специалист\s+поддержки`,
	`менеджер\s+(?:по\s+)?работе\s+с\s+клиентами`, `график\s+2/2`,
	`customer\s*support`, `клиентск[а-яё]*\s+поддержк[а-яё]*`,
	`контакт[-\s]*центр`, `call[\s-]*центр`, `колл[\s-]*центр`,
	`l[123]\s*(?:поддержк[а-яё]*|специалист)`, `агент\s+поддержки`,
	`support\s+agent`, `саппорт`, `обслуживани[ея]\s+клиент[ов]*`,
	`диспетчер`, `приём\s+звонков`, `входящ[а-яё]+\s+лини[яи]`,
	`техническ[а-яё]+\s+поддержк[а-яё]*`, `техподдержка`,
	`it[\s-]*поддержк[а-яё]*`, `инженер\s+поддержки`,
	`супервайзер`, `тимлид.*поддержк`, `руководитель.*поддержк`,
	`старший.*оператор`, `ведущий.*специалист.*поддержк`,
	`чат[\s-]*поддержк[а-яё]*`, `письменн[а-яё]+\s+поддержк[а-яё]*`,
	`email[\s-]*поддержк[а-я]*`, `модератор`, `3\s*смен[ы]`,
	`(?:без|не)\s+продаж`, `не+продажи`, `обслуживание\s+клиентов`,
	`сменн[а-яё]+\s+работ[аы]`, `ночн[а-яё]+\s+смен[аы]`,
	`тех[.\-]*поддержк[а-я]*`, `посменн[а-яё]+\s+работ[аы]`,
)

// exclusion pairs a role regex with a guard over the full text. A match with
// a true guard rejects the item outright.
type exclusion struct {
	re    *regexp.Regexp
	guard func(fullText string) bool
}

var alwaysExclude = func(string) bool { return true }

var exclusions = []exclusion{
	{
		// Sales managers are excluded unless the posting itself says "no sales".
		re:    regexp.MustCompile(`менеджер\s+по\s+продажам`),
		guard: func(text string) bool { return !strings.Contains(text, "без продаж") },
	},
	{
		re:    regexp.MustCompile(`(?:разработчик|программист|devops|бэкэнд|фронтэнд)`),
		guard: alwaysExclude,
	},
	{
		re:    regexp.MustCompile(`(?:маркетолог|бухгалтер|юрист|дизайнер|аналитик|архитектор)`),
		guard: alwaysExclude,
	},
	{
		re:    regexp.MustCompile(`менеджер\s+проект`),
		guard: alwaysExclude,
	},
}

// shiftPatterns flag shift-based or round-the-clock work schedules.
var shiftPatterns = compileAll(
	`24[/×x]7`, `24\s*часа`, `круглосуточно`, `круглые\s+сутки`,
	`работаем\s+(?:всегда|постоянно)`, `без\s+выходных`,
	`сменн[а-яё]+\s+работ[аы]`, `график\s+2/2`, `3\s*смен[ы]`,
	`посменн[а-яё]+\s+работ[аы]`, `ночн[а-яё]+\s+смен[аы]`,
	`дежурств[а-яё]*\s+по\s+графику`, `скользящ[а-яё]+\s+график`,
)

// twentyFourSevenPatterns are the strict 24/7 subset of shiftPatterns.
var twentyFourSevenPatterns = compileAll(
	`24[/×x]7`, `24\s*часа`, `круглосуточно`,
)

// loadPatterns flag "thousands of requests" style volume mentions.
var loadPatterns = compileAll(
	`тысяч[а-яё]*\s+(?:обращен|звонк|заявк)`,
	`ежедневн[а-яё]+\s+(?:обрабатываем|принимаем)`,
	`объем[а-яё]*\s+(?:обращен|звонков)`,
	`(?:больш[а-яё]+|крупн[а-яё]+)\s+(?:нагрузк|поток)`,
	`много\s+(?:обращен|звонков|клиентов)`,
	`высок[а-яё]+\s+(?:нагрузк|интенсивность)`,
)

var (
	tierLevelRe = regexp.MustCompile(`l[123]|(?:перва|втора|третья)\s+линия|1[-\s]?я\s+линия`)
	chatRe      = regexp.MustCompile(`чат|письменн|email|мессенджер`)
	phoneRe     = regexp.MustCompile(`звонк|телефон|call|колл`)
)

// roleCategoryKeywords maps keyword substrings to a role category. Categories
// are tested in fixed priority order; the first category with a matching
// keyword wins.
var roleCategoryOrder = []model.RoleCategory{
	model.RoleOperator,
	model.RoleManager,
	model.RoleTechSupport,
	model.RoleChatSupport,
	model.RoleConsultant,
}

var roleCategoryKeywords = map[model.RoleCategory][]string{
	model.RoleOperator:    {"оператор", "диспетчер", "приём звонков"},
	model.RoleManager:     {"менеджер", "супервайзер", "руководитель"},
	model.RoleTechSupport: {"техническ", "инженер", "l2", "l3"},
	model.RoleChatSupport: {"чат", "письменн", "email", "модератор"},
	model.RoleConsultant:  {"консультант", "специалист", "агент"},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

func anyMatch(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
