// Package sitescan probes company websites for customer-support signals:
// support sections, contact channels, chat widgets, knowledge bases, and
// support vacancies on career pages. It is the site-side source adapter;
// scoring itself lives in internal/score.
package sitescan

import "regexp"

// Features are the heuristic signals extracted from a company site.
type Features struct {
	URL         string
	FullText    string
	PageText    string
	SupportText string

	HasSupportSection bool
	HasSupportEmail   bool
	HasContactForm    bool
	HasOnlineChat     bool
	HasMessengers     bool
	HasKBOrFAQ        bool
	Mentions24x7      bool

	SupportEmail string
	SupportURL   string
	KBURL        string
	ChatVendor   string

	JobsURL            string
	SiteVacancies      int
	JobTitles          []string
	ShiftWorkMentioned bool
}

// supportKeywords flag support-related anchor text and page content, in
// Russian and English. Substring matches over lowercased text.
var supportKeywords = []string{
	"поддерж", "помощь", "контакт", "служб", "сервис", "техподдерж",
	"справк", "консульт", "обслуживани", "обратн", "связ",
	"обращен", "заявк", "сообщен", "письм",
	"отдел поддерж", "служба поддерж", "центр поддерж",
	"линия поддерж", "канал поддерж", "поддержка клиент",
	"клиентск поддерж", "клиентск сервис",
	"контакт-центр", "колл-центр", "call-центр", "контакт центр",
	"диспетчер", "оператор", "приём звонк", "звонк",
	"напиши", "задай вопрос", "написать нам", "свяжитесь",
	"позвони", "позвоните", "звоните", "пишите",
	"страница поддерж", "раздел поддерж", "центр помощи",
	"помощь клиент", "поддержка пользовател",
	"support", "help", "contact", "service", "customer",
	"assist", "care", "guidance",
	"customer care", "customer service", "client support",
	"technical support", "tech support", "it support",
	"contact us", "get in touch", "reach us", "get help",
	"call us", "phone", "email us", "write to us",
	"chat with us", "live chat", "online chat",
	"help center", "support center", "service center",
	"contact center", "call center", "customer center",
	"support page", "help page", "contact page",
	"customer portal", "client portal", "help desk",
}

// faqKeywords flag knowledge-base and FAQ links.
var faqKeywords = []string{
	"faq", "часто задаваем", "база знаний", "вопрос", "ответ",
	"часто задаваемые вопросы", "чаво", "частые вопросы",
	"вопросы и ответы", "вопросы-ответы", "популярные вопросы",
	"часто спрашивают", "спрашивают", "отвечаем",
	"знания", "knowledge base", "knowledge",
	"статьи", "инструкц", "руководств", "гайд", "руководство",
	"помощь", "справочн", "документац", "мануал", "manual",
	"how to", "how-to", "как пользоваться", "как настроить",
	"раздел вопрос", "центр знаний", "помощь и поддержка",
	"справочный центр", "информационный раздел",
	"искать в базе", "поиск по базе", "найти ответ",
	"решение проблем", "troubleshooting", "решение",
}

// messengers are messenger-platform markers in page HTML.
var messengers = []string{
	"telegram", "whatsapp", "viber", "vk.com", "vkontakte", "skype", "max",
}

// chatIndicators are live-chat widget vendors and markers.
var chatIndicators = []string{
	"chat", "чат", "онлайн-чат", "livechat", "jivo", "livetex",
	"tawk.to", "zammad", "crisp.chat", "intercom", "drift",
	"freshchat", "zendesk.chat", "tidio.chat", "chatra",
	"widget.createsend", "chat-button", "chat-widget", "chatbot",
	"t.me/widget", "whatsapp-chat", "viber-chat",
}

// loadIndicators are volume claims companies make about their support
// operation. Any of them on the page floors the heuristic team estimate.
var loadIndicators = []string{
	"тысяч обращений", "сотен обращений", "высокая нагрузка",
	"много клиентов", "большой поток", "крупный контакт-центр",
	"обслуживаем тысячи", "обрабатываем сотни",
}

// jobKeywords flag career-page anchor text.
var jobKeywords = []string{
	"ваканс", "работа", "карьер", "трудоустройств",
	"vacancy", "job", "career", "employment", "work",
	"работа у нас", "работа в компании", "присоединиться к команде",
	"команда", "коллектив", "сотрудничество", "стажировк",
	"работать с нами", "мы ищем", "ищем сотрудник",
	"открытые ваканс", "актуальные ваканс", "поиск сотрудник",
	"рабочие мест", "персонал",
	"приглашаем на работу", "присоединяйся",
	"join us", "join our team", "we are hiring", "hiring",
	"open positions", "job openings", "current openings",
	"opportunities", "recruitment", "recruiting", "staff",
	"team", "work with us", "apply now", "apply today",
	"careers at", "jobs at", "work at",
	"кандидат", "резюме", "требован", "обязанност",
	"условия работы", "зарплат", "оклад", "график",
	"candidate", "resume", "requirements", "responsibilities",
	"salary", "benefits", "schedule",
	"/vacancy", "/job", "/career", "/rabota", "/jobs",
	"/vacancies", "/careers", "/employment", "/work",
}

// supportJobPatterns keep only support-role titles when filtering vacancy
// candidates scraped from career pages.
var supportJobPatterns = compileAll(
	`поддержк[а-яё]*`, `helpdesk`, `service\s*desk`,
	`тех[.-]*поддержк[а-яё]*`, `саппорт`, `инженер.*поддержк`,
	`оператор`, `консультант`, `менеджер.*клиент`,
	`специалист\s+поддержки`, `агент\s+поддержки`,
	`support\s+agent`, `техническ[а-яё]*\s+поддержк[а-яё]*`,
	`сотрудник.*поддержк`, `представитель.*поддержк`,
	`служб[а-яё]*\s+поддержк[а-яё]*`, `отдел[а-яё]*\s+поддержк[а-яё]*`,
	`контакт[-\s]*центр`, `call\s*center`, `call.*центр`,
	`клиентск[а-яё]*\s+поддержк[а-яё]*`, `customer\s*support`,
	`обслуживани[ея]\s+клиент`,
	`l[123]`, `1[-\s]*я\s+линия`, `2[-\s]*я\s+линия`,
	`первая\s+линия`, `вторая\s+линия`,
	`technical\s+support`, `it\s+support`, `client\s+support`,
	`user\s+support`, `customer\s+care`, `customer\s+service`,
)

// vacancyNoisePatterns drop boilerplate masquerading as vacancy titles:
// footer links, policy pages, benefit blurbs.
var vacancyNoisePatterns = compileAll(
	`©`, `copyright`, `все права`, `политика`,
	`конфиденциальност`, `карта сайта`, `cookie`,
	`использование файлов`, `пример`, `образец`,
	`продукт`, `услуг`, `решен`, `тариф`, `цена`,
	`контакт`, `о компани`, `отзыв`, `новост`, `блог`,
	`документ`, `инструкц`, `faq`, `база знаний`,
	`компенсац`, `льгот`, `преимуществ`, `бонус`,
	`забота`, `поддержк.*сем`, `материальн.*поддержк`,
	`шаблон`, `тестов`, `демо`, `социальн.*поддержк`,
)

// shiftWorkRe flags shift schedules in raw career-page HTML.
var shiftWorkRe = regexp.MustCompile(`24[/×]7|круглосуточно|сменн[а-яё]*\s+график|2/2|3/3|ночн[а-яё]*\s+смен[ау]?|посменн[а-яё]*|сменн[а-яё]+\s+работ`)

// careerPaths are probed directly before falling back to link scanning.
var careerPaths = []string{
	"/career", "/jobs", "/vacancies", "/vacancy", "/rabota",
	"/about/career", "/company/career", "/company/jobs",
	"/hr", "/work", "/team", "/careers",
	"/вакансии", "/карьера", "/работа",
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

func anyPattern(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsSupportKeyword reports whether lowercased text mentions any
// support keyword. The Tier A site scan requires it so that headcount
// figures from unrelated copy are not quoted as support evidence.
func ContainsSupportKeyword(text string) bool {
	for _, kw := range supportKeywords {
		if kw != "" && containsFold(text, kw) {
			return true
		}
	}
	return false
}
