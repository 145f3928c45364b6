package sitescan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/support-radar/internal/score"
)

const homepageHTML = `<!DOCTYPE html>
<html><head><title>Ромашка</title>
<script src="https://code.jivo.ru/widget/abc"></script>
</head>
<body>
<nav>
  <a href="/support">Служба поддержки</a>
  <a href="/faq">База знаний</a>
  <a href="/career">Вакансии</a>
</nav>
<p>Наша служба поддержки отвечает круглосуточно, 24/7.</p>
<a href="mailto:support@romashka.ru">Напишите нам</a>
<form action="/contact"><input name="msg"><button>Отправить сообщение</button></form>
<a href="https://t.me/romashka">Telegram</a>
</body></html>`

const careerHTML = `<html><body>
<h2>Оператор поддержки (график 2/2)</h2>
<h2>Специалист технической поддержки L2</h2>
<h2>Менеджер по продажам</h2>
<a href="/vacancy/77">Консультант поддержки в чате</a>
<p>сменный график, ночные смены</p>
</body></html>`

func TestExtractFeatures_SupportSignals(t *testing.T) {
	f := ExtractFeatures(homepageHTML, "https://romashka.ru")

	assert.True(t, f.HasSupportSection)
	assert.True(t, f.HasSupportEmail)
	assert.Equal(t, "support@romashka.ru", f.SupportEmail)
	assert.True(t, f.HasOnlineChat)
	assert.Equal(t, "jivo", f.ChatVendor)
	assert.True(t, f.HasMessengers)
	assert.True(t, f.HasKBOrFAQ)
	assert.True(t, f.Mentions24x7)
	assert.True(t, f.HasContactForm)
}

func TestExtractFeatures_LinksResolved(t *testing.T) {
	f := ExtractFeatures(homepageHTML, "https://romashka.ru")

	assert.Equal(t, "https://romashka.ru/support", f.SupportURL)
	assert.Equal(t, "https://romashka.ru/faq", f.KBURL)
	assert.Equal(t, "https://romashka.ru/career", f.JobsURL)
}

func TestExtractFeatures_PlainPage(t *testing.T) {
	f := ExtractFeatures("<html><body><p>Продаём кирпичи оптом</p></body></html>", "https://x.ru")

	assert.False(t, f.HasSupportSection)
	assert.False(t, f.HasOnlineChat)
	assert.False(t, f.Mentions24x7)
	assert.Empty(t, f.SupportEmail)
}

func TestCleanVacancyTitles_FiltersNoise(t *testing.T) {
	titles := cleanVacancyTitles([]string{
		"Оператор поддержки (график 2/2)",
		"Оператор поддержки (график 2/2)",
		"Менеджер по продажам",
		"© 2026 Ромашка, все права защищены",
		"Специалист технической поддержки L2",
		"ок",
	})
	assert.Equal(t, []string{
		"Оператор поддержки (график 2/2)",
		"Специалист технической поддержки L2",
	}, titles)
}

func TestContainsSupportKeyword(t *testing.T) {
	assert.True(t, ContainsSupportKeyword("наша служба поддержки всегда на связи"))
	assert.True(t, ContainsSupportKeyword("customer care center"))
	assert.False(t, ContainsSupportKeyword("продаём кирпичи оптом"))
}

func TestEstimateTeam_DirectMentionOnSupportPage(t *testing.T) {
	f := Features{
		HasSupportSection: true,
		PageText:          "наша служба поддержки из 150 человек отвечает круглосуточно",
	}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.True(t, est.IsLevelA)
	assert.Equal(t, 150, est.TeamSize)
}

func TestEstimateTeam_DirectMentionBounded(t *testing.T) {
	f := Features{
		HasSupportSection: true,
		PageText:          "в команде поддержки работает 9000 человек",
	}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.False(t, est.IsLevelA)
}

func TestEstimateTeam_NoSupportContextNoDirect(t *testing.T) {
	// A headcount on a page without support context is not quoted.
	f := Features{
		PageText: "в компании работает 120 сотрудников, офисы в 14 городах",
	}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.False(t, est.IsLevelA)
	assert.Equal(t, 0, est.TeamSize)
}

func TestEstimateTeam_LevelBVacancies(t *testing.T) {
	scan := CareerScan{
		SiteVacancies: 3,
		JobTitles: []string{
			"Оператор поддержки по телефону",
			"Специалист поддержки в чате",
			"Инженер поддержки L2",
		},
	}
	est := EstimateTeam(Features{}, scan, score.DefaultConfig())
	assert.False(t, est.IsLevelA)
	assert.Equal(t, 10, est.TeamSize)
	assert.Contains(t, est.Evidence, "Level B")
}

func TestEstimateTeam_LevelBRoundTheClock(t *testing.T) {
	f := Features{Mentions24x7: true}
	scan := CareerScan{ShiftWorkMentioned: true}
	est := EstimateTeam(f, scan, score.DefaultConfig())
	assert.Equal(t, 10, est.TeamSize)
	assert.Contains(t, est.Evidence, "round-the-clock")
}

func TestEstimateTeam_24x7WithoutShiftInsufficient(t *testing.T) {
	f := Features{Mentions24x7: true, HasOnlineChat: true}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.Equal(t, 0, est.TeamSize)
	assert.Contains(t, est.Evidence, "insufficient")
}

func TestEstimateTeam_LoadIndicator(t *testing.T) {
	f := Features{FullText: "<p>мы обслуживаем тысячи клиентов по всей стране</p>"}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.Equal(t, 10, est.TeamSize)
	assert.Contains(t, est.Evidence, "high-load indicators (обслуживаем тысячи)")
}

func TestEstimateTeam_KBNoteAppendedWhenQualified(t *testing.T) {
	f := Features{Mentions24x7: true, HasKBOrFAQ: true}
	est := EstimateTeam(f, CareerScan{ShiftWorkMentioned: true}, score.DefaultConfig())
	assert.Equal(t, 10, est.TeamSize)
	assert.Contains(t, est.Evidence, "knowledge base / FAQ")
}

func TestEstimateTeam_KBAloneInsufficient(t *testing.T) {
	f := Features{HasKBOrFAQ: true, HasOnlineChat: true, HasSupportEmail: true}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.Equal(t, 0, est.TeamSize)
	assert.Contains(t, est.Evidence, "insufficient")
}

func TestEstimateTeam_SupportPageDirectMention(t *testing.T) {
	f := Features{
		URL:         "https://acme.ru",
		PageText:    "поддержка клиентов круглосуточно",
		SupportText: "в службе поддержки работает 45 человек",
		SupportURL:  "https://acme.ru/support",
	}
	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.True(t, est.IsLevelA)
	assert.Equal(t, 45, est.TeamSize)
	assert.Equal(t, "https://acme.ru/support", est.EvidenceURL)
}

func TestEstimateTeam_Insufficient(t *testing.T) {
	est := EstimateTeam(Features{}, CareerScan{}, score.DefaultConfig())
	assert.Equal(t, 0, est.TeamSize)
	assert.Contains(t, est.Evidence, "insufficient")
}

func TestProber_AnalyzeAndCareer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(homepageHTML))
		case "/career":
			_, _ = w.Write([]byte(careerHTML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProber(WithRateLimit(1000))
	f, err := p.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, f.HasSupportSection)

	scan, err := p.ScanCareer(context.Background(), srv.URL, f)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/career", scan.JobsURL)
	assert.True(t, scan.ShiftWorkMentioned)
	assert.GreaterOrEqual(t, scan.SiteVacancies, 2)
}

func TestProber_AnalyzeFetchesSupportPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`<html><body>
<a href="/support">Служба поддержки</a>
<p>Поддержка клиентов на связи.</p>
</body></html>`))
		case "/support":
			_, _ = w.Write([]byte(`<html><body>
<p>В службе поддержки работает 45 человек.</p>
</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProber(WithRateLimit(1000))
	f, err := p.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/support", f.SupportURL)
	assert.Contains(t, f.SupportText, "45 человек")

	est := EstimateTeam(f, CareerScan{}, score.DefaultConfig())
	assert.True(t, est.IsLevelA)
	assert.Equal(t, 45, est.TeamSize)
	assert.Equal(t, srv.URL+"/support", est.EvidenceURL)
}

func TestProber_FetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewProber(WithRateLimit(1000))
	_, err := p.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
