package sitescan

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; support-radar/1.0)"
	maxBodyBytes     = 4 << 20
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Prober fetches and analyzes company pages. One instance is shared by
// the site analyzer workers; the limiter throttles the whole run.
type Prober struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) ProberOption {
	return func(p *Prober) { p.client = c }
}

// WithUserAgent overrides the request User-Agent.
func WithUserAgent(ua string) ProberOption {
	return func(p *Prober) { p.userAgent = ua }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) ProberOption {
	return func(p *Prober) { p.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// NewProber builds a Prober with a browsing-friendly HTTP client.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter:   rate.NewLimiter(rate.Limit(2), 1),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch retrieves a page body as a string. Non-2xx statuses are errors.
func (p *Prober) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "sitescan: rate limiter")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", eris.Wrapf(err, "sitescan: build request for %s", pageURL)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept-Language", "ru,en;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "sitescan: fetch %s", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", eris.Errorf("sitescan: fetch %s: status %d", pageURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", eris.Wrapf(err, "sitescan: read body of %s", pageURL)
	}
	return string(body), nil
}

// Analyze fetches the site homepage and extracts support signals from it.
// When the homepage links a dedicated support section, its text is fetched
// too so headcount statements made only there are not missed.
func (p *Prober) Analyze(ctx context.Context, siteURL string) (Features, error) {
	html, err := p.Fetch(ctx, siteURL)
	if err != nil {
		return Features{}, err
	}
	f := ExtractFeatures(html, siteURL)
	if f.SupportURL != "" && f.SupportURL != siteURL {
		text, err := p.FetchText(ctx, f.SupportURL)
		if err != nil {
			zap.L().Debug("support page fetch failed",
				zap.String("url", f.SupportURL),
				zap.Error(err))
		} else {
			f.SupportText = text
		}
	}
	zap.L().Debug("analyzed site",
		zap.String("url", siteURL),
		zap.Bool("support_section", f.HasSupportSection),
		zap.Bool("chat", f.HasOnlineChat))
	return f, nil
}

// FetchText retrieves a page and returns its visible text, lowercased.
func (p *Prober) FetchText(ctx context.Context, pageURL string) (string, error) {
	html, err := p.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.ToLower(html), nil
	}
	doc.Find("script, style, noscript").Each(func(_ int, sel *goquery.Selection) {
		sel.Remove()
	})
	return strings.ToLower(normalizeSpace(doc.Text())), nil
}

// ExtractFeatures parses page HTML and pulls out every support signal the
// heuristic estimator cares about. Parse failures degrade to a text-only
// scan rather than failing the company.
func ExtractFeatures(html, pageURL string) Features {
	lowerHTML := strings.ToLower(html)
	f := Features{URL: pageURL, FullText: lowerHTML}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("html parse failed, scanning raw text", zap.String("url", pageURL))
		f.PageText = lowerHTML
		f.scanText(lowerHTML, lowerHTML)
		return f
	}

	doc.Find("script, style, noscript").Each(func(_ int, sel *goquery.Selection) {
		sel.Remove()
	})
	pageText := strings.ToLower(normalizeSpace(doc.Text()))
	f.PageText = pageText

	f.collectEmails(doc, lowerHTML)
	f.collectLinks(doc, pageURL)
	f.HasContactForm = doc.Find("form").Length() > 0 &&
		(strings.Contains(pageText, "обратн") || strings.Contains(pageText, "связ") ||
			strings.Contains(pageText, "contact") || strings.Contains(pageText, "сообщение"))

	f.scanText(pageText, lowerHTML)
	return f
}

func (f *Features) scanText(pageText, rawHTML string) {
	if !f.HasSupportSection {
		f.HasSupportSection = ContainsSupportKeyword(pageText)
	}
	for _, m := range messengers {
		if strings.Contains(rawHTML, m) {
			f.HasMessengers = true
			break
		}
	}
	for _, c := range chatIndicators {
		if strings.Contains(rawHTML, c) {
			f.HasOnlineChat = true
			f.ChatVendor = c
			break
		}
	}
	if !f.HasKBOrFAQ {
		for _, kw := range faqKeywords {
			if strings.Contains(pageText, kw) {
				f.HasKBOrFAQ = true
				break
			}
		}
	}
	f.Mentions24x7 = strings.Contains(pageText, "24/7") ||
		strings.Contains(pageText, "24×7") ||
		strings.Contains(pageText, "круглосуточно") ||
		strings.Contains(pageText, "24 часа")
}

func (f *Features) collectEmails(doc *goquery.Document, rawHTML string) {
	var all []string
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			all = append(all, strings.ToLower(addr))
		}
	})
	all = append(all, emailRe.FindAllString(rawHTML, -1)...)

	for _, addr := range all {
		local := strings.ToLower(addr)
		if strings.HasPrefix(local, "support@") || strings.HasPrefix(local, "help@") ||
			strings.HasPrefix(local, "care@") || strings.HasPrefix(local, "service@") {
			f.SupportEmail = local
			f.HasSupportEmail = true
			return
		}
	}
	for _, addr := range all {
		if strings.Contains(addr, "@") && !strings.Contains(addr, "example") {
			f.SupportEmail = strings.ToLower(addr)
			return
		}
	}
}

func (f *Features) collectLinks(doc *goquery.Document, pageURL string) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.ToLower(normalizeSpace(sel.Text()))
		hrefLower := strings.ToLower(href)
		if hrefLower == "" || strings.HasPrefix(hrefLower, "javascript:") ||
			strings.HasPrefix(hrefLower, "mailto:") || strings.HasPrefix(hrefLower, "tel:") {
			return
		}
		if f.SupportURL == "" && (matchesAnyKeyword(text, supportKeywords) || matchesAnyKeyword(hrefLower, supportKeywords)) {
			f.SupportURL = absoluteURL(pageURL, href)
			f.HasSupportSection = true
		}
		if f.KBURL == "" && (matchesAnyKeyword(text, faqKeywords) || matchesAnyKeyword(hrefLower, faqKeywords)) {
			f.KBURL = absoluteURL(pageURL, href)
			f.HasKBOrFAQ = true
		}
		if f.JobsURL == "" && (matchesAnyKeyword(text, jobKeywords) || matchesAnyKeyword(hrefLower, jobKeywords)) {
			f.JobsURL = absoluteURL(pageURL, href)
		}
	})
}

func matchesAnyKeyword(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func absoluteURL(base, href string) string {
	bu, err := url.Parse(base)
	if err != nil {
		return href
	}
	hu, err := url.Parse(href)
	if err != nil {
		return href
	}
	return bu.ResolveReference(hu).String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), sub)
}
