// Package hh provides a client for the HeadHunter public API.
package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the HeadHunter operations used by the pipeline.
type Client interface {
	// SearchEmployers looks up employers by name.
	SearchEmployers(ctx context.Context, name string) ([]Employer, error)
	// ListVacancies returns all open vacancies of an employer, paginated.
	ListVacancies(ctx context.Context, employerID string) ([]Vacancy, error)
	// SearchVacancies runs a free-text vacancy search scoped to company names.
	SearchVacancies(ctx context.Context, query string) ([]Vacancy, error)
}

// Employer is an employer record from /employers.
type Employer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	OpenVacancies int    `json:"open_vacancies"`
	AlternateURL  string `json:"alternate_url"`
	SiteURL       string `json:"site_url"`
}

// Vacancy is a vacancy record from /vacancies.
type Vacancy struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Snippet      Snippet  `json:"snippet"`
	AlternateURL string   `json:"alternate_url"`
	Employer     RefModel `json:"employer"`
}

// Snippet carries the highlighted vacancy description fragments.
type Snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// RefModel is a minimal id/name reference embedded in other objects.
type RefModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Text joins the snippet fragments into one classification input.
func (s Snippet) Text() string {
	if s.Requirement == "" {
		return s.Responsibility
	}
	if s.Responsibility == "" {
		return s.Requirement
	}
	return s.Requirement + " " + s.Responsibility
}

type employersPage struct {
	Items []Employer `json:"items"`
	Pages int        `json:"pages"`
	Found int        `json:"found"`
}

type vacanciesPage struct {
	Items []Vacancy `json:"items"`
	Pages int       `json:"pages"`
	Found int       `json:"found"`
}

const (
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "support-radar/1.0 (research@sells-group.io)"
	perPage          = 100

	// maxVacancyPages bounds pagination per employer. 100 vacancies a page
	// is already far beyond what classification needs.
	maxVacancyPages = 5
	maxSearchPages  = 2
)

// Option configures the HeadHunter client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithUserAgent sets the User-Agent header. HeadHunter rejects requests
// without one.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithToken sets an OAuth bearer token for authenticated quota.
func WithToken(token string) Option {
	return func(c *httpClient) { c.token = token }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

type httpClient struct {
	baseURL   string
	userAgent string
	token     string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a HeadHunter API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(4), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchEmployers(ctx context.Context, name string) ([]Employer, error) {
	q := url.Values{}
	q.Set("text", name)
	q.Set("only_with_vacancies", "false")
	q.Set("per_page", strconv.Itoa(perPage))

	var page employersPage
	if err := c.getJSON(ctx, "/employers", q, &page); err != nil {
		return nil, eris.Wrapf(err, "hh: search employers %q", name)
	}
	return page.Items, nil
}

func (c *httpClient) ListVacancies(ctx context.Context, employerID string) ([]Vacancy, error) {
	q := url.Values{}
	q.Set("employer_id", employerID)
	return c.collectVacancies(ctx, q, maxVacancyPages)
}

func (c *httpClient) SearchVacancies(ctx context.Context, query string) ([]Vacancy, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("search_field", "company_name")
	return c.collectVacancies(ctx, q, maxSearchPages)
}

func (c *httpClient) collectVacancies(ctx context.Context, q url.Values, maxPages int) ([]Vacancy, error) {
	q.Set("per_page", strconv.Itoa(perPage))

	var all []Vacancy
	for pageNum := 0; pageNum < maxPages; pageNum++ {
		q.Set("page", strconv.Itoa(pageNum))

		var page vacanciesPage
		if err := c.getJSON(ctx, "/vacancies", q, &page); err != nil {
			return nil, eris.Wrap(err, "hh: list vacancies")
		}
		all = append(all, page.Items...)

		if pageNum+1 >= page.Pages || len(page.Items) == 0 {
			break
		}
	}
	return all, nil
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "hh: rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return eris.Wrap(err, "hh: create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return eris.Wrap(lastErr, "hh: request failed")
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return eris.Wrap(readErr, "hh: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("hh: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return eris.Errorf("hh: unexpected status %d: %s", resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return eris.Wrap(err, "hh: unmarshal response")
		}
		return nil
	}

	return eris.Wrap(lastErr, "hh: request failed")
}
