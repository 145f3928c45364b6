package hh

import (
	"context"
	"strings"
	"sync"
)

// Cache wraps a Client with run-scoped memoization. Candidate lists often
// repeat company names, and duplicate lookups burn API quota.
type Cache struct {
	client Client

	mu        sync.Mutex
	employers map[string][]Employer
	vacancies map[string][]Vacancy
}

// NewCache creates a memoizing wrapper around c.
func NewCache(c Client) *Cache {
	return &Cache{
		client:    c,
		employers: make(map[string][]Employer),
		vacancies: make(map[string][]Vacancy),
	}
}

func (c *Cache) SearchEmployers(ctx context.Context, name string) ([]Employer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	c.mu.Lock()
	cached, ok := c.employers[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	items, err := c.client.SearchEmployers(ctx, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.employers[key] = items
	c.mu.Unlock()
	return items, nil
}

func (c *Cache) ListVacancies(ctx context.Context, employerID string) ([]Vacancy, error) {
	key := "employer:" + employerID
	c.mu.Lock()
	cached, ok := c.vacancies[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	items, err := c.client.ListVacancies(ctx, employerID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.vacancies[key] = items
	c.mu.Unlock()
	return items, nil
}

func (c *Cache) SearchVacancies(ctx context.Context, query string) ([]Vacancy, error) {
	key := "search:" + strings.ToLower(strings.TrimSpace(query))
	c.mu.Lock()
	cached, ok := c.vacancies[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	items, err := c.client.SearchVacancies(ctx, query)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.vacancies[key] = items
	c.mu.Unlock()
	return items, nil
}
