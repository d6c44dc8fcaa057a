package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// BrasilAPIClient resolves national holidays through the BrasilAPI feriados
// endpoint, caching each year after the first successful fetch.
type BrasilAPIClient struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[int]map[string]struct{}
}

func NewBrasilAPIClient(baseURL string) *BrasilAPIClient {
	return &BrasilAPIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   make(map[int]map[string]struct{}),
	}
}

func (c *BrasilAPIClient) IsHoliday(d time.Time) (bool, error) {
	days, err := c.holidaysForYear(d.Year())
	if err != nil {
		return false, err
	}
	_, ok := days[d.Format(time.DateOnly)]
	return ok, nil
}

func (c *BrasilAPIClient) holidaysForYear(year int) (map[string]struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if days, ok := c.cache[year]; ok {
		return days, nil
	}

	resp, err := c.client.Get(fmt.Sprintf("%s/%d", c.baseURL, year))
	if err != nil {
		return nil, fmt.Errorf("fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch holidays for %d: unexpected status %d", year, resp.StatusCode)
	}

	var holidays []struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decode holidays for %d: %w", year, err)
	}

	days := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		days[h.Date] = struct{}{}
	}
	c.cache[year] = days
	return days, nil
}
