package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

const frankfurterBaseURL = "https://api.frankfurter.dev/v1"

type CurrencyClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewCurrencyClient(httpClient *http.Client) *CurrencyClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &CurrencyClient{httpClient: httpClient, baseURL: frankfurterBaseURL}
}

// WithBaseURL overrides the endpoint, for tests.
func (c *CurrencyClient) WithBaseURL(baseURL string) *CurrencyClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type latestResponse struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Convert implements domain.CurrencyTool against the Frankfurter /latest
// endpoint.
func (c *CurrencyClient) Convert(ctx context.Context, amount float64, from, to string) (*domain.CurrencyConversion, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, fmt.Errorf("missing currency codes")
	}

	q := url.Values{}
	q.Set("base", from)
	q.Set("symbols", to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("frankfurter request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("frankfurter: unexpected status %d", res.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("frankfurter: bad payload: %w", err)
	}

	rate, ok := payload.Rates[to]
	if !ok {
		return nil, fmt.Errorf("frankfurter: no rate returned for %s", to)
	}

	base := payload.Base
	if base == "" {
		base = from
	}

	return &domain.CurrencyConversion{
		Source:          "frankfurter",
		Date:            payload.Date,
		Base:            base,
		To:              to,
		Rate:            rate,
		Amount:          amount,
		ConvertedAmount: amount * rate,
	}, nil
}
