// Package tools holds the external tool adapters: Open-Meteo for forecasts
// and Frankfurter for exchange rates. Both return the compact structured
// results the core treats as its numeric source of truth.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

const (
	openMeteoGeoURL      = "https://geocoding-api.open-meteo.com/v1/search"
	openMeteoForecastURL = "https://api.open-meteo.com/v1/forecast"
)

type WeatherClient struct {
	httpClient  *http.Client
	geoURL      string
	forecastURL string
	horizonDays int
	now         func() time.Time
}

func NewWeatherClient(httpClient *http.Client, horizonDays int) *WeatherClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if horizonDays <= 0 {
		horizonDays = 16
	}
	return &WeatherClient{
		httpClient:  httpClient,
		geoURL:      openMeteoGeoURL,
		forecastURL: openMeteoForecastURL,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// WithBaseURLs overrides the endpoints, for tests.
func (c *WeatherClient) WithBaseURLs(geoURL, forecastURL string) *WeatherClient {
	c.geoURL = geoURL
	c.forecastURL = forecastURL
	return c
}

type geoResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geoResponse struct {
	Results []geoResult `json:"results"`
}

type forecastResponse struct {
	Timezone string `json:"timezone"`
	Daily    struct {
		Time    []string   `json:"time"`
		TempMax []*float64 `json:"temperature_2m_max"`
		TempMin []*float64 `json:"temperature_2m_min"`
		Precip  []*float64 `json:"precipitation_sum"`
		WindMax []*float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// Forecast implements domain.WeatherTool. No dates counts as "today"; the
// report's first day is the first day of the requested range.
func (c *WeatherClient) Forecast(ctx context.Context, trip domain.TripProfile) (*domain.WeatherReport, error) {
	if trip.Destination == "" {
		return nil, fmt.Errorf("missing destination")
	}

	today := c.now()
	start := today
	if trip.StartDate != nil {
		start = *trip.StartDate
	}
	end := start
	if trip.EndDate != nil {
		end = *trip.EndDate
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days <= 0 {
		return nil, fmt.Errorf("invalid date range")
	}
	// Safety net on the provider horizon; routing should have caught this.
	if days > c.horizonDays {
		return nil, fmt.Errorf("forecast range too long (provider forecasts up to ~%d days)", c.horizonDays)
	}

	geo, err := c.geocode(ctx, trip.Destination)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", geo.Latitude))
	q.Set("longitude", fmt.Sprintf("%g", geo.Longitude))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max")
	q.Set("timezone", "auto")
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))

	var payload forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("open-meteo forecast: %w", err)
	}
	if len(payload.Daily.Time) == 0 {
		return nil, fmt.Errorf("no daily forecast returned")
	}

	location := geo.Name
	if geo.Country != "" {
		location = geo.Name + ", " + geo.Country
	}

	report := &domain.WeatherReport{
		Source:    "open-meteo",
		Location:  location,
		Timeframe: fmt.Sprintf("%s (local timezone: %s)", payload.Daily.Time[0], payload.Timezone),
		Today: domain.WeatherDay{
			TempMinC:   first(payload.Daily.TempMin),
			TempMaxC:   first(payload.Daily.TempMax),
			PrecipMM:   first(payload.Daily.Precip),
			WindMaxKMH: first(payload.Daily.WindMax),
		},
	}
	return report, nil
}

func (c *WeatherClient) geocode(ctx context.Context, name string) (*geoResult, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var payload geoResponse
	if err := c.getJSON(ctx, c.geoURL+"?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("open-meteo geocoding: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("could not geocode %q", name)
	}
	return &payload.Results[0], nil
}

func (c *WeatherClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func first(vals []*float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}
