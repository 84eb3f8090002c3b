package trust

import (
	"fmt"
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// safeWeatherWithoutTool is the fixed horizon disclaimer used whenever exact
// or live weather figures were requested (or emitted) with no tool data.
func safeWeatherWithoutTool(userMessage string) string {
	u := strings.ToLower(userMessage)

	for _, k := range []string{"right now", "live", "currently", "today"} {
		if strings.Contains(u, k) {
			return "I can't guarantee a *live* weather reading without calling the weather API.\n\n" +
				"If you confirm the city (e.g., Paris) I can fetch today's forecast from the tool, " +
				"or I can give seasonal guidance if you're planning ahead."
		}
	}

	monthsAndSeasons := []string{
		"in january", "in february", "in march", "in april", "in may",
		"in june", "in july", "in august", "in september", "in october",
		"in november", "in december", "this winter", "this summer", "season",
	}
	for _, k := range monthsAndSeasons {
		if strings.Contains(u, k) {
			return "I can't provide exact day-by-day numbers that far in advance. Forecasts are typically reliable only up to ~16 days ahead.\n\n" +
				"If you want, tell me your rough dates or how sensitive you are to rain/cold, and I'll give seasonal expectations + a packing list."
		}
	}

	return "I can't fetch an exact forecast for that date right now (forecasts are typically only available/reliable up to ~16 days ahead).\n\n" +
		"If you share your dates (or even just the month), I can give seasonal expectations and packing advice."
}

// safeLiveWeatherResponse answers "live reading" requests honestly: the tool
// provides a forecast, not an observed reading, so the forecast range is
// quoted when available.
func safeLiveWeatherResponse(report *domain.WeatherReport) string {
	if report == nil {
		return "I can't guarantee a *live right-now* weather reading without calling the weather API.\n\n" +
			"If you confirm the city (e.g., Paris) I can fetch today's forecast from the tool."
	}

	loc := report.Location
	if loc == "" {
		loc = "that city"
	}
	timeframe := report.Timeframe
	if timeframe == "" {
		timeframe = "today"
	}

	parts := []string{
		"I can't guarantee a *live right-now* temperature reading to 0.1°C.",
		fmt.Sprintf("What I *can* fetch is today's forecast summary for %s (%s).", loc, timeframe),
	}

	day := report.Today
	if day.TempMinC != nil && day.TempMaxC != nil {
		parts = append(parts, fmt.Sprintf("Today's forecast range: low %g°C, high %g°C.", *day.TempMinC, *day.TempMaxC))
	}
	if day.PrecipMM != nil {
		parts = append(parts, fmt.Sprintf("Forecast precipitation: %g mm.", *day.PrecipMM))
	}

	parts = append(parts, "If you still need *current observed temperature*, use a live weather app/station feed.")
	return strings.Join(parts, "\n\n")
}

func safeCurrencyWithoutTool() string {
	return "I can help convert currency, but I couldn't fetch a live exchange rate right now.\n" +
		"Please send it like: **“100 USD to EUR”** (amount + from + to)."
}
