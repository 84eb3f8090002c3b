package trust

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestApplyPassesCleanText(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentAttractions,
		Text:        "The Colosseum and the Vatican Museums are must-sees.",
		UserMessage: "what should I see in Rome?",
	})
	assert.False(t, res.Flagged)
	assert.Equal(t, "The Colosseum and the Vatican Museums are must-sees.", res.Text)
}

func TestApplyStripsToolCodeLeak(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentAttractions,
		Text:        "Here you go:\n```tool_code\nweather(city=\"Rome\")\n```",
		UserMessage: "attractions in Rome",
	})
	assert.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonToolCodeLeak)
	assert.NotContains(t, res.Text, "```")
}

func TestApplySoftensRealtimeClaims(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentAttractions,
		Text:        "I just checked and the museum is open.",
		UserMessage: "is the museum open?",
	})
	assert.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonRealtimeClaim)
	assert.NotContains(t, strings.ToLower(res.Text), "i just checked")
	assert.Contains(t, res.Text, "based on available info")
}

func TestApplyWeatherNumbersWithoutToolRewritten(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentWeatherQuery,
		Text:        "Tomorrow expect a high of 31°C and 5 mm of rain.",
		UserMessage: "weather in Rome tomorrow",
	})
	require.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonWeatherNumbersNoTool)
	assert.NotContains(t, res.Text, "31")
}

func TestApplyWeatherNumbersWithToolDataKept(t *testing.T) {
	toolData := &domain.ToolData{Weather: &domain.WeatherReport{
		Source:   "open-meteo",
		Location: "Rome, Italy",
		Today:    domain.WeatherDay{TempMinC: floatPtr(18), TempMaxC: floatPtr(31)},
	}}
	res := Apply(Input{
		Intent:      domain.IntentWeatherQuery,
		Text:        "Tomorrow expect a high of 31°C in Rome.",
		UserMessage: "weather in Rome tomorrow",
		ToolData:    toolData,
	})
	assert.False(t, res.Flagged)
	assert.Contains(t, res.Text, "31")
}

func TestApplySeasonalHedgingNotFlagged(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentWeatherQuery,
		Text:        "January in Rome is typically mild, with average highs around 12°C.",
		UserMessage: "what's the weather like in January?",
	})
	assert.False(t, res.Flagged, "seasonal hedged guidance is allowed without tool data")
}

func TestApplyExactDailyRequestWithoutTool(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentWeatherQuery,
		Text:        "Here are the daily highs: 31, 32, 30.",
		UserMessage: "give me exact daily highs for each day in March",
	})
	require.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonExactDailyWithoutTool)
	assert.NotContains(t, res.Text, "31")
}

func TestApplyLiveWeatherRequestQuotesForecast(t *testing.T) {
	toolData := &domain.ToolData{Weather: &domain.WeatherReport{
		Location:  "Paris, France",
		Timeframe: "2026-09-01 (local timezone: Europe/Paris)",
		Today:     domain.WeatherDay{TempMinC: floatPtr(14), TempMaxC: floatPtr(22)},
	}}
	res := Apply(Input{
		Intent:      domain.IntentWeatherQuery,
		Text:        "It is 21.4°C right now in Paris.",
		UserMessage: "what's the temperature right now?",
		ToolData:    toolData,
	})
	require.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonLiveWeatherRequest)
	assert.Contains(t, res.Text, "Paris, France")
	assert.Contains(t, res.Text, "low 14")
}

func TestApplyCurrencyNumbersWithoutToolRewritten(t *testing.T) {
	res := Apply(Input{
		Intent:      domain.IntentCurrencyConversion,
		Text:        "The rate is 0.84, so 100 USD converts to 84.00 EUR.",
		UserMessage: "convert 100 usd to eur",
	})
	require.True(t, res.Flagged)
	assert.Contains(t, res.Reasons, ReasonCurrencyNumbersNoTool)
	assert.NotContains(t, res.Text, "0.84")
}

func TestApplyCurrencyNumbersWithToolDataKept(t *testing.T) {
	toolData := &domain.ToolData{Currency: &domain.CurrencyConversion{
		Source: "frankfurter", Date: "2026-08-28", Base: "USD", To: "EUR",
		Rate: 0.84, Amount: 100, ConvertedAmount: 84,
	}}
	res := Apply(Input{
		Intent:      domain.IntentCurrencyConversion,
		Text:        "Based on data from 2026-08-28, 100 USD converts to 84.00 EUR at a rate of 0.84.",
		UserMessage: "convert 100 usd to eur",
		ToolData:    toolData,
	})
	assert.False(t, res.Flagged)
	assert.Contains(t, res.Text, "84.00 EUR")
}

func TestApplyEmptyText(t *testing.T) {
	res := Apply(Input{Intent: domain.IntentWeatherQuery, Text: "   "})
	assert.False(t, res.Flagged)
	assert.Empty(t, res.Text)
}
