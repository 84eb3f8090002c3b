// Package trust is the post-generation safety filter. It rewrites assistant
// text that makes unverifiable numeric or real-time claims, especially for
// weather and currency answers produced without tool data. It is a pure
// function of (text, attached tool data, intent, original user message) and
// never needs network access.
package trust

import (
	"regexp"
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// Reason tags, one per rewrite rule.
const (
	ReasonToolCodeLeak          = "tool_code_leak"
	ReasonRealtimeClaim         = "realtime_claim"
	ReasonExactDailyWithoutTool = "exact_daily_weather_without_tool"
	ReasonLiveWeatherRequest    = "live_weather_request"
	ReasonWeatherNumbersNoTool  = "weather_numbers_without_tool"
	ReasonCurrencyNumbersNoTool = "currency_numbers_without_tool"
)

// Result is the filter's verdict: the sanitized text plus the reasons of
// every rule that fired.
type Result struct {
	Text    string
	Flagged bool
	Reasons []string
}

// Input is everything the filter may inspect.
type Input struct {
	Intent      domain.Intent
	Text        string
	UserMessage string
	ToolData    *domain.ToolData
}

var realtimeClaims = []string{
	"real-time",
	"live data",
	"right now",
	"currently",
	"as of now",
	"i just checked",
	"i checked online",
	"i looked it up",
	"from the internet",
	"according to google",
}

var forecastNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`\b-?\d{1,2}\s*°\s*c\b`),
	regexp.MustCompile(`\b-?\d{1,3}\s*°\s*f\b`),
	regexp.MustCompile(`\b\d{1,3}\s*mm\b`),
	regexp.MustCompile(`\b\d{1,3}\s*km/h\b`),
	regexp.MustCompile(`\b\d{1,3}\s*kmh\b`),
	regexp.MustCompile(`\bhighs?\s+of\s+\d{1,2}\b`),
	regexp.MustCompile(`\blows?\s+of\s+\d{1,2}\b`),
}

var currencyNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brate\s+of\s+\d+(\.\d+)?\b`),
	regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(usd|eur|ils|gbp|jpy)\b`),
	regexp.MustCompile(`(?i)\b(usd|eur|ils|gbp|jpy)\s*\d+(\.\d+)?\b`),
	regexp.MustCompile(`[$€₪]\s*\d+(\.\d+)?`),
	regexp.MustCompile(`(?i)\bconverts\s+to\s+\d+(\.\d+)?\b`),
	regexp.MustCompile(`(?i)\bexchange\s+rate\b.*\d`),
}

// Apply runs the rewrite stages in order: tool-code stripping, real-time-claim
// softening, weather specificity rules, then currency number rules.
func Apply(in Input) Result {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Result{Text: text}
	}

	var reasons []string
	hasToolData := !in.ToolData.Empty()

	if looksLikeToolCode(text) {
		reasons = append(reasons, ReasonToolCodeLeak)
		text = stripToolCodeFences(text)
	}

	low := strings.ToLower(text)
	realtimeHit := false
	for _, claim := range realtimeClaims {
		if strings.Contains(low, claim) {
			realtimeHit = true
			break
		}
	}
	if realtimeHit && !(in.Intent == domain.IntentWeatherQuery && userRequestedLive(in.UserMessage)) {
		reasons = append(reasons, ReasonRealtimeClaim)
		text = softenRealtimeClaims(text)
	}

	if in.Intent == domain.IntentWeatherQuery {
		switch {
		case !hasToolData && userRequestedExactDaily(in.UserMessage):
			reasons = append(reasons, ReasonExactDailyWithoutTool)
			text = safeWeatherWithoutTool(in.UserMessage)

		case userRequestedLive(in.UserMessage):
			reasons = append(reasons, ReasonLiveWeatherRequest)
			var report *domain.WeatherReport
			if in.ToolData != nil {
				report = in.ToolData.Weather
			}
			text = safeLiveWeatherResponse(report)

		case !hasToolData && containsSpecificForecastNumbers(text, in.UserMessage):
			reasons = append(reasons, ReasonWeatherNumbersNoTool)
			text = safeWeatherWithoutTool(in.UserMessage)
		}
	}

	if in.Intent == domain.IntentCurrencyConversion && !hasToolData {
		if containsCurrencyNumbers(text) {
			reasons = append(reasons, ReasonCurrencyNumbersNoTool)
			text = safeCurrencyWithoutTool()
		}
	}

	return Result{Text: text, Flagged: len(reasons) > 0, Reasons: reasons}
}

func looksLikeToolCode(text string) bool {
	low := strings.ToLower(text)
	return strings.Contains(low, "```tool_code") ||
		strings.Contains(low, "currency_conversion(") ||
		strings.Contains(low, "weather(") ||
		strings.Contains(low, "invoke-restmethod")
}

func stripToolCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```tool_code", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func softenRealtimeClaims(text string) string {
	for _, claim := range realtimeClaims {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(claim))
		text = re.ReplaceAllString(text, "based on available info")
	}
	return strings.TrimSpace(text)
}

var seasonalMarkers = []string{
	"typical", "usually", "generally", "on average", "average", "around",
	"roughly", "expect average", "seasonal", "in general", "often",
	"range of", "ranges from", "between",
}

var specificRequestMarkers = []string{
	"exact", "daily", "each day", "day-by-day", "right now", "live",
	"currently", "today", "tomorrow", "on ",
}

var forecastClaimMarkers = []string{
	"on ", "tomorrow", "today", "this weekend", "next week",
	"expect a high of", "expect a low of",
}

// containsSpecificForecastNumbers detects forecast-looking numeric claims
// (°C, mm, wind) too specific for seasonal guidance. Explicit seasonal
// hedging in the text skips the check unless the user demanded exact daily
// numbers.
func containsSpecificForecastNumbers(text, userMessage string) bool {
	low := strings.ToLower(text)
	userLow := strings.ToLower(userMessage)

	for _, m := range seasonalMarkers {
		if strings.Contains(low, m) && !userRequestedExactDaily(userMessage) {
			return false
		}
	}

	strict := false
	for _, m := range specificRequestMarkers {
		if strings.Contains(userLow, m) {
			strict = true
			break
		}
	}

	hasNumbers := false
	for _, re := range forecastNumberRes {
		if re.MatchString(low) {
			hasNumbers = true
			break
		}
	}

	soundsLikeForecast := false
	for _, m := range forecastClaimMarkers {
		if strings.Contains(low, m) {
			soundsLikeForecast = true
			break
		}
	}

	return hasNumbers && (strict || soundsLikeForecast)
}

func containsCurrencyNumbers(text string) bool {
	if text == "" {
		return false
	}
	low := strings.ToLower(text)
	for _, re := range currencyNumberRes {
		if re.MatchString(low) {
			return true
		}
	}
	return false
}

func userRequestedExactDaily(userMessage string) bool {
	u := strings.ToLower(userMessage)
	triggers := []string{
		"exact daily", "day-by-day", "day by day", "each day", "every day",
		"for each day", "daily highs", "daily lows",
		"precipitation in mm for each day", "exact highs", "exact lows",
		"exact precipitation",
	}
	for _, t := range triggers {
		if strings.Contains(u, t) {
			return true
		}
	}
	return false
}

func userRequestedLive(userMessage string) bool {
	u := strings.ToLower(userMessage)
	triggers := []string{"right now", "live", "currently", "as of now", "exact temperature", "0.1"}
	for _, t := range triggers {
		if strings.Contains(u, t) {
			return true
		}
	}
	return false
}
