package prompts

import (
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

const weatherPolicy = `WEATHER RESPONSE POLICY (MUST FOLLOW):
- If WEATHER_TOOL_DATA is provided:
  - Use ONLY that tool data for ALL numeric values (temp, precip, wind).
  - Only talk about the date(s) present in WEATHER_TOOL_DATA.
  - Do NOT claim you have data for other dates.
  - If the user asked about a different date/range than the tool returned,
    explain briefly the limitation and then give general seasonal guidance.
  - If the user asks for "right now" / "current" temperature:
    - Do NOT claim a live observed temperature.
    - Provide today's forecast range for the location/date in WEATHER_TOOL_DATA.
    - Label it clearly as a forecast (not a live sensor reading).

- If WEATHER_TOOL_DATA is NOT provided:
  - Do NOT invent forecasts or numeric values for a specific day.
  - Provide general/seasonal expectations only (typical ranges + packing advice).
  - Be transparent that you can't fetch a specific forecast for that date/range.
  - If the user asked about a specific date/range beyond the next ~16 days,
    explicitly say forecasts are typically available only up to ~16 days ahead.
  - If the user phrased it as "usually/typical/around this time of year", do NOT ask for dates — answer seasonally.`

const attractionsPolicy = `ATTRACTIONS RESPONSE POLICY (MUST FOLLOW):
- If destination is present:
  - ALWAYS provide a starter set of attractions FIRST (at least 8-12 items).
  - Group them by theme (e.g., "Top sights", "Neighborhoods", "Museums", "Food/markets", "Views & parks").
  - Only AFTER the list, you MAY ask ONE optional follow-up question to personalize.
  - Do NOT ask for interests as a prerequisite when destination is already known.
- If destination is missing:
  - Ask ONE clarification question: "Which city/country are you visiting?"`

const packingPolicy = `PACKING RESPONSE POLICY (MUST FOLLOW):
- If destination is present:
  - ALWAYS provide a starter packing list FIRST (do not block on missing dates/season).
  - If dates/season are missing, assume a moderate baseline (layers + a light rain option) and keep it generic.
  - AFTER the list, you MAY ask ONE optional follow-up question to refine.
- If destination is missing:
  - Ask ONE clarification question: "Which city/country are you visiting?"`

const currencyPolicy = `CURRENCY RESPONSE POLICY (MUST FOLLOW):
- If CURRENCY_TOOL_DATA is provided:
  - Use ONLY that tool data for numeric values (rate, converted_amount).
  - Mention the rate date if present.
- If CURRENCY_TOOL_DATA is NOT provided:
  - Do NOT invent an exchange rate.
  - Ask ONE clarification OR explain that rates could not be fetched.`

const internalScaffold = `INTERNAL STEPS (DO NOT OUTPUT):
1) Identify the user's goal from intent and the latest message.
2) Check trip context + any tool data; list what's missing mentally.
3) Decide: use tool data only for numbers; if no tool data, avoid exact forecasts/rates.
4) Generate the best helpful travel answer for this intent.
5) Self-check: comply with policies + output rules; output ONLY the final answer.`

const seasonalWeatherTemplate = `SEASONAL WEATHER OUTPUT TEMPLATE (MUST FOLLOW):
- Do NOT ask for dates.
- Do NOT ask "Would you like that?" — just answer.
- Do NOT give exact daily forecast numbers.
- Give a concrete, helpful seasonal summary using this structure:

1) One-line summary: "Around this time of year in {destination}, expect: ____."
2) Typical temperature feel (no day-by-day): mention "cool/mild" + "mornings/evenings cooler".
   - You MAY include a broad range like "single digits to low teens °C" but avoid exact decimal precision.
3) Rain/wind: "showers possible" + "breezy evenings" style phrasing.
4) What to pack (bullets): light jacket, layers, closed shoes, compact umbrella/rain shell.
5) One practical tip (e.g., plan indoor museum time if it rains).`

// Response builds the generation prompt for one turn: trip context, per-intent
// policy, optional tool data as source of truth, and the output rules.
// forceSeasonal is set when weather routing downgraded a seasonal question.
func Response(intent domain.Intent, trip domain.TripProfile, recent []domain.Message, toolData *domain.ToolData, forceSeasonal bool) string {
	var b strings.Builder

	b.WriteString("User intent: ")
	b.WriteString(string(intent))
	b.WriteString("\n\nTrip context (source of truth):\n")
	b.WriteString(marshalCompact(newTripContext(trip)))

	hasToolData := !toolData.Empty()

	if intent == domain.IntentWeatherQuery && !hasToolData {
		if trip.StartDate != nil || trip.EndDate != nil {
			b.WriteString("\n\nHINT (WEATHER): The user asked about a specific date/range, but WEATHER_TOOL_DATA is missing. " +
				"This usually means the requested date is beyond the forecast horizon (~16 days) OR the tool failed. " +
				"In your answer: briefly mention the ~16-day forecast limit, then provide seasonal expectations " +
				"(typical ranges) and practical packing advice. Do NOT invent daily forecast numbers.")
		} else if forceSeasonal {
			b.WriteString("\n\nHINT (WEATHER): This is a SEASONAL question (e.g., 'usually', 'typical', 'around this time of year'). " +
				"Do NOT ask for dates. Treat it as 'this time of year' and answer with general seasonal expectations " +
				"(typical ranges + rain/wind pattern) and practical packing advice. Do NOT give exact daily highs/lows.")
		}
		if forceSeasonal {
			b.WriteString("\n\n")
			b.WriteString(seasonalWeatherTemplate)
		}
	}

	switch intent {
	case domain.IntentWeatherQuery:
		b.WriteString("\n\n")
		b.WriteString(weatherPolicy)
	case domain.IntentAttractions:
		b.WriteString("\n\n")
		b.WriteString(attractionsPolicy)
	case domain.IntentPackingList:
		b.WriteString("\n\n")
		b.WriteString(packingPolicy)
	case domain.IntentCurrencyConversion:
		b.WriteString("\n\n")
		b.WriteString(currencyPolicy)
	}

	if hasToolData {
		label := "TOOL_DATA"
		var payload any = toolData
		switch {
		case toolData.Weather != nil:
			label = "WEATHER_TOOL_DATA (SOURCE OF TRUTH)"
			payload = toolData.Weather
		case toolData.Currency != nil:
			label = "CURRENCY_TOOL_DATA (SOURCE OF TRUTH)"
			payload = toolData.Currency
		}
		b.WriteString("\n\n")
		b.WriteString(label)
		b.WriteString(":\n")
		b.WriteString(marshalCompact(payload))
	}

	b.WriteString("\n\n")
	b.WriteString(internalScaffold)
	b.WriteString(`

STRICT OUTPUT RULES:
- Output ONLY the final answer to the user.
- Do NOT include preambles like "Okay…", "I will…", "The user wants…".
- Do NOT describe your reasoning.
- No analysis, no internal notes.
- Do NOT output JSON.
- Do NOT output tool code blocks.

Task:
Generate a helpful travel response for the user based on the intent and trip context.
If key info is missing, ask at most ONE short clarification question.`)

	b.WriteString(historyBlock(recent))

	return b.String()
}
