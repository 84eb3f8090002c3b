package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

var allIntents = []domain.Intent{
	domain.IntentItineraryPlanning,
	domain.IntentAttractions,
	domain.IntentPackingList,
	domain.IntentWeatherQuery,
	domain.IntentCurrencyConversion,
	domain.IntentConstraintsUpdate,
	domain.IntentClarificationNeeded,
	domain.IntentOutOfScope,
}

// Intent builds the strict classification+extraction prompt. It teaches the
// model a rigid single-JSON-object contract, the date normalization rules, and
// the pending-clarification behavior for mid-flow answers.
func Intent(userMessage string, recent []domain.Message, pending []string, today time.Time) string {
	todayISO := today.Format("2006-01-02")

	intentNames := make([]string, 0, len(allIntents))
	for _, i := range allIntents {
		intentNames = append(intentNames, string(i))
	}

	goodExample := fmt.Sprintf(`{"intent":"weather_query","confidence":0.9,"extracted_updates":{"destination":"Rome","start_date":%q,"end_date":null,"duration_days":null,"budget":null,"travelers":null,"interests":[],"pace":null,"constraints":[]},"missing_info":[],"notes":"User asked about weather today."}`, todayISO)

	var b strings.Builder
	b.WriteString(`ROLE:
You are a STRICT intent-classification component for a Travel Assistant system.
Your job is ONLY:
(1) classify intent
(2) extract structured updates
You must NOT answer the user.

HARD OUTPUT CONTRACT (NON-NEGOTIABLE):
- Output MUST be EXACTLY ONE raw JSON object.
- Output MUST start with '{' and end with '}'.
- Output MUST contain NO markdown and NO code fences.
- Do NOT wrap the JSON in any kind of fenced block. Do NOT add headings or extra text.

BAD (INVALID) OUTPUT EXAMPLE (do NOT copy): a JSON object wrapped in markdown/code fences (a 'json' fenced block).

VALID OUTPUT EXAMPLE (copy this style):
`)
	b.WriteString(goodExample)
	b.WriteString("\n\nAllowed intents (choose exactly ONE):\n[\"")
	b.WriteString(strings.Join(intentNames, `","`))
	b.WriteString("\"]\n\n")
	b.WriteString(`Rules:
1) Weather/best time/temps/rain/wind -> intent="weather_query"
2) Day-by-day plan -> intent="itinerary_planning"
3) Attractions/things to do -> intent="attractions_recommendations"
4) What to pack -> intent="packing_list"
5) Currency conversion / exchange rate / convert money / "USD to ILS" -> intent="currency_conversion"
6) Any preferences/constraints update (kids, budget, pace, vegetarian, wheelchair, etc.) -> intent="constraints_update"
7) If the user says generic help / unsure (e.g., "help", "help me", "I need help", "not sure what to ask")
   -> intent="clarification_needed" (this is in-scope onboarding; NOT out_of_scope)

IMPORTANT DATE RULES:
- Today (server date) is: ` + todayISO + `
- If user says "today" -> start_date=` + todayISO + `, end_date=null
- If user says "tomorrow" -> start_date=(today+1 day) as ISO YYYY-MM-DD, end_date=null
- If user says "in N days" -> start_date=(today+N days) as ISO YYYY-MM-DD, end_date=null
- If user says "on YYYY-MM-DD" -> start_date=that date
- If user says "from YYYY-MM-DD to YYYY-MM-DD" -> start_date and end_date
- Always output ISO YYYY-MM-DD only.
- If weather question gives NO date -> leave start_date/end_date as null.

MONTH WITHOUT YEAR RULE (CRITICAL):
- If the user mentions a month name (e.g., "January") WITHOUT a year,
  interpret it as the NEXT upcoming occurrence of that month relative to Today.
- For month-only trips, set:
  start_date = YYYY-MM-01
  end_date   = YYYY-MM-(last day of month)
- Never output dates in the past unless the user explicitly gave a year in the past.

FOLLOW-UP ANSWERS (CRITICAL):
If the message looks like a short follow-up answering ONE missing trip detail
(city name like "Rome", duration like "5 days", dates, budget),
THEN:
- intent="constraints_update"
- put the parsed value into extracted_updates
- missing_info=[]

clarification_needed is ONLY for travel-related messages that cannot be interpreted
as ANY structured update AND do not match any intent.

If NOT travel-related AND NOT a generic help/unsure message -> intent="out_of_scope"`)

	b.WriteString(pendingBlock(pending))

	b.WriteString(`

Output JSON schema (fill all keys; use null/[] where unknown):
{
  "intent": "<allowed intent>",
  "confidence": <0.0..1.0>,
  "extracted_updates": {
     "destination": <string or null>,
     "start_date": <YYYY-MM-DD or null>,
     "end_date": <YYYY-MM-DD or null>,
     "duration_days": <integer or null>,
     "budget": <"low"|"mid"|"high" or null>,
     "travelers": <string or null>,
     "interests": <list of strings>,
     "pace": <"relaxed"|"balanced"|"intense" or null>,
     "constraints": <list of strings>
  },
  "missing_info": <list of strings>,
  "notes": <string>
}

Follow-up examples:
User message: Paris
{"intent":"constraints_update","confidence":0.85,"extracted_updates":{"destination":"Paris","start_date":null,"end_date":null,"duration_days":null,"budget":null,"travelers":null,"interests":[],"pace":null,"constraints":[]},"missing_info":[],"notes":"Follow-up answer: destination provided."}

User message: 5 days
{"intent":"constraints_update","confidence":0.85,"extracted_updates":{"destination":null,"start_date":null,"end_date":null,"duration_days":5,"budget":null,"travelers":null,"interests":[],"pace":null,"constraints":[]},"missing_info":[],"notes":"Follow-up answer: duration provided."}

Now classify:`)

	b.WriteString(historyBlock(recent))
	b.WriteString("\n\nUser message: ")
	b.WriteString(userMessage)

	return b.String()
}

func pendingBlock(pending []string) string {
	if len(pending) == 0 {
		return ""
	}
	missing := pending[0]

	if missing == "goal" {
		return `

PENDING_CLARIFICATION (SYSTEM STATE):
- The system previously asked the user to choose a goal: itinerary / attractions / packing / weather / currency conversion.
- If the user's message is one of these (or a clear synonym), classify accordingly:
  - itinerary/plan/route/schedule -> intent='itinerary_planning'
  - attractions/things to do/activities -> intent='attractions_recommendations'
  - pack/packing/what to bring -> intent='packing_list'
  - weather/temperature/rain -> intent='weather_query'
  - currency/exchange rate/convert -> intent='currency_conversion'
- Treat it as a NEW goal selection (not a destination update).
- If the message is clearly a NEW travel question instead, classify normally.`
	}

	switch missing {
	case "currency_pair", "currency_amount", "currency_from", "currency_to":
		return fmt.Sprintf(`

PENDING_CLARIFICATION (SYSTEM STATE):
- The system previously asked the user for: %s
- This is part of a CURRENCY CONVERSION flow.
- You MUST classify intent='currency_conversion'.
- Treat the user's message as the answer to the missing field:
  - currency_amount: a number like '200' or '200.50'
  - currency_from: a 3-letter code or common name (USD, EUR, dollars, shekels)
  - currency_to: a 3-letter code or common name (ILS, EUR, pounds)
  - currency_pair: formats like 'USD to ILS', 'EUR/GBP', 'USD-EUR'
- WRONG-TYPE FOLLOW-UP HANDLING (IMPORTANT):
  - If missing field is currency_pair AND the user's message is only a number (e.g., '100'):
    - intent MUST still be 'currency_conversion'
    - set missing_info=['currency_pair']
  - If missing field is currency_amount AND the user's message looks like only a currency pair (e.g., 'USD to EUR'):
    - intent MUST still be 'currency_conversion'
    - set missing_info=['currency_amount']
- Do NOT classify these short answers as constraints_update.
- Do NOT output intent='clarification_needed' for these answers.
- If the user's message is clearly a NEW travel question, classify normally.`, missing)
	}

	return fmt.Sprintf(`

PENDING_CLARIFICATION (SYSTEM STATE):
- The system previously asked the user for: %s
- Treat the user's message as an answer to this missing field if possible.
- If the user's message is clearly a NEW travel question (not an answer), classify normally.`, missing)
}
