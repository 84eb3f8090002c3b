package prompts

import (
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// recoveryContext extends the trip context with the flow-memory fields the
// recovery prompt needs.
type recoveryContext struct {
	tripContext
	PendingMissingInfo []string `json:"pending_missing_info"`
	LastIntent         *string  `json:"last_intent"`
	TurnCount          int      `json:"turn_count"`
}

// Recovery builds the constrained last-resort prompt: at most one question, no
// verbatim repeat of the last assistant message, and the internal error is
// context only, never user-facing.
func Recovery(intent domain.Intent, st *domain.State, userMessage string, recent []domain.Message, cause string) string {
	ctx := recoveryContext{
		tripContext:        newTripContext(st.TripProfile),
		PendingMissingInfo: emptyIfNil(st.PendingMissingInfo),
		TurnCount:          st.TurnCount,
	}
	if st.LastIntent != "" {
		s := string(st.LastIntent)
		ctx.LastIntent = &s
	}

	intentStr := "unknown"
	if intent != "" {
		intentStr = string(intent)
	}

	lastAssistant := ""
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role == domain.RoleAssistant && recent[i].Content != "" {
			lastAssistant = recent[i].Content
			break
		}
	}

	var b strings.Builder
	b.WriteString(`You are a Travel Assistant.
You are in FALLBACK / RECOVERY mode because something went wrong.

Current user message: `)
	b.WriteString(userMessage)
	b.WriteString("\nCurrent intent (best guess): ")
	b.WriteString(intentStr)
	b.WriteString("\n\nTrip context (source of truth):\n")
	b.WriteString(marshalCompact(ctx))

	if cause != "" {
		b.WriteString("\n\nERROR (for context only, do not mention to user):\n")
		b.WriteString(cause)
	}

	if lastAssistant != "" {
		b.WriteString("\n\nLAST_ASSISTANT_MESSAGE (do not repeat it verbatim):\n")
		b.WriteString(lastAssistant)
	}

	b.WriteString(`

FALLBACK RULES (MUST FOLLOW):
- Output ONLY a user-facing message (no reasoning, no system talk, no JSON).
- Be calm and helpful.
- Ask at most ONE short clarification question.
- Prefer the most important next piece of info:
  1) If "pending_missing_info" exists: ask for that.
  2) Else if last_intent is null: ask the user to choose goal: itinerary / attractions / packing / weather / currency conversion.
  3) Else ask the next required info for that goal:
     - itinerary needs destination + dates_or_duration
     - attractions needs destination
     - packing needs destination (and optionally month)
     - weather needs destination (dates optional)
     - currency conversion needs amount + currency pair (e.g., "100 USD to EUR")

- If you already have enough info for the user's goal, provide a short helpful answer (bullets), and optionally ask ONE follow-up question.
- Do NOT repeat the exact same clarification question that was asked in the last assistant message.

Keep it concise.`)

	b.WriteString(historyBlock(recent))

	return b.String()
}
