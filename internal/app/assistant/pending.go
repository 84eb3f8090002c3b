package assistant

import (
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// inferPendingFromAssistant is the heuristic backup for pending-slot tracking
// when the model asked a question the router did not pin. It only fires on
// text ending with a question mark.
func inferPendingFromAssistant(assistantText string, intent domain.Intent, st *domain.State) []string {
	trimmed := strings.TrimRight(assistantText, " \t\n")
	if trimmed == "" || !strings.HasSuffix(trimmed, "?") {
		return nil
	}

	if intent.IsGoal() && intent != domain.IntentCurrencyConversion {
		if validation := validate.Check(intent, st.TripProfile); len(validation.MissingInfo) > 0 {
			return validation.MissingInfo[:1]
		}
	}

	low := strings.ToLower(assistantText)

	if intent == domain.IntentCurrencyConversion {
		switch {
		case strings.Contains(low, "between"), strings.Contains(low, "which currencies"):
			return []string{validate.SlotCurrencyPair}
		case strings.Contains(low, "amount"), strings.Contains(low, "how much"):
			return []string{validate.SlotCurrencyAmount}
		case strings.Contains(low, "from") && strings.Contains(low, "currency"):
			return []string{"currency_from"}
		case strings.Contains(low, "to") && strings.Contains(low, "currency"):
			return []string{"currency_to"}
		}
	}

	switch {
	case strings.Contains(low, "interest"):
		return []string{"interests"}
	case strings.Contains(low, "budget"):
		return []string{"budget"}
	case strings.Contains(low, "who"), strings.Contains(low, "traveling"):
		return []string{"travelers"}
	case strings.Contains(low, "pace"):
		return []string{"pace"}
	case strings.Contains(low, "month"):
		return []string{validate.SlotDatesOrDuration}
	case strings.Contains(low, "date"), strings.Contains(low, "when"):
		return []string{validate.SlotDatesOrDuration}
	case strings.Contains(low, "where"), strings.Contains(low, "city"), strings.Contains(low, "country"):
		return []string{validate.SlotDestination}
	}

	return nil
}
