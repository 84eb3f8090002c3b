// Package validate is the per-goal input gatekeeper: it checks whether the
// trip profile holds enough information to pursue a goal and feeds the
// single-question clarification loop.
package validate

import (
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// Slot keys reported as missing info.
const (
	SlotDestination     = "destination"
	SlotDatesOrDuration = "dates_or_duration"
	SlotGoal            = "goal"
	SlotCurrencyPair    = "currency_pair"
	SlotCurrencyAmount  = "currency_amount"
)

// Check returns the validation verdict for pursuing the given goal with the
// current trip profile. Currency conversion is validated by the phrase
// resolver instead of the required-field table, so it always passes here.
// Pure and deterministic.
func Check(goal domain.Intent, trip domain.TripProfile) domain.ValidationResult {
	var missing, problems []string

	if trip.DurationDays != nil && *trip.DurationDays <= 0 {
		problems = append(problems, "duration_days must be > 0")
	}

	switch goal {
	case domain.IntentItineraryPlanning:
		if trip.Destination == "" {
			missing = append(missing, SlotDestination)
		}
		if !trip.HasDatesOrDuration() {
			missing = append(missing, SlotDatesOrDuration)
		}

	case domain.IntentWeatherQuery, domain.IntentAttractions, domain.IntentPackingList:
		if trip.Destination == "" {
			missing = append(missing, SlotDestination)
		}
	}

	return domain.ValidationResult{
		OK:          len(missing) == 0 && len(problems) == 0,
		MissingInfo: missing,
		Problems:    problems,
	}
}
