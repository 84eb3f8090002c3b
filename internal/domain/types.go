package domain

import "time"

type SessionID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Intent is the closed set of conversational intents the assistant understands.
// The first five are "goal" intents the user can actively pursue; the rest are
// flow-control outcomes of intent resolution.
type Intent string

const (
	IntentItineraryPlanning   Intent = "itinerary_planning"
	IntentAttractions         Intent = "attractions_recommendations"
	IntentPackingList         Intent = "packing_list"
	IntentWeatherQuery        Intent = "weather_query"
	IntentCurrencyConversion  Intent = "currency_conversion"
	IntentConstraintsUpdate   Intent = "constraints_update"
	IntentClarificationNeeded Intent = "clarification_needed"
	IntentOutOfScope          Intent = "out_of_scope"
)

// IsGoal reports whether the intent is one of the five pursuable goals.
func (i Intent) IsGoal() bool {
	switch i {
	case IntentItineraryPlanning, IntentAttractions, IntentPackingList,
		IntentWeatherQuery, IntentCurrencyConversion:
		return true
	}
	return false
}

// ParseIntent maps a wire string onto a known Intent.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentItineraryPlanning, IntentAttractions, IntentPackingList,
		IntentWeatherQuery, IntentCurrencyConversion, IntentConstraintsUpdate,
		IntentClarificationNeeded, IntentOutOfScope:
		return Intent(s), true
	}
	return "", false
}

type Timestamp = time.Time
