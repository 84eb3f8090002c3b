// Package clarify renders the single deterministic clarification question for
// a missing slot, keeping the dialog strictly one question at a time.
package clarify

var questions = map[string]string{
	"destination":       "Where are you traveling to (city/country)?",
	"dates":             "What are your travel dates (or how many days is the trip)?",
	"dates_or_duration": "What are your travel dates (or how many days is the trip)?",
	"budget":            "What's your budget level (low / mid / high)?",
	"travelers":         "Who's traveling (solo / couple / friends / family, kids yes/no)?",
	"interests":         "What are your interests (e.g., food, museums, nature, nightlife)?",
	"pace":              "What pace do you prefer (relaxed / balanced / intense)?",
	"goal":              "What would you like help with: itinerary, attractions, packing, weather, or currency conversion?",
	"currency_pair":     "Which currencies are you converting between? (e.g., USD to EUR)\nThen tell me the amount (e.g., 100).",
	"currency_amount":   "What amount do you want to convert? (e.g., 100)",
	"currency_from":     "What is the FROM currency? (e.g., USD)",
	"currency_to":       "What is the TO currency? (e.g., EUR)",
}

// Question maps the first missing slot onto a user-facing question. An empty
// list asks for the trip basics; an unknown slot falls back to a generic
// question.
func Question(missing []string) string {
	if len(missing) == 0 {
		return "What details can you share about your trip (destination and dates)?"
	}
	if q, ok := questions[missing[0]]; ok {
		return q
	}
	return "What's one more detail about your trip that matters most (destination, dates, budget, travelers)?"
}
