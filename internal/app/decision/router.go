// Package decision is the routing brain. Given the resolved intent, the
// validation verdict, the raw message and the session state, it decides the
// next action: clarify, call a tool, generate, or refuse.
package decision

import (
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/currency"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/weather"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

type Router struct {
	forecastHorizonDays int
	currencyLookback    int
	now                 func() time.Time
}

// NewRouter builds a router; zero values fall back to the package defaults.
func NewRouter(forecastHorizonDays, currencyLookback int) *Router {
	if forecastHorizonDays <= 0 {
		forecastHorizonDays = weather.DefaultForecastHorizonDays
	}
	if currencyLookback <= 0 {
		currencyLookback = currency.DefaultMaxLookback
	}
	return &Router{
		forecastHorizonDays: forecastHorizonDays,
		currencyLookback:    currencyLookback,
		now:                 time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (r *Router) WithNow(now func() time.Time) *Router {
	r.now = now
	return r
}

// Decide evaluates the routing ladder in strict priority order.
func (r *Router) Decide(intent domain.Intent, validation domain.ValidationResult, userMessage string, st *domain.State) domain.Decision {
	if intent == domain.IntentOutOfScope {
		return domain.OutOfScope("request is outside supported travel domain")
	}

	if intent == domain.IntentClarificationNeeded {
		return domain.AskClarification(validate.SlotGoal, "message unclear, ask for goal")
	}

	if !validation.OK {
		first := validate.SlotGoal
		if len(validation.MissingInfo) > 0 {
			first = validation.MissingInfo[0]
		} else if len(validation.Problems) > 0 {
			// Invalid facts (e.g. non-positive duration) re-ask the dates slot.
			first = validate.SlotDatesOrDuration
		}
		return domain.AskClarification(first, "missing or invalid information")
	}

	if intent == domain.IntentWeatherQuery {
		return r.decideWeather(userMessage, st)
	}

	if intent == domain.IntentCurrencyConversion {
		return r.decideCurrency(userMessage, st)
	}

	switch intent {
	case domain.IntentItineraryPlanning, domain.IntentAttractions, domain.IntentPackingList:
		return domain.GenerateResponse(string(intent) + " -> generate response")
	}

	return domain.GenerateResponse("default routing for intent " + string(intent))
}

func (r *Router) decideWeather(userMessage string, st *domain.State) domain.Decision {
	// Month mentions or seasonal phrasing never need live data.
	if weather.MentionsMonth(userMessage) || weather.IsSeasonalQuestion(userMessage) {
		return domain.GenerateResponse("seasonal weather wording, answer without tool")
	}

	if !weather.WithinForecastWindow(st.TripProfile, r.now(), r.forecastHorizonDays) {
		return domain.GenerateResponse("date window outside forecast horizon, answer without tool")
	}

	return domain.CallWeather("weather query within horizon")
}

func (r *Router) decideCurrency(userMessage string, st *domain.State) domain.Decision {
	query, resolved := currency.ParseQuery(userMessage)

	// Partial message: combine with history only when we are mid-clarification
	// on a currency slot. Amount backfill is allowed only when the amount
	// itself is the outstanding slot.
	pending := st.PendingSlot()
	if !resolved && (pending == validate.SlotCurrencyAmount || pending == validate.SlotCurrencyPair) {
		query, resolved = currency.CombineFromHistory(userMessage, historyBeforeCurrent(st), currency.HistoryOptions{
			MaxLookbackUserMessages: r.currencyLookback,
			AllowAmountFromHistory:  pending == validate.SlotCurrencyAmount,
		})
	}

	// Sticky slot: if we asked for the amount, unrelated text re-asks it
	// instead of silently dropping the pending question.
	if !resolved && pending == validate.SlotCurrencyAmount {
		if _, isNumeric := currency.ParseAmount(userMessage); !isNumeric {
			return domain.AskClarification(validate.SlotCurrencyAmount, "still missing currency_amount (sticky slot)")
		}
	}

	if !resolved {
		if _, _, hasPair := currency.ParsePair(userMessage); hasPair {
			// The pair will be recovered from history on the next turn.
			return domain.AskClarification(validate.SlotCurrencyAmount, "pair detected, amount still missing")
		}
		return domain.AskClarification(validate.SlotCurrencyPair, "currency pair missing")
	}

	// The resolved query is the single source of truth for the tool call.
	return domain.CallCurrency(domain.CurrencyArgs{
		Amount: query.Amount,
		From:   query.From,
		To:     query.To,
	}, "currency conversion resolved, call tool")
}

// historyBeforeCurrent drops the just-appended user message so history
// combination never reads the current message twice.
func historyBeforeCurrent(st *domain.State) []domain.Message {
	if len(st.History) == 0 {
		return nil
	}
	return st.History[:len(st.History)-1]
}
