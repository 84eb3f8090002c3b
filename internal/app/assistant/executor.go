package assistant

import (
	"context"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/clarify"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/trust"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
)

const outOfScopeReply = "I can help with travel planning only (itineraries, attractions, packing, weather, currency conversion). What would you like to do?"

const (
	weatherDegradedReply = "I couldn’t fetch weather info right now. " +
		"If you tell me your dates (or month), I can still give general seasonal packing tips."
	currencyDegradedReply = "I couldn’t fetch the exchange rate right now. " +
		"Try again in a moment, or share the currencies in the format “100 USD to EUR”."
	unknownToolReply = "I can’t run that tool right now. What would you like to do next?"
)

// execute turns a routed decision into assistant text. Tool branches degrade
// to a fixed apology instead of erroring; the reply for a tool-backed turn is
// returned already trust-filtered with its tool data attached.
func (a *Assistant) execute(ctx context.Context, d domain.Decision, st *domain.State, goal domain.Intent, userMessage string) (string, *domain.ToolData, error) {
	switch d.Action {
	case domain.ActionAskClarification:
		return clarify.Question(d.MissingInfo), nil, nil

	case domain.ActionOutOfScope:
		return outOfScopeReply, nil, nil

	case domain.ActionCallTool:
		return a.executeTool(ctx, d, st, goal, userMessage)

	default: // generate_response
		text, err := a.responder.Generate(ctx, goal, st, st.RecentMessages(recentForResponse), nil)
		return text, nil, err
	}
}

func (a *Assistant) executeTool(ctx context.Context, d domain.Decision, st *domain.State, goal domain.Intent, userMessage string) (string, *domain.ToolData, error) {
	log := observability.LoggerFromContext(ctx)

	toolCtx := ctx
	if a.toolTimeout > 0 {
		var cancel context.CancelFunc
		toolCtx, cancel = context.WithTimeout(ctx, a.toolTimeout)
		defer cancel()
	}

	switch d.ToolName {
	case domain.ToolWeather:
		report, err := a.weatherTool.Forecast(toolCtx, st.TripProfile)
		if err != nil {
			log.Warn("weather tool failed", "error", err)
			a.metrics.ToolFailuresTotal.WithLabelValues(domain.ToolWeather).Inc()
			return weatherDegradedReply, nil, nil
		}

		toolData := &domain.ToolData{Weather: report}
		text, err := a.responder.Generate(ctx, goal, st, st.RecentMessages(recentForResponse), toolData)
		if err != nil {
			return "", toolData, err
		}
		return a.applyTrust(ctx, goal, text, userMessage, toolData), toolData, nil

	case domain.ToolCurrency:
		args := d.Currency
		conv, err := a.currencyTool.Convert(toolCtx, args.Amount, args.From, args.To)
		if err != nil {
			log.Warn("currency tool failed", "error", err, "from", args.From, "to", args.To)
			a.metrics.ToolFailuresTotal.WithLabelValues(domain.ToolCurrency).Inc()
			return currencyDegradedReply, nil, nil
		}

		toolData := &domain.ToolData{Currency: conv}
		text, err := a.responder.Generate(ctx, goal, st, st.RecentMessages(recentForResponse), toolData)
		if err != nil {
			return "", toolData, err
		}

		// The interrupt finished; the session falls back to the goal it
		// interrupted.
		if a.restorePrimaryIntent(st) {
			log.Debug("restored primary intent after currency interrupt", "intent", st.LastIntent)
		}
		return a.applyTrust(ctx, goal, text, userMessage, toolData), toolData, nil

	default:
		return unknownToolReply, nil, nil
	}
}

func (a *Assistant) restorePrimaryIntent(st *domain.State) bool {
	if !st.PrimaryIntent.IsGoal() || st.LastIntent == st.PrimaryIntent {
		return false
	}
	st.LastIntent = st.PrimaryIntent
	return true
}

func (a *Assistant) applyTrust(ctx context.Context, goal domain.Intent, text, userMessage string, toolData *domain.ToolData) string {
	result := trust.Apply(trust.Input{
		Intent:      goal,
		Text:        text,
		UserMessage: userMessage,
		ToolData:    toolData,
	})
	a.countTrust(result)
	if result.Flagged {
		observability.LoggerFromContext(ctx).Debug("trust filter rewrote reply", "reasons", result.Reasons)
	}
	return result.Text
}
