// Package respond produces the final assistant text: deterministic formatting
// when currency tool data exists, otherwise a generation call followed by
// preamble cleanup.
package respond

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/weather"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
	"github.com/NoaSegev3/travel-assistant-ai/internal/prompts"
)

type Generator struct {
	generator domain.TextGenerator
	timeout   time.Duration
}

func NewGenerator(generator domain.TextGenerator, timeout time.Duration) *Generator {
	return &Generator{generator: generator, timeout: timeout}
}

// Generate renders the assistant reply for one turn. Currency answers backed
// by tool data are formatted deterministically; numeric text is never left to
// the model.
func (g *Generator) Generate(ctx context.Context, intent domain.Intent, st *domain.State, recent []domain.Message, toolData *domain.ToolData) (string, error) {
	if intent == domain.IntentCurrencyConversion && toolData != nil && toolData.Currency != nil {
		return FormatCurrency(toolData.Currency), nil
	}

	lastUserMsg := ""
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role == domain.RoleUser {
			lastUserMsg = recent[i].Content
			break
		}
	}

	forceSeasonal := intent == domain.IntentWeatherQuery && toolData.Empty() &&
		(weather.MentionsMonth(lastUserMsg) || weather.IsSeasonalQuestion(lastUserMsg))

	userPrompt := prompts.Response(intent, st.TripProfile, recent, toolData, forceSeasonal)
	fullPrompt := prompts.System() + "\n\n" + userPrompt

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.generator.GenerateText(callCtx, fullPrompt)
	if err != nil {
		return "", fmt.Errorf("response generation: %w", err)
	}

	observability.LoggerFromContext(ctx).Debug("generated response", "intent", intent, "chars", len(text))

	text = CleanOutput(text)
	if looksLikeToolCode(text) {
		text = stripToolCodeFences(text)
	}
	return text, nil
}

// FormatCurrency renders the conversion from tool data, the single numeric
// source of truth for currency answers.
func FormatCurrency(conv *domain.CurrencyConversion) string {
	if conv == nil || conv.Date == "" || conv.Base == "" || conv.To == "" {
		return "I fetched the exchange rate, but couldn't format the conversion cleanly. " +
			"Try again with something like “100 USD to EUR”."
	}
	return fmt.Sprintf("Based on data from %s, %s %s converts to %.2f %s at a rate of %s.",
		conv.Date,
		strconv.FormatFloat(conv.Amount, 'g', -1, 64), conv.Base,
		conv.ConvertedAmount, conv.To,
		strconv.FormatFloat(conv.Rate, 'g', -1, 64))
}
