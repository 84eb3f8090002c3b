// Package intent wraps the generation collaborator into the intent-resolution
// step: it enforces a single-JSON-object contract on the model, repairs common
// violations, and applies deterministic overrides that keep clarification
// loops stable (especially for currency flows).
package intent

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
	"github.com/NoaSegev3/travel-assistant-ai/internal/prompts"
)

// Result is a resolved intent plus the trip facts extracted along with it.
type Result struct {
	Intent      domain.Intent
	Confidence  float64
	Updates     domain.TripUpdates
	MissingInfo []string
	Raw         string
}

// wireResult mirrors the JSON contract the model is prompted to produce.
type wireResult struct {
	Intent           string             `json:"intent"`
	Confidence       float64            `json:"confidence"`
	ExtractedUpdates domain.TripUpdates `json:"extracted_updates"`
	MissingInfo      []string           `json:"missing_info"`
	Notes            string             `json:"notes"`
}

type Resolver struct {
	generator domain.TextGenerator
	timeout   time.Duration
	now       func() time.Time
}

func NewResolver(generator domain.TextGenerator, timeout time.Duration) *Resolver {
	return &Resolver{generator: generator, timeout: timeout, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve classifies the message and extracts trip-fact updates. It never
// returns an error: any failure collapses to the safe default (clarification
// needed, asking for destination and dates).
func (r *Resolver) Resolve(ctx context.Context, userMessage string, recent []domain.Message, pending []string) Result {
	log := observability.LoggerFromContext(ctx)

	prompt := prompts.Intent(userMessage, recent, pending, r.now())

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := r.generator.GenerateText(callCtx, prompt)
	if err != nil {
		log.Warn("intent resolution call failed", "error", err)
		return safeDefault(raw)
	}

	var wire wireResult
	method, ok := extractObject(raw, &wire)
	if !ok {
		log.Warn("intent output unparseable, using safe default", "method", method)
		return safeDefault(raw)
	}
	if method != parseStrict {
		log.Debug("intent output required repair", "method", method)
	}

	parsed, known := domain.ParseIntent(wire.Intent)
	if !known {
		log.Warn("intent output carried unknown intent, using safe default", "intent", wire.Intent)
		return safeDefault(raw)
	}

	result := Result{
		Intent:      parsed,
		Confidence:  clamp01(wire.Confidence),
		Updates:     wire.ExtractedUpdates,
		MissingInfo: cleanStrings(wire.MissingInfo),
		Raw:         raw,
	}

	result = applyPendingOverrides(ctx, result, userMessage, pending)

	// Generic "I need help" phrasing stays in scope as onboarding.
	if result.Intent == domain.IntentOutOfScope && looksLikeGenericHelp(userMessage) {
		log.Debug("override: out_of_scope reclassified as onboarding")
		result.Intent = domain.IntentClarificationNeeded
		result.Confidence = maxf(result.Confidence, 0.6)
		result.MissingInfo = nil
	}

	return result
}

// safeDefault is the unrecoverable-output fallback: ask for the trip basics.
func safeDefault(raw string) Result {
	return Result{
		Intent:      domain.IntentClarificationNeeded,
		MissingInfo: []string{validate.SlotDestination, validate.SlotDatesOrDuration},
		Raw:         raw,
	}
}

// applyPendingOverrides keeps the resolved intent stable while a clarification
// slot is outstanding, and re-pins the still-missing slot on wrong-type
// follow-ups (amount supplied when a pair is pending, and vice versa).
func applyPendingOverrides(ctx context.Context, result Result, userMessage string, pending []string) Result {
	if len(pending) == 0 {
		return result
	}
	log := observability.LoggerFromContext(ctx)
	slot := pending[0]

	switch slot {
	case validate.SlotCurrencyAmount:
		isAmount := looksLikeAmountOnly(userMessage) ||
			strings.Contains(userMessage, "$") ||
			strings.Contains(strings.ToLower(userMessage), "usd") ||
			strings.Contains(strings.ToLower(userMessage), "eur")
		isPair := looksLikeCurrencyPair(userMessage)

		if looksLikeItineraryContinue(userMessage) && !isAmount && !isPair {
			// The user is resuming the primary goal; do not force currency.
			break
		}
		if result.Intent != domain.IntentCurrencyConversion {
			log.Debug("override: intent pinned to currency_conversion", "pending", slot)
			result.Intent = domain.IntentCurrencyConversion
			result.Confidence = maxf(result.Confidence, 0.6)
		}

	case validate.SlotCurrencyPair, "currency_from", "currency_to":
		if result.Intent != domain.IntentCurrencyConversion {
			log.Debug("override: intent pinned to currency_conversion", "pending", slot)
			result.Intent = domain.IntentCurrencyConversion
			result.Confidence = maxf(result.Confidence, 0.6)
		}
	default:
		return result
	}

	if slot == validate.SlotCurrencyPair && looksLikeAmountOnly(userMessage) {
		result.MissingInfo = []string{validate.SlotCurrencyPair}
	}
	if slot == validate.SlotCurrencyAmount && looksLikeCurrencyPair(userMessage) {
		result.MissingInfo = []string{validate.SlotCurrencyAmount}
	}

	return result
}

var (
	amountOnlyRe = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)$`)
	pairLikeRe   = regexp.MustCompile(`\b[A-Z]{3}\s*(?:TO|->|-|/)\s*[A-Z]{3}\b`)
)

func looksLikeAmountOnly(text string) bool {
	return amountOnlyRe.MatchString(strings.TrimSpace(text))
}

func looksLikeCurrencyPair(text string) bool {
	return pairLikeRe.MatchString(strings.ToUpper(strings.TrimSpace(text)))
}

func looksLikeItineraryContinue(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	markers := []string{
		"continue", "keep going", "go on", "resume",
		"itinerary", "plan", "schedule", "day ", "make day",
	}
	for _, m := range markers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

var genericHelpPhrases = map[string]struct{}{
	"help": {}, "help me": {}, "i need help": {}, "need help": {},
	"not sure": {}, "not sure what to ask": {}, "what can you do": {},
	"what do you do": {}, "how can you help": {}, "can you help": {},
	"please help": {}, "pls help": {},
}

func looksLikeGenericHelp(text string) bool {
	_, ok := genericHelpPhrases[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
