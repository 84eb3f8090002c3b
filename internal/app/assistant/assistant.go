// Package assistant composes the dialogue-state machine for one conversation
// turn: intent resolution, trip-fact merge, validation, decision routing,
// execution, trust filtering and persistence, with the recovery ladder
// re-entrant from any failure after routing.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/decision"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/intent"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/recovery"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/respond"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/trust"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/metrics"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
)

const (
	recentForIntent   = 6
	recentForResponse = 8
)

var errEmptyAssistantText = errors.New("empty assistant text")

type Assistant struct {
	store        domain.SessionStore
	resolver     *intent.Resolver
	router       *decision.Router
	responder    *respond.Generator
	weatherTool  domain.WeatherTool
	currencyTool domain.CurrencyTool
	recovery     *recovery.Handler
	metrics      *metrics.Metrics
	toolTimeout  time.Duration
	now          func() time.Time
}

// Deps wires the assistant's collaborators. All fields are required except
// Metrics, which defaults to an unregistered no-op set.
type Deps struct {
	Store        domain.SessionStore
	Resolver     *intent.Resolver
	Router       *decision.Router
	Responder    *respond.Generator
	WeatherTool  domain.WeatherTool
	CurrencyTool domain.CurrencyTool
	Recovery     *recovery.Handler
	Metrics      *metrics.Metrics
	ToolTimeout  time.Duration
}

func New(deps Deps) *Assistant {
	m := deps.Metrics
	if m == nil {
		m = metrics.NewNop()
	}
	return &Assistant{
		store:        deps.Store,
		resolver:     deps.Resolver,
		router:       deps.Router,
		responder:    deps.Responder,
		weatherTool:  deps.WeatherTool,
		currencyTool: deps.CurrencyTool,
		recovery:     deps.Recovery,
		metrics:      m,
		toolTimeout:  deps.ToolTimeout,
		now:          time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (a *Assistant) WithNow(now func() time.Time) *Assistant {
	a.now = now
	return a
}

// HandleTurn processes one inbound message and returns the assistant reply.
// The whole read-modify-write on session state runs inside the per-session
// critical section, so concurrent requests for one session serialize.
func (a *Assistant) HandleTurn(ctx context.Context, sessionID domain.SessionID, userMessage string) (string, error) {
	release := a.store.Acquire(sessionID)
	defer release()

	st, err := a.store.GetOrCreate(sessionID)
	if err != nil {
		return "", err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	prevIntent := st.LastIntent
	prevPending := append([]string(nil), st.PendingMissingInfo...)

	resolved := a.resolver.Resolve(ctx, userMessage, st.RecentMessages(recentForIntent), st.PendingMissingInfo)

	if st, err = a.store.AppendMessage(sessionID, domain.RoleUser, userMessage); err != nil {
		return "", err
	}

	st.TripProfile.ApplyUpdates(resolved.Updates)
	rollMonthWithoutYearForward(ctx, userMessage, st, a.now())

	// Follow-ups fold into the current goal rather than a separate
	// "constraints" mode.
	intentForFlow := resolved.Intent
	activeGoal := domain.Intent("")
	if prevIntent.IsGoal() {
		activeGoal = prevIntent
	}
	if intentForFlow == domain.IntentConstraintsUpdate {
		if activeGoal != "" {
			intentForFlow = activeGoal
		} else {
			intentForFlow = domain.IntentClarificationNeeded
		}
	}

	if intentForFlow.IsGoal() {
		st.LastIntent = intentForFlow
		// Currency is an interrupt; only non-currency goals become primary.
		if intentForFlow != domain.IntentCurrencyConversion {
			st.PrimaryIntent = intentForFlow
		}
	}

	a.store.IncrementTurn(st)

	validation := validate.Check(intentForFlow, st.TripProfile)
	decided := a.router.Decide(intentForFlow, validation, userMessage, st)

	log.Debug("turn routed",
		"intent_raw", resolved.Intent,
		"intent_for_flow", intentForFlow,
		"turn_count", st.TurnCount,
		"validation_ok", validation.OK,
		"action", decided.Action,
		"notes", decided.Notes,
	)

	if err := decided.Validate(); err != nil {
		// Programmer error in decision construction; the user still gets a
		// calm reply via the ladder.
		log.Error("decision contract violation", "error", err)
		text := a.recoverTurn(ctx, st, userMessage, intentForFlow, "")
		result := trust.Apply(trust.Input{Intent: intentForFlow, Text: text, UserMessage: userMessage})
		a.countTrust(result)
		a.finishTurn(sessionID, st, result.Text)
		return result.Text, nil
	}

	// Single-slot clarification loop bookkeeping. A sticky currency_amount
	// survives turns that intentionally answered a non-currency question.
	if decided.Action == domain.ActionAskClarification {
		st.SetPending(decided.MissingInfo)
	} else if len(prevPending) == 1 && prevPending[0] == validate.SlotCurrencyAmount &&
		intentForFlow != domain.IntentCurrencyConversion {
		st.SetPending(prevPending)
	} else {
		st.SetPending(nil)
	}

	text, toolData, execErr := a.execute(ctx, decided, st, intentForFlow, userMessage)
	if execErr == nil && len(text) == 0 {
		execErr = errEmptyAssistantText
	}

	if execErr != nil {
		log.Warn("turn execution failed", "error", execErr)
		text = a.recoverTurn(ctx, st, userMessage, intentForFlow, execErr.Error())
	}

	// Tool-backed replies already went through the filter with their tool
	// data attached inside the executor.
	if decided.Action != domain.ActionCallTool {
		result := trust.Apply(trust.Input{
			Intent:      intentForFlow,
			Text:        text,
			UserMessage: userMessage,
			ToolData:    toolData,
		})
		a.countTrust(result)
		if result.Flagged {
			log.Debug("trust filter rewrote reply", "reasons", result.Reasons)
		}
		text = result.Text
	}

	// If the model asked a question without the router pinning a slot, infer
	// which slot it asked for.
	if decided.Action == domain.ActionGenerateResponse && len(st.PendingMissingInfo) == 0 {
		st.SetPending(inferPendingFromAssistant(text, intentForFlow, st))
	}

	a.metrics.TurnsTotal.WithLabelValues(string(decided.Action)).Inc()
	a.finishTurn(sessionID, st, text)
	return text, nil
}

// recoverTurn runs the ladder and applies its state side effects.
func (a *Assistant) recoverTurn(ctx context.Context, st *domain.State, userMessage string, intentForFlow domain.Intent, cause string) string {
	fallback := a.recovery.Recover(ctx, st, userMessage, intentForFlow, st.RecentMessages(recentForResponse), cause)
	a.metrics.RecoveriesTotal.WithLabelValues(fallback.Rung).Inc()

	if len(fallback.PendingMissingInfo) > 0 {
		st.SetPending(fallback.PendingMissingInfo)
	} else {
		st.SetPending(inferPendingFromAssistant(fallback.Message, intentForFlow, st))
	}
	if fallback.ResolvedIntent.IsGoal() {
		st.LastIntent = fallback.ResolvedIntent
	}
	return fallback.Message
}

func (a *Assistant) finishTurn(sessionID domain.SessionID, st *domain.State, text string) {
	_, _ = a.store.AppendMessage(sessionID, domain.RoleAssistant, text)
}

func (a *Assistant) countTrust(result trust.Result) {
	for _, reason := range result.Reasons {
		a.metrics.TrustRewritesTotal.WithLabelValues(reason).Inc()
	}
}

// Snapshot returns the current session state read-only; it never creates or
// mutates a session.
func (a *Assistant) Snapshot(ctx context.Context, sessionID domain.SessionID) (*domain.State, error) {
	return a.store.Peek(sessionID)
}
