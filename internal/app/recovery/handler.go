// Package recovery is the layered fallback ladder invoked when routing yields
// no decision, execution fails, or output comes back empty. Deterministic
// rungs come first; the generation collaborator is a last resort, and even its
// failure still yields a canned goal-selection message. Recovery never
// re-raises.
package recovery

import (
	"context"
	"strings"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/clarify"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
	"github.com/NoaSegev3/travel-assistant-ai/internal/prompts"
)

// Rung tags name which ladder step produced the reply (metrics labels).
const (
	RungPendingSlot   = "pending_slot"
	RungGoalSelection = "goal_selection"
	RungNextMissing   = "next_missing_field"
	RungGeneration    = "generation"
	RungCanned        = "canned"
)

// goalSelectionMessage is the guaranteed-text floor of the ladder.
const goalSelectionMessage = "I can help with itineraries, attractions, packing, weather, or currency conversion. What would you like to do next?"

// Result is the recovery verdict: a user-facing message, the slot(s) that
// should now be pending, and optionally the goal the session should remember.
type Result struct {
	Message            string
	Rung               string
	UsedLLM            bool
	PendingMissingInfo []string
	ResolvedIntent     domain.Intent
}

type Handler struct {
	generator domain.TextGenerator
	timeout   time.Duration
}

func NewHandler(generator domain.TextGenerator, timeout time.Duration) *Handler {
	return &Handler{generator: generator, timeout: timeout}
}

// Recover walks the ladder:
//  1. re-ask an already outstanding clarification slot,
//  2. ask the user to pick a goal when none is standing or incoming,
//  3. ask the next missing field of the standing/incoming goal,
//  4. constrained generation, falling back to the canned goal-selection text.
func (h *Handler) Recover(ctx context.Context, st *domain.State, userMessage string, intentForFlow domain.Intent, recent []domain.Message, cause string) Result {
	log := observability.LoggerFromContext(ctx).With("session_id", st.SessionID)
	if cause != "" {
		log.Warn("recovery ladder invoked", "cause", cause)
	}

	if slot := st.PendingSlot(); slot != "" {
		return Result{
			Message:            clarify.Question([]string{slot}),
			Rung:               RungPendingSlot,
			PendingMissingInfo: []string{slot},
		}
	}

	activeGoal := st.ActiveGoal()
	if activeGoal == "" && !intentForFlow.IsGoal() {
		return Result{
			Message:            clarify.Question([]string{validate.SlotGoal}),
			Rung:               RungGoalSelection,
			PendingMissingInfo: []string{validate.SlotGoal},
		}
	}

	goal := activeGoal
	if intentForFlow.IsGoal() {
		goal = intentForFlow
	}

	if goal != "" {
		validation := validate.Check(goal, st.TripProfile)
		if !validation.OK && len(validation.MissingInfo) > 0 {
			pending := validation.MissingInfo[:1]
			return Result{
				Message:            clarify.Question(pending),
				Rung:               RungNextMissing,
				PendingMissingInfo: pending,
				ResolvedIntent:     goal,
			}
		}
	}

	text := h.generateRecovery(ctx, st, userMessage, goal, recent, cause)
	if text == "" {
		return Result{
			Message:            goalSelectionMessage,
			Rung:               RungCanned,
			PendingMissingInfo: []string{validate.SlotGoal},
			ResolvedIntent:     goal,
		}
	}

	return Result{
		Message:        text,
		Rung:           RungGeneration,
		UsedLLM:        true,
		ResolvedIntent: goal,
	}
}

func (h *Handler) generateRecovery(ctx context.Context, st *domain.State, userMessage string, goal domain.Intent, recent []domain.Message, cause string) string {
	if h.generator == nil {
		return ""
	}

	prompt := prompts.System() + "\n\n" + prompts.Recovery(goal, st, userMessage, recent, cause)

	callCtx := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	text, err := h.generator.GenerateText(callCtx, prompt)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("recovery generation failed", "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
