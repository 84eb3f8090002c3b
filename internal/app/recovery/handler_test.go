package recovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/validate"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestRecoverReAsksPendingSlot(t *testing.T) {
	h := NewHandler(&fakeGenerator{}, time.Second)
	st := &domain.State{}
	st.SetPending([]string{validate.SlotDestination})

	res := h.Recover(context.Background(), st, "???", domain.IntentClarificationNeeded, nil, "boom")

	assert.Equal(t, RungPendingSlot, res.Rung)
	assert.Equal(t, []string{validate.SlotDestination}, res.PendingMissingInfo)
	assert.NotEmpty(t, res.Message)
	assert.False(t, res.UsedLLM)
}

func TestRecoverNoGoalAsksForGoal(t *testing.T) {
	h := NewHandler(&fakeGenerator{}, time.Second)
	st := &domain.State{}

	res := h.Recover(context.Background(), st, "???", domain.IntentClarificationNeeded, nil, "boom")

	assert.Equal(t, RungGoalSelection, res.Rung)
	assert.Equal(t, []string{validate.SlotGoal}, res.PendingMissingInfo)
}

func TestRecoverAsksNextMissingFieldOfGoal(t *testing.T) {
	h := NewHandler(&fakeGenerator{}, time.Second)
	st := &domain.State{LastIntent: domain.IntentItineraryPlanning}

	res := h.Recover(context.Background(), st, "???", domain.IntentConstraintsUpdate, nil, "boom")

	assert.Equal(t, RungNextMissing, res.Rung)
	assert.Equal(t, []string{validate.SlotDestination}, res.PendingMissingInfo)
	assert.Equal(t, domain.IntentItineraryPlanning, res.ResolvedIntent)
}

func TestRecoverGeneratesWhenGoalIsComplete(t *testing.T) {
	gen := &fakeGenerator{reply: "Let's keep planning your Rome trip. Want me to refine day 2?"}
	h := NewHandler(gen, time.Second)
	dur := 5
	st := &domain.State{
		LastIntent:  domain.IntentItineraryPlanning,
		TripProfile: domain.TripProfile{Destination: "Rome", DurationDays: &dur},
	}

	res := h.Recover(context.Background(), st, "something odd", domain.IntentItineraryPlanning, nil, "boom")

	assert.Equal(t, RungGeneration, res.Rung)
	assert.True(t, res.UsedLLM)
	assert.Equal(t, gen.reply, res.Message)
	require.Equal(t, 1, gen.calls)
}

func TestRecoverCannedFloorWhenGenerationFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("generation down")}
	h := NewHandler(gen, time.Second)
	dur := 5
	st := &domain.State{
		LastIntent:  domain.IntentItineraryPlanning,
		TripProfile: domain.TripProfile{Destination: "Rome", DurationDays: &dur},
	}

	res := h.Recover(context.Background(), st, "something odd", domain.IntentItineraryPlanning, nil, "boom")

	assert.Equal(t, RungCanned, res.Rung)
	assert.Equal(t, goalSelectionMessage, res.Message)
	assert.Equal(t, []string{validate.SlotGoal}, res.PendingMissingInfo)
	assert.False(t, res.UsedLLM)
}

func TestRecoverNilGeneratorStillAnswers(t *testing.T) {
	h := NewHandler(nil, time.Second)
	dur := 3
	st := &domain.State{
		LastIntent:  domain.IntentPackingList,
		TripProfile: domain.TripProfile{Destination: "Oslo", DurationDays: &dur},
	}

	res := h.Recover(context.Background(), st, "???", domain.IntentPackingList, nil, "boom")

	assert.Equal(t, RungCanned, res.Rung)
	assert.NotEmpty(t, res.Message)
}
