package respond

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(&domain.CurrencyConversion{
		Source: "frankfurter", Date: "2026-08-28", Base: "USD", To: "EUR",
		Rate: 0.84, Amount: 100, ConvertedAmount: 84,
	})
	assert.Equal(t, "Based on data from 2026-08-28, 100 USD converts to 84.00 EUR at a rate of 0.84.", got)
}

func TestFormatCurrencyIncompleteData(t *testing.T) {
	got := FormatCurrency(&domain.CurrencyConversion{Base: "USD"})
	assert.Contains(t, got, "100 USD to EUR")
}

func TestGenerateCurrencyWithToolDataIsDeterministic(t *testing.T) {
	gen := &fakeGenerator{reply: "should never be used"}
	g := NewGenerator(gen, time.Second)

	toolData := &domain.ToolData{Currency: &domain.CurrencyConversion{
		Date: "2026-08-28", Base: "USD", To: "EUR", Rate: 0.84, Amount: 100, ConvertedAmount: 84,
	}}
	st := &domain.State{}

	text, err := g.Generate(context.Background(), domain.IntentCurrencyConversion, st, nil, toolData)
	require.NoError(t, err)
	assert.Contains(t, text, "84.00 EUR")
	assert.Zero(t, gen.calls, "currency answers with tool data never call the model")
}

func TestGenerateCleansPreamble(t *testing.T) {
	gen := &fakeGenerator{reply: "The user wants attractions.\nVisit the Colosseum early."}
	g := NewGenerator(gen, time.Second)
	st := &domain.State{TripProfile: domain.TripProfile{Destination: "Rome"}}

	text, err := g.Generate(context.Background(), domain.IntentAttractions, st, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Visit the Colosseum early.", text)
}

func TestGeneratePassesTripContextInPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "Pack light layers."}
	g := NewGenerator(gen, time.Second)
	st := &domain.State{TripProfile: domain.TripProfile{Destination: "Reykjavik"}}

	_, err := g.Generate(context.Background(), domain.IntentPackingList, st, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "Reykjavik")
}
