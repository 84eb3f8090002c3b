package currency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

func userMsg(content string) domain.Message {
	return domain.Message{Role: domain.RoleUser, Content: content}
}

func assistantMsg(content string) domain.Message {
	return domain.Message{Role: domain.RoleAssistant, Content: content}
}

func TestCombineFromHistoryAmountNowPairFromHistory(t *testing.T) {
	history := []domain.Message{
		userMsg("usd to eur"),
		assistantMsg("What amount would you like to convert?"),
	}

	q, ok := CombineFromHistory("100", history, HistoryOptions{})
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 100, From: "USD", To: "EUR"}, q)
}

func TestCombineFromHistoryPairNowAmountGated(t *testing.T) {
	history := []domain.Message{
		userMsg("100"),
		assistantMsg("Which currencies should I convert between? (e.g., USD to EUR)"),
	}

	// Amount backfill off: the prior bare number is ignored.
	_, ok := CombineFromHistory("usd to eur", history, HistoryOptions{})
	assert.False(t, ok)

	// Amount backfill on (the amount slot is the outstanding one).
	q, ok := CombineFromHistory("usd to eur", history, HistoryOptions{AllowAmountFromHistory: true})
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 100, From: "USD", To: "EUR"}, q)
}

func TestCombineFromHistoryFullQueryInCurrentMessageWins(t *testing.T) {
	history := []domain.Message{userMsg("usd to ils")}

	q, ok := CombineFromHistory("convert 50 eur to gbp", history, HistoryOptions{})
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 50, From: "EUR", To: "GBP"}, q)
}

func TestCombineFromHistoryNothingInCurrentMessage(t *testing.T) {
	history := []domain.Message{userMsg("usd to eur"), userMsg("100")}

	_, ok := CombineFromHistory("what about packing?", history, HistoryOptions{AllowAmountFromHistory: true})
	assert.False(t, ok, "a message with no currency parts never combines")
}

func TestCombineFromHistoryUsesNewestMatch(t *testing.T) {
	history := []domain.Message{
		userMsg("usd to ils"),
		assistantMsg("What amount?"),
		userMsg("actually eur to gbp"),
		assistantMsg("What amount?"),
	}

	q, ok := CombineFromHistory("25", history, HistoryOptions{})
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 25, From: "EUR", To: "GBP"}, q)
}

func TestCombineFromHistoryRespectsLookbackBound(t *testing.T) {
	history := []domain.Message{userMsg("usd to eur")}
	for i := 0; i < 10; i++ {
		history = append(history, userMsg(fmt.Sprintf("note %d about the trip", i)))
	}

	_, ok := CombineFromHistory("100", history, HistoryOptions{MaxLookbackUserMessages: 5})
	assert.False(t, ok, "pair older than the lookback bound is not found")

	q, ok := CombineFromHistory("100", history, HistoryOptions{MaxLookbackUserMessages: 11})
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 100, From: "USD", To: "EUR"}, q)
}
