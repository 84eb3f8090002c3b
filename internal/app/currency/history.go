package currency

import (
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// DefaultMaxLookback bounds how many prior user messages are scanned when
// combining a partial query with history.
const DefaultMaxLookback = 10

// HistoryOptions control cross-message combination.
type HistoryOptions struct {
	// MaxLookbackUserMessages caps the reverse scan over prior user
	// messages; zero means DefaultMaxLookback.
	MaxLookbackUserMessages int

	// AllowAmountFromHistory permits backfilling the amount from a prior
	// message. Callers enable this only when the outstanding clarification
	// slot is the amount itself, so unrelated numbers (itinerary day counts)
	// are never misread as money.
	AllowAmountFromHistory bool
}

type parts struct {
	amount    float64
	hasAmount bool
	from, to  string
	hasPair   bool
}

func extractParts(text string) parts {
	if q, ok := ParseQuery(text); ok {
		return parts{amount: q.Amount, hasAmount: true, from: q.From, to: q.To, hasPair: true}
	}

	var p parts
	if amount, ok := ParseAmount(text); ok {
		p.amount = amount
		p.hasAmount = true
	}
	if from, to, ok := ParsePair(text); ok {
		p.from, p.to = from, to
		p.hasPair = true
	}
	return p
}

// CombineFromHistory resolves a complete query from the current message plus
// prior user messages. When the current message yields only a partial result,
// prior user messages are scanned newest-first (bounded) to fill whichever
// field is still missing; scanning stops as soon as both are satisfied.
// History must exclude the current message.
func CombineFromHistory(userMessage string, history []domain.Message, opts HistoryOptions) (Query, bool) {
	if q, ok := ParseQuery(userMessage); ok {
		return q, true
	}

	now := extractParts(userMessage)
	if !now.hasAmount && !now.hasPair {
		return Query{}, false
	}

	maxLookback := opts.MaxLookbackUserMessages
	if maxLookback <= 0 {
		maxLookback = DefaultMaxLookback
	}

	var found parts
	lookback := 0

	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.Role != domain.RoleUser {
			continue
		}
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}

		lookback++
		if lookback > maxLookback {
			break
		}

		prev := extractParts(text)

		if !found.hasPair && prev.hasPair {
			found.from, found.to = prev.from, prev.to
			found.hasPair = true
		}
		if opts.AllowAmountFromHistory && !found.hasAmount && prev.hasAmount {
			found.amount = prev.amount
			found.hasAmount = true
		}

		needAmount := !now.hasAmount
		needPair := !now.hasPair
		if (!needAmount || found.hasAmount) && (!needPair || found.hasPair) {
			break
		}
	}

	amount, hasAmount := now.amount, now.hasAmount
	if !hasAmount {
		amount, hasAmount = found.amount, found.hasAmount
	}
	from, to, hasPair := now.from, now.to, now.hasPair
	if !hasPair {
		from, to, hasPair = found.from, found.to, found.hasPair
	}

	if !hasAmount || !hasPair {
		return Query{}, false
	}
	return Query{Amount: amount, From: from, To: to}, true
}
