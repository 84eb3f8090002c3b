package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"convert 100 usd to eur", 100, true},
		{"1,200", 1200, true},
		{"200.50", 200.5, true},
		{"0", 0, false},
		{"no numbers here", 0, false},
		{"make day 3 more relaxed", 0, false},
		{"i have 100 usd with me", 100, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.text)
		assert.Equal(t, tt.wantOK, ok, "text=%q", tt.text)
		if tt.wantOK {
			assert.InDelta(t, tt.want, got, 1e-9, "text=%q", tt.text)
		}
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		text     string
		from, to string
		wantOK   bool
	}{
		{"usd to eur", "USD", "EUR", true},
		{"USD in ILS", "USD", "ILS", true},
		{"EUR/GBP", "EUR", "GBP", true},
		{"usd-eur", "USD", "EUR", true},
		{"dollars to shekels", "USD", "ILS", true},
		{"$ to €", "USD", "EUR", true},
		{"usd to usd", "", "", false},
		{"nothing here", "", "", false},
	}

	for _, tt := range tests {
		from, to, ok := ParsePair(tt.text)
		require.Equal(t, tt.wantOK, ok, "text=%q", tt.text)
		if ok {
			assert.Equal(t, tt.from, from, "text=%q", tt.text)
			assert.Equal(t, tt.to, to, "text=%q", tt.text)
		}
	}
}

func TestParseQuery(t *testing.T) {
	q, ok := ParseQuery("convert 100 usd to eur please")
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 100, From: "USD", To: "EUR"}, q)

	q, ok = ParseQuery("USD to EUR 250")
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 250, From: "USD", To: "EUR"}, q)

	q, ok = ParseQuery("1,200 dollars to shekels")
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 1200, From: "USD", To: "ILS"}, q)

	q, ok = ParseQuery("convert 100 nis to usd")
	require.True(t, ok)
	assert.Equal(t, Query{Amount: 100, From: "ILS", To: "USD"}, q, "nis maps to its ISO code")

	_, ok = ParseQuery("usd to eur")
	assert.False(t, ok, "pair without amount is not a full query")

	_, ok = ParseQuery("100")
	assert.False(t, ok, "amount without pair is not a full query")
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"usd", "USD", true},
		{"USD", "USD", true},
		{"dollars", "USD", true},
		{"$", "USD", true},
		{"€", "EUR", true},
		{"₪", "ILS", true},
		{"nis", "ILS", true},
		{"chf", "CHF", true},
		{"banana", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeToken(tt.in)
		assert.Equal(t, tt.wantOK, ok, "in=%q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "in=%q", tt.in)
		}
	}
}
