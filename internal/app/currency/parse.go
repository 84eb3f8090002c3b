// Package currency implements the deterministic currency-phrase resolver:
// single-message parsing of amounts and currency pairs, and cross-message
// combination of partial results. Keeping this out of the LLM makes the
// conversion flow reliable and testable.
package currency

import (
	"regexp"
	"strconv"
	"strings"
)

// Query is a fully resolved conversion request.
type Query struct {
	Amount float64
	From   string
	To     string
}

const (
	amountPattern = `(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)`
	tokenPattern  = `([A-Za-z$₪€]+)`
)

var (
	dayNumberRe     = regexp.MustCompile(`(?i)\bday\s+\d+\b`)
	currencyTokenRe = regexp.MustCompile(`(?i)[$€₪]|usd|eur|ils|gbp|jpy|dollar|euro|shekel|pound|yen`)

	amountRe = regexp.MustCompile(`\b` + amountPattern + `\b`)

	pairToRe  = regexp.MustCompile(`(?i)` + tokenPattern + `\s*(?:to|in)\s*` + tokenPattern)
	pairSepRe = regexp.MustCompile(`(?i)` + tokenPattern + `\s*[/\-]\s*` + tokenPattern)

	amountFirstRe = regexp.MustCompile(`(?i)\b` + amountPattern + `\b\s*` + tokenPattern + `\s*(?:to|in)\s*` + tokenPattern)
	pairFirstRe   = regexp.MustCompile(`(?i)` + tokenPattern + `\s*to\s*` + tokenPattern + `\s*\b` + amountPattern + `\b`)

	nonCurrencyRuneRe = regexp.MustCompile(`[^a-z$₪€]`)
)

var aliases = map[string]string{
	"dollar": "USD", "dollars": "USD", "$": "USD", "usd": "USD",
	"euro": "EUR", "euros": "EUR", "eur": "EUR", "€": "EUR",
	"shekel": "ILS", "shekels": "ILS", "nis": "ILS", "ils": "ILS", "₪": "ILS",
	"pound": "GBP", "pounds": "GBP", "gbp": "GBP",
	"yen": "JPY", "jpy": "JPY",
}

// normalizeToken maps inputs like "$" / "dollars" / "usd" onto "USD".
func normalizeToken(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	t = nonCurrencyRuneRe.ReplaceAllString(t, "")
	if t == "" {
		return "", false
	}

	// Aliases win over the generic 3-letter rule: "nis" is ILS, not a code.
	if code, ok := aliases[t]; ok {
		return code, true
	}

	if len(t) == 3 && isAlpha(t) {
		return strings.ToUpper(t), true
	}
	return "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// parseAmountString parses "1,200" safely and rejects non-positive values.
func parseAmountString(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseAmount extracts a conversion amount from a message. Numbers in "day N"
// phrasing are rejected unless a currency token appears in the same message,
// so itinerary day counts never read as money.
func ParseAmount(text string) (float64, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, false
	}

	if dayNumberRe.MatchString(t) && !currencyTokenRe.MatchString(t) {
		return 0, false
	}

	m := amountRe.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	return parseAmountString(m[1])
}

// ParsePair extracts a currency pair from patterns like "usd to eur",
// "EUR/GBP", "usd-eur", "$ to €".
func ParsePair(text string) (from, to string, ok bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", "", false
	}

	for _, re := range []*regexp.Regexp{pairToRe, pairSepRe} {
		m := re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		a, okA := normalizeToken(m[1])
		b, okB := normalizeToken(m[2])
		if okA && okB && a != b {
			return a, b, true
		}
	}
	return "", "", false
}

// ParseQuery extracts a full conversion query from one message, accepting both
// "convert 100 usd to eur" and "USD to EUR 100" orderings.
func ParseQuery(text string) (Query, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Query{}, false
	}

	if m := amountFirstRe.FindStringSubmatch(t); m != nil {
		amount, okAmt := parseAmountString(m[1])
		from, okFrom := normalizeToken(m[2])
		to, okTo := normalizeToken(m[3])
		if okAmt && okFrom && okTo && from != to {
			return Query{Amount: amount, From: from, To: to}, true
		}
	}

	if m := pairFirstRe.FindStringSubmatch(t); m != nil {
		from, okFrom := normalizeToken(m[1])
		to, okTo := normalizeToken(m[2])
		amount, okAmt := parseAmountString(m[3])
		if okAmt && okFrom && okTo && from != to {
			return Query{Amount: amount, From: from, To: to}, true
		}
	}

	return Query{}, false
}
