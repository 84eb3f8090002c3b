package respond

import "strings"

var alwaysDropPrefixes = []string{
	"the user",
	"my plan",
	"i will",
	"i'll",
	"i am going to",
	"here's my plan",
	"i have weather data",
}

var softDropPrefixes = []string{"okay", "ok", "sure", "alright", "got it"}

var weatherDropPrefixes = []string{
	"here's the weather",
	"here is the weather",
	"here are the weather",
	"here's the forecast",
	"here is the forecast",
}

// CleanOutput removes filler preamble lines from the leading run of the text
// without touching actual content. Soft filler ("Okay, ...") is dropped only
// when short; weather-intro lines get a slightly longer allowance.
func CleanOutput(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleaned []string
	skipping := true

	for _, ln := range lines {
		ln = strings.TrimRight(ln, " \t")
		low := strings.ToLower(strings.TrimSpace(ln))
		lowNorm := strings.TrimRight(low, ":,.-! ")

		if skipping {
			if lowNorm == "" {
				continue
			}
			if hasAnyPrefix(lowNorm, alwaysDropPrefixes) {
				continue
			}
			if hasAnyPrefix(lowNorm, softDropPrefixes) && len(lowNorm) <= 40 {
				continue
			}
			if hasAnyPrefix(lowNorm, weatherDropPrefixes) && len(lowNorm) <= 80 {
				continue
			}
		}

		skipping = false
		cleaned = append(cleaned, ln)
	}

	out := strings.TrimSpace(strings.Join(cleaned, "\n"))
	if out == "" {
		return strings.TrimSpace(text)
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func looksLikeToolCode(text string) bool {
	low := strings.ToLower(text)
	return strings.Contains(low, "```tool_code") ||
		strings.Contains(low, "currency_conversion(") ||
		strings.Contains(low, "weather(")
}

func stripToolCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```tool_code", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
