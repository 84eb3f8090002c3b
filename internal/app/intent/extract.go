package intent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Parse methods, from strictest to loosest. Each attempt is tagged so the
// resolver can log which strategy recovered the object.
const (
	parseStrict         = "strict"
	parseStrippedFences = "stripped_fences"
	parseBalancedObject = "balanced_object"
	parseFailed         = "failed"
)

var (
	fenceOpenRe  = regexp.MustCompile(`(?i)^\s*` + "```" + `(?:json)?\s*`)
	fenceCloseRe = regexp.MustCompile(`\s*` + "```" + `\s*$`)
)

func stripCodeFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = fenceOpenRe.ReplaceAllString(t, "")
	t = fenceCloseRe.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// firstBalancedObject returns the first balanced {...} region of the text.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// extractObject runs the ordered chain of parsing strategies over raw model
// output: strict parse, fence-stripped parse, then first-balanced-object
// extraction. Returns the decoded object and the strategy tag.
func extractObject(raw string, dst any) (method string, ok bool) {
	trimmed := strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(trimmed), dst); err == nil {
		return parseStrict, true
	}

	cleaned := stripCodeFences(trimmed)
	if cleaned != trimmed {
		if err := json.Unmarshal([]byte(cleaned), dst); err == nil {
			return parseStrippedFences, true
		}
	}

	if candidate, found := firstBalancedObject(cleaned); found {
		if err := json.Unmarshal([]byte(candidate), dst); err == nil {
			return parseBalancedObject, true
		}
	}

	return parseFailed, false
}
