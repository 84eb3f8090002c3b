// Package weather holds the deterministic routing rules for weather queries:
// month/seasonal phrasing detection and the forecast-horizon window check the
// router applies before ever calling the forecast tool.
package weather

import (
	"regexp"
	"strings"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// DefaultForecastHorizonDays is the furthest day the external forecast
// provider can answer for, counted contiguously from today.
const DefaultForecastHorizonDays = 16

var monthRe = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)

// MentionsMonth reports whether the text names a month, which signals a
// seasonal question rather than an exact-forecast one.
func MentionsMonth(text string) bool {
	return monthRe.MatchString(text)
}

var seasonalTriggers = []string{
	"usually", "typical", "around this time of year", "on average", "generally",
}

// IsSeasonalQuestion reports whether the text uses seasonal hedging phrasing.
func IsSeasonalQuestion(text string) bool {
	t := strings.ToLower(text)
	for _, trigger := range seasonalTriggers {
		if strings.Contains(t, trigger) {
			return true
		}
	}
	return false
}

// WithinForecastWindow reports whether the trip's date window can be served
// by the forecast tool: no dates counts as "today", a missing endpoint is
// normalized to the other one, past or inverted ranges are rejected, and both
// endpoints plus the range length must fall inside the horizon.
func WithinForecastWindow(trip domain.TripProfile, today time.Time, horizonDays int) bool {
	if horizonDays <= 0 {
		horizonDays = DefaultForecastHorizonDays
	}
	today = truncateToDay(today)

	start := trip.StartDate
	end := trip.EndDate

	if start == nil && end == nil {
		return true
	}
	if start == nil {
		start = end
	}
	if end == nil {
		end = start
	}

	s := truncateToDay(*start)
	e := truncateToDay(*end)

	if e.Before(s) {
		return false
	}
	if e.Before(today) {
		return false
	}
	if daysBetween(today, s) > horizonDays {
		return false
	}
	if daysBetween(today, e) > horizonDays {
		return false
	}
	if daysBetween(s, e)+1 > horizonDays {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
