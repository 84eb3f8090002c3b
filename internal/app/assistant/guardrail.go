package assistant

import (
	"context"
	"regexp"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/weather"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// looksLikeFullMonthRange detects a "January (no year)" classification: first
// of a month through its last day, same month and year.
func looksLikeFullMonthRange(start, end time.Time) bool {
	if start.Year() != end.Year() || start.Month() != end.Month() {
		return false
	}
	if start.Day() != 1 {
		return false
	}
	switch end.Day() {
	case 28, 29, 30, 31:
		return true
	}
	return false
}

// rollMonthWithoutYearForward keeps month-only dates on the next occurrence of
// that month. When the classifier resolved "January" to a full-month range
// that already passed, the range rolls forward one year. A roll that lands on
// an invalid date clears both endpoints so validation re-asks for dates.
func rollMonthWithoutYearForward(ctx context.Context, userMessage string, st *domain.State, now time.Time) {
	if !weather.MentionsMonth(userMessage) || yearRe.MatchString(userMessage) {
		return
	}

	start := st.TripProfile.StartDate
	end := st.TripProfile.EndDate
	if start == nil || end == nil {
		return
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !looksLikeFullMonthRange(*start, *end) || !end.Before(today) {
		return
	}

	rolledStart := start.AddDate(1, 0, 0)
	rolledEnd := end.AddDate(1, 0, 0)
	log := observability.LoggerFromContext(ctx)

	// AddDate normalizes overflow (e.g. Feb 29 to Mar 1). A month change
	// means the rolled date does not exist; clear dates and re-ask.
	if rolledStart.Month() != start.Month() || rolledEnd.Month() != end.Month() {
		st.TripProfile.StartDate = nil
		st.TripProfile.EndDate = nil
		log.Debug("rolled month-only dates were invalid, cleared to force clarification")
		return
	}

	st.TripProfile.StartDate = &rolledStart
	st.TripProfile.EndDate = &rolledEnd
	log.Debug("rolled month-only dates forward one year",
		"start", domain.FormatDate(st.TripProfile.StartDate),
		"end", domain.FormatDate(st.TripProfile.EndDate),
	)
}
