package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

// tripContext is the JSON-safe view of the trip profile injected into prompts.
type tripContext struct {
	Destination  *string  `json:"destination"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	DurationDays *int     `json:"duration_days"`
	Budget       *string  `json:"budget"`
	Travelers    *string  `json:"travelers"`
	Interests    []string `json:"interests"`
	Pace         *string  `json:"pace"`
	Constraints  []string `json:"constraints"`
}

func newTripContext(trip domain.TripProfile) tripContext {
	ctx := tripContext{
		Destination:  optString(trip.Destination),
		DurationDays: trip.DurationDays,
		Budget:       optString(trip.Budget),
		Travelers:    optString(trip.Travelers),
		Interests:    emptyIfNil(trip.Interests),
		Pace:         optString(trip.Pace),
		Constraints:  emptyIfNil(trip.Constraints),
	}
	if trip.StartDate != nil {
		s := domain.FormatDate(trip.StartDate)
		ctx.StartDate = &s
	}
	if trip.EndDate != nil {
		s := domain.FormatDate(trip.EndDate)
		ctx.EndDate = &s
	}
	return ctx
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func marshalCompact(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func historyBlock(recent []domain.Message) string {
	if len(recent) == 0 {
		return ""
	}
	var lines []string
	for _, m := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return "\n\nRecent conversation:\n" + strings.Join(lines, "\n")
}
