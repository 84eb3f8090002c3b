package domain

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TripProfile is the canonical trip context for a session. Everything else in
// the system reads from it; it is mutated only through ApplyUpdates and never
// reset except by session expiry.
type TripProfile struct {
	Destination string `json:"destination,omitempty"`

	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	DurationDays *int       `json:"duration_days,omitempty"`

	Budget    string `json:"budget,omitempty"`
	Travelers string `json:"travelers,omitempty"`

	Interests []string `json:"interests,omitempty"`
	Pace      string   `json:"pace,omitempty"`

	Constraints []string `json:"constraints,omitempty"`
}

// TripUpdates carries incremental trip facts extracted by the intent resolver.
// Pointer fields distinguish "not mentioned" from an explicit value; dates are
// ISO YYYY-MM-DD strings as produced by the resolver.
type TripUpdates struct {
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

// IsZero reports whether the update carries no information at all.
func (u TripUpdates) IsZero() bool {
	return u.Destination == nil && u.StartDate == nil && u.EndDate == nil &&
		u.DurationDays == nil && u.Budget == nil && u.Travelers == nil &&
		u.Pace == nil && len(u.Interests) == 0 && len(u.Constraints) == 0
}

// ApplyUpdates merges extracted facts into the profile. Empty strings and
// unparseable dates are ignored; list fields are deduplicated preserving
// first-seen order (exact case-sensitive match), so applying the same update
// twice is a no-op.
func (t *TripProfile) ApplyUpdates(u TripUpdates) {
	if u.IsZero() {
		return
	}

	if u.Destination != nil {
		if v := strings.TrimSpace(*u.Destination); v != "" {
			t.Destination = v
		}
	}

	if u.StartDate != nil {
		if d, ok := parseISODate(*u.StartDate); ok {
			t.StartDate = &d
		}
	}
	if u.EndDate != nil {
		if d, ok := parseISODate(*u.EndDate); ok {
			t.EndDate = &d
		}
	}

	// Note: non-positive durations are stored as-is; the validator reports
	// them as a problem rather than the profile silently rejecting them.
	if u.DurationDays != nil {
		v := *u.DurationDays
		t.DurationDays = &v
	}

	if u.Budget != nil {
		if v := strings.TrimSpace(*u.Budget); v != "" {
			t.Budget = v
		}
	}
	if u.Travelers != nil {
		if v := strings.TrimSpace(*u.Travelers); v != "" {
			t.Travelers = v
		}
	}
	if u.Pace != nil {
		if v := strings.TrimSpace(*u.Pace); v != "" {
			t.Pace = v
		}
	}

	t.Interests = mergeDistinct(t.Interests, u.Interests)
	t.Constraints = mergeDistinct(t.Constraints, u.Constraints)
}

// Clone returns an independent copy, duplicating pointer and slice fields.
func (t TripProfile) Clone() TripProfile {
	out := t
	if t.StartDate != nil {
		d := *t.StartDate
		out.StartDate = &d
	}
	if t.EndDate != nil {
		d := *t.EndDate
		out.EndDate = &d
	}
	if t.DurationDays != nil {
		v := *t.DurationDays
		out.DurationDays = &v
	}
	out.Interests = append([]string(nil), t.Interests...)
	out.Constraints = append([]string(nil), t.Constraints...)
	return out
}

// HasDatesOrDuration reports whether the itinerary requirement of
// "duration OR a full start+end date window" is met.
func (t *TripProfile) HasDatesOrDuration() bool {
	return t.DurationDays != nil || (t.StartDate != nil && t.EndDate != nil)
}

func mergeDistinct(existing, incoming []string) []string {
	for _, item := range incoming {
		cleaned := strings.TrimSpace(item)
		if cleaned == "" {
			continue
		}
		seen := false
		for _, have := range existing {
			if have == cleaned {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, cleaned)
		}
	}
	return existing
}

func parseISODate(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatDate renders a profile date in the ISO layout used across prompts.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
