package domain

// State is the per-session dialogue state: the evolving trip profile, bounded
// conversation history, and the small "flow memory" fields that keep the
// clarification loop and goal tracking coherent across turns.
type State struct {
	SessionID   SessionID
	TripProfile TripProfile
	History     []Message

	// LastIntent is the current goal for follow-ups.
	LastIntent Intent

	// PrimaryIntent is the goal to resume after an interrupt such as a
	// currency side-query during itinerary planning.
	PrimaryIntent Intent

	TurnCount int

	// PendingMissingInfo holds the single outstanding clarification slot.
	// Invariant: length <= 1.
	PendingMissingInfo []string

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// Clone returns an independent copy of the state for read-only consumers, so
// a snapshot can be inspected or serialized while the live session keeps
// changing.
func (s *State) Clone() *State {
	out := *s
	out.TripProfile = s.TripProfile.Clone()
	out.History = append([]Message(nil), s.History...)
	out.PendingMissingInfo = append([]string(nil), s.PendingMissingInfo...)
	return &out
}

// ActiveGoal returns LastIntent when it is a goal intent, "" otherwise.
func (s *State) ActiveGoal() Intent {
	if s.LastIntent.IsGoal() {
		return s.LastIntent
	}
	return ""
}

// PendingSlot returns the outstanding clarification slot, or "".
func (s *State) PendingSlot() string {
	if len(s.PendingMissingInfo) == 0 {
		return ""
	}
	return s.PendingMissingInfo[0]
}

// SetPending replaces the pending slot list, trimming to the single-slot
// invariant.
func (s *State) SetPending(missing []string) {
	if len(missing) > 1 {
		missing = missing[:1]
	}
	s.PendingMissingInfo = missing
}

// RecentMessages returns up to limit most recent history entries.
func (s *State) RecentMessages(limit int) []Message {
	if limit <= 0 || len(s.History) <= limit {
		return s.History
	}
	return s.History[len(s.History)-limit:]
}
