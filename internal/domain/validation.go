package domain

// ValidationResult reports whether a goal has enough trip info to proceed.
// MissingInfo lists unmet required fields in order; callers typically act on
// the first entry only. Problems lists semantic violations of facts that are
// present (e.g. a non-positive duration).
type ValidationResult struct {
	OK          bool
	MissingInfo []string
	Problems    []string
}
