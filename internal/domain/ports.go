package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by read-only session lookups.
var ErrSessionNotFound = errors.New("session not found")

// TextGenerator defines how the core calls the generative-text collaborator.
// Implementations must return a non-empty string or an error; callers treat
// empty text on success as a failure.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// WeatherDay is the forecast summary for the first day of the requested range.
type WeatherDay struct {
	TempMinC   *float64 `json:"temp_min_c"`
	TempMaxC   *float64 `json:"temp_max_c"`
	PrecipMM   *float64 `json:"precip_mm"`
	WindMaxKMH *float64 `json:"wind_max_kmh"`
}

// WeatherReport is the structured result of a weather tool call.
type WeatherReport struct {
	Source    string     `json:"source"`
	Location  string     `json:"location"`
	Timeframe string     `json:"timeframe"`
	Today     WeatherDay `json:"today"`
}

// CurrencyConversion is the structured result of a currency tool call. Its
// numbers are the only source of truth for any converted amount shown to the
// user.
type CurrencyConversion struct {
	Source          string  `json:"source"`
	Date            string  `json:"date"`
	Base            string  `json:"base"`
	To              string  `json:"to"`
	Rate            float64 `json:"rate"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
}

// ToolData bundles whichever tool result is attached to a generation pass.
// A nil *ToolData (or both fields nil) means no tool ran this turn.
type ToolData struct {
	Weather  *WeatherReport      `json:"weather,omitempty"`
	Currency *CurrencyConversion `json:"currency,omitempty"`
}

// Empty reports whether no tool data is attached.
func (t *ToolData) Empty() bool {
	return t == nil || (t.Weather == nil && t.Currency == nil)
}

// WeatherTool is the external forecast collaborator.
type WeatherTool interface {
	Forecast(ctx context.Context, trip TripProfile) (*WeatherReport, error)
}

// CurrencyTool is the external exchange-rate collaborator.
type CurrencyTool interface {
	Convert(ctx context.Context, amount float64, from, to string) (*CurrencyConversion, error)
}

// SessionStore owns session state lifecycle. Implementations must support
// safe concurrent creation/lookup across session ids; Acquire gives callers
// the per-session critical section that serializes a whole turn (and the
// expiry sweep) for one id.
type SessionStore interface {
	// Acquire blocks until the per-session lock for id is held and returns
	// its release function.
	Acquire(id SessionID) (release func())

	// GetOrCreate returns the existing state or lazily creates a fresh one.
	GetOrCreate(id SessionID) (*State, error)

	// Peek returns a consistent copy of the existing state without creating
	// one, safe to read while turns keep running. Returns ErrSessionNotFound
	// for unknown ids.
	Peek(id SessionID) (*State, error)

	// AppendMessage appends to history, refreshes the updated timestamp and
	// trims history to the configured bound.
	AppendMessage(id SessionID, role Role, content string) (*State, error)

	// IncrementTurn bumps the turn counter and refreshes the timestamp.
	IncrementTurn(st *State)

	// SweepExpired removes sessions idle longer than the TTL and returns the
	// number removed.
	SweepExpired(now time.Time) int
}
