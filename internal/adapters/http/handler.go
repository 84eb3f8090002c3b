// Package httpadapter exposes the assistant over HTTP: the chat endpoint, a
// read-only state snapshot, health and Prometheus metrics.
package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NoaSegev3/travel-assistant-ai/internal/app/assistant"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

type Server struct {
	svc *assistant.Assistant
}

// NewServer builds the router around the assistant service. The metrics
// gatherer may be nil to skip the /metrics endpoint.
func NewServer(svc *assistant.Assistant, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(withCORS)

	r.Post("/chat", s.handleChat)
	r.Get("/state/{sessionID}", s.handleState)
	r.Get("/health", s.handleHealth)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

type chatRequest struct {
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
}

type chatResponse struct {
	SessionID        string `json:"session_id"`
	AssistantMessage string `json:"assistant_message"`
}

type messageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type tripProfileResponse struct {
	Destination  string   `json:"destination"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	DurationDays *int     `json:"duration_days,omitempty"`
	Budget       string   `json:"budget,omitempty"`
	Travelers    string   `json:"travelers,omitempty"`
	Interests    []string `json:"interests"`
	Pace         string   `json:"pace,omitempty"`
	Constraints  []string `json:"constraints"`
}

type stateResponse struct {
	SessionID          string              `json:"session_id"`
	TripProfile        tripProfileResponse `json:"trip_profile"`
	History            []messageResponse   `json:"conversation_history"`
	LastIntent         string              `json:"last_intent,omitempty"`
	PrimaryIntent      string              `json:"primary_intent,omitempty"`
	TurnCount          int                 `json:"turn_count"`
	PendingMissingInfo []string            `json:"pending_missing_info"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.SessionID == "" {
		badRequest(w, "session_id is required")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		badRequest(w, "user_message is required")
		return
	}

	reply, err := s.svc.HandleTurn(r.Context(), domain.SessionID(req.SessionID), req.UserMessage)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:        req.SessionID,
		AssistantMessage: reply,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	st, err := s.svc.Snapshot(r.Context(), domain.SessionID(id))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(st))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toStateResponse(st *domain.State) stateResponse {
	history := make([]messageResponse, 0, len(st.History))
	for _, m := range st.History {
		history = append(history, messageResponse{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return stateResponse{
		SessionID: string(st.SessionID),
		TripProfile: tripProfileResponse{
			Destination:  st.TripProfile.Destination,
			StartDate:    domain.FormatDate(st.TripProfile.StartDate),
			EndDate:      domain.FormatDate(st.TripProfile.EndDate),
			DurationDays: st.TripProfile.DurationDays,
			Budget:       st.TripProfile.Budget,
			Travelers:    st.TripProfile.Travelers,
			Interests:    emptyIfNilStrings(st.TripProfile.Interests),
			Pace:         st.TripProfile.Pace,
			Constraints:  emptyIfNilStrings(st.TripProfile.Constraints),
		},
		History:            history,
		LastIntent:         string(st.LastIntent),
		PrimaryIntent:      string(st.PrimaryIntent),
		TurnCount:          st.TurnCount,
		PendingMissingInfo: emptyIfNilStrings(st.PendingMissingInfo),
		CreatedAt:          st.CreatedAt,
		UpdatedAt:          st.UpdatedAt,
	}
}

func emptyIfNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
