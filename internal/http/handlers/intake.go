package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/psychclinic/psychbot/internal/intake"
	"github.com/psychclinic/psychbot/pkg/logging"
)

// IntakeHandler exposes the conversational intake service over HTTP.
type IntakeHandler struct {
	service *intake.Service
	logger  *logging.Logger
}

// NewIntakeHandler creates the intake HTTP handler.
func NewIntakeHandler(service *intake.Service, logger *logging.Logger) *IntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntakeHandler{service: service, logger: logger}
}

// MessageRequest is the request body for a conversation turn.
type MessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

// ValidateBookingRequest is the request body for quick booking validation.
type ValidateBookingRequest struct {
	Name  string `json:"name"`
	NRIC  string `json:"nric"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// ValidateBookingResponse reports whether a booking record is well-formed.
type ValidateBookingResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// TranscriptResponse wraps a session's turn history.
type TranscriptResponse struct {
	SessionID string        `json:"session_id"`
	Turns     []intake.Turn `json:"turns"`
}

// HandleMessage processes one conversation turn.
// POST /conversations/message
func (h *IntakeHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.HandleTurn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		h.logger.Error("failed to handle turn", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// HandleAbandon drops an in-progress booking for the session.
// POST /conversations/{sessionID}/abandon
func (h *IntakeHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		jsonError(w, "session ID is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.AbandonBooking(r.Context(), sessionID)
	if err == intake.ErrSessionNotFound {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to abandon booking", "session_id", sessionID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// HandleTranscript returns the full turn history for a session.
// GET /conversations/{sessionID}/transcript
func (h *IntakeHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		jsonError(w, "session ID is required", http.StatusBadRequest)
		return
	}

	turns, err := h.service.Transcript(r.Context(), sessionID)
	if err == intake.ErrSessionNotFound {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load transcript", "session_id", sessionID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, TranscriptResponse{SessionID: sessionID, Turns: turns})
}

// HandleValidate checks a booking record's shape without creating anything.
// POST /bookings/validate
func (h *IntakeHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	rec := intake.BookingRecord{
		intake.FieldName:  strings.TrimSpace(req.Name),
		intake.FieldNRIC:  strings.ToUpper(strings.TrimSpace(req.NRIC)),
		intake.FieldEmail: strings.ToLower(strings.TrimSpace(req.Email)),
		intake.FieldDate:  strings.TrimSpace(req.Date),
		intake.FieldTime:  strings.TrimSpace(req.Time),
	}
	if err := intake.ValidateRecord(rec); err != nil {
		writeJSON(w, http.StatusOK, ValidateBookingResponse{Valid: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ValidateBookingResponse{Valid: true})
}

// HealthCheck reports service liveness.
// GET /health
func (h *IntakeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
