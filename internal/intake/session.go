package intake

import (
	"time"
)

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one utterance in a session transcript. Immutable once appended.
type Turn struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// State is the booking completion state of a session.
type State string

const (
	// StateEmpty: no booking in progress.
	StateEmpty State = "empty"
	// StatePartial: some fields collected, booking in progress. Intent is
	// sticky in this state — every allowed utterance routes to extraction.
	StatePartial State = "partial"
	// StateComplete: all fields collected; transient, resolved within the
	// same turn by finalization.
	StateComplete State = "complete"
	// StateAbandoned: the user explicitly dropped the booking. The record is
	// cleared; the transcript survives.
	StateAbandoned State = "abandoned"
)

// Greeting is the assistant's opening line, seeded into every new transcript.
const Greeting = "Hello! I'm PsychBot, your virtual receptionist for Dr. Sarah Tan's psychotherapy clinic. How can I help you today?"

// SessionState owns one booking record and the conversation transcript for a
// single session. Sessions never share records; concurrent sessions each get
// their own instance keyed by ID.
type SessionState struct {
	ID         string        `json:"id"`
	State      State         `json:"state"`
	Record     BookingRecord `json:"record"`
	Transcript []Turn        `json:"transcript"`
}

// NewSessionState creates a fresh session with an empty record and the
// assistant greeting as the first transcript turn.
func NewSessionState(id string, now time.Time) *SessionState {
	return &SessionState{
		ID:     id,
		State:  StateEmpty,
		Record: BookingRecord{},
		Transcript: []Turn{
			{Speaker: SpeakerAssistant, Text: Greeting, At: now},
		},
	}
}

// AppendTurn adds a turn to the transcript. The transcript is append-only and
// persists for the life of the session.
func (s *SessionState) AppendTurn(speaker Speaker, text string, at time.Time) {
	s.Transcript = append(s.Transcript, Turn{Speaker: speaker, Text: text, At: at})
}

// ResetRecord clears the booking record. Called after a successful
// finalization and on abandonment; never removes transcript turns.
func (s *SessionState) ResetRecord() {
	s.Record = BookingRecord{}
}

// BookingInProgress reports whether intent stickiness applies: a session with
// partial booking data keeps routing on-topic utterances to extraction even
// when a single utterance carries no explicit booking keyword.
func (s *SessionState) BookingInProgress() bool {
	return s.State == StatePartial && len(s.Record) > 0
}
