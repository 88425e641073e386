package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psychclinic/psychbot/internal/observability/metrics"
	"github.com/psychclinic/psychbot/internal/safety"
	"github.com/psychclinic/psychbot/pkg/logging"
)

// KnowledgeResponder answers non-booking clinic questions. Implemented by the
// knowledge package; the service only needs the lookup.
type KnowledgeResponder interface {
	Answer(utterance string) string
}

// Reply is the displayable result of one conversation turn.
type Reply struct {
	SessionID string  `json:"session_id"`
	Message   string  `json:"message"`
	Outcome   Outcome `json:"outcome"`
	State     State   `json:"state"`
}

// AbandonedMessage acknowledges a dropped booking.
const AbandonedMessage = "No problem, I've cancelled that booking. Let me know if you'd like to start again or have any questions about the clinic."

// Service routes each user utterance through the turn pipeline: safety gate
// first, then booking extraction or knowledge lookup, with the transcript and
// record persisted per session.
type Service struct {
	store       SessionStore
	knowledge   KnowledgeResponder
	engine      *Engine
	metrics     *metrics.IntakeMetrics
	logger      *logging.Logger
	now         func() time.Time
	bookingYear int
}

// NewService wires the turn pipeline. bookingYear pins the year bare dates
// resolve to; zero means the current year at time of each turn.
func NewService(store SessionStore, knowledge KnowledgeResponder, engine *Engine, m *metrics.IntakeMetrics, logger *logging.Logger, bookingYear int) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:       store,
		knowledge:   knowledge,
		engine:      engine,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
		bookingYear: bookingYear,
	}
}

// HandleTurn processes one user utterance for the session and returns the
// assistant reply. An empty sessionID starts a new session. Every turn, blocked
// or not, is appended to the transcript and the session saved.
func (s *Service) HandleTurn(ctx context.Context, sessionID, text string) (*Reply, error) {
	start := s.now()

	sess, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.AppendTurn(SpeakerUser, text, s.now())

	message, outcome := s.respond(ctx, sess, text)

	sess.AppendTurn(SpeakerAssistant, message, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("intake: failed to save session %s: %w", sess.ID, err)
	}

	s.metrics.ObserveTurn(string(outcome), s.now().Sub(start).Seconds())
	switch outcome {
	case OutcomeConfirmed:
		s.metrics.ObserveBooking(true)
	case OutcomeFinalizeFailed:
		s.metrics.ObserveBooking(false)
	}
	s.logger.Info("turn handled", "session_id", sess.ID, "outcome", outcome, "state", sess.State)

	return &Reply{SessionID: sess.ID, Message: message, Outcome: outcome, State: sess.State}, nil
}

// respond picks the branch for an utterance. Crisis and off-topic blocks win
// over everything, including an in-progress booking. Otherwise an utterance
// routes to the booking engine when a booking is in progress (sticky intent)
// or the utterance itself signals booking intent; all else goes to knowledge.
func (s *Service) respond(ctx context.Context, sess *SessionState, text string) (string, Outcome) {
	if gate := safety.Check(text); !gate.Allowed {
		s.logger.Warn("utterance blocked", "session_id", sess.ID, "rule", gate.Rule)
		if gate.Reason == safety.ReasonCrisis {
			return gate.Message, OutcomeCrisisBlocked
		}
		return gate.Message, OutcomeOffTopic
	}

	if sess.BookingInProgress() || DetectBookingIntent(text) {
		year := s.bookingYear
		if year == 0 {
			year = s.now().Year()
		}
		return s.engine.Step(ctx, sess, text, year)
	}

	return s.knowledge.Answer(text), OutcomeKnowledge
}

// AbandonBooking drops the in-progress record for a session. The transcript
// survives; the acknowledgement is appended to it.
func (s *Service) AbandonBooking(ctx context.Context, sessionID string) (*Reply, error) {
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.ResetRecord()
	sess.State = StateAbandoned
	sess.AppendTurn(SpeakerAssistant, AbandonedMessage, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("intake: failed to save session %s: %w", sess.ID, err)
	}

	s.metrics.ObserveTurn(string(OutcomeAbandoned), 0)
	s.logger.Info("booking abandoned", "session_id", sess.ID)
	return &Reply{SessionID: sess.ID, Message: AbandonedMessage, Outcome: OutcomeAbandoned, State: sess.State}, nil
}

// Transcript returns the session's full turn history.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]Turn, error) {
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Transcript, nil
}

func (s *Service) loadOrCreate(ctx context.Context, sessionID string) (*SessionState, error) {
	if sessionID == "" {
		return NewSessionState(uuid.NewString(), s.now()), nil
	}
	sess, err := s.store.Load(ctx, sessionID)
	if err == ErrSessionNotFound {
		return NewSessionState(sessionID, s.now()), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}
