package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/psychclinic/psychbot/pkg/logging"
)

// Outcome labels what a turn resolved to, for logging and metrics.
type Outcome string

const (
	OutcomeCrisisBlocked  Outcome = "crisis_blocked"
	OutcomeOffTopic       Outcome = "off_topic"
	OutcomeKnowledge      Outcome = "knowledge"
	OutcomePrompt         Outcome = "prompt"
	OutcomeConfirmed      Outcome = "confirmed"
	OutcomeFinalizeFailed Outcome = "finalize_failed"
	OutcomeAbandoned      Outcome = "abandoned"
)

// fieldLabels are the display names used when echoing held fields.
var fieldLabels = map[Field]string{
	FieldName:  "Name",
	FieldNRIC:  "NRIC",
	FieldEmail: "Email",
	FieldDate:  "Date",
	FieldTime:  "Time",
}

// fieldPrompts are the fixed per-field asks, listed in canonical order for
// whichever fields are still missing.
var fieldPrompts = map[Field]string{
	FieldName:  "Your full name",
	FieldNRIC:  "Your NRIC/FIN number (e.g., S1234567A)",
	FieldEmail: "Your email address",
	FieldDate:  "Preferred appointment date (e.g., August 15)",
	FieldTime:  "Preferred appointment time (e.g., 3pm)",
}

// Engine drives the turn-by-turn booking dialogue: extract, merge, then
// either finalize or prompt for what's still missing. Extraction failure is
// never fatal — a turn that finds nothing just reissues the prompt.
type Engine struct {
	finalizer *Finalizer
	logger    *logging.Logger
}

// NewEngine creates a completion engine backed by the given finalizer.
func NewEngine(finalizer *Finalizer, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{finalizer: finalizer, logger: logger}
}

// Step processes one booking-intent-positive utterance against the session:
// runs all extractors, merges into the record, and transitions the state
// machine. Returns the assistant reply for this turn.
func (e *Engine) Step(ctx context.Context, sess *SessionState, utterance string, year int) (string, Outcome) {
	result := ExtractAll(utterance, year)
	sess.Record.Merge(result)

	missing := sess.Record.Missing()
	if len(missing) > 0 {
		sess.State = StatePartial
		return missingFieldsPrompt(sess.Record, missing), OutcomePrompt
	}

	sess.State = StateComplete
	conf, err := e.finalizer.Finalize(ctx, sess.Record)
	if err != nil {
		// Record is kept so the user can correct and retry.
		sess.State = StatePartial
		e.logger.Warn("booking finalization failed", "session_id", sess.ID, "error", err)
		return fmt.Sprintf("Sorry, there was an error processing your booking: %v. Please check the details and try again.", err), OutcomeFinalizeFailed
	}

	sess.ResetRecord()
	sess.State = StateEmpty
	return conf.Message, OutcomeConfirmed
}

// missingFieldsPrompt echoes every held field in display form and lists the
// fixed ask for each missing field, both in canonical order.
func missingFieldsPrompt(record BookingRecord, missing []Field) string {
	var b strings.Builder
	b.WriteString("Thank you! Let me check what else I need:\n")

	held := false
	for _, field := range RequiredFields {
		if record[field] != "" {
			held = true
			break
		}
	}
	if held {
		b.WriteString("\nInformation I have:\n")
		for _, field := range RequiredFields {
			value := record[field]
			if value == "" {
				continue
			}
			switch field {
			case FieldDate:
				value = formatDateLong(value)
			case FieldTime:
				value = formatTime12(value)
			}
			fmt.Fprintf(&b, "- %s: %s\n", fieldLabels[field], value)
		}
	}

	b.WriteString("\nStill need:\n")
	for _, field := range missing {
		fmt.Fprintf(&b, "- %s\n", fieldPrompts[field])
	}

	b.WriteString("\nPlease provide the missing information!")
	return b.String()
}

// formatDateLong renders an ISO date as "August 15, 2025". Unparseable input
// is echoed back unchanged.
func formatDateLong(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}

// formatTime12 renders a 24-hour HH:MM as "03:00 PM". Unparseable input is
// echoed back unchanged.
func formatTime12(hm string) string {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return hm
	}
	return t.Format("03:04 PM")
}
