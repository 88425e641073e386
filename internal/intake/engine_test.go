package intake

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/psychclinic/psychbot/pkg/logging"
)

func newTestEngine() *Engine {
	logger := logging.New("error")
	fin := NewFinalizer(nil, nil, "123 Therapy Street, Singapore 123456", 50, logger)
	return NewEngine(fin, logger)
}

func TestStepPromptsForMissingFields(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())

	reply, outcome := engine.Step(context.Background(), sess, "I'd like to book an appointment. I'm John Tan, my NRIC is S1234567A", 2025)

	if outcome != OutcomePrompt {
		t.Fatalf("expected outcome %q, got %q", OutcomePrompt, outcome)
	}
	if sess.State != StatePartial {
		t.Fatalf("expected state %q, got %q", StatePartial, sess.State)
	}
	if !strings.Contains(reply, "Name: John Tan") {
		t.Errorf("prompt should echo held name, got:\n%s", reply)
	}
	if !strings.Contains(reply, "NRIC: S1234567A") {
		t.Errorf("prompt should echo held NRIC, got:\n%s", reply)
	}
	if !strings.Contains(reply, "Still need:") {
		t.Errorf("prompt should list missing fields, got:\n%s", reply)
	}
	if !strings.Contains(reply, "Your email address") {
		t.Errorf("prompt should ask for email, got:\n%s", reply)
	}
	if strings.Contains(reply, "Your full name") {
		t.Errorf("prompt should not ask for a field already held, got:\n%s", reply)
	}
}

func TestStepEchoesDateAndTimeInDisplayForm(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())

	reply, _ := engine.Step(context.Background(), sess, "book me for August 15 at 3pm", 2025)

	if !strings.Contains(reply, "Date: August 15, 2025") {
		t.Errorf("expected long date echo, got:\n%s", reply)
	}
	if !strings.Contains(reply, "Time: 03:00 PM") {
		t.Errorf("expected 12-hour time echo, got:\n%s", reply)
	}
}

func TestStepCompletesBookingAcrossTurns(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())
	ctx := context.Background()

	_, outcome := engine.Step(ctx, sess, "I'd like to book an appointment. I'm John Tan, my NRIC is S1234567A", 2025)
	if outcome != OutcomePrompt {
		t.Fatalf("first turn: expected %q, got %q", OutcomePrompt, outcome)
	}

	reply, outcome := engine.Step(ctx, sess, "john@example.com, August 15 at 3pm please", 2025)
	if outcome != OutcomeConfirmed {
		t.Fatalf("second turn: expected %q, got %q (reply: %s)", OutcomeConfirmed, outcome, reply)
	}
	if !strings.Contains(reply, "Appointment Successfully Booked!") {
		t.Errorf("expected confirmation header, got:\n%s", reply)
	}
	if !strings.Contains(reply, "Patient: John Tan") {
		t.Errorf("expected patient name in confirmation, got:\n%s", reply)
	}
	if !strings.Contains(reply, "Friday, August 15, 2025 at 03:00 PM") {
		t.Errorf("expected formatted date & time, got:\n%s", reply)
	}
	if !strings.Contains(reply, "A confirmation email will be sent to john@example.com") {
		t.Errorf("expected email notice, got:\n%s", reply)
	}

	if sess.State != StateEmpty {
		t.Errorf("expected session reset to %q after confirmation, got %q", StateEmpty, sess.State)
	}
	if len(sess.Record) != 0 {
		t.Errorf("expected record cleared after confirmation, got %v", sess.Record)
	}
}

func TestStepLastWriteWinsOnCorrection(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())
	ctx := context.Background()

	engine.Step(ctx, sess, "book me for August 15", 2025)
	reply, _ := engine.Step(ctx, sess, "actually make that September 2", 2025)

	if !strings.Contains(reply, "Date: September 2, 2025") {
		t.Errorf("expected corrected date, got:\n%s", reply)
	}
	if strings.Contains(reply, "August 15") {
		t.Errorf("old date should be overwritten, got:\n%s", reply)
	}
}

func TestStepKeepsRecordOnFinalizeFailure(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())
	// Complete record with a malformed NRIC, bypassing the extractors.
	sess.Record = BookingRecord{
		FieldName:  "John Tan",
		FieldNRIC:  "X9999999Z",
		FieldEmail: "john@example.com",
		FieldDate:  "2025-08-15",
		FieldTime:  "15:00",
	}

	reply, outcome := engine.Step(context.Background(), sess, "that's everything", 2025)

	if outcome != OutcomeFinalizeFailed {
		t.Fatalf("expected %q, got %q", OutcomeFinalizeFailed, outcome)
	}
	if !strings.Contains(reply, "Sorry, there was an error processing your booking") {
		t.Errorf("expected failure message, got:\n%s", reply)
	}
	if sess.State != StatePartial {
		t.Errorf("expected state %q so the user can retry, got %q", StatePartial, sess.State)
	}
	if sess.Record[FieldName] != "John Tan" {
		t.Errorf("record should be preserved on failure, got %v", sess.Record)
	}
}

func TestStepNoExtractionReissuesPrompt(t *testing.T) {
	engine := newTestEngine()
	sess := NewSessionState("s1", time.Now())
	ctx := context.Background()

	engine.Step(ctx, sess, "book me in, I'm John Tan", 2025)
	reply, outcome := engine.Step(ctx, sess, "hmm let me think", 2025)

	if outcome != OutcomePrompt {
		t.Fatalf("expected %q, got %q", OutcomePrompt, outcome)
	}
	if !strings.Contains(reply, "Name: John Tan") {
		t.Errorf("held fields should survive an empty extraction turn, got:\n%s", reply)
	}
}
