package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/psychclinic/psychbot/internal/calendar"
	"github.com/psychclinic/psychbot/internal/notify"
	"github.com/psychclinic/psychbot/pkg/logging"
)

// collaboratorTimeout bounds the fire-and-forget calendar/email dispatch.
const collaboratorTimeout = 10 * time.Second

// Confirmation is the artifact of a successful finalization.
type Confirmation struct {
	Name    string
	Email   string
	Start   time.Time
	Message string
}

// Finalizer validates a completed record end-to-end and renders the
// confirmation. Calendar and email collaborators are signalled off the
// response path; their failures are logged and swallowed, never surfaced as
// a booking failure.
type Finalizer struct {
	calendar      calendar.EventCreator
	email         notify.EmailSender
	clinicAddress string
	durationMins  int
	logger        *logging.Logger
}

// NewFinalizer creates a finalizer. Either collaborator may be nil, in which
// case that side effect is skipped.
func NewFinalizer(cal calendar.EventCreator, email notify.EmailSender, clinicAddress string, durationMins int, logger *logging.Logger) *Finalizer {
	if logger == nil {
		logger = logging.Default()
	}
	if durationMins <= 0 {
		durationMins = 50
	}
	return &Finalizer{
		calendar:      cal,
		email:         email,
		clinicAddress: clinicAddress,
		durationMins:  durationMins,
		logger:        logger,
	}
}

// ValidateRecord checks a record's completeness and field shapes without
// side effects. Used both by Finalize and by the quick-booking endpoint.
func ValidateRecord(rec BookingRecord) error {
	if missing := rec.Missing(); len(missing) > 0 {
		return fmt.Errorf("intake: missing required fields: %v", missing)
	}
	if !validName(rec[FieldName]) {
		return fmt.Errorf("intake: invalid name %q", rec[FieldName])
	}
	if got, ok := ExtractNRIC(rec[FieldNRIC]); !ok || got != rec[FieldNRIC] {
		return fmt.Errorf("intake: invalid NRIC format %q (expected e.g. S1234567A)", rec[FieldNRIC])
	}
	if got, ok := ExtractEmail(rec[FieldEmail]); !ok || got != rec[FieldEmail] {
		return fmt.Errorf("intake: invalid email address %q", rec[FieldEmail])
	}
	return nil
}

// Finalize validates the record, assembles the appointment instant, and
// returns the confirmation. On any parse/validation failure the error carries
// the underlying cause and the record must be preserved by the caller so the
// user can retry.
func (f *Finalizer) Finalize(ctx context.Context, rec BookingRecord) (*Confirmation, error) {
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", rec[FieldDate])
	if err != nil {
		return nil, fmt.Errorf("intake: invalid appointment date %q: %w", rec[FieldDate], err)
	}
	clock, err := time.Parse("15:04", rec[FieldTime])
	if err != nil {
		return nil, fmt.Errorf("intake: invalid appointment time %q: %w", rec[FieldTime], err)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)

	conf := &Confirmation{
		Name:    rec[FieldName],
		Email:   rec[FieldEmail],
		Start:   start,
		Message: f.confirmationMessage(rec[FieldName], rec[FieldEmail], start),
	}

	// Fire-and-forget: the user-facing confirmation never waits on, or fails
	// because of, the external collaborators.
	go f.notifyCollaborators(conf)

	return conf, nil
}

func (f *Finalizer) confirmationMessage(name, email string, start time.Time) string {
	return fmt.Sprintf(`Appointment Successfully Booked!

Appointment Details:
- Patient: %s
- Date & Time: %s
- Location: %s

A confirmation email will be sent to %s`,
		name,
		start.Format("Monday, January 2, 2006 at 03:04 PM"),
		f.clinicAddress,
		email,
	)
}

// notifyCollaborators signals the calendar and email collaborators. Runs on
// its own goroutine with a fresh context so a slow collaborator cannot hold
// up the turn.
func (f *Finalizer) notifyCollaborators(conf *Confirmation) {
	ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
	defer cancel()

	if f.calendar != nil {
		summary := fmt.Sprintf("Appointment: %s", conf.Name)
		if err := f.calendar.CreateEvent(ctx, summary, conf.Start, f.durationMins); err != nil {
			f.logger.Error("calendar event creation failed", "patient", conf.Name, "error", err)
		}
	}

	if f.email != nil {
		msg := notify.EmailMessage{
			To:      conf.Email,
			ToName:  conf.Name,
			Subject: "Appointment Confirmation - Dr. Sarah Tan's Clinic",
			Body:    conf.Message,
		}
		if err := f.email.Send(ctx, msg); err != nil {
			f.logger.Error("confirmation email failed", "to", conf.Email, "error", err)
		}
	}
}
