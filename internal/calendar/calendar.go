package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/psychclinic/psychbot/pkg/logging"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventCreator creates appointment events in an external calendar system.
// Callers treat it fire-and-forget: errors are logged, never surfaced to the
// patient.
type EventCreator interface {
	CreateEvent(ctx context.Context, summary string, start time.Time, durationMinutes int) error
}

// GoogleClient creates events through the Google Calendar API.
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
	logger     *logging.Logger
}

// NewGoogleClient builds a Google Calendar client from a service-account
// credentials file. Returns nil (no error) when calendarID is empty so the
// caller can fall back to the stub.
func NewGoogleClient(ctx context.Context, calendarID, credentialsPath string, logger *logging.Logger) (*GoogleClient, error) {
	if calendarID == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create google calendar service: %w", err)
	}
	return &GoogleClient{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// CreateEvent inserts an event of the given duration into the configured
// calendar.
func (c *GoogleClient) CreateEvent(ctx context.Context, summary string, start time.Time, durationMinutes int) error {
	if c == nil || c.svc == nil {
		return fmt.Errorf("calendar: google client not configured")
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	event := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	if _, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar: failed to insert event: %w", err)
	}
	c.logger.Info("calendar event created", "summary", summary, "start", start)
	return nil
}

// StubClient logs event creations without calling any external system.
type StubClient struct {
	logger *logging.Logger
}

// NewStubClient creates the logging stub.
func NewStubClient(logger *logging.Logger) *StubClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubClient{logger: logger}
}

// CreateEvent logs the would-be event and reports success.
func (c *StubClient) CreateEvent(ctx context.Context, summary string, start time.Time, durationMinutes int) error {
	c.logger.Info("stub calendar: would create event",
		"summary", summary,
		"start", start,
		"duration_minutes", durationMinutes,
	)
	return nil
}
