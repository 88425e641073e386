package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/psychclinic/psychbot/pkg/logging"
)

func TestNewGoogleClientWithoutCalendarID(t *testing.T) {
	c, err := NewGoogleClient(context.Background(), "", "", logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil client when calendar ID is empty")
	}
}

func TestStubClientCreateEvent(t *testing.T) {
	c := NewStubClient(logging.New("error"))
	start := time.Date(2025, time.August, 15, 15, 0, 0, 0, time.Local)
	if err := c.CreateEvent(context.Background(), "Appointment: John Tan", start, 50); err != nil {
		t.Fatalf("stub create event returned error: %v", err)
	}
}
