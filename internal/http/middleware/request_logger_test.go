package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/psychclinic/psychbot/pkg/logging"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	})

	req := httptest.NewRequest(http.MethodPost, "/conversations/message", nil)
	req.Header.Set("X-Session-Id", "s1")
	rec := httptest.NewRecorder()
	RequestLogger(logging.New("error"))(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != "done" {
		t.Fatalf("body = %q, want pass-through", rec.Body.String())
	}
}

func TestRequestLoggerNilLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	RequestLogger(nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	// A handler that never calls WriteHeader logs 200.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	RequestLogger(logging.New("error"))(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want implicit %d", rec.Code, http.StatusOK)
	}
}
