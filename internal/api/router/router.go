package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/psychclinic/psychbot/internal/http/handlers"
	httpmiddleware "github.com/psychclinic/psychbot/internal/http/middleware"
	"github.com/psychclinic/psychbot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *handlers.IntakeHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.IntakeHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/conversations", func(r chi.Router) {
		r.Post("/message", cfg.IntakeHandler.HandleMessage)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Post("/abandon", cfg.IntakeHandler.HandleAbandon)
			r.Get("/transcript", cfg.IntakeHandler.HandleTranscript)
		})
	})

	r.Post("/bookings/validate", cfg.IntakeHandler.HandleValidate)

	return r
}
