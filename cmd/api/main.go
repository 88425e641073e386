package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/psychclinic/psychbot/internal/api/router"
	"github.com/psychclinic/psychbot/internal/calendar"
	appconfig "github.com/psychclinic/psychbot/internal/config"
	"github.com/psychclinic/psychbot/internal/http/handlers"
	"github.com/psychclinic/psychbot/internal/intake"
	"github.com/psychclinic/psychbot/internal/knowledge"
	"github.com/psychclinic/psychbot/internal/notify"
	"github.com/psychclinic/psychbot/internal/observability/metrics"
	"github.com/psychclinic/psychbot/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting psychbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Session store: redis when configured, in-process memory otherwise.
	var store intake.SessionStore
	switch cfg.SessionBackend {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = intake.NewRedisSessionStore(client, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		store = intake.NewMemorySessionStore()
		logger.Info("using in-memory session store")
	}

	// Calendar: Google when configured, logging stub otherwise.
	var cal calendar.EventCreator
	googleCal, err := calendar.NewGoogleClient(context.Background(), cfg.GoogleCalendarID, cfg.GoogleCredentialsJSONPath, logger.Component("calendar"))
	if err != nil {
		logger.Error("failed to init google calendar client", "error", err)
		os.Exit(1)
	}
	if googleCal != nil {
		cal = googleCal
	} else {
		cal = calendar.NewStubClient(logger.Component("calendar"))
	}

	// Email: SendGrid when configured, logging stub otherwise.
	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger.Component("email")); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger.Component("email"))
	}

	intakeMetrics := metrics.NewIntakeMetrics(prometheus.DefaultRegisterer)

	finalizer := intake.NewFinalizer(cal, emailSender, cfg.ClinicAddress, cfg.AppointmentDurationMins, logger)
	engine := intake.NewEngine(finalizer, logger)
	responder := knowledge.NewStaticResponder(knowledge.Info{
		Name:    cfg.ClinicName,
		Address: cfg.ClinicAddress,
		Phone:   cfg.ClinicPhone,
		Email:   cfg.ClinicEmail,
	})
	service := intake.NewService(store, responder, engine, intakeMetrics, logger, cfg.BookingYear)

	routerCfg := &router.Config{
		Logger:             logger,
		IntakeHandler:      handlers.NewIntakeHandler(service, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
