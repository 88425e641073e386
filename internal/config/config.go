package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Session state backend: "memory" or "redis".
	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool

	// BookingYear is the logical year appointment dates resolve against.
	// 0 means "use the current year".
	BookingYear int

	// Clinic identity, echoed in confirmations and knowledge responses.
	ClinicName    string
	ClinicAddress string
	ClinicPhone   string
	ClinicEmail   string

	// Appointment defaults.
	AppointmentDurationMins int

	// SendGrid confirmation email configuration.
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Google Calendar configuration.
	GoogleCalendarID          string
	GoogleCredentialsJSONPath string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SessionBackend: strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", "memory"))),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),

		BookingYear: getEnvAsInt("BOOKING_YEAR", 0),

		ClinicName:    getEnv("CLINIC_NAME", "Dr. Sarah Tan's Psychotherapy Clinic"),
		ClinicAddress: getEnv("CLINIC_ADDRESS", "123 Therapy Street, Singapore 123456"),
		ClinicPhone:   getEnv("CLINIC_PHONE", "+65 6123 4567"),
		ClinicEmail:   getEnv("CLINIC_EMAIL", "appointments@drtanpsych.com"),

		AppointmentDurationMins: getEnvAsInt("APPOINTMENT_DURATION_MINS", 50),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "PsychBot"),

		GoogleCalendarID:          getEnv("GOOGLE_CALENDAR_ID", ""),
		GoogleCredentialsJSONPath: getEnv("GOOGLE_CREDENTIALS_JSON_PATH", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
