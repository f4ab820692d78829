package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	SessionTTL   time.Duration
	BaseURL      string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
}

// Load parses configuration values from the current process environment.
//
// Every field has a sensible default; set values are validated and invalid
// entries are reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   3000,
		SQLiteDSN:  "file:yamp.db",
		SessionTTL: 24 * time.Hour,
		BaseURL:    "http://localhost:3000",
		SMTPHost:   "localhost",
		SMTPPort:   587,
		MailFrom:   "mailforyamp@gmail.com",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("YAMP_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "YAMP_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("YAMP_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("YAMP_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "YAMP_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv("YAMP_BASE_URL")); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if host := strings.TrimSpace(os.Getenv("YAMP_SMTP_HOST")); host != "" {
		cfg.SMTPHost = host
	}

	if portValue := strings.TrimSpace(os.Getenv("YAMP_SMTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "YAMP_SMTP_PORT")
		} else {
			cfg.SMTPPort = port
		}
	}

	cfg.SMTPUsername = strings.TrimSpace(os.Getenv("YAMP_SMTP_USER"))
	cfg.SMTPPassword = os.Getenv("YAMP_SMTP_PASS")

	if from := strings.TrimSpace(os.Getenv("YAMP_MAIL_FROM")); from != "" {
		cfg.MailFrom = from
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
