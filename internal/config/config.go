// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process
// exits before touching the network or the database.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Notification transport selectors for NOTIFY_MODE.
const (
	NotifyConsole = "console"
	NotifyEmail   = "email"
	NotifyWebhook = "webhook"
)

// Config holds all runtime configuration for the watcher.
type Config struct {
	DatabaseURL string
	RedisURL    string

	// Careers page retrieval.
	CareersURL   string
	SearchTeam   string
	SearchType   string
	PageSize     int
	HTTPTimeout  time.Duration
	TitleFilters []string // keyword gate applied to extracted titles
	ExcludeTerms []string // exclusion terms; any match discards the candidate

	// Dedup / notification behaviour.
	Lookback time.Duration // recovery window for the recent-postings query
	LockTTL  time.Duration // redis run-lock expiry

	// Scheduling (watcher binary only). Times are local "HH:MM".
	ScheduleTimes   []string
	RunOnStart      bool
	ScheduleEnabled bool

	// Notification transport.
	NotifyMode string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	EmailTo   string

	WebhookURL string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	cfg := &Config{
		DatabaseURL: dbURL,
		RedisURL:    redisURL,

		CareersURL:  getenv("CAREERS_URL", "https://careers.salesforce.com/en/jobs/"),
		SearchTeam:  getenv("SEARCH_TEAM", "Software Engineering"),
		SearchType:  getenv("SEARCH_JOBTYPE", "New Grads"),
		PageSize:    getenvInt("SEARCH_PAGESIZE", 20),
		HTTPTimeout: getenvDuration("HTTP_TIMEOUT", 30*time.Second),

		Lookback: getenvDuration("NOTIFY_LOOKBACK", time.Hour),
		LockTTL:  getenvDuration("RUN_LOCK_TTL", 10*time.Minute),

		RunOnStart:      getenvBool("RUN_ON_START", true),
		ScheduleEnabled: getenvBool("SCHEDULE_ENABLED", true),

		NotifyMode: getenv("NOTIFY_MODE", NotifyConsole),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  getenvInt("SMTP_PORT", 587),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASSWORD"),
		EmailFrom: os.Getenv("EMAIL_FROM"),
		EmailTo:   os.Getenv("EMAIL_TO"),

		WebhookURL: os.Getenv("WEBHOOK_URL"),
	}

	cfg.TitleFilters = getenvList("TITLE_KEYWORDS",
		[]string{"engineer", "developer", "software", "new grad", "graduate"})
	cfg.ExcludeTerms = getenvList("EXCLUDE_TERMS", nil)
	cfg.ScheduleTimes = getenvList("SCHEDULE_TIMES", []string{"09:00", "15:00", "21:00"})

	for _, t := range cfg.ScheduleTimes {
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, fmt.Errorf("SCHEDULE_TIMES entry %q is not HH:MM", t)
		}
	}

	switch cfg.NotifyMode {
	case NotifyConsole:
	case NotifyEmail:
		if cfg.SMTPHost == "" || cfg.EmailFrom == "" || cfg.EmailTo == "" {
			return nil, fmt.Errorf("NOTIFY_MODE=email requires SMTP_HOST, EMAIL_FROM and EMAIL_TO")
		}
	case NotifyWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("NOTIFY_MODE=webhook requires WEBHOOK_URL")
		}
	default:
		return nil, fmt.Errorf("NOTIFY_MODE must be console, email or webhook, got %q", cfg.NotifyMode)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
