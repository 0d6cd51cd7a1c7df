package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobs")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://careers.salesforce.com/en/jobs/", cfg.CareersURL)
	assert.Equal(t, "Software Engineering", cfg.SearchTeam)
	assert.Equal(t, "New Grads", cfg.SearchType)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, time.Hour, cfg.Lookback)
	assert.Equal(t, NotifyConsole, cfg.NotifyMode)
	assert.Equal(t, []string{"09:00", "15:00", "21:00"}, cfg.ScheduleTimes)
	assert.Contains(t, cfg.TitleFilters, "new grad")
	assert.Empty(t, cfg.ExcludeTerms)
	assert.True(t, cfg.RunOnStart)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobs")
	t.Setenv("REDIS_URL", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_LOOKBACK", "30m")
	t.Setenv("SCHEDULE_TIMES", "08:15, 20:45")
	t.Setenv("TITLE_KEYWORDS", "engineer,intern")
	t.Setenv("EXCLUDE_TERMS", "senior, staff")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Lookback)
	assert.Equal(t, []string{"08:15", "20:45"}, cfg.ScheduleTimes)
	assert.Equal(t, []string{"engineer", "intern"}, cfg.TitleFilters)
	assert.Equal(t, []string{"senior", "staff"}, cfg.ExcludeTerms)
}

func TestLoad_BadScheduleTime(t *testing.T) {
	setRequired(t)
	t.Setenv("SCHEDULE_TIMES", "9am")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULE_TIMES")
}

func TestLoad_EmailModeValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_MODE", "email")
	_, err := Load()
	require.Error(t, err, "email mode without SMTP settings must fail fast")

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_FROM", "watcher@example.com")
	t.Setenv("EMAIL_TO", "me@example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoad_WebhookModeValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_MODE", "webhook")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("WEBHOOK_URL", "https://example.com/hook")
	_, err = Load()
	require.NoError(t, err)
}

func TestLoad_UnknownNotifyMode(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_MODE", "pager")
	_, err := Load()
	require.Error(t, err)
}
