package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/config"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

func sampleRecords() []model.PostingRecord {
	return []model.PostingRecord{
		{
			Title:      "Software Engineer, New Grad",
			Location:   "Remote",
			Team:       "Software Engineering",
			URL:        "https://careers.salesforce.com/en/jobs/1",
			PostedDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:      "Backend Developer",
			Location:   "Austin",
			Team:       "Software Engineering",
			PostedDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

// ── console ────────────────────────────────────────────────────────────────

func TestConsoleNotifier(t *testing.T) {
	var buf strings.Builder
	n := NewConsoleNotifier(&buf)

	require.NoError(t, n.Notify(context.Background(), sampleRecords()))

	out := buf.String()
	assert.Contains(t, out, "2 NEW JOB(S) FOUND!")
	assert.Contains(t, out, "Software Engineer, New Grad")
	assert.Contains(t, out, "Location: Remote")
	assert.Contains(t, out, "https://careers.salesforce.com/en/jobs/1")
	assert.Contains(t, out, "No URL available", "a record without a URL gets a placeholder")
	assert.Contains(t, out, "2026-08-31")
}

func TestConsoleNotifier_EmptyBatchWritesNothing(t *testing.T) {
	var buf strings.Builder
	n := NewConsoleNotifier(&buf)

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Empty(t, buf.String())
}

// ── webhook ────────────────────────────────────────────────────────────────

func TestWebhookNotifier(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 5*time.Second)
	require.NoError(t, n.Notify(context.Background(), sampleRecords()))

	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Postings, 2)
	assert.Equal(t, "Software Engineer, New Grad", got.Postings[0].Title)
}

func TestWebhookNotifier_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 5*time.Second)
	err := n.Notify(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookNotifier_EmptyBatchSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 5*time.Second)
	require.NoError(t, n.Notify(context.Background(), nil))
	assert.False(t, called)
}

// ── email body ─────────────────────────────────────────────────────────────

func TestRenderEmailBody(t *testing.T) {
	body := renderEmailBody(sampleRecords())

	assert.Contains(t, body, "Found 2 new job posting(s)")
	assert.Contains(t, body, "<strong>Software Engineer, New Grad</strong>")
	assert.Contains(t, body, `<a href="https://careers.salesforce.com/en/jobs/1">`)
	assert.Contains(t, body, "No URL available")
	assert.Contains(t, body, "Posted: 2026-08-31")
}

func TestRenderEmailBody_EscapesMarkup(t *testing.T) {
	recs := []model.PostingRecord{{
		Title:      `Engineer <script>alert("x")</script>`,
		Location:   "Remote & Hybrid",
		PostedDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}}

	body := renderEmailBody(recs)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Remote &amp; Hybrid")
}

// ── factory ────────────────────────────────────────────────────────────────

func TestFromConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want interface{}
	}{
		{"console", config.Config{NotifyMode: config.NotifyConsole}, &ConsoleNotifier{}},
		{"webhook", config.Config{NotifyMode: config.NotifyWebhook, WebhookURL: "https://example.com/hook"}, &WebhookNotifier{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := FromConfig(&c.cfg)
			require.NoError(t, err)
			assert.IsType(t, c.want, n)
		})
	}

	_, err := FromConfig(&config.Config{NotifyMode: "carrier-pigeon"})
	assert.Error(t, err)
}
