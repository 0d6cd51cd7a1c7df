// Package notify delivers "new postings" alerts over one of the supported
// transports. Delivery is best-effort: persistence has already happened by
// the time a notifier runs, so a failed send is logged and the run goes on.
package notify

import (
	"context"
	"fmt"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/config"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// Notifier accepts the batch of newly discovered postings.
type Notifier interface {
	Notify(ctx context.Context, postings []model.PostingRecord) error
}

// FromConfig builds the notifier selected by NOTIFY_MODE.
func FromConfig(cfg *config.Config) (Notifier, error) {
	switch cfg.NotifyMode {
	case config.NotifyConsole:
		return NewConsoleNotifier(nil), nil
	case config.NotifyEmail:
		return NewEmailNotifier(EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
		})
	case config.NotifyWebhook:
		return NewWebhookNotifier(cfg.WebhookURL, cfg.HTTPTimeout), nil
	default:
		return nil, fmt.Errorf("unknown notify mode %q", cfg.NotifyMode)
	}
}
