package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// EmailConfig carries the SMTP settings for the email notifier.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// EmailNotifier sends an HTML digest of new postings over SMTP.
type EmailNotifier struct {
	cfg    EmailConfig
	client *mail.Client
}

// NewEmailNotifier validates the SMTP settings and prepares a client.
func NewEmailNotifier(cfg EmailConfig) (*EmailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &EmailNotifier{cfg: cfg, client: client}, nil
}

func (n *EmailNotifier) Notify(ctx context.Context, postings []model.PostingRecord) error {
	if len(postings) == 0 {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(n.cfg.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(fmt.Sprintf("%d New Salesforce New Grad Jobs Found!", len(postings)))
	msg.SetBodyString(mail.TypeTextHTML, renderEmailBody(postings))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func renderEmailBody(postings []model.PostingRecord) string {
	var b strings.Builder
	b.WriteString("<h2>New Salesforce New Grad Job Postings</h2>\n")
	fmt.Fprintf(&b, "<p>Found %d new job posting(s):</p>\n<ul>\n", len(postings))
	for _, p := range postings {
		fmt.Fprintf(&b, "<li><strong>%s</strong><br>%s<br>Posted: %s<br>",
			html.EscapeString(p.Title),
			html.EscapeString(p.Location),
			p.PostedDate.Format("2006-01-02"))
		if p.URL != "" {
			u := html.EscapeString(p.URL)
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, u, u)
		} else {
			b.WriteString("No URL available")
		}
		b.WriteString("</li><br>\n")
	}
	b.WriteString("</ul>\n<p>Happy job hunting!</p>\n")
	return b.String()
}
