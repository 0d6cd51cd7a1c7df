package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// ConsoleNotifier prints new postings to a writer, one block per job.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier writes to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Notify(_ context.Context, postings []model.PostingRecord) error {
	if len(postings) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d NEW JOB(S) FOUND!\n", len(postings))
	b.WriteString(strings.Repeat("=", 50) + "\n")
	for _, p := range postings {
		fmt.Fprintf(&b, "%s\n", p.Title)
		fmt.Fprintf(&b, "  Location: %s\n", p.Location)
		fmt.Fprintf(&b, "  URL:      %s\n", urlOrPlaceholder(p.URL))
		fmt.Fprintf(&b, "  Posted:   %s\n", p.PostedDate.Format("2006-01-02"))
		b.WriteString(strings.Repeat("-", 30) + "\n")
	}

	_, err := io.WriteString(n.out, b.String())
	return err
}

func urlOrPlaceholder(u string) string {
	if u == "" {
		return "No URL available"
	}
	return u
}
