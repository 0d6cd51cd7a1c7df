// Package extract turns a careers-page payload into zero or more
// low-confidence posting candidates. The selector chain is heuristic by
// nature: it never fails, it just finds less.
package extract

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

const (
	siteOrigin     = "https://careers.salesforce.com"
	maxTitleLength = 100
)

// Location hints scanned for inside a job card. The page renders locations
// as loose text, not a dedicated element.
var locationHints = []string{
	"California", "New York", "Seattle", "Austin", "Remote", "San Francisco",
	"Indianapolis", "Atlanta", "Chicago", "Dallas", "Denver", "Bellevue",
}

// CareersExtractor scans listing-page markup for job candidates.
type CareersExtractor struct {
	team     string
	keywords []string // lowercase title gate
	log      *logger.Logger
	now      func() time.Time
}

// NewCareersExtractor builds an extractor that tags every candidate with the
// given team and keeps only titles matching one of keywords
// (case-insensitive).
func NewCareersExtractor(team string, keywords []string) *CareersExtractor {
	kw := make([]string, len(keywords))
	for i, k := range keywords {
		kw[i] = strings.ToLower(k)
	}
	return &CareersExtractor{
		team:     team,
		keywords: kw,
		log:      logger.New("extract"),
		now:      time.Now,
	}
}

// Extract parses the page and returns candidates in document order. It never
// returns an error: malformed or empty markup yields an empty slice.
func (e *CareersExtractor) Extract(page []byte) []model.Posting {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		e.log.LogWarnf("unparseable page payload: %v", err)
		return nil
	}

	candidates := e.scanJobCards(doc)
	if len(candidates) == 0 {
		// Selector chain found nothing; fall back to a plain text line scan.
		candidates = e.scanTextLines(doc)
		if len(candidates) > 0 {
			e.log.LogInfof("fallback extraction found %d candidate(s)", len(candidates))
		}
	}

	return candidates
}

// scanJobCards walks elements whose class mentions "job" and pulls a title,
// location and link out of each.
func (e *CareersExtractor) scanJobCards(doc *goquery.Document) []model.Posting {
	var out []model.Posting
	seen := map[string]bool{}

	doc.Find(`div[class*="job"], article[class*="job"], li[class*="job"]`).Each(func(_ int, sel *goquery.Selection) {
		title := cardTitle(sel)
		if title == "" || len(title) > maxTitleLength || !e.matchesKeywords(title) {
			return
		}
		// The selector matches nested wrappers too; keep the first hit per title.
		if seen[title] {
			return
		}
		seen[title] = true

		out = append(out, model.Posting{
			Title:      title,
			Location:   cardLocation(sel),
			Team:       e.team,
			URL:        cardURL(sel),
			PostedDate: e.now(),
		})
	})

	return out
}

// scanTextLines is the last-resort path: treat every short text line that
// mentions a keyword as a candidate with unknown location and no URL.
func (e *CareersExtractor) scanTextLines(doc *goquery.Document) []model.Posting {
	var out []model.Posting
	seen := map[string]bool{}

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxTitleLength || !e.matchesKeywords(line) || seen[line] {
			continue
		}
		seen[line] = true

		out = append(out, model.Posting{
			Title:      line,
			Location:   model.UnknownLocation,
			Team:       e.team,
			URL:        "",
			PostedDate: e.now(),
		})
	}

	return out
}

func (e *CareersExtractor) matchesKeywords(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func cardTitle(sel *goquery.Selection) string {
	heading := sel.Find("h1, h2, h3, h4, h5, h6").First()
	if heading.Length() > 0 {
		return strings.TrimSpace(heading.Text())
	}
	return strings.TrimSpace(sel.Find("a").First().Text())
}

func cardLocation(sel *goquery.Selection) string {
	text := sel.Text()
	for _, hint := range locationHints {
		if idx := strings.Index(text, hint); idx >= 0 {
			return extractLocationLine(text, idx)
		}
	}
	return model.UnknownLocation
}

// extractLocationLine returns the whole line surrounding a hint match, so
// "San Francisco, California" comes back intact rather than just the hint.
func extractLocationLine(text string, idx int) string {
	start := strings.LastIndexByte(text[:idx], '\n') + 1
	end := strings.IndexByte(text[idx:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += idx
	}
	return strings.TrimSpace(text[start:end])
}

func cardURL(sel *goquery.Selection) string {
	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok {
		return ""
	}
	if !strings.HasPrefix(href, "http") {
		if !strings.HasPrefix(href, "/") {
			href = "/" + href
		}
		return siteOrigin + href
	}
	return href
}
