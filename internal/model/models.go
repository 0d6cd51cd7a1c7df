// Package model defines shared data structures for the job watcher.
package model

import "time"

// UnknownLocation is the sentinel used when the extractor cannot resolve a
// location from the page markup.
const UnknownLocation = "Unknown Location"

// Posting is a candidate job posting extracted from the careers page during
// one run. It carries no identity yet; identity is derived when the posting
// passes through the change detector.
type Posting struct {
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Team       string    `json:"team"`
	URL        string    `json:"url"`
	PostedDate time.Time `json:"postedDate"` // date observed, not the employer's posted date
}

// PostingRecord mirrors a job_postings table row: candidate fields plus the
// derived identity keys and the first/last-seen timestamps owned by the store.
type PostingRecord struct {
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Team        string    `json:"team"`
	JobID       string    `json:"jobId"`
	URL         string    `json:"url"`
	PostedDate  time.Time `json:"postedDate"`
	Fingerprint string    `json:"fingerprint"`
	FirstSeen   time.Time `json:"firstSeen"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RunStatus tags the outcome of one scrape run in the scrape_log table.
type RunStatus string

const (
	RunSuccess RunStatus = "success" // candidates fetched and fully processed
	RunPartial RunStatus = "partial" // run completed but some candidates could not be stored
	RunEmpty   RunStatus = "empty"   // page fetched but zero candidates extracted
	RunFailure RunStatus = "failure" // retrieval or extraction failed outright
)

// RunRecord mirrors a scrape_log table row.
type RunRecord struct {
	ScrapeTime time.Time `json:"scrapeTime"`
	JobsFound  int       `json:"jobsFound"`
	NewJobs    int       `json:"newJobs"`
	Status     RunStatus `json:"status"`
}
