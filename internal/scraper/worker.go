// Package scraper drives one end-to-end scrape cycle:
// fetch → detect → persist → notify → log.
package scraper

import (
	"context"
	"time"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/detect"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/notify"
)

// Source yields the candidate postings for one run.
type Source interface {
	Fetch(ctx context.Context) ([]model.Posting, error)
}

// RunRecorder appends the per-run audit row for runs the detector never saw
// (fetch failures and empty pages).
type RunRecorder interface {
	RecordRun(ctx context.Context, jobsFound, newJobs int, status model.RunStatus) error
}

// Locker guards against overlapping runs. A nil Locker disables the guard.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Worker orchestrates one scrape cycle. Failures are contained here: nothing
// a run hits may crash a long-lived watcher process.
type Worker struct {
	source   Source
	detector *detect.Detector
	runs     RunRecorder
	notifier notify.Notifier
	lock     Locker
	exclude  []string
	log      *logger.Logger
}

// NewWorker constructs a Worker. exclude lists terms that discard a
// candidate before detection (empty means no filtering); lock may be nil.
func NewWorker(source Source, detector *detect.Detector, runs RunRecorder, notifier notify.Notifier, lock Locker, exclude []string) *Worker {
	return &Worker{
		source:   source,
		detector: detector,
		runs:     runs,
		notifier: notifier,
		lock:     lock,
		exclude:  exclude,
		log:      logger.New("worker"),
	}
}

// Run executes one scrape cycle and returns the run's outcome. The returned
// error is non-nil only for an extraction failure; persistence and
// notification problems are logged and absorbed, since the postings that
// matter are already durable by then.
func (w *Worker) Run(ctx context.Context) (*detect.Result, error) {
	start := time.Now()

	if w.lock != nil {
		ok, err := w.lock.Acquire(ctx)
		if err != nil {
			w.log.LogError("run lock unavailable, proceeding unguarded", err)
		} else if !ok {
			w.log.LogWarn("another run is in progress, skipping")
			return nil, nil
		} else {
			defer func() {
				if err := w.lock.Release(ctx); err != nil {
					w.log.LogError("run lock release failed", err)
				}
			}()
		}
	}

	w.log.LogInfo("starting scrape run")

	candidates, err := w.source.Fetch(ctx)
	if err != nil {
		w.log.LogError("fetch failed", err)
		w.recordRun(ctx, 0, 0, model.RunFailure)
		return nil, errors.Extraction("scrape run fetch", err)
	}

	candidates = w.filterExcluded(candidates)

	if len(candidates) == 0 {
		w.log.LogWarn("no candidates extracted - this might indicate a scraping issue")
		w.recordRun(ctx, 0, 0, model.RunEmpty)
		return &detect.Result{Status: model.RunEmpty}, nil
	}

	// Process persists every observation and appends the audit row itself.
	res, err := w.detector.Process(ctx, candidates)
	if err != nil {
		return res, err
	}

	if len(res.New) > 0 {
		if err := w.notifier.Notify(ctx, res.New); err != nil {
			// Postings are persisted; delivery can be replayed from the
			// observed-since window on the next invocation.
			nerr := errors.Notification("deliver new postings", err)
			w.log.LogError("notification failed", nerr)
		}
	} else {
		w.log.LogInfo("no new jobs found")
	}

	w.log.LogInfof("scrape completed in %s: found %d total jobs, %d new",
		time.Since(start).Round(time.Millisecond), res.Found, len(res.New))
	return res, nil
}

func (w *Worker) filterExcluded(candidates []model.Posting) []model.Posting {
	if len(w.exclude) == 0 {
		return candidates
	}
	kept := make([]model.Posting, 0, len(candidates))
	for _, c := range candidates {
		if ContainsExcludedTerm(c.Title, c.Location, w.exclude) {
			w.log.LogDebugf("excluded candidate %q", c.Title)
			continue
		}
		kept = append(kept, c)
	}
	if dropped := len(candidates) - len(kept); dropped > 0 {
		w.log.LogInfof("excluded %d candidate(s) by filter terms", dropped)
	}
	return kept
}

func (w *Worker) recordRun(ctx context.Context, found, newJobs int, status model.RunStatus) {
	if err := w.runs.RecordRun(ctx, found, newJobs, status); err != nil {
		w.log.LogError("run log write failed", err)
	}
}
